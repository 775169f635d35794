package repository

import (
	"context"

	"github.com/codexero/backend/internal/entity"
	"github.com/codexero/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type UserProfileRepository interface {
	Create(ctx context.Context, data *entity.UserProfile) error
	GetByWallet(ctx context.Context, walletAddress string) (*entity.UserProfile, error)
	Upsert(ctx context.Context, data *entity.UserProfile) error
	UpdateVerification(ctx context.Context, walletAddress string, update *entity.UserProfile) error
}

type userProfileRepository struct{}

func NewUserProfileRepository() *userProfileRepository {
	return &userProfileRepository{}
}

func (r *userProfileRepository) Create(ctx context.Context, data *entity.UserProfile) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userProfileRepository) GetByWallet(ctx context.Context, walletAddress string) (*entity.UserProfile, error) {
	var result entity.UserProfile
	err := xcontext.DB(ctx).Where("wallet_address=?", walletAddress).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Upsert creates the profile row or refreshes its identity columns. Only the
// identities present in data are overwritten, so a telegram check does not
// blank a stored twitter identity.
func (r *userProfileRepository) Upsert(ctx context.Context, data *entity.UserProfile) error {
	assignments := map[string]any{}
	if data.TwitterUserID != "" {
		assignments["twitter_user_id"] = data.TwitterUserID
		assignments["twitter_handle"] = data.TwitterHandle
		assignments["twitter_name"] = data.TwitterName
	}
	if data.TelegramUserID != "" {
		assignments["telegram_user_id"] = data.TelegramUserID
	}

	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_address"}},
		DoNothing: len(assignments) == 0,
	}
	if len(assignments) > 0 {
		onConflict.DoUpdates = clause.Assignments(assignments)
	}

	return xcontext.DB(ctx).Clauses(onConflict).Create(data).Error
}

// UpdateVerification overlays the step flags and metadata of update onto the
// stored profile. Metadata is merged per step, never replaced wholesale.
func (r *userProfileRepository) UpdateVerification(
	ctx context.Context, walletAddress string, update *entity.UserProfile,
) error {
	profile, err := r.GetByWallet(ctx, walletAddress)
	if err != nil {
		return err
	}

	fields := map[string]any{}
	if update.FollowVerified {
		fields["follow_verified"] = true
		fields["follow_verified_at"] = update.FollowVerifiedAt
	}
	if update.PostVerified {
		fields["post_verified"] = true
		fields["post_verified_at"] = update.PostVerifiedAt
	}
	if update.ProfileVerified {
		fields["profile_verified"] = true
		fields["profile_verified_at"] = update.ProfileVerifiedAt
	}
	if update.TelegramVerified {
		fields["telegram_verified"] = true
		fields["telegram_verified_at"] = update.TelegramVerifiedAt
	}

	metadata := profile.Metadata
	metadata.Merge(update.Metadata)
	fields["metadata"] = metadata

	return xcontext.DB(ctx).Model(&entity.UserProfile{}).
		Where("wallet_address=?", walletAddress).
		Updates(fields).Error
}

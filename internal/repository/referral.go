package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/codexero/backend/internal/entity"
	"github.com/codexero/backend/pkg/xcontext"
)

// ErrNothingUpdated signals that a conditional update matched no row, e.g. a
// second redemption racing against the first.
var ErrNothingUpdated = errors.New("nothing updated")

type ReferralRepository interface {
	Create(ctx context.Context, data *entity.Referral) error
	GetByCode(ctx context.Context, code string) (*entity.Referral, error)
	GetActiveByCode(ctx context.Context, code string) (*entity.Referral, error)
	GetActiveByCreator(ctx context.Context, creatorAddress string) (*entity.Referral, error)
	CountActiveByCreator(ctx context.Context, creatorAddress string) (int64, error)
	MarkVerified(ctx context.Context, code, redeemerWallet string, at time.Time) error
	Deactivate(ctx context.Context, code string) error
}

type referralRepository struct{}

func NewReferralRepository() *referralRepository {
	return &referralRepository{}
}

func (r *referralRepository) Create(ctx context.Context, data *entity.Referral) error {
	return xcontext.DB(ctx).Create(data).Error
}

// GetByCode also matches deactivated codes. The unique index covers them, so
// collision checks must too.
func (r *referralRepository) GetByCode(ctx context.Context, code string) (*entity.Referral, error) {
	var result entity.Referral
	err := xcontext.DB(ctx).Where("code=?", code).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *referralRepository) GetActiveByCode(ctx context.Context, code string) (*entity.Referral, error) {
	var result entity.Referral
	err := xcontext.DB(ctx).Where("code=? AND is_active=?", code, true).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *referralRepository) GetActiveByCreator(ctx context.Context, creatorAddress string) (*entity.Referral, error) {
	var result entity.Referral
	err := xcontext.DB(ctx).
		Where("creator_address=? AND is_active=?", creatorAddress, true).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *referralRepository) CountActiveByCreator(ctx context.Context, creatorAddress string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Referral{}).
		Where("creator_address=? AND is_active=?", creatorAddress, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// MarkVerified flips is_verified exactly once. The WHERE clause is the
// compare-and-set guard: a code already verified matches no row.
func (r *referralRepository) MarkVerified(ctx context.Context, code, redeemerWallet string, at time.Time) error {
	tx := xcontext.DB(ctx).Model(&entity.Referral{}).
		Where("code=? AND is_active=? AND is_verified=?", code, true, false).
		Updates(map[string]any{
			"is_verified":        true,
			"verified_by_wallet": sql.NullString{String: redeemerWallet, Valid: true},
			"verified_at":        sql.NullTime{Time: at, Valid: true},
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrNothingUpdated
	}

	return nil
}

func (r *referralRepository) Deactivate(ctx context.Context, code string) error {
	tx := xcontext.DB(ctx).Model(&entity.Referral{}).
		Where("code=? AND is_active=?", code, true).
		Update("is_active", false)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrNothingUpdated
	}

	return nil
}

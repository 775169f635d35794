package repository

import (
	"context"

	"github.com/codexero/backend/internal/entity"
	"github.com/codexero/backend/pkg/xcontext"
)

type ReferralVerificationRepository interface {
	Create(ctx context.Context, data *entity.ReferralVerification) error
	CountByCreator(ctx context.Context, creatorAddress string) (int64, error)
}

type referralVerificationRepository struct{}

func NewReferralVerificationRepository() *referralVerificationRepository {
	return &referralVerificationRepository{}
}

func (r *referralVerificationRepository) Create(ctx context.Context, data *entity.ReferralVerification) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *referralVerificationRepository) CountByCreator(ctx context.Context, creatorAddress string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.ReferralVerification{}).
		Where("creator_address=?", creatorAddress).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

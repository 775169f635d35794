package repository

import (
	"context"

	"github.com/codexero/backend/internal/entity"
	"github.com/codexero/backend/pkg/xcontext"
)

type WaitlistRepository interface {
	Create(ctx context.Context, data *entity.WaitlistSubscription) error
	GetByEmail(ctx context.Context, email string) (*entity.WaitlistSubscription, error)
}

type waitlistRepository struct{}

func NewWaitlistRepository() *waitlistRepository {
	return &waitlistRepository{}
}

func (r *waitlistRepository) Create(ctx context.Context, data *entity.WaitlistSubscription) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *waitlistRepository) GetByEmail(ctx context.Context, email string) (*entity.WaitlistSubscription, error) {
	var result entity.WaitlistSubscription
	err := xcontext.DB(ctx).Where("email=?", email).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

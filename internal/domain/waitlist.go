package domain

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/codexero/backend/internal/entity"
	"github.com/codexero/backend/internal/model"
	"github.com/codexero/backend/internal/repository"
	"github.com/codexero/backend/pkg/errorx"
	"github.com/codexero/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WaitlistDomain interface {
	Subscribe(ctx context.Context, req *model.SubscribeWaitlistRequest) (*model.SubscribeWaitlistResponse, error)
}

type waitlistDomain struct {
	waitlistRepo repository.WaitlistRepository
}

func NewWaitlistDomain(waitlistRepo repository.WaitlistRepository) *waitlistDomain {
	return &waitlistDomain{waitlistRepo: waitlistRepo}
}

func (d *waitlistDomain) Subscribe(
	ctx context.Context, req *model.SubscribeWaitlistRequest,
) (*model.SubscribeWaitlistResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid email address")
	}

	_, err := d.waitlistRepo.GetByEmail(ctx, email)
	if err == nil {
		// Subscribing twice is not an error from the user's point of view.
		return &model.SubscribeWaitlistResponse{}, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check waitlist subscription: %v", err)
		return nil, errorx.Unknown
	}

	err = d.waitlistRepo.Create(ctx, &entity.WaitlistSubscription{
		Base:  entity.Base{ID: uuid.NewString()},
		Email: email,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create waitlist subscription: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SubscribeWaitlistResponse{}, nil
}

package entity

import (
	"context"

	"github.com/codexero/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&UserProfile{},
		&Referral{},
		&ReferralVerification{},
		&WaitlistSubscription{},
	)
}

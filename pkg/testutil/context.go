package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/codexero/backend/config"
	"github.com/codexero/backend/internal/entity"
	"github.com/codexero/backend/internal/model"
	"github.com/codexero/backend/pkg/authenticator"
	"github.com/codexero/backend/pkg/logger"
	"github.com/codexero/backend/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "testing",
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     "token-secret",
				Expiration: time.Minute,
			},
		},
		Verification: config.VerificationConfigs{
			MaxFollowingPages:  20,
			FollowingPageLimit: 100,
			PostFetchLimit:     50,
			PostScanLimit:      20,
			MaxPollAttempts:    20,
			PollInterval:       time.Millisecond,
			ReclaimDelay:       time.Minute,
		},
	}
}

// MockContext returns a context carrying everything a domain needs: configs,
// a silent logger, a migrated in-memory database and a token engine.
func MockContext(t *testing.T) context.Context {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("cannot open in-memory database: %v", err)
	}

	// Every sqlite :memory: connection gets its own empty database, so the
	// pool must never grow past one connection.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("cannot get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := MockConfigs()
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)
	ctx = xcontext.WithTokenEngine(ctx,
		authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.AccessToken))

	if err := entity.MigrateTable(ctx); err != nil {
		t.Fatalf("cannot migrate tables: %v", err)
	}

	return ctx
}

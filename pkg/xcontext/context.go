package xcontext

import (
	"context"
	"net/http"

	"github.com/codexero/backend/config"
	"github.com/codexero/backend/internal/model"
	"github.com/codexero/backend/pkg/authenticator"
	"github.com/codexero/backend/pkg/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type (
	configsKey     struct{}
	loggerKey      struct{}
	dbKey          struct{}
	txKey          struct{}
	httpClientKey  struct{}
	tokenEngineKey struct{}
	redisKey       struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		panic("no configs in context")
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		panic("no logger in context")
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the transaction began by WithDBTransaction if any, otherwise the
// root *gorm.DB.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*txState); ok && !tx.done {
		return tx.tx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		panic("no database in context")
	}

	return db
}

type txState struct {
	tx   *gorm.DB
	done bool
}

func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &txState{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) {
	if tx, ok := ctx.Value(txKey{}).(*txState); ok && !tx.done {
		tx.tx.Commit()
		tx.done = true
	}
}

func WithRollbackDBTransaction(ctx context.Context) {
	if tx, ok := ctx.Value(txKey{}).(*txState); ok && !tx.done {
		tx.tx.Rollback()
		tx.done = true
	}
}

func WithHTTPClient(ctx context.Context, client *http.Client) context.Context {
	return context.WithValue(ctx, httpClientKey{}, client)
}

func HTTPClient(ctx context.Context) *http.Client {
	if client, ok := ctx.Value(httpClientKey{}).(*http.Client); ok {
		return client
	}

	return http.DefaultClient
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine[model.AccessToken]) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[model.AccessToken] {
	engine, ok := ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[model.AccessToken])
	if !ok {
		panic("no token engine in context")
	}

	return engine
}

func WithRedisClient(ctx context.Context, client *redis.Client) context.Context {
	return context.WithValue(ctx, redisKey{}, client)
}

// RedisClient returns nil if no redis client was set up. Callers treat a nil
// client as "cache disabled".
func RedisClient(ctx context.Context) *redis.Client {
	client, _ := ctx.Value(redisKey{}).(*redis.Client)
	return client
}

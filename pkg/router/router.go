package router

import (
	"context"
	"net/http"

	"github.com/codexero/backend/config"
	"github.com/codexero/backend/internal/model"
	"github.com/codexero/backend/pkg/authenticator"
	"github.com/codexero/backend/pkg/logger"
	"github.com/codexero/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may enrich the context (e.g.
// with the authenticated wallet) or reject the request by returning an error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

type Router struct {
	Inner gin.IRouter

	cfg         config.Configs
	logger      logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	tokenEngine authenticator.TokenEngine[model.AccessToken]

	befores []MiddlewareFunc
}

func New(cfg config.Configs, l logger.Logger, db *gorm.DB) *Router {
	return &Router{
		Inner:       gin.New(),
		cfg:         cfg,
		logger:      l,
		db:          db,
		tokenEngine: authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.AccessToken),
	}
}

func (r *Router) WithRedisClient(client *redis.Client) *Router {
	r.redisClient = client
	return r
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

// Branch returns a router sharing the same underlying engine but with an
// independent middleware chain.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	return &clone
}

func (r *Router) Static(relativePath, root string) {
	r.Inner.Static(relativePath, root)
}

func (r *Router) Handler() http.Handler {
	return r.Inner.(*gin.Engine)
}

func (r *Router) buildContext(ginCtx *gin.Context) context.Context {
	ctx := ginCtx.Request.Context()
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
	if r.redisClient != nil {
		ctx = xcontext.WithRedisClient(ctx, r.redisClient)
	}

	if token := bearerToken(ginCtx); token != "" {
		ctx = xcontext.WithAccessToken(ctx, token)
	}

	return ctx
}

func bearerToken(ginCtx *gin.Context) string {
	const prefix = "Bearer "
	authorization := ginCtx.GetHeader("Authorization")
	if len(authorization) > len(prefix) && authorization[:len(prefix)] == prefix {
		return authorization[len(prefix):]
	}

	return ""
}

package middleware

import (
	"context"

	"github.com/codexero/backend/pkg/errorx"
	"github.com/codexero/backend/pkg/router"
	"github.com/codexero/backend/pkg/xcontext"
)

// Authenticate verifies the bearer token and puts the wallet address on the
// context for downstream handlers.
func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := xcontext.AccessToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "Missing access token")
		}

		obj, err := xcontext.TokenEngine(ctx).Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestWallet(ctx, obj.Address), nil
	}
}

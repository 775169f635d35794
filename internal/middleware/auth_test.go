package middleware_test

import (
	"testing"

	"github.com/codexero/backend/internal/middleware"
	"github.com/codexero/backend/internal/model"
	"github.com/codexero/backend/pkg/errorx"
	"github.com/codexero/backend/pkg/testutil"
	"github.com/codexero/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_Authenticate(t *testing.T) {
	ctx := testutil.MockContext(t)
	wallet := "0x1111111111111111111111111111111111111111"

	token, err := xcontext.TokenEngine(ctx).Generate(wallet, model.AccessToken{Address: wallet})
	require.NoError(t, err)

	authedCtx, err := middleware.Authenticate()(xcontext.WithAccessToken(ctx, token))
	require.NoError(t, err)
	require.Equal(t, wallet, xcontext.RequestWallet(authedCtx))
}

func Test_Authenticate_MissingToken(t *testing.T) {
	ctx := testutil.MockContext(t)

	_, err := middleware.Authenticate()(ctx)

	var xerr errorx.Error
	require.ErrorAs(t, err, &xerr)
	require.Equal(t, errorx.Unauthenticated, xerr.Code)
}

func Test_Authenticate_GarbageToken(t *testing.T) {
	ctx := testutil.MockContext(t)

	_, err := middleware.Authenticate()(xcontext.WithAccessToken(ctx, "garbage"))

	var xerr errorx.Error
	require.ErrorAs(t, err, &xerr)
	require.Equal(t, errorx.Unauthenticated, xerr.Code)
}

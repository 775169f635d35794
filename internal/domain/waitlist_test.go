package domain_test

import (
	"testing"

	"github.com/codexero/backend/internal/domain"
	"github.com/codexero/backend/internal/model"
	"github.com/codexero/backend/internal/repository"
	"github.com/codexero/backend/pkg/errorx"
	"github.com/codexero/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_WaitlistDomain_Subscribe(t *testing.T) {
	ctx := testutil.MockContext(t)
	waitlistRepo := repository.NewWaitlistRepository()
	waitlistDomain := domain.NewWaitlistDomain(waitlistRepo)

	_, err := waitlistDomain.Subscribe(ctx, &model.SubscribeWaitlistRequest{Email: "Alice@Example.com "})
	require.NoError(t, err)

	stored, err := waitlistRepo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", stored.Email)

	// Subscribing again is a no-op, not an error.
	_, err = waitlistDomain.Subscribe(ctx, &model.SubscribeWaitlistRequest{Email: "alice@example.com"})
	require.NoError(t, err)
}

func Test_WaitlistDomain_InvalidEmail(t *testing.T) {
	ctx := testutil.MockContext(t)
	waitlistDomain := domain.NewWaitlistDomain(repository.NewWaitlistRepository())

	for _, email := range []string{"", "nope", "@example.com", "a b@example.com"} {
		_, err := waitlistDomain.Subscribe(ctx, &model.SubscribeWaitlistRequest{Email: email})
		requireErrorxCode(t, err, errorx.BadRequest)
	}
}

package socialverify_test

import (
	"context"
	"testing"

	"github.com/codexero/backend/internal/domain/socialverify"
	"github.com/codexero/backend/pkg/api"
	"github.com/codexero/backend/pkg/api/twitterproxy"
	"github.com/codexero/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_ProfileInspector_FetchProfile(t *testing.T) {
	ctx := testutil.MockContext(t)

	endpoint := &testutil.MockTwitterEndpoint{
		GetUserDetailsFunc: func(ctx context.Context, userID string) (twitterproxy.User, error) {
			return twitterproxy.User{
				UserID:      userID,
				Handle:      "alice",
				Name:        "Alice | CodeXero",
				Verified:    true,
				Followers:   1200,
				Description: "builder",
			}, nil
		},
	}

	profile := socialverify.NewProfileInspector(endpoint).FetchProfile(ctx, "u1")

	require.True(t, profile.Exists)
	require.Equal(t, "alice", profile.Handle)
	require.Equal(t, "Alice | CodeXero", profile.DisplayName)
	require.True(t, profile.Verified)
	require.Equal(t, 1200, profile.Followers)
	require.False(t, profile.UsedFallback)
}

func Test_ProfileInspector_NotFoundIsNotFallback(t *testing.T) {
	ctx := testutil.MockContext(t)

	endpoint := &testutil.MockTwitterEndpoint{
		GetUserDetailsFunc: func(ctx context.Context, userID string) (twitterproxy.User, error) {
			return twitterproxy.User{}, api.ErrNotFound
		},
	}

	inspector := socialverify.NewProfileInspector(endpoint)

	profile := inspector.FetchProfile(ctx, "u1")
	require.False(t, profile.Exists)
	require.False(t, profile.UsedFallback)

	result := inspector.ContainsSequence(ctx, "u1", []string{"codexero"})
	require.False(t, result.Verified)
	require.False(t, result.UsedFallback)
}

func Test_ProfileInspector_ContainsSequence(t *testing.T) {
	ctx := testutil.MockContext(t)

	endpoint := &testutil.MockTwitterEndpoint{
		GetUserDetailsFunc: func(ctx context.Context, userID string) (twitterproxy.User, error) {
			return twitterproxy.User{UserID: userID, Name: "Alice (CodeXero OG)"}, nil
		},
	}

	inspector := socialverify.NewProfileInspector(endpoint)

	result := inspector.ContainsSequence(ctx, "u1", []string{"codexero", "xyz", ""})
	require.True(t, result.Verified)
	require.Equal(t, []string{"codexero"}, result.MatchedSequences)

	result = inspector.ContainsSequence(ctx, "u1", []string{"degen"})
	require.False(t, result.Verified)
	require.Empty(t, result.MatchedSequences)
}

func Test_ProfileInspector_FailOpen(t *testing.T) {
	ctx := testutil.MockContext(t)

	endpoint := &testutil.MockTwitterEndpoint{
		GetUserDetailsFunc: func(ctx context.Context, userID string) (twitterproxy.User, error) {
			return twitterproxy.User{}, api.ErrAccessDenied
		},
	}

	result := socialverify.NewProfileInspector(endpoint).
		ContainsSequence(ctx, "u1", []string{"codexero"})

	require.True(t, result.Verified)
	require.True(t, result.UsedFallback)
	require.Equal(t, socialverify.FallbackAccessDenied, result.FallbackReason)
}

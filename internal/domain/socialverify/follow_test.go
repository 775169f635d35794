package socialverify_test

import (
	"context"
	"testing"

	"github.com/codexero/backend/config"
	"github.com/codexero/backend/internal/domain/socialverify"
	"github.com/codexero/backend/pkg/api"
	"github.com/codexero/backend/pkg/api/twitterproxy"
	"github.com/codexero/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func followingPage(nextCursor string, userIDs ...string) twitterproxy.FollowingPage {
	page := twitterproxy.FollowingPage{NextCursor: nextCursor}
	for _, id := range userIDs {
		page.Entries = append(page.Entries, twitterproxy.FollowingEntry{UserID: id})
	}

	return page
}

func Test_FollowVerifier_FoundOnSecondPage(t *testing.T) {
	ctx := testutil.MockContext(t)

	endpoint := &testutil.MockTwitterEndpoint{
		GetFollowingFunc: func(ctx context.Context, userID, cursor string) (twitterproxy.FollowingPage, error) {
			if cursor == "" {
				return followingPage("c1", "u1", "u2"), nil
			}

			return followingPage("c2", "u3", "target"), nil
		},
	}

	verifier := socialverify.NewFollowVerifier(endpoint, testutil.MockConfigs().Verification)
	result := verifier.CheckFollowing(ctx, "account", "target")

	require.True(t, result.IsFollowing)
	require.False(t, result.UsedFallback)
	require.Equal(t, socialverify.FallbackNone, result.FallbackReason)
	require.Equal(t, 2, result.PagesScanned)
	require.Equal(t, 4, result.AccountsScanned)
}

func Test_FollowVerifier_NotFollowing(t *testing.T) {
	ctx := testutil.MockContext(t)

	endpoint := &testutil.MockTwitterEndpoint{
		GetFollowingFunc: func(ctx context.Context, userID, cursor string) (twitterproxy.FollowingPage, error) {
			return followingPage("", "u1", "u2", "u3"), nil
		},
	}

	verifier := socialverify.NewFollowVerifier(endpoint, testutil.MockConfigs().Verification)
	result := verifier.CheckFollowing(ctx, "account", "target")

	require.False(t, result.IsFollowing)
	require.False(t, result.UsedFallback)
	require.Equal(t, 1, result.PagesScanned)
	require.Equal(t, 3, result.AccountsScanned)
}

func Test_FollowVerifier_StopsAtPageCap(t *testing.T) {
	ctx := testutil.MockContext(t)

	calls := 0
	endpoint := &testutil.MockTwitterEndpoint{
		GetFollowingFunc: func(ctx context.Context, userID, cursor string) (twitterproxy.FollowingPage, error) {
			calls++
			// Endless list, every page full with a fresh cursor.
			return followingPage(cursor+"x", "u1", "u2"), nil
		},
	}

	verifier := socialverify.NewFollowVerifier(endpoint, config.VerificationConfigs{
		MaxFollowingPages:  3,
		FollowingPageLimit: 2,
	})
	result := verifier.CheckFollowing(ctx, "account", "target")

	require.False(t, result.IsFollowing)
	require.Equal(t, 3, calls)
	require.Equal(t, 3, result.PagesScanned)
	require.Equal(t, 6, result.AccountsScanned)
}

func Test_FollowVerifier_StopsOnRepeatedCursor(t *testing.T) {
	ctx := testutil.MockContext(t)

	endpoint := &testutil.MockTwitterEndpoint{
		GetFollowingFunc: func(ctx context.Context, userID, cursor string) (twitterproxy.FollowingPage, error) {
			return followingPage("same", "u1"), nil
		},
	}

	verifier := socialverify.NewFollowVerifier(endpoint, testutil.MockConfigs().Verification)
	result := verifier.CheckFollowing(ctx, "account", "target")

	require.False(t, result.IsFollowing)
	require.Equal(t, 2, result.PagesScanned)
}

func Test_FollowVerifier_FailOpen(t *testing.T) {
	ctx := testutil.MockContext(t)

	testcases := []struct {
		name     string
		err      error
		expected socialverify.FallbackReason
	}{
		{"access denied", api.ErrAccessDenied, socialverify.FallbackAccessDenied},
		{"rate limited", api.ErrRateLimited, socialverify.FallbackRateLimited},
		{"transport error", api.TransportError{Code: 500, Message: "oops"}, socialverify.FallbackTransportError},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			endpoint := &testutil.MockTwitterEndpoint{
				GetFollowingFunc: func(ctx context.Context, userID, cursor string) (twitterproxy.FollowingPage, error) {
					return twitterproxy.FollowingPage{}, tc.err
				},
			}

			verifier := socialverify.NewFollowVerifier(endpoint, testutil.MockConfigs().Verification)
			result := verifier.CheckFollowing(ctx, "account", "target")

			require.True(t, result.IsFollowing)
			require.True(t, result.UsedFallback)
			require.Equal(t, tc.expected, result.FallbackReason)
		})
	}
}

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

const targetContent = "Excited to join the CodeXero mint! Check it out https://codexero.xyz/mint"

func newPostVerifier(endpoint twitterproxy.IEndpoint, clock socialverify.Clock) *socialverify.PostVerifier {
	return socialverify.NewPostVerifier(endpoint, clock, testutil.MockConfigs().Verification)
}

func Test_PostVerifier_TargetUserRetweet(t *testing.T) {
	ctx := testutil.MockContext(t)

	endpoint := &testutil.MockTwitterEndpoint{
		GetTweetsAndRepliesFunc: func(ctx context.Context, userID string) ([]twitterproxy.Tweet, error) {
			return []twitterproxy.Tweet{
				{TweetID: "t1", Text: "gm everyone"},
				{
					TweetID: "t2",
					Text:    "RT @codexero: Excited to join",
					RetweetedStatus: &twitterproxy.RetweetedStatus{
						TweetID: "orig1",
						UserID:  "target",
					},
				},
			}, nil
		},
	}

	clock := &testutil.MockClock{}
	result := newPostVerifier(endpoint, clock).CheckPosted(ctx, "account", targetContent, "target")

	require.True(t, result.HasPosted)
	require.Equal(t, "t2", result.MatchedTweetID)
	require.Equal(t, socialverify.MatchTargetUserRetweet, result.MatchType)
	require.Equal(t, 1, result.AttemptsMade)
	require.Zero(t, clock.SleepCalls())
}

func Test_PostVerifier_RetweetWithStatusText(t *testing.T) {
	ctx := testutil.MockContext(t)

	endpoint := &testutil.MockTwitterEndpoint{
		GetTweetsAndRepliesFunc: func(ctx context.Context, userID string) ([]twitterproxy.Tweet, error) {
			return []twitterproxy.Tweet{
				{
					TweetID: "t1",
					Text:    "some truncated text",
					RetweetedStatus: &twitterproxy.RetweetedStatus{
						TweetID: "orig1",
						UserID:  "someone-else",
						Text:    "Excited to join the CodeXero mint! Check it out",
					},
				},
			}, nil
		},
	}

	result := newPostVerifier(endpoint, &testutil.MockClock{}).
		CheckPosted(ctx, "account", targetContent, "target")

	require.True(t, result.HasPosted)
	require.Equal(t, socialverify.MatchRetweetWithStatus, result.MatchType)
}

func Test_PostVerifier_QuoteTweet(t *testing.T) {
	ctx := testutil.MockContext(t)

	endpoint := &testutil.MockTwitterEndpoint{
		GetTweetsAndRepliesFunc: func(ctx context.Context, userID string) ([]twitterproxy.Tweet, error) {
			return []twitterproxy.Tweet{
				{
					TweetID: "t1",
					Text:    "this is huge!  EXCITED TO JOIN THE CODEXERO MINT! check it out",
					IsQuote: true,
				},
			}, nil
		},
	}

	result := newPostVerifier(endpoint, &testutil.MockClock{}).
		CheckPosted(ctx, "account", targetContent, "")

	require.True(t, result.HasPosted)
	require.Equal(t, socialverify.MatchQuoteTweet, result.MatchType)
}

func Test_PostVerifier_ContentMatch(t *testing.T) {
	ctx := testutil.MockContext(t)

	endpoint := &testutil.MockTwitterEndpoint{
		GetTweetsAndRepliesFunc: func(ctx context.Context, userID string) ([]twitterproxy.Tweet, error) {
			return []twitterproxy.Tweet{
				// Same words minus the link, reordered.
				{TweetID: "t1", Text: "Check it out, excited to join the CodeXero mint"},
			}, nil
		},
	}

	result := newPostVerifier(endpoint, &testutil.MockClock{}).
		CheckPosted(ctx, "account", targetContent, "")

	require.True(t, result.HasPosted)
	require.Equal(t, socialverify.MatchContent, result.MatchType)
}

func Test_PostVerifier_FoundAfterPolling(t *testing.T) {
	ctx := testutil.MockContext(t)

	calls := 0
	endpoint := &testutil.MockTwitterEndpoint{
		GetTweetsAndRepliesFunc: func(ctx context.Context, userID string) ([]twitterproxy.Tweet, error) {
			calls++
			if calls < 3 {
				return []twitterproxy.Tweet{{TweetID: "t0", Text: "unrelated"}}, nil
			}

			return []twitterproxy.Tweet{
				{
					TweetID: "t1",
					Text:    "RT @codexero: mint is live",
					RetweetedStatus: &twitterproxy.RetweetedStatus{
						TweetID: "orig1",
						UserID:  "target",
					},
				},
			}, nil
		},
	}

	clock := &testutil.MockClock{}
	result := newPostVerifier(endpoint, clock).CheckPosted(ctx, "account", "", "target")

	require.True(t, result.HasPosted)
	require.Equal(t, 3, result.AttemptsMade)
	require.Equal(t, 2, clock.SleepCalls())
}

func Test_PostVerifier_ExhaustsAttempts(t *testing.T) {
	ctx := testutil.MockContext(t)

	endpoint := &testutil.MockTwitterEndpoint{
		GetTweetsAndRepliesFunc: func(ctx context.Context, userID string) ([]twitterproxy.Tweet, error) {
			return []twitterproxy.Tweet{{TweetID: "t0", Text: "unrelated"}}, nil
		},
	}

	clock := &testutil.MockClock{}
	result := newPostVerifier(endpoint, clock).CheckPosted(ctx, "account", targetContent, "target")

	maxAttempts := testutil.MockConfigs().Verification.MaxPollAttempts
	require.False(t, result.HasPosted)
	require.False(t, result.UsedFallback)
	require.Equal(t, socialverify.MatchNone, result.MatchType)
	require.Equal(t, maxAttempts, result.AttemptsMade)
	require.Equal(t, maxAttempts-1, clock.SleepCalls())
}

func Test_PostVerifier_CancelledDuringPoll(t *testing.T) {
	ctx, cancel := context.WithCancel(testutil.MockContext(t))

	endpoint := &testutil.MockTwitterEndpoint{
		GetTweetsAndRepliesFunc: func(ctx context.Context, userID string) ([]twitterproxy.Tweet, error) {
			return nil, nil
		},
	}

	// Cancel before the first sleep; the poll must end without a fallback.
	cancel()
	result := newPostVerifier(endpoint, &testutil.MockClock{}).
		CheckPosted(ctx, "account", targetContent, "target")

	require.False(t, result.HasPosted)
	require.False(t, result.UsedFallback)
	require.Equal(t, 1, result.AttemptsMade)
}

func Test_PostVerifier_FailOpen(t *testing.T) {
	ctx := testutil.MockContext(t)

	endpoint := &testutil.MockTwitterEndpoint{
		GetTweetsAndRepliesFunc: func(ctx context.Context, userID string) ([]twitterproxy.Tweet, error) {
			return nil, api.ErrRateLimited
		},
	}

	result := newPostVerifier(endpoint, &testutil.MockClock{}).
		CheckPosted(ctx, "account", targetContent, "target")

	require.True(t, result.HasPosted)
	require.True(t, result.UsedFallback)
	require.Equal(t, socialverify.FallbackRateLimited, result.FallbackReason)
	require.Equal(t, 1, result.AttemptsMade)
}

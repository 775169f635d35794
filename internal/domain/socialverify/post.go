package socialverify

import (
	"context"
	"strings"
	"time"

	"github.com/codexero/backend/config"
	"github.com/codexero/backend/pkg/api/twitterproxy"
	"github.com/codexero/backend/pkg/xcontext"
)

const (
	defaultPostScanLimit   = 20
	defaultMaxPollAttempts = 20
	defaultPollInterval    = 3 * time.Second

	contentMatchThreshold = 0.8

	retweetPrefix = "RT @"
)

// PostVerifier answers whether an account retweeted or posted content
// matching a target. Because a just-submitted retweet may not be indexed by
// the provider yet, the check polls with a bounded number of attempts.
type PostVerifier struct {
	endpoint twitterproxy.IEndpoint
	clock    Clock

	scanLimit       int
	maxPollAttempts int
	pollInterval    time.Duration
}

func NewPostVerifier(endpoint twitterproxy.IEndpoint, clock Clock, cfg config.VerificationConfigs) *PostVerifier {
	scanLimit := cfg.PostScanLimit
	if scanLimit <= 0 {
		scanLimit = defaultPostScanLimit
	}

	maxAttempts := cfg.MaxPollAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxPollAttempts
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	return &PostVerifier{
		endpoint:        endpoint,
		clock:           clock,
		scanLimit:       scanLimit,
		maxPollAttempts: maxAttempts,
		pollInterval:    pollInterval,
	}
}

// CheckPosted scans accountID's recent posts for a match against the target
// content or target account id, retrying until a match appears, attempts run
// out, or ctx is cancelled. Classified gateway failures degrade to a positive
// result flagged with UsedFallback, like CheckFollowing.
func (v *PostVerifier) CheckPosted(
	ctx context.Context, accountID, targetContent, targetAccountID string,
) PostCheckResult {
	result := PostCheckResult{FallbackReason: FallbackNone, MatchType: MatchNone}

	for result.AttemptsMade < v.maxPollAttempts {
		result.AttemptsMade++

		tweets, err := v.endpoint.GetTweetsAndReplies(ctx, accountID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get posts of %s: %v", accountID, err)
			result.HasPosted = true
			result.UsedFallback = true
			result.FallbackReason = fallbackReasonOf(err)
			return result
		}

		if len(tweets) > v.scanLimit {
			tweets = tweets[:v.scanLimit]
		}

		for _, tweet := range tweets {
			if matchType := v.match(tweet, targetContent, targetAccountID); matchType != MatchNone {
				result.HasPosted = true
				result.MatchedTweetID = tweet.TweetID
				result.MatchType = matchType
				return result
			}
		}

		if result.AttemptsMade >= v.maxPollAttempts {
			break
		}

		if err := v.clock.Sleep(ctx, v.pollInterval); err != nil {
			// The caller cancelled the poll; stop without a fallback.
			return result
		}
	}

	return result
}

// match applies the four strategies in order; the first hit wins.
func (v *PostVerifier) match(tweet twitterproxy.Tweet, targetContent, targetAccountID string) MatchType {
	if targetAccountID != "" &&
		strings.HasPrefix(tweet.Text, retweetPrefix) &&
		tweet.RetweetedStatus != nil &&
		(tweet.RetweetedStatus.UserID == targetAccountID || tweet.RetweetedStatus.TweetID == targetAccountID) {
		return MatchTargetUserRetweet
	}

	if targetContent == "" {
		return MatchNone
	}

	if tweet.RetweetedStatus != nil && containsNormalized(tweet.RetweetedStatus.Text, targetContent) {
		return MatchRetweetWithStatus
	}

	if tweet.IsQuote && containsNormalized(tweet.Text, targetContent) {
		return MatchQuoteTweet
	}

	if ContentSimilarity(tweet.Text, targetContent) >= contentMatchThreshold {
		return MatchContent
	}

	return MatchNone
}

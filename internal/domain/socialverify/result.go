package socialverify

import (
	"errors"

	"github.com/codexero/backend/pkg/api"
	"github.com/codexero/backend/pkg/enum"
)

type FallbackReason string

var (
	FallbackNone           = enum.New(FallbackReason("none"))
	FallbackAccessDenied   = enum.New(FallbackReason("access_denied"))
	FallbackRateLimited    = enum.New(FallbackReason("rate_limited"))
	FallbackTransportError = enum.New(FallbackReason("transport_error"))
)

type MatchType string

var (
	MatchNone              = enum.New(MatchType("none"))
	MatchTargetUserRetweet = enum.New(MatchType("target_user_retweet"))
	MatchRetweetWithStatus = enum.New(MatchType("retweet_with_status"))
	MatchQuoteTweet        = enum.New(MatchType("quote_tweet"))
	MatchContent           = enum.New(MatchType("content_match"))
)

type FollowCheckResult struct {
	IsFollowing     bool
	UsedFallback    bool
	FallbackReason  FallbackReason
	PagesScanned    int
	AccountsScanned int
}

type PostCheckResult struct {
	HasPosted      bool
	UsedFallback   bool
	FallbackReason FallbackReason
	MatchedTweetID string
	MatchType      MatchType
	AttemptsMade   int
}

// fallbackReasonOf maps a classified gateway failure to the reason recorded
// on a fail-open result. Anything unclassified counts as a transport error.
func fallbackReasonOf(err error) FallbackReason {
	switch {
	case errors.Is(err, api.ErrAccessDenied):
		return FallbackAccessDenied
	case errors.Is(err, api.ErrRateLimited):
		return FallbackRateLimited
	default:
		return FallbackTransportError
	}
}

package socialverify

import (
	"context"

	"github.com/codexero/backend/config"
	"github.com/codexero/backend/pkg/api/twitterproxy"
	"github.com/codexero/backend/pkg/xcontext"
)

const (
	defaultMaxFollowingPages  = 20
	defaultFollowingPageLimit = 100
)

// FollowVerifier answers whether one account follows another by walking the
// account's following list page by page.
type FollowVerifier struct {
	endpoint twitterproxy.IEndpoint

	maxPages  int
	pageLimit int
}

func NewFollowVerifier(endpoint twitterproxy.IEndpoint, cfg config.VerificationConfigs) *FollowVerifier {
	maxPages := cfg.MaxFollowingPages
	if maxPages <= 0 {
		maxPages = defaultMaxFollowingPages
	}

	pageLimit := cfg.FollowingPageLimit
	if pageLimit <= 0 {
		pageLimit = defaultFollowingPageLimit
	}

	return &FollowVerifier{endpoint: endpoint, maxPages: maxPages, pageLimit: pageLimit}
}

// CheckFollowing pages through accountID's following list until it finds
// targetAccountID or exhausts the list. It never returns an error: a
// classified gateway failure degrades to a positive result flagged with
// UsedFallback, so a flaky third-party API does not block legitimate users.
func (v *FollowVerifier) CheckFollowing(ctx context.Context, accountID, targetAccountID string) FollowCheckResult {
	result := FollowCheckResult{FallbackReason: FallbackNone}

	cursor := ""
	for page := 0; page < v.maxPages; page++ {
		followingPage, err := v.endpoint.GetFollowing(ctx, accountID, cursor)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get following page %d of %s: %v", page, accountID, err)
			result.IsFollowing = true
			result.UsedFallback = true
			result.FallbackReason = fallbackReasonOf(err)
			return result
		}

		result.PagesScanned++
		result.AccountsScanned += len(followingPage.Entries)

		for _, entry := range followingPage.Entries {
			if entry.UserID == targetAccountID {
				result.IsFollowing = true
				return result
			}
		}

		if result.AccountsScanned >= v.maxPages*v.pageLimit {
			break
		}

		// An empty page, a missing cursor or a cursor identical to the
		// current one all mean the list is exhausted.
		if len(followingPage.Entries) == 0 {
			break
		}
		if followingPage.NextCursor == "" || followingPage.NextCursor == cursor {
			break
		}

		cursor = followingPage.NextCursor
	}

	return result
}

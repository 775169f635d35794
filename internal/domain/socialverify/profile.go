package socialverify

import (
	"context"
	"errors"
	"strings"

	"github.com/codexero/backend/pkg/api"
	"github.com/codexero/backend/pkg/api/twitterproxy"
	"github.com/codexero/backend/pkg/xcontext"
)

type Profile struct {
	Exists      bool
	Handle      string
	DisplayName string
	Verified    bool
	Followers   int
	Description string

	UsedFallback   bool
	FallbackReason FallbackReason
}

type SequenceCheckResult struct {
	Verified         bool
	MatchedSequences []string

	UsedFallback   bool
	FallbackReason FallbackReason
}

// ProfileInspector fetches social profiles and tests display-name substring
// membership.
type ProfileInspector struct {
	endpoint twitterproxy.IEndpoint
}

func NewProfileInspector(endpoint twitterproxy.IEndpoint) *ProfileInspector {
	return &ProfileInspector{endpoint: endpoint}
}

// FetchProfile resolves the account. A not-found account is a legitimate
// outcome, not an error; other classified failures degrade to an optimistic
// existing-and-verified profile flagged with UsedFallback.
func (p *ProfileInspector) FetchProfile(ctx context.Context, accountID string) Profile {
	user, err := p.endpoint.GetUserDetails(ctx, accountID)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return Profile{Exists: false, FallbackReason: FallbackNone}
		}

		xcontext.Logger(ctx).Warnf("Cannot get profile of %s: %v", accountID, err)
		return Profile{
			Exists:         true,
			Verified:       true,
			UsedFallback:   true,
			FallbackReason: fallbackReasonOf(err),
		}
	}

	return Profile{
		Exists:         true,
		Handle:         user.Handle,
		DisplayName:    user.Name,
		Verified:       user.Verified,
		Followers:      user.Followers,
		Description:    user.Description,
		FallbackReason: FallbackNone,
	}
}

// ContainsSequence reports whether the account's display name contains any of
// the given sequences, case-insensitively.
func (p *ProfileInspector) ContainsSequence(ctx context.Context, accountID string, sequences []string) SequenceCheckResult {
	profile := p.FetchProfile(ctx, accountID)
	if profile.UsedFallback {
		return SequenceCheckResult{
			Verified:       true,
			UsedFallback:   true,
			FallbackReason: profile.FallbackReason,
		}
	}

	result := SequenceCheckResult{FallbackReason: FallbackNone}
	if !profile.Exists {
		return result
	}

	displayName := strings.ToLower(profile.DisplayName)
	for _, sequence := range sequences {
		if sequence == "" {
			continue
		}

		if strings.Contains(displayName, strings.ToLower(sequence)) {
			result.MatchedSequences = append(result.MatchedSequences, sequence)
		}
	}

	result.Verified = len(result.MatchedSequences) > 0
	return result
}

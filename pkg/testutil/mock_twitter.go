package testutil

import (
	"context"

	"github.com/codexero/backend/pkg/api/twitterproxy"
)

type MockTwitterEndpoint struct {
	GetFollowingFunc        func(ctx context.Context, userID, cursor string) (twitterproxy.FollowingPage, error)
	GetTweetsAndRepliesFunc func(ctx context.Context, userID string) ([]twitterproxy.Tweet, error)
	GetUserDetailsFunc      func(ctx context.Context, userID string) (twitterproxy.User, error)
}

func (e *MockTwitterEndpoint) GetFollowing(
	ctx context.Context, userID, cursor string,
) (twitterproxy.FollowingPage, error) {
	if e.GetFollowingFunc == nil {
		panic("not implemented")
	}

	return e.GetFollowingFunc(ctx, userID, cursor)
}

func (e *MockTwitterEndpoint) GetTweetsAndReplies(
	ctx context.Context, userID string,
) ([]twitterproxy.Tweet, error) {
	if e.GetTweetsAndRepliesFunc == nil {
		panic("not implemented")
	}

	return e.GetTweetsAndRepliesFunc(ctx, userID)
}

func (e *MockTwitterEndpoint) GetUserDetails(
	ctx context.Context, userID string,
) (twitterproxy.User, error) {
	if e.GetUserDetailsFunc == nil {
		panic("not implemented")
	}

	return e.GetUserDetailsFunc(ctx, userID)
}

package twitterproxy

import "context"

type IEndpoint interface {
	GetFollowing(ctx context.Context, userID, cursor string) (FollowingPage, error)
	GetTweetsAndReplies(ctx context.Context, userID string) ([]Tweet, error)
	GetUserDetails(ctx context.Context, userID string) (User, error)
}

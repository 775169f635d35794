package twitterproxy

import (
	"context"
	"errors"
	"strconv"

	"github.com/codexero/backend/config"
	"github.com/codexero/backend/pkg/api"
	"github.com/mitchellh/mapstructure"
)

type Endpoint struct {
	cfg          config.TwitterProxyConfigs
	apiGenerator api.Generator

	followingPageLimit int
	postFetchLimit     int
}

func New(cfg config.TwitterProxyConfigs, verifyCfg config.VerificationConfigs) *Endpoint {
	followingPageLimit := verifyCfg.FollowingPageLimit
	if followingPageLimit <= 0 {
		followingPageLimit = 100
	}

	postFetchLimit := verifyCfg.PostFetchLimit
	if postFetchLimit <= 0 {
		postFetchLimit = 50
	}

	return &Endpoint{
		cfg:                cfg,
		apiGenerator:       api.NewGenerator(),
		followingPageLimit: followingPageLimit,
		postFetchLimit:     postFetchLimit,
	}
}

func (e *Endpoint) GetFollowing(ctx context.Context, userID, cursor string) (FollowingPage, error) {
	query := api.Parameter{
		"user_id": userID,
		"limit":   strconv.Itoa(e.followingPageLimit),
	}
	if cursor != "" {
		query["cursor"] = cursor
	}

	resp, err := e.apiGenerator.New(e.cfg.Endpoint, "/user/following").
		Header("x-rapidapi-key", e.cfg.APIKey).
		Header("x-rapidapi-host", e.cfg.APIHost).
		Query(query).
		GET(ctx)
	if err != nil {
		return FollowingPage{}, err
	}

	if err := resp.ClassifyStatus(); err != nil {
		return FollowingPage{}, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return FollowingPage{}, errors.New("invalid body format")
	}

	results, err := body.GetArray("results")
	if err != nil {
		return FollowingPage{}, err
	}

	page := FollowingPage{}
	for _, result := range results {
		entry := FollowingEntry{}
		if err := mapstructure.WeakDecode(result, &entry); err != nil {
			return FollowingPage{}, err
		}

		page.Entries = append(page.Entries, entry)
	}

	if next, err := body.GetString("cursor"); err == nil {
		page.NextCursor = next
	}

	return page, nil
}

func (e *Endpoint) GetTweetsAndReplies(ctx context.Context, userID string) ([]Tweet, error) {
	resp, err := e.apiGenerator.New(e.cfg.Endpoint, "/user/tweetsandreplies").
		Header("x-rapidapi-key", e.cfg.APIKey).
		Header("x-rapidapi-host", e.cfg.APIHost).
		Query(api.Parameter{
			"user_id": userID,
			"limit":   strconv.Itoa(e.postFetchLimit),
		}).
		GET(ctx)
	if err != nil {
		return nil, err
	}

	if err := resp.ClassifyStatus(); err != nil {
		return nil, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return nil, errors.New("invalid body format")
	}

	results, err := body.GetArray("results")
	if err != nil {
		return nil, err
	}

	var tweets []Tweet
	for _, result := range results {
		tweet := Tweet{}
		if err := mapstructure.WeakDecode(result, &tweet); err != nil {
			return nil, err
		}

		tweets = append(tweets, tweet)
	}

	return tweets, nil
}

func (e *Endpoint) GetUserDetails(ctx context.Context, userID string) (User, error) {
	resp, err := e.apiGenerator.New(e.cfg.Endpoint, "/user/details").
		Header("x-rapidapi-key", e.cfg.APIKey).
		Header("x-rapidapi-host", e.cfg.APIHost).
		Query(api.Parameter{"user_id": userID}).
		GET(ctx)
	if err != nil {
		return User{}, err
	}

	if err := resp.ClassifyStatus(); err != nil {
		return User{}, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return User{}, errors.New("invalid body format")
	}

	user := User{}
	if err := mapstructure.WeakDecode(map[string]any(body), &user); err != nil {
		return User{}, err
	}

	return user, nil
}

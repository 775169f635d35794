package twitterproxy_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codexero/backend/config"
	"github.com/codexero/backend/pkg/api"
	"github.com/codexero/backend/pkg/api/twitterproxy"
	"github.com/codexero/backend/pkg/logger"
	"github.com/codexero/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return xcontext.WithLogger(context.Background(), logger.NewLogger(logger.SILENCE))
}

func newEndpoint(serverURL string) *twitterproxy.Endpoint {
	return twitterproxy.New(
		config.TwitterProxyConfigs{Endpoint: serverURL, APIKey: "key", APIHost: "host"},
		config.VerificationConfigs{FollowingPageLimit: 100, PostFetchLimit: 50},
	)
}

func Test_Endpoint_GetFollowing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/following", r.URL.Path)
		require.Equal(t, "key", r.Header.Get("x-rapidapi-key"))
		require.Equal(t, "host", r.Header.Get("x-rapidapi-host"))
		require.Equal(t, "u1", r.URL.Query().Get("user_id"))
		require.Equal(t, "100", r.URL.Query().Get("limit"))
		require.Equal(t, "c0", r.URL.Query().Get("cursor"))

		w.Write([]byte(`{
			"results": [
				{"user_id": "1", "username": "alice", "name": "Alice"},
				{"user_id": 2, "username": "bob", "name": "Bob"}
			],
			"cursor": "c1"
		}`))
	}))
	defer server.Close()

	page, err := newEndpoint(server.URL).GetFollowing(testContext(), "u1", "c0")
	require.NoError(t, err)
	require.Len(t, page.Entries, 2)
	require.Equal(t, "1", page.Entries[0].UserID)
	// Numeric ids decode weakly to strings.
	require.Equal(t, "2", page.Entries[1].UserID)
	require.Equal(t, "c1", page.NextCursor)
}

func Test_Endpoint_GetTweetsAndReplies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/tweetsandreplies", r.URL.Path)
		require.Equal(t, "50", r.URL.Query().Get("limit"))

		w.Write([]byte(`{
			"results": [
				{
					"tweet_id": "t1",
					"text": "RT @codexero: mint is live",
					"retweeted_status": {"tweet_id": "orig", "user_id": "42", "text": "mint is live"}
				},
				{"tweet_id": "t2", "text": "gm", "is_quote": true}
			]
		}`))
	}))
	defer server.Close()

	tweets, err := newEndpoint(server.URL).GetTweetsAndReplies(testContext(), "u1")
	require.NoError(t, err)
	require.Len(t, tweets, 2)
	require.NotNil(t, tweets[0].RetweetedStatus)
	require.Equal(t, "42", tweets[0].RetweetedStatus.UserID)
	require.Nil(t, tweets[1].RetweetedStatus)
	require.True(t, tweets[1].IsQuote)
}

func Test_Endpoint_ClassifiedFailures(t *testing.T) {
	status := http.StatusNotFound
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	endpoint := newEndpoint(server.URL)

	_, err := endpoint.GetUserDetails(testContext(), "u1")
	require.ErrorIs(t, err, api.ErrNotFound)

	status = http.StatusTooManyRequests
	_, err = endpoint.GetTweetsAndReplies(testContext(), "u1")
	require.ErrorIs(t, err, api.ErrRateLimited)

	status = http.StatusForbidden
	_, err = endpoint.GetFollowing(testContext(), "u1", "")
	require.ErrorIs(t, err, api.ErrAccessDenied)
}

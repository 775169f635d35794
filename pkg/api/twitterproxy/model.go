package twitterproxy

// User is a social profile returned by the proxy's /user/details endpoint.
// UserID is the only field used for equality checks against a target; the
// rest feeds display and matching heuristics.
type User struct {
	UserID      string `mapstructure:"user_id"`
	Handle      string `mapstructure:"username"`
	Name        string `mapstructure:"name"`
	Verified    bool   `mapstructure:"is_verified"`
	Followers   int    `mapstructure:"follower_count"`
	Description string `mapstructure:"description"`
}

type Tweet struct {
	TweetID string `mapstructure:"tweet_id"`
	Text    string `mapstructure:"text"`
	IsQuote bool   `mapstructure:"is_quote"`

	RetweetedStatus *RetweetedStatus `mapstructure:"retweeted_status"`
}

type RetweetedStatus struct {
	TweetID string `mapstructure:"tweet_id"`
	UserID  string `mapstructure:"user_id"`
	Text    string `mapstructure:"text"`
}

type FollowingEntry struct {
	UserID string `mapstructure:"user_id"`
	Handle string `mapstructure:"username"`
	Name   string `mapstructure:"name"`
}

// FollowingPage is one page of an account's following list. NextCursor is an
// opaque continuation token; an empty cursor means the list is exhausted.
type FollowingPage struct {
	Entries    []FollowingEntry
	NextCursor string
}

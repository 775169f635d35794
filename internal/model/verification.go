package model

type VerifyFollowRequest struct {
	TwitterUserID string `json:"twitter_user_id"`
	TargetUserID  string `json:"target_user_id"`
}

type VerifyFollowResponse struct {
	IsFollowing     bool   `json:"is_following"`
	UsedFallback    bool   `json:"used_fallback"`
	FallbackReason  string `json:"fallback_reason"`
	PagesScanned    int    `json:"pages_scanned"`
	AccountsScanned int    `json:"accounts_scanned"`
}

type VerifyPostRequest struct {
	TwitterUserID string `json:"twitter_user_id"`
	Content       string `json:"content"`
	TargetUserID  string `json:"target_user_id"`
}

type VerifyPostResponse struct {
	HasPosted      bool   `json:"has_posted"`
	UsedFallback   bool   `json:"used_fallback"`
	FallbackReason string `json:"fallback_reason"`
	MatchedTweetID string `json:"matched_tweet_id,omitempty"`
	MatchType      string `json:"match_type"`
	AttemptsMade   int    `json:"attempts_made"`
}

type VerifyProfileRequest struct {
	TwitterUserID string   `json:"twitter_user_id"`
	Sequences     []string `json:"sequences"`
}

type VerifyProfileResponse struct {
	Exists           bool     `json:"exists"`
	Verified         bool     `json:"verified"`
	MatchedSequences []string `json:"matched_sequences,omitempty"`
	UsedFallback     bool     `json:"used_fallback"`
	FallbackReason   string   `json:"fallback_reason"`
}

type VerifyTelegramRequest struct {
	TelegramUserID string `json:"telegram_user_id"`
}

type VerifyTelegramResponse struct {
	IsMember bool   `json:"is_member"`
	Status   string `json:"status"`
}

type VerifyAllRequest struct {
	TwitterUserID  string `json:"twitter_user_id"`
	TargetUserID   string `json:"target_user_id"`
	Content        string `json:"content"`
	TelegramUserID string `json:"telegram_user_id"`
}

type VerifyAllResponse struct {
	Follow   VerifyFollowResponse   `json:"follow"`
	Post     VerifyPostResponse     `json:"post"`
	Profile  VerifyProfileResponse  `json:"profile"`
	Telegram VerifyTelegramResponse `json:"telegram"`

	Completed bool `json:"completed"`
}

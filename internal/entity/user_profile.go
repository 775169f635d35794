package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type UserProfile struct {
	Base

	WalletAddress string `gorm:"uniqueIndex"`

	TwitterUserID  string
	TwitterHandle  string
	TwitterName    string
	TelegramUserID string

	FollowVerified     bool
	FollowVerifiedAt   *time.Time
	PostVerified       bool
	PostVerifiedAt     *time.Time
	ProfileVerified    bool
	ProfileVerifiedAt  *time.Time
	TelegramVerified   bool
	TelegramVerifiedAt *time.Time

	Metadata VerificationMetadata `gorm:"type:json"`
}

// VerificationMetadata is a typed, versioned record of how each verification
// step passed. It replaces the free-form metadata bag the front-end used to
// merge ad hoc; fields are merged per step, never overwritten wholesale.
type VerificationMetadata struct {
	Version int `json:"version"`

	Follow   *FollowRecord   `json:"follow,omitempty"`
	Post     *PostRecord     `json:"post,omitempty"`
	Profile  *ProfileRecord  `json:"profile,omitempty"`
	Telegram *TelegramRecord `json:"telegram,omitempty"`
}

const MetadataVersion = 1

type FollowRecord struct {
	UsedFallback    bool   `json:"used_fallback"`
	FallbackReason  string `json:"fallback_reason,omitempty"`
	PagesScanned    int    `json:"pages_scanned"`
	AccountsScanned int    `json:"accounts_scanned"`
}

type PostRecord struct {
	UsedFallback   bool   `json:"used_fallback"`
	FallbackReason string `json:"fallback_reason,omitempty"`
	MatchedTweetID string `json:"matched_tweet_id,omitempty"`
	MatchType      string `json:"match_type"`
	AttemptsMade   int    `json:"attempts_made"`
}

type ProfileRecord struct {
	UsedFallback     bool     `json:"used_fallback"`
	FallbackReason   string   `json:"fallback_reason,omitempty"`
	MatchedSequences []string `json:"matched_sequences,omitempty"`
}

type TelegramRecord struct {
	Status string `json:"status"`
}

// Merge overlays the non-nil step records of other onto m.
func (m *VerificationMetadata) Merge(other VerificationMetadata) {
	m.Version = MetadataVersion
	if other.Follow != nil {
		m.Follow = other.Follow
	}
	if other.Post != nil {
		m.Post = other.Post
	}
	if other.Profile != nil {
		m.Profile = other.Profile
	}
	if other.Telegram != nil {
		m.Telegram = other.Telegram
	}
}

func (m *VerificationMetadata) Scan(value any) error {
	switch t := value.(type) {
	case string:
		return json.Unmarshal([]byte(t), m)
	case []byte:
		return json.Unmarshal(t, m)
	case nil:
		return nil
	default:
		return fmt.Errorf("cannot scan invalid data type %T", value)
	}
}

func (m VerificationMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

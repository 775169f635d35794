package entity

import (
	"database/sql"

	"github.com/codexero/backend/pkg/enum"
)

type ReferralCreatorType string

var (
	ReferralCreatorOwner     = enum.New(ReferralCreatorType("owner"))
	ReferralCreatorNFTHolder = enum.New(ReferralCreatorType("nft_holder"))
)

// Referral binds an 8-character code to the wallet receiving referral credit.
// A code is never deleted in normal flow, only deactivated.
type Referral struct {
	Base

	Code string `gorm:"uniqueIndex"`

	// CreatorAddress receives the referral credit; CreatedByAddress generated
	// the code. They differ when a holder issues a code for someone else.
	CreatorAddress   string `gorm:"index"`
	CreatedByAddress string
	CreatorType      ReferralCreatorType

	IsActive   bool
	IsVerified bool

	VerifiedByWallet sql.NullString
	VerifiedAt       sql.NullTime
}

package entity

// ReferralVerification is an append-only log of redemption events. It is only
// ever counted, never updated.
type ReferralVerification struct {
	Base

	Code           string `gorm:"index"`
	CreatorAddress string `gorm:"index"`
	RedeemerWallet string
	TxHash         string
}

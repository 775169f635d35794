package model

import "time"

type IssueReferralRequest struct {
	TargetWallet string `json:"target_wallet"`
}

type IssueReferralResponse struct {
	Code        string `json:"code"`
	CreatorType string `json:"creator_type"`
}

type RedeemReferralRequest struct {
	Code string `json:"code"`
}

type RedeemReferralResponse struct {
	TxHash string `json:"tx_hash"`
}

type GetReferralStatusRequest struct {
	Code string `json:"code" form:"code"`
}

type GetReferralStatusResponse struct {
	IsVerified     bool       `json:"is_verified"`
	VerifiedWallet string     `json:"verified_wallet,omitempty"`
	VerifiedAt     *time.Time `json:"verified_at,omitempty"`
}

type DeactivateReferralRequest struct {
	Code string `json:"code"`
}

type DeactivateReferralResponse struct{}

type GetReferralStatsRequest struct {
	Wallet string `json:"wallet" form:"wallet"`
}

type GetReferralStatsResponse struct {
	Referrer        string `json:"referrer"`
	ReferralCount   uint64 `json:"referral_count"`
	TotalEarnings   string `json:"total_earnings"`
	IsActive        bool   `json:"is_active"`
	RedemptionCount int64  `json:"redemption_count"`
}

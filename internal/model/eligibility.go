package model

type CheckEligibilityRequest struct {
	ReferralCode string `json:"referral_code" form:"referral_code"`
}

type CheckEligibilityResponse struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason"`
	Source   string `json:"source"`
}

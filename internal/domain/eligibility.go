package domain

import (
	"context"
	"errors"

	"github.com/codexero/backend/internal/client"
	"github.com/codexero/backend/internal/model"
	"github.com/codexero/backend/internal/repository"
	"github.com/codexero/backend/pkg/errorx"
	"github.com/codexero/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	EligibilitySourceContractRule     = "contract_rule"
	EligibilitySourceReferralOverride = "referral_override"
	EligibilitySourceError            = "error"
)

type EligibilityDomain interface {
	Check(ctx context.Context, req *model.CheckEligibilityRequest) (*model.CheckEligibilityResponse, error)
}

type eligibilityDomain struct {
	referralRepo repository.ReferralRepository
	mintContract client.MintContractCaller
}

func NewEligibilityDomain(
	referralRepo repository.ReferralRepository,
	mintContract client.MintContractCaller,
) *eligibilityDomain {
	return &eligibilityDomain{referralRepo: referralRepo, mintContract: mintContract}
}

// Check decides mint eligibility for the calling wallet. A valid active
// referral code overrides the on-chain rules; without one the contract
// decides. A chain failure yields a not-eligible decision with the error as
// the reason: unlike the social checks, an eligible verdict here gates real
// value, so chain queries fail closed.
func (d *eligibilityDomain) Check(
	ctx context.Context, req *model.CheckEligibilityRequest,
) (*model.CheckEligibilityResponse, error) {
	wallet := xcontext.RequestWallet(ctx)

	if req.ReferralCode != "" {
		referral, err := d.referralRepo.GetActiveByCode(ctx, req.ReferralCode)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get referral code: %v", err)
			return nil, errorx.Unknown
		}

		// Any active code grants the override, redeemed or not. An unknown
		// or deactivated code just falls through to the contract rule.
		if referral != nil {
			reason := "valid referral code"
			if referral.IsVerified {
				reason = "redeemed referral code"
			}

			return &model.CheckEligibilityResponse{
				Eligible: true,
				Reason:   reason,
				Source:   EligibilitySourceReferralOverride,
			}, nil
		}
	}

	enabled, err := d.mintContract.MintingEnabled(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check minting state: %v", err)
		return failClosed(err), nil
	}

	if !enabled {
		return &model.CheckEligibilityResponse{
			Eligible: false,
			Reason:   "minting is disabled",
			Source:   EligibilitySourceContractRule,
		}, nil
	}

	eligible, reason, err := d.mintContract.VerifyWalletForMinting(ctx, wallet)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot verify wallet %s for minting: %v", wallet, err)
		return failClosed(err), nil
	}

	return &model.CheckEligibilityResponse{
		Eligible: eligible,
		Reason:   reason,
		Source:   EligibilitySourceContractRule,
	}, nil
}

func failClosed(err error) *model.CheckEligibilityResponse {
	return &model.CheckEligibilityResponse{
		Eligible: false,
		Reason:   err.Error(),
		Source:   EligibilitySourceError,
	}
}

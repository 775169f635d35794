package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/codexero/backend/internal/domain"
	"github.com/codexero/backend/internal/model"
	"github.com/codexero/backend/internal/repository"
	"github.com/codexero/backend/pkg/testutil"
	"github.com/codexero/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newEligibilityFixture(t *testing.T) (context.Context, *testutil.MockMintContract, domain.EligibilityDomain, domain.ReferralDomain) {
	mockCtx := testutil.MockContext(t)

	contract := newMintContract()
	contract.MintingEnabledFunc = func(ctx context.Context) (bool, error) {
		return true, nil
	}
	contract.VerifyWalletForMintingFunc = func(ctx context.Context, wallet string) (bool, string, error) {
		return false, "wallet not verified", nil
	}

	referralRepo := repository.NewReferralRepository()
	eligibilityDomain := domain.NewEligibilityDomain(referralRepo, contract)
	referralDomain := domain.NewReferralDomain(
		referralRepo, repository.NewReferralVerificationRepository(), contract, nil)

	return mockCtx, contract, eligibilityDomain, referralDomain
}

func Test_EligibilityDomain_ChainVerdict(t *testing.T) {
	mockCtx, contract, eligibilityDomain, _ := newEligibilityFixture(t)

	ctx := xcontext.WithRequestWallet(mockCtx, redeemerAddress)

	resp, err := eligibilityDomain.Check(ctx, &model.CheckEligibilityRequest{})
	require.NoError(t, err)
	require.False(t, resp.Eligible)
	require.Equal(t, domain.EligibilitySourceContractRule, resp.Source)
	require.Equal(t, "wallet not verified", resp.Reason)

	contract.VerifyWalletForMintingFunc = func(ctx context.Context, wallet string) (bool, string, error) {
		return true, "whitelisted", nil
	}

	resp, err = eligibilityDomain.Check(ctx, &model.CheckEligibilityRequest{})
	require.NoError(t, err)
	require.True(t, resp.Eligible)
	require.Equal(t, domain.EligibilitySourceContractRule, resp.Source)
}

func Test_EligibilityDomain_MintingDisabled(t *testing.T) {
	mockCtx, contract, eligibilityDomain, _ := newEligibilityFixture(t)
	contract.MintingEnabledFunc = func(ctx context.Context) (bool, error) {
		return false, nil
	}

	ctx := xcontext.WithRequestWallet(mockCtx, redeemerAddress)
	resp, err := eligibilityDomain.Check(ctx, &model.CheckEligibilityRequest{})
	require.NoError(t, err)
	require.False(t, resp.Eligible)
	require.Equal(t, "minting is disabled", resp.Reason)
	require.Equal(t, domain.EligibilitySourceContractRule, resp.Source)
}

func Test_EligibilityDomain_ReferralOverridesChain(t *testing.T) {
	mockCtx, _, eligibilityDomain, referralDomain := newEligibilityFixture(t)

	holderCtx := xcontext.WithRequestWallet(mockCtx, holderAddress)
	issued, err := referralDomain.Issue(holderCtx, &model.IssueReferralRequest{})
	require.NoError(t, err)

	// An active, not-yet-redeemed code already overrides the chain verdict.
	redeemerCtx := xcontext.WithRequestWallet(mockCtx, redeemerAddress)
	resp, err := eligibilityDomain.Check(redeemerCtx, &model.CheckEligibilityRequest{
		ReferralCode: issued.Code,
	})
	require.NoError(t, err)
	require.True(t, resp.Eligible)
	require.Equal(t, domain.EligibilitySourceReferralOverride, resp.Source)
	require.Equal(t, "valid referral code", resp.Reason)

	// So does a redeemed one.
	_, err = referralDomain.Redeem(redeemerCtx, &model.RedeemReferralRequest{Code: issued.Code})
	require.NoError(t, err)

	resp, err = eligibilityDomain.Check(redeemerCtx, &model.CheckEligibilityRequest{
		ReferralCode: issued.Code,
	})
	require.NoError(t, err)
	require.True(t, resp.Eligible)
	require.Equal(t, domain.EligibilitySourceReferralOverride, resp.Source)
	require.Equal(t, "redeemed referral code", resp.Reason)
}

func Test_EligibilityDomain_UnknownCodeFallsThroughToChain(t *testing.T) {
	mockCtx, _, eligibilityDomain, _ := newEligibilityFixture(t)

	ctx := xcontext.WithRequestWallet(mockCtx, redeemerAddress)
	resp, err := eligibilityDomain.Check(ctx, &model.CheckEligibilityRequest{
		ReferralCode: "NOSUCH00",
	})
	require.NoError(t, err)
	require.False(t, resp.Eligible)
	require.Equal(t, domain.EligibilitySourceContractRule, resp.Source)
}

func Test_EligibilityDomain_DeactivatedCodeFallsThroughToChain(t *testing.T) {
	mockCtx, _, eligibilityDomain, referralDomain := newEligibilityFixture(t)

	holderCtx := xcontext.WithRequestWallet(mockCtx, holderAddress)
	issued, err := referralDomain.Issue(holderCtx, &model.IssueReferralRequest{})
	require.NoError(t, err)

	_, err = referralDomain.Deactivate(holderCtx, &model.DeactivateReferralRequest{Code: issued.Code})
	require.NoError(t, err)

	ctx := xcontext.WithRequestWallet(mockCtx, redeemerAddress)
	resp, err := eligibilityDomain.Check(ctx, &model.CheckEligibilityRequest{
		ReferralCode: issued.Code,
	})
	require.NoError(t, err)
	require.False(t, resp.Eligible)
	require.Equal(t, domain.EligibilitySourceContractRule, resp.Source)
}

func Test_EligibilityDomain_ChainErrorFailsClosed(t *testing.T) {
	mockCtx, contract, eligibilityDomain, _ := newEligibilityFixture(t)
	contract.MintingEnabledFunc = func(ctx context.Context) (bool, error) {
		return false, errors.New("rpc timeout")
	}

	ctx := xcontext.WithRequestWallet(mockCtx, redeemerAddress)
	resp, err := eligibilityDomain.Check(ctx, &model.CheckEligibilityRequest{})
	require.NoError(t, err)
	require.False(t, resp.Eligible)
	require.Equal(t, domain.EligibilitySourceError, resp.Source)
	require.Equal(t, "rpc timeout", resp.Reason)

	contract.MintingEnabledFunc = func(ctx context.Context) (bool, error) {
		return true, nil
	}
	contract.VerifyWalletForMintingFunc = func(ctx context.Context, wallet string) (bool, string, error) {
		return false, "", errors.New("rpc timeout")
	}

	resp, err = eligibilityDomain.Check(ctx, &model.CheckEligibilityRequest{})
	require.NoError(t, err)
	require.False(t, resp.Eligible)
	require.Equal(t, domain.EligibilitySourceError, resp.Source)
	require.Equal(t, "rpc timeout", resp.Reason)
}

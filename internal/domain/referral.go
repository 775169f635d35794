package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/codexero/backend/internal/client"
	"github.com/codexero/backend/internal/entity"
	"github.com/codexero/backend/internal/model"
	"github.com/codexero/backend/internal/repository"
	"github.com/codexero/backend/pkg/crypto"
	"github.com/codexero/backend/pkg/errorx"
	"github.com/codexero/backend/pkg/xcontext"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	referralCodeLength    = 8
	maxCodeGenerateRetry  = 50
	maxActiveCodesPerUser = 1
)

type ReferralDomain interface {
	Issue(ctx context.Context, req *model.IssueReferralRequest) (*model.IssueReferralResponse, error)
	Redeem(ctx context.Context, req *model.RedeemReferralRequest) (*model.RedeemReferralResponse, error)
	GetStatus(ctx context.Context, req *model.GetReferralStatusRequest) (*model.GetReferralStatusResponse, error)
	Deactivate(ctx context.Context, req *model.DeactivateReferralRequest) (*model.DeactivateReferralResponse, error)
	GetStats(ctx context.Context, req *model.GetReferralStatsRequest) (*model.GetReferralStatsResponse, error)
}

// CodeGenerator draws a random referral code of n characters.
type CodeGenerator func(n uint) string

type referralDomain struct {
	referralRepo     repository.ReferralRepository
	verificationRepo repository.ReferralVerificationRepository
	mintContract     client.MintContractCaller
	generateRandom   CodeGenerator
}

func NewReferralDomain(
	referralRepo repository.ReferralRepository,
	verificationRepo repository.ReferralVerificationRepository,
	mintContract client.MintContractCaller,
	generateRandom CodeGenerator,
) *referralDomain {
	if generateRandom == nil {
		generateRandom = crypto.GenerateReferralCode
	}

	return &referralDomain{
		referralRepo:     referralRepo,
		verificationRepo: verificationRepo,
		mintContract:     mintContract,
		generateRandom:   generateRandom,
	}
}

func (d *referralDomain) Issue(
	ctx context.Context, req *model.IssueReferralRequest,
) (*model.IssueReferralResponse, error) {
	caller := xcontext.RequestWallet(ctx)

	creatorType, err := d.creatorTypeOf(ctx, caller)
	if err != nil {
		return nil, err
	}

	// Only the contract owner may issue a code on behalf of another wallet.
	creator := caller
	if req.TargetWallet != "" && !strings.EqualFold(req.TargetWallet, caller) {
		if creatorType != entity.ReferralCreatorOwner {
			return nil, errorx.New(errorx.PermissionDenied,
				"Only the owner can issue codes for other wallets")
		}

		if !common.IsHexAddress(req.TargetWallet) {
			return nil, errorx.New(errorx.InvalidWallet, "Invalid target wallet")
		}

		creator = req.TargetWallet
	}

	count, err := d.referralRepo.CountActiveByCreator(ctx, creator)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count active codes of %s: %v", creator, err)
		return nil, errorx.Unknown
	}

	if count >= maxActiveCodesPerUser {
		return nil, errorx.New(errorx.AlreadyExists, "This wallet already has an active code")
	}

	code, err := d.generateCode(ctx, creator)
	if err != nil {
		return nil, err
	}

	referral := &entity.Referral{
		Base:             entity.Base{ID: uuid.NewString()},
		Code:             code,
		CreatorAddress:   creator,
		CreatedByAddress: caller,
		CreatorType:      creatorType,
		IsActive:         true,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.referralRepo.Create(ctx, referral); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create referral code: %v", err)
		return nil, errorx.Unknown
	}

	// Re-check inside the transaction. Two concurrent issuers both pass the
	// pre-insert count; only one may keep its row.
	count, err = d.referralRepo.CountActiveByCreator(ctx, creator)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot recheck active codes of %s: %v", creator, err)
		return nil, errorx.Unknown
	}

	if count > maxActiveCodesPerUser {
		return nil, errorx.New(errorx.AlreadyExists, "This wallet already has an active code")
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.IssueReferralResponse{
		Code:        referral.Code,
		CreatorType: string(creatorType),
	}, nil
}

// Redeem marks a code as used by the caller. The on-chain registration goes
// first; the local ledger only flips after the transaction is mined, so a
// chain failure never leaves a burnt code behind.
func (d *referralDomain) Redeem(
	ctx context.Context, req *model.RedeemReferralRequest,
) (*model.RedeemReferralResponse, error) {
	redeemer := xcontext.RequestWallet(ctx)

	referral, err := d.referralRepo.GetActiveByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Unknown or inactive code")
		}

		xcontext.Logger(ctx).Errorf("Cannot get referral code: %v", err)
		return nil, errorx.Unknown
	}

	if referral.IsVerified {
		return nil, errorx.New(errorx.AlreadyRedeemed, "This code has already been redeemed")
	}

	if strings.EqualFold(referral.CreatorAddress, redeemer) {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot redeem your own code")
	}

	txHash, err := d.mintContract.AddVerifiedWallet(ctx, redeemer)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot register %s on chain: %v", redeemer, err)
		return nil, errorx.New(errorx.Unavailable, "Chain registration failed, please retry")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.referralRepo.MarkVerified(ctx, req.Code, redeemer, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNothingUpdated) {
			return nil, errorx.New(errorx.AlreadyRedeemed, "This code has already been redeemed")
		}

		xcontext.Logger(ctx).Errorf("Cannot mark referral code as verified: %v", err)
		return nil, errorx.Unknown
	}

	err = d.verificationRepo.Create(ctx, &entity.ReferralVerification{
		Base:           entity.Base{ID: uuid.NewString()},
		Code:           referral.Code,
		CreatorAddress: referral.CreatorAddress,
		RedeemerWallet: redeemer,
		TxHash:         txHash,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot log referral verification: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.RedeemReferralResponse{TxHash: txHash}, nil
}

func (d *referralDomain) GetStatus(
	ctx context.Context, req *model.GetReferralStatusRequest,
) (*model.GetReferralStatusResponse, error) {
	referral, err := d.referralRepo.GetActiveByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Unknown or inactive code")
		}

		xcontext.Logger(ctx).Errorf("Cannot get referral code: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetReferralStatusResponse{IsVerified: referral.IsVerified}
	if referral.VerifiedByWallet.Valid {
		resp.VerifiedWallet = referral.VerifiedByWallet.String
	}
	if referral.VerifiedAt.Valid {
		at := referral.VerifiedAt.Time
		resp.VerifiedAt = &at
	}

	return resp, nil
}

func (d *referralDomain) Deactivate(
	ctx context.Context, req *model.DeactivateReferralRequest,
) (*model.DeactivateReferralResponse, error) {
	caller := xcontext.RequestWallet(ctx)

	referral, err := d.referralRepo.GetActiveByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Unknown or inactive code")
		}

		xcontext.Logger(ctx).Errorf("Cannot get referral code: %v", err)
		return nil, errorx.Unknown
	}

	if !strings.EqualFold(referral.CreatorAddress, caller) {
		owner, err := d.mintContract.Owner(ctx)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get contract owner: %v", err)
			return nil, errorx.New(errorx.Unavailable, "Chain unavailable, please retry")
		}

		if !strings.EqualFold(owner.Hex(), caller) {
			return nil, errorx.New(errorx.PermissionDenied, "Not allowed to deactivate this code")
		}
	}

	if err := d.referralRepo.Deactivate(ctx, req.Code); err != nil {
		if errors.Is(err, repository.ErrNothingUpdated) {
			return nil, errorx.New(errorx.NotFound, "Unknown or inactive code")
		}

		xcontext.Logger(ctx).Errorf("Cannot deactivate referral code: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeactivateReferralResponse{}, nil
}

func (d *referralDomain) GetStats(
	ctx context.Context, req *model.GetReferralStatsRequest,
) (*model.GetReferralStatsResponse, error) {
	wallet := req.Wallet
	if wallet == "" {
		wallet = xcontext.RequestWallet(ctx)
	}

	if !common.IsHexAddress(wallet) {
		return nil, errorx.New(errorx.InvalidWallet, "Invalid wallet address")
	}

	data, err := d.mintContract.GetReferralData(ctx, wallet)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get referral data of %s: %v", wallet, err)
		return nil, errorx.New(errorx.Unavailable, "Chain unavailable, please retry")
	}

	redemptions, err := d.verificationRepo.CountByCreator(ctx, wallet)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count redemptions of %s: %v", wallet, err)
		return nil, errorx.Unknown
	}

	return &model.GetReferralStatsResponse{
		Referrer:        data.Referrer.Hex(),
		ReferralCount:   data.ReferralCount.Uint64(),
		TotalEarnings:   data.TotalEarnings.String(),
		IsActive:        data.IsActive,
		RedemptionCount: redemptions,
	}, nil
}

func (d *referralDomain) creatorTypeOf(
	ctx context.Context, wallet string,
) (entity.ReferralCreatorType, error) {
	owner, err := d.mintContract.Owner(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get contract owner: %v", err)
		return "", errorx.New(errorx.Unavailable, "Chain unavailable, please retry")
	}

	if strings.EqualFold(owner.Hex(), wallet) {
		return entity.ReferralCreatorOwner, nil
	}

	nfts, err := d.mintContract.GetUserNFTs(ctx, wallet)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get nfts of %s: %v", wallet, err)
		return "", errorx.New(errorx.Unavailable, "Chain unavailable, please retry")
	}

	if len(nfts) == 0 {
		return "", errorx.New(errorx.PermissionDenied,
			"Only the owner or nft holders can issue codes")
	}

	return entity.ReferralCreatorNFTHolder, nil
}

// generateCode draws random codes until one is free. After too many
// collisions it falls back to a code derived from the creator wallet and the
// current time, which cannot collide with a concurrent issuer of another
// wallet.
func (d *referralDomain) generateCode(ctx context.Context, creator string) (string, error) {
	for i := 0; i < maxCodeGenerateRetry; i++ {
		code := d.generateRandom(referralCodeLength)

		_, err := d.referralRepo.GetByCode(ctx, code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}

		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check code collision: %v", err)
			return "", errorx.Unknown
		}
	}

	xcontext.Logger(ctx).Warnf("Too many code collisions, falling back to derived code")
	return crypto.DeterministicReferralCode(creator, time.Now(), referralCodeLength), nil
}

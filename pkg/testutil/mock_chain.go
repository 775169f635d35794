package testutil

import (
	"context"
	"math/big"

	"github.com/codexero/backend/internal/client"
	"github.com/ethereum/go-ethereum/common"
)

type MockMintContract struct {
	OwnerFunc                  func(ctx context.Context) (common.Address, error)
	MintingEnabledFunc         func(ctx context.Context) (bool, error)
	GetUserNFTsFunc            func(ctx context.Context, wallet string) ([]*big.Int, error)
	CheckWalletEligibilityFunc func(ctx context.Context, wallet string) (bool, *big.Int, error)
	VerifyWalletForMintingFunc func(ctx context.Context, wallet string) (bool, string, error)
	AddVerifiedWalletFunc      func(ctx context.Context, wallet string) (string, error)
	GetReferralDataFunc        func(ctx context.Context, wallet string) (client.ReferralData, error)
}

func (c *MockMintContract) Owner(ctx context.Context) (common.Address, error) {
	if c.OwnerFunc == nil {
		panic("not implemented")
	}

	return c.OwnerFunc(ctx)
}

func (c *MockMintContract) MintingEnabled(ctx context.Context) (bool, error) {
	if c.MintingEnabledFunc == nil {
		panic("not implemented")
	}

	return c.MintingEnabledFunc(ctx)
}

func (c *MockMintContract) GetUserNFTs(ctx context.Context, wallet string) ([]*big.Int, error) {
	if c.GetUserNFTsFunc == nil {
		panic("not implemented")
	}

	return c.GetUserNFTsFunc(ctx, wallet)
}

func (c *MockMintContract) CheckWalletEligibility(
	ctx context.Context, wallet string,
) (bool, *big.Int, error) {
	if c.CheckWalletEligibilityFunc == nil {
		panic("not implemented")
	}

	return c.CheckWalletEligibilityFunc(ctx, wallet)
}

func (c *MockMintContract) VerifyWalletForMinting(
	ctx context.Context, wallet string,
) (bool, string, error) {
	if c.VerifyWalletForMintingFunc == nil {
		panic("not implemented")
	}

	return c.VerifyWalletForMintingFunc(ctx, wallet)
}

func (c *MockMintContract) AddVerifiedWallet(ctx context.Context, wallet string) (string, error) {
	if c.AddVerifiedWalletFunc == nil {
		panic("not implemented")
	}

	return c.AddVerifiedWalletFunc(ctx, wallet)
}

func (c *MockMintContract) GetReferralData(
	ctx context.Context, wallet string,
) (client.ReferralData, error) {
	if c.GetReferralDataFunc == nil {
		panic("not implemented")
	}

	return c.GetReferralDataFunc(ctx, wallet)
}

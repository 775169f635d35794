package client

import (
	"context"
	"errors"
	"math/big"
	"strings"

	"github.com/codexero/backend/config"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ABI of the minting contract, limited to the functions this service calls.
const mintContractABI = `[
	{"name":"owner","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"name":"mintingEnabled","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bool"}]},
	{"name":"getUserNFTs","type":"function","stateMutability":"view","inputs":[{"name":"wallet","type":"address"}],"outputs":[{"name":"","type":"uint256[]"}]},
	{"name":"checkWalletEligibility","type":"function","stateMutability":"view","inputs":[{"name":"wallet","type":"address"}],"outputs":[{"name":"hasNFTs","type":"bool"},{"name":"tokenBalance","type":"uint256"}]},
	{"name":"verifyWalletForMinting","type":"function","stateMutability":"view","inputs":[{"name":"wallet","type":"address"}],"outputs":[{"name":"eligible","type":"bool"},{"name":"reason","type":"string"}]},
	{"name":"addVerifiedWallet","type":"function","stateMutability":"nonpayable","inputs":[{"name":"wallet","type":"address"}],"outputs":[]},
	{"name":"getReferralData","type":"function","stateMutability":"view","inputs":[{"name":"wallet","type":"address"}],"outputs":[{"name":"referrer","type":"address"},{"name":"referralCount","type":"uint256"},{"name":"totalEarnings","type":"uint256"},{"name":"isActive","type":"bool"}]}
]`

type ReferralData struct {
	Referrer      common.Address
	ReferralCount *big.Int
	TotalEarnings *big.Int
	IsActive      bool
}

type MintContractCaller interface {
	Owner(ctx context.Context) (common.Address, error)
	MintingEnabled(ctx context.Context) (bool, error)
	GetUserNFTs(ctx context.Context, wallet string) ([]*big.Int, error)
	CheckWalletEligibility(ctx context.Context, wallet string) (bool, *big.Int, error)
	VerifyWalletForMinting(ctx context.Context, wallet string) (bool, string, error)
	AddVerifiedWallet(ctx context.Context, wallet string) (string, error)
	GetReferralData(ctx context.Context, wallet string) (ReferralData, error)
}

type mintContractCaller struct {
	client       *ethclient.Client
	contract     *bind.BoundContract
	transactOpts *bind.TransactOpts
}

func NewMintContractCaller(
	chainCfg config.ChainConfig, contractCfg config.ContractConfigs,
) (*mintContractCaller, error) {
	if len(chainCfg.Rpcs) == 0 {
		return nil, errors.New("no rpc configured")
	}

	client, err := ethclient.Dial(chainCfg.Rpcs[0])
	if err != nil {
		return nil, err
	}

	parsed, err := abi.JSON(strings.NewReader(mintContractABI))
	if err != nil {
		return nil, err
	}

	address := common.HexToAddress(contractCfg.Address)
	contract := bind.NewBoundContract(address, parsed, client, client, client)

	privateKey, err := ethcrypto.HexToECDSA(strings.TrimPrefix(contractCfg.OwnerPrivateKey, "0x"))
	if err != nil {
		return nil, err
	}

	chainID, err := client.ChainID(context.Background())
	if err != nil {
		return nil, err
	}

	transactOpts, err := bind.NewKeyedTransactorWithChainID(privateKey, chainID)
	if err != nil {
		return nil, err
	}

	return &mintContractCaller{
		client:       client,
		contract:     contract,
		transactOpts: transactOpts,
	}, nil
}

func (c *mintContractCaller) Owner(ctx context.Context) (common.Address, error) {
	var out []any
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "owner")
	if err != nil {
		return common.Address{}, err
	}

	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (c *mintContractCaller) MintingEnabled(ctx context.Context) (bool, error) {
	var out []any
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "mintingEnabled")
	if err != nil {
		return false, err
	}

	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (c *mintContractCaller) GetUserNFTs(ctx context.Context, wallet string) ([]*big.Int, error) {
	var out []any
	err := c.contract.Call(
		&bind.CallOpts{Context: ctx}, &out, "getUserNFTs", common.HexToAddress(wallet))
	if err != nil {
		return nil, err
	}

	return *abi.ConvertType(out[0], new([]*big.Int)).(*[]*big.Int), nil
}

func (c *mintContractCaller) CheckWalletEligibility(ctx context.Context, wallet string) (bool, *big.Int, error) {
	var out []any
	err := c.contract.Call(
		&bind.CallOpts{Context: ctx}, &out, "checkWalletEligibility", common.HexToAddress(wallet))
	if err != nil {
		return false, nil, err
	}

	hasNFTs := *abi.ConvertType(out[0], new(bool)).(*bool)
	tokenBalance := *abi.ConvertType(out[1], new(*big.Int)).(**big.Int)
	return hasNFTs, tokenBalance, nil
}

func (c *mintContractCaller) VerifyWalletForMinting(ctx context.Context, wallet string) (bool, string, error) {
	var out []any
	err := c.contract.Call(
		&bind.CallOpts{Context: ctx}, &out, "verifyWalletForMinting", common.HexToAddress(wallet))
	if err != nil {
		return false, "", err
	}

	eligible := *abi.ConvertType(out[0], new(bool)).(*bool)
	reason := *abi.ConvertType(out[1], new(string)).(*string)
	return eligible, reason, nil
}

// AddVerifiedWallet registers the wallet on the contract allow-list and waits
// until the transaction is mined. Callers must not record a redemption before
// this returns successfully.
func (c *mintContractCaller) AddVerifiedWallet(ctx context.Context, wallet string) (string, error) {
	opts := *c.transactOpts
	opts.Context = ctx

	tx, err := c.contract.Transact(&opts, "addVerifiedWallet", common.HexToAddress(wallet))
	if err != nil {
		return "", err
	}

	receipt, err := bind.WaitMined(ctx, c.client, tx)
	if err != nil {
		return "", err
	}

	if receipt.Status == 0 {
		return "", errors.New("addVerifiedWallet transaction reverted")
	}

	return tx.Hash().Hex(), nil
}

func (c *mintContractCaller) GetReferralData(ctx context.Context, wallet string) (ReferralData, error) {
	var out []any
	err := c.contract.Call(
		&bind.CallOpts{Context: ctx}, &out, "getReferralData", common.HexToAddress(wallet))
	if err != nil {
		return ReferralData{}, err
	}

	return ReferralData{
		Referrer:      *abi.ConvertType(out[0], new(common.Address)).(*common.Address),
		ReferralCount: *abi.ConvertType(out[1], new(*big.Int)).(**big.Int),
		TotalEarnings: *abi.ConvertType(out[2], new(*big.Int)).(**big.Int),
		IsActive:      *abi.ConvertType(out[3], new(bool)).(*bool),
	}, nil
}

package domain

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/codexero/backend/internal/model"
	"github.com/codexero/backend/pkg/crypto"
	"github.com/codexero/backend/pkg/errorx"
	"github.com/codexero/backend/pkg/xcontext"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

const loginNonceTTL = 10 * time.Minute

type AuthDomain interface {
	WalletLogin(ctx context.Context, req *model.WalletLoginRequest) (*model.WalletLoginResponse, error)
	WalletVerify(ctx context.Context, req *model.WalletVerifyRequest) (*model.WalletVerifyResponse, error)
}

type authDomain struct {
	// Fallback nonce store for deployments without redis.
	localMutex  sync.Mutex
	localNonces map[string]localNonce
}

type localNonce struct {
	nonce     string
	expiredAt time.Time
}

func NewAuthDomain() *authDomain {
	return &authDomain{localNonces: map[string]localNonce{}}
}

// WalletLogin hands out a one-time nonce the wallet must sign.
func (d *authDomain) WalletLogin(
	ctx context.Context, req *model.WalletLoginRequest,
) (*model.WalletLoginResponse, error) {
	if !common.IsHexAddress(req.Address) {
		return nil, errorx.New(errorx.InvalidWallet, "Invalid wallet address")
	}

	nonce, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate nonce: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.storeNonce(ctx, req.Address, nonce); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot store nonce: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletLoginResponse{Nonce: nonce}, nil
}

// WalletVerify checks the personal-sign signature over the nonce and issues
// an access token bound to the wallet address.
func (d *authDomain) WalletVerify(
	ctx context.Context, req *model.WalletVerifyRequest,
) (*model.WalletVerifyResponse, error) {
	if !common.IsHexAddress(req.Address) {
		return nil, errorx.New(errorx.InvalidWallet, "Invalid wallet address")
	}

	nonce, err := d.loadNonce(ctx, req.Address)
	if err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "No pending login for this wallet")
	}

	signature, err := hexutil.Decode(req.Signature)
	if err != nil || len(signature) != 65 {
		return nil, errorx.New(errorx.Unauthenticated, "Malformed signature")
	}

	// Wallets produce v as 27 or 28; go-ethereum expects 0 or 1.
	if signature[64] >= 27 {
		signature[64] -= 27
	}

	hash := accounts.TextHash([]byte(loginMessage(nonce)))
	pubkey, err := ethcrypto.SigToPub(hash, signature)
	if err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid signature")
	}

	recovered := ethcrypto.PubkeyToAddress(*pubkey)
	if !strings.EqualFold(recovered.Hex(), req.Address) {
		return nil, errorx.New(errorx.Unauthenticated, "Signature does not match wallet")
	}

	d.deleteNonce(ctx, req.Address)

	token, err := xcontext.TokenEngine(ctx).Generate(
		recovered.Hex(), model.AccessToken{Address: recovered.Hex()})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletVerifyResponse{AccessToken: token}, nil
}

func loginMessage(nonce string) string {
	return fmt.Sprintf("CodeXero login nonce: %s", nonce)
}

func nonceKey(address string) string {
	return fmt.Sprintf("login:nonce:%s", strings.ToLower(address))
}

func (d *authDomain) storeNonce(ctx context.Context, address, nonce string) error {
	if client := xcontext.RedisClient(ctx); client != nil {
		return client.Set(ctx, nonceKey(address), nonce, loginNonceTTL).Err()
	}

	d.localMutex.Lock()
	defer d.localMutex.Unlock()
	d.localNonces[nonceKey(address)] = localNonce{
		nonce:     nonce,
		expiredAt: time.Now().Add(loginNonceTTL),
	}

	return nil
}

func (d *authDomain) loadNonce(ctx context.Context, address string) (string, error) {
	if client := xcontext.RedisClient(ctx); client != nil {
		return client.Get(ctx, nonceKey(address)).Result()
	}

	d.localMutex.Lock()
	defer d.localMutex.Unlock()

	entry, ok := d.localNonces[nonceKey(address)]
	if !ok || time.Now().After(entry.expiredAt) {
		return "", fmt.Errorf("no nonce for %s", address)
	}

	return entry.nonce, nil
}

func (d *authDomain) deleteNonce(ctx context.Context, address string) {
	if client := xcontext.RedisClient(ctx); client != nil {
		client.Del(ctx, nonceKey(address))
		return
	}

	d.localMutex.Lock()
	defer d.localMutex.Unlock()
	delete(d.localNonces, nonceKey(address))
}

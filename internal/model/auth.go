package model

// AccessToken is the object embedded in JWT access tokens. The wallet address
// identifies the caller everywhere downstream.
type AccessToken struct {
	Address string `json:"address"`
}

type WalletLoginRequest struct {
	Address string `json:"address"`
}

type WalletLoginResponse struct {
	Nonce string `json:"nonce"`
}

type WalletVerifyRequest struct {
	Address   string `json:"address"`
	Signature string `json:"signature"`
}

type WalletVerifyResponse struct {
	AccessToken string `json:"access_token"`
}

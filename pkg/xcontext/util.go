package xcontext

import "context"

type (
	requestWalletKey struct{}
	accessTokenKey   struct{}
)

func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessToken returns the raw bearer token of the request, or an empty string
// if the request carried none.
func AccessToken(ctx context.Context) string {
	token := ctx.Value(accessTokenKey{})
	if token == nil {
		return ""
	}

	return token.(string)
}

func WithRequestWallet(ctx context.Context, address string) context.Context {
	return context.WithValue(ctx, requestWalletKey{}, address)
}

// RequestWallet returns the wallet address of the authenticated caller, or an
// empty string for anonymous requests.
func RequestWallet(ctx context.Context) string {
	address := ctx.Value(requestWalletKey{})
	if address == nil {
		return ""
	}

	return address.(string)
}

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReferralCode returns a random uppercase alphanumeric code of n
// characters.
func GenerateReferralCode(n uint) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = codeAlphabet[RandIntn(len(codeAlphabet))]
	}
	return string(b)
}

// DeterministicReferralCode derives a code from the target wallet and the
// current timestamp. It is the fallback when random generation keeps
// colliding with existing codes.
func DeterministicReferralCode(wallet string, at time.Time, n uint) string {
	h := sha3.Sum256([]byte(fmt.Sprintf("%s:%d", strings.ToLower(wallet), at.UnixNano())))

	b := make([]byte, n)
	for i := range b {
		b[i] = codeAlphabet[int(h[i])%len(codeAlphabet)]
	}
	return string(b)
}

func GenerateRandomString() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

func SHA256(b []byte) string {
	hashed := sha256.Sum256(b)
	return base64.StdEncoding.EncodeToString(hashed[:])
}

// RandIntn returns a uniform random value in [0, n). It panics if got a
// non-positive parameter.
func RandIntn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}

package util

import (
	"crypto/rand"
	"math/big"
)

const keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	// PrefixLength is the fixed length of the public key prefix stored in
	// clear and used for lookup.
	PrefixLength = 8
	secretLength = 16
)

// GenerateToken returns a fresh API-key prefix and secret. The full key
// handed to the user is "prefix.secret"; only a bcrypt hash of it is kept at
// rest.
func GenerateToken() (string, string, error) {
	prefix, err := randomKeyPart(PrefixLength)
	if err != nil {
		return "", "", err
	}
	secret, err := randomKeyPart(secretLength)
	if err != nil {
		return "", "", err
	}
	return prefix, secret, nil
}

func randomKeyPart(n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(keyAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = keyAlphabet[idx.Int64()]
	}
	return string(out), nil
}

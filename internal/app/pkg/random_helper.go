package pkg

import (
	"crypto/rand"
	"math/big"
)

const digits = "0123456789"

func randomFrom(alphabet string, n int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b), nil
}

// RandomNumberString is used for OTP codes, so it draws from crypto/rand.
func RandomNumberString(n int) (string, error) {
	return randomFrom(digits, n)
}

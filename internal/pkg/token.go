package pkg

import (
	cryptoRand "crypto/rand"
	"encoding/hex"
)

// RandHexToken returns n random bytes hex-encoded (2n characters).
func RandHexToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := cryptoRand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

package utils

import (
	"crypto/rand"
	"math/big"
)

const tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomNumericString generates a random string containing only digits.
func RandomNumericString(length int) string {
	const digits = "0123456789"
	b := make([]byte, length)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			panic(err)
		}
		b[i] = digits[num.Int64()]
	}
	return string(b)
}

// RandomToken generates an opaque alphanumeric token of the given length.
func RandomToken(length int) string {
	b := make([]byte, length)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(tokenCharset))))
		if err != nil {
			panic(err)
		}
		b[i] = tokenCharset[num.Int64()]
	}
	return string(b)
}

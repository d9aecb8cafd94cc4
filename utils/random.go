package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const orderNumberCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomString returns n characters from an unambiguous
// uppercase alphanumeric alphabet.
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(orderNumberCharset)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			b[i] = orderNumberCharset[0]
			continue
		}
		b[i] = orderNumberCharset[idx.Int64()]
	}
	return string(b)
}

// GenerateOrderNumber builds a human-readable unique order identifier,
// e.g. ORD-20250131-K7XQ2M.
func GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), GenerateRandomString(6))
}

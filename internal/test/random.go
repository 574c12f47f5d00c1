package test

import (
	"math/rand/v2"
	"strings"
)

const keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_"

// RandomKey returns a pseudo-random idempotency key of exactly n characters.
func RandomKey(n int) string {
	if n <= 0 {
		n = 1
	}
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(keyAlphabet[rand.IntN(len(keyAlphabet))])
	}
	return b.String()
}

// RandomCustomer returns a short pseudo-random customer name.
func RandomCustomer() string {
	return "customer-" + RandomKey(6+rand.IntN(6))
}

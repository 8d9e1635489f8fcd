package test

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

const lowerAlnum = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomName returns a lowercase token of n characters, at least one.
func RandomName(n int) string {
	if n <= 0 {
		n = 1
	}
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(lowerAlnum[randomIntn(len(lowerAlnum))])
	}
	return b.String()
}

// RandomEmail returns a unique-looking address for signup tests.
func RandomEmail() string {
	return fmt.Sprintf("%s@%s.test", RandomName(8), RandomName(5))
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}

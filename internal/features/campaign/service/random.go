package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// RandomnessSource supplies the entropy for winner selection. The engine is
// deliberately independent of the provider: tests inject a deterministic
// stub, production wires a verifiable source (block hash or CSPRNG).
type RandomnessSource interface {
	// Draw returns a uniform value in [0, n). n must be positive.
	Draw(n int64) (int64, error)
	// Marker identifies the entropy snapshot used, recorded on the
	// campaign for audit.
	Marker() uint64
}

// CryptoSource draws from crypto/rand.
type CryptoSource struct{}

func (CryptoSource) Draw(n int64) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("draw bound must be positive, got %d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0, fmt.Errorf("failed to generate random number: %w", err)
	}
	return v.Int64(), nil
}

func (CryptoSource) Marker() uint64 {
	return uint64(time.Now().Unix())
}

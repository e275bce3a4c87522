package ethereum

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// BlockhashSource derives winner-selection entropy from the chain head at
// the moment the source is created. Draws re-hash the block hash with a
// counter, so one snapshot can feed any number of draws while staying
// reproducible from the recorded block number.
type BlockhashSource struct {
	mu      sync.Mutex
	seed    common.Hash
	counter uint64
	block   uint64
}

func NewBlockhashSource(ctx context.Context, client *Client) (*BlockhashSource, error) {
	header, err := client.eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain head: %w", err)
	}
	return &BlockhashSource{
		seed:  header.Hash(),
		block: header.Number.Uint64(),
	}, nil
}

func (s *BlockhashSource) Draw(n int64) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("draw bound must be positive, got %d", n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var counterBytes [8]byte
	binary.BigEndian.PutUint64(counterBytes[:], s.counter)
	s.counter++

	h := crypto.Keccak256(s.seed[:], counterBytes[:])
	return new(big.Int).Mod(new(big.Int).SetBytes(h), big.NewInt(n)).Int64(), nil
}

func (s *BlockhashSource) Marker() uint64 {
	return s.block
}

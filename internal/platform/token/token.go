package token

import (
	"context"
	"errors"
)

var (
	ErrInsufficientBalance   = errors.New("insufficient token balance")
	ErrInsufficientAllowance = errors.New("insufficient token allowance")
)

// Token is the minimal fungible-token surface the engine depends on. The
// engine never assumes a specific token implementation beyond these calls;
// burning may be native or a transfer to an irrecoverable address, whichever
// the implementation supports.
type Token interface {
	// Address identifies the token contract. Used to protect the primary
	// staking token from the recovery escape hatch.
	Address() string
	TransferFrom(ctx context.Context, from, to string, amount int64) error
	Transfer(ctx context.Context, from, to string, amount int64) error
	BalanceOf(ctx context.Context, owner string) (int64, error)
	Approve(ctx context.Context, owner, spender string, amount int64) error
	// Burn permanently destroys amount held by owner.
	Burn(ctx context.Context, owner string, amount int64) error
}

// Resolver looks up a Token by its contract address. Needed by the recovery
// path, which moves tokens that were accidentally sent to custody.
type Resolver interface {
	Resolve(address string) (Token, error)
}

package token

import (
	"context"
	"fmt"
	"sync"
)

// MemoryToken is an in-process fungible-token ledger implementing Token.
// It backs tests and tokenless development runs; balances and allowances
// follow ERC20 semantics.
type MemoryToken struct {
	mu         sync.Mutex
	address    string
	balances   map[string]int64
	allowances map[string]map[string]int64
	burned     int64
}

func NewMemoryToken(address string) *MemoryToken {
	return &MemoryToken{
		address:    address,
		balances:   make(map[string]int64),
		allowances: make(map[string]map[string]int64),
	}
}

func (t *MemoryToken) Address() string { return t.address }

// Mint credits owner with amount. Test/dev helper, not part of Token.
func (t *MemoryToken) Mint(owner string, amount int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[owner] += amount
}

// TotalBurned reports the cumulative destroyed supply.
func (t *MemoryToken) TotalBurned() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.burned
}

func (t *MemoryToken) BalanceOf(_ context.Context, owner string) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[owner], nil
}

func (t *MemoryToken) Approve(_ context.Context, owner, spender string, amount int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.allowances[owner]
	if !ok {
		m = make(map[string]int64)
		t.allowances[owner] = m
	}
	m[spender] = amount
	return nil
}

// TransferFrom moves amount from `from` to `to` against the allowance the
// owner granted to `to` (the engine custody acts as its own spender).
func (t *MemoryToken) TransferFrom(_ context.Context, from, to string, amount int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	allowed := t.allowances[from][to]
	if allowed < amount {
		return fmt.Errorf("%w: %s allowed %d to %s, need %d", ErrInsufficientAllowance, from, allowed, to, amount)
	}
	if t.balances[from] < amount {
		return fmt.Errorf("%w: %s holds %d, need %d", ErrInsufficientBalance, from, t.balances[from], amount)
	}
	t.allowances[from][to] -= amount
	t.balances[from] -= amount
	t.balances[to] += amount
	return nil
}

func (t *MemoryToken) Transfer(_ context.Context, from, to string, amount int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.balances[from] < amount {
		return fmt.Errorf("%w: %s holds %d, need %d", ErrInsufficientBalance, from, t.balances[from], amount)
	}
	t.balances[from] -= amount
	t.balances[to] += amount
	return nil
}

func (t *MemoryToken) Burn(_ context.Context, owner string, amount int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.balances[owner] < amount {
		return fmt.Errorf("%w: %s holds %d, need %d", ErrInsufficientBalance, owner, t.balances[owner], amount)
	}
	t.balances[owner] -= amount
	t.burned += amount
	return nil
}

// MemoryResolver resolves token addresses against a fixed set of in-memory
// tokens.
type MemoryResolver struct {
	mu     sync.Mutex
	tokens map[string]*MemoryToken
}

func NewMemoryResolver(tokens ...*MemoryToken) *MemoryResolver {
	r := &MemoryResolver{tokens: make(map[string]*MemoryToken)}
	for _, t := range tokens {
		r.tokens[t.Address()] = t
	}
	return r
}

func (r *MemoryResolver) Add(t *MemoryToken) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[t.Address()] = t
}

func (r *MemoryResolver) Resolve(address string) (Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[address]
	if !ok {
		return nil, fmt.Errorf("unknown token %s", address)
	}
	return t, nil
}

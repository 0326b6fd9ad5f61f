package memory

import (
	"context"
	"strings"
	"sync"

	domainerrors "agora/contexts/governance/stake-ledger/domain/errors"
)

// TokenGateway is an in-process asset service used for dev and test wiring
// while runtime integration with the real asset transport is finalized. It
// mirrors the external contract: transfers either fully apply or fail.
type TokenGateway struct {
	mu       sync.Mutex
	balances map[string]uint64
	treasury string
}

func NewTokenGateway(treasury string) *TokenGateway {
	return &TokenGateway{
		balances: make(map[string]uint64),
		treasury: strings.TrimSpace(treasury),
	}
}

// Mint seeds an account with asset units.
func (g *TokenGateway) Mint(account string, amount uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.balances[strings.TrimSpace(account)] += amount
}

func (g *TokenGateway) BalanceOf(account string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.balances[strings.TrimSpace(account)]
}

func (g *TokenGateway) TransferFrom(_ context.Context, from string, to string, amount uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if g.balances[from] < amount {
		return domainerrors.ErrTransferFailed
	}
	g.balances[from] -= amount
	g.balances[to] += amount
	return nil
}

func (g *TokenGateway) Transfer(ctx context.Context, to string, amount uint64) error {
	return g.TransferFrom(ctx, g.treasury, to, amount)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stakeburn-backend/internal/features/campaign/models"
	"stakeburn-backend/internal/platform/token"
)

const (
	ownerWallet    = "wallet-owner"
	adminWallet    = "wallet-admin"
	operatorWallet = "wallet-operator"
	custodyWallet  = "wallet-custody"
)

// stubSource replays a fixed sequence of draws, reduced modulo the bound.
type stubSource struct {
	draws []int64
	i     int
}

func (s *stubSource) Draw(n int64) (int64, error) {
	v := s.draws[s.i%len(s.draws)]
	s.i++
	return v % n, nil
}

func (s *stubSource) Marker() uint64 { return 42 }

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type testEnv struct {
	t      *testing.T
	engine *campaignEngine
	token  *token.MemoryToken
	clock  *manualClock
	ctx    context.Context
}

func newTestEnv(t *testing.T, draws ...int64) *testEnv {
	t.Helper()
	if len(draws) == 0 {
		draws = []int64{0}
	}

	tok := token.NewMemoryToken("memory:staking")
	eng := NewCampaignEngine(Deps{
		OwnerWallet:   ownerWallet,
		CustodyWallet: custodyWallet,
		MinLeadTime:   15 * time.Minute,
		Token:         tok,
		Resolver:      token.NewMemoryResolver(tok),
		Randomness:    &stubSource{draws: draws},
	}).(*campaignEngine)

	clock := &manualClock{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}
	eng.now = clock.Now

	ctx := context.Background()
	require.NoError(t, eng.GrantRole(ctx, ownerWallet, adminWallet, models.CapabilityAdmin))
	require.NoError(t, eng.GrantRole(ctx, ownerWallet, operatorWallet, models.CapabilityOperator))

	return &testEnv{t: t, engine: eng, token: tok, clock: clock, ctx: ctx}
}

// createCampaign adds a campaign starting one hour from now and running a
// day, with the scenario caps from the ledger contract.
func (env *testEnv) createCampaign(prizeCount int) int64 {
	env.t.Helper()
	prizes := make([]models.Prize, prizeCount)
	for i := range prizes {
		prizes[i] = models.Prize{Name: "prize"}
	}
	id, err := env.engine.CreateCampaign(env.ctx, adminWallet, &models.CampaignCreate{
		Name:         "launch burn",
		SoftCap:      1000,
		HardCap:      10000,
		TicketAmount: 100,
		StartDate:    env.clock.Now().Add(time.Hour),
		EndDate:      env.clock.Now().Add(25 * time.Hour),
		Prizes:       prizes,
	})
	require.NoError(env.t, err)
	return id
}

// activeCampaign creates a campaign and advances the clock to its start.
func (env *testEnv) activeCampaign(prizeCount int) int64 {
	env.t.Helper()
	id := env.createCampaign(prizeCount)
	env.clock.Advance(time.Hour)
	require.NoError(env.t, env.engine.ActivateCampaign(env.ctx, adminWallet, id))
	return id
}

// stake funds the wallet, approves custody and stakes.
func (env *testEnv) stake(id int64, wallet string, amount int64) *models.Participant {
	env.t.Helper()
	env.token.Mint(wallet, amount)
	require.NoError(env.t, env.token.Approve(env.ctx, wallet, custodyWallet, amount))
	p, err := env.engine.StakeTokens(env.ctx, wallet, id, amount)
	require.NoError(env.t, err)
	return p
}

// finishedCampaign runs a campaign to the finished state with the given
// stakes already accepted.
func (env *testEnv) finishCampaign(id int64) {
	env.t.Helper()
	env.clock.Advance(25 * time.Hour)
	require.NoError(env.t, env.engine.CloseCampaign(env.ctx, adminWallet, id))
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stakeburn-backend/internal/features/campaign/models"
)

func TestBurnTokens(t *testing.T) {
	env := newTestEnv(t)
	id := env.activeCampaign(0)
	env.stake(id, "wallet-x", 700)
	env.stake(id, "wallet-y", 300)
	env.finishCampaign(id)

	amount, err := env.engine.BurnTokens(env.ctx, adminWallet, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), amount)

	c, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusBurned, c.Status)
	assert.Equal(t, int64(1000), c.TotalBurned)
	assert.True(t, c.TokensAreBurned)

	// Custody no longer holds the pool and the supply is destroyed.
	balance, err := env.token.BalanceOf(env.ctx, custodyWallet)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
	assert.Equal(t, int64(1000), env.token.TotalBurned())
}

// The idempotence guarantee: a second burn changes nothing and fails
// with AlreadyDone.
func TestBurnTokensTwiceFails(t *testing.T) {
	env := newTestEnv(t)
	id := env.activeCampaign(0)
	env.stake(id, "wallet-x", 500)
	env.finishCampaign(id)

	_, err := env.engine.BurnTokens(env.ctx, adminWallet, id)
	require.NoError(t, err)

	_, err = env.engine.BurnTokens(env.ctx, adminWallet, id)
	assert.ErrorIs(t, err, models.ErrAlreadyDone)

	c, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.Equal(t, int64(500), c.TotalBurned)
	assert.Equal(t, int64(500), env.token.TotalBurned())
}

func TestBurnRequiresFinished(t *testing.T) {
	env := newTestEnv(t)

	pending := env.createCampaign(0)
	_, err := env.engine.BurnTokens(env.ctx, adminWallet, pending)
	assert.ErrorIs(t, err, models.ErrInvalidState)

	active := env.activeCampaign(0)
	_, err = env.engine.BurnTokens(env.ctx, adminWallet, active)
	assert.ErrorIs(t, err, models.ErrInvalidState)
}

// Zero-prize campaigns burn without a selection step; an empty pool burns
// a zero amount without touching the token.
func TestBurnWithoutSelection(t *testing.T) {
	env := newTestEnv(t)
	id := env.activeCampaign(0)
	env.stake(id, "wallet-x", 200)
	env.finishCampaign(id)

	amount, err := env.engine.BurnTokens(env.ctx, operatorWallet, id)
	require.NoError(t, err)
	assert.Equal(t, int64(200), amount)

	c, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.False(t, c.WinnersSelected)
}

func TestBurnEmptyCampaign(t *testing.T) {
	env := newTestEnv(t)
	id := env.activeCampaign(0)
	env.finishCampaign(id)

	amount, err := env.engine.BurnTokens(env.ctx, adminWallet, id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), amount)
	assert.Equal(t, int64(0), env.token.TotalBurned())
}

func TestBurnUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	id := env.activeCampaign(0)
	env.finishCampaign(id)

	_, err := env.engine.BurnTokens(env.ctx, "wallet-random", id)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestBurnBlockedWhileEnginePaused(t *testing.T) {
	env := newTestEnv(t)
	id := env.activeCampaign(0)
	env.stake(id, "wallet-x", 100)
	env.finishCampaign(id)

	require.NoError(t, env.engine.EmergencyPause(env.ctx, ownerWallet))
	_, err := env.engine.BurnTokens(env.ctx, adminWallet, id)
	assert.ErrorIs(t, err, models.ErrEnginePaused)
}

// Selection still works after burn attempts fail, and burn works after
// selection: the two operations are independent gates on finished.
func TestSelectThenBurn(t *testing.T) {
	env := newTestEnv(t, 0)
	id := env.activeCampaign(1)
	env.stake(id, "wallet-x", 300)
	require.NoError(t, env.engine.ConfirmSocialTasks(env.ctx, operatorWallet, id, "wallet-x"))
	env.finishCampaign(id)

	winners, err := env.engine.SelectWinners(env.ctx, adminWallet, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"wallet-x"}, winners)

	amount, err := env.engine.BurnTokens(env.ctx, adminWallet, id)
	require.NoError(t, err)
	assert.Equal(t, int64(300), amount)

	// Winners survive the burn transition.
	c, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.Equal(t, winners, c.Winners)
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stakeburn-backend/internal/features/campaign/models"
)

// seeds a finished campaign with three eligible stakers holding 1, 3 and
// 6 tickets respectively.
func finishedWithEligiblePool(env *testEnv) int64 {
	id := env.activeCampaign(3)
	env.stake(id, "wallet-x", 100)
	env.stake(id, "wallet-y", 300)
	env.stake(id, "wallet-z", 600)
	for _, w := range []string{"wallet-x", "wallet-y", "wallet-z"} {
		require.NoError(env.t, env.engine.ConfirmSocialTasks(env.ctx, operatorWallet, id, w))
	}
	env.finishCampaign(id)
	return id
}

func TestSelectWinnersDeterministicDraws(t *testing.T) {
	// Draw 0 always lands in the first unselected bucket.
	env := newTestEnv(t, 0)
	id := finishedWithEligiblePool(env)

	winners, err := env.engine.SelectWinners(env.ctx, adminWallet, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"wallet-x", "wallet-y", "wallet-z"}, winners)

	c, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.Equal(t, winners, c.Winners)
	assert.True(t, c.WinnersSelected)
	assert.Equal(t, uint64(42), c.SelectionMarker)
}

func TestSelectWinnersWeightedByTickets(t *testing.T) {
	// Total weight is 10; a draw of 9 lands in the last bucket.
	env := newTestEnv(t, 9)
	id := finishedWithEligiblePool(env)

	winners, err := env.engine.SelectWinners(env.ctx, adminWallet, id)
	require.NoError(t, err)
	require.NotEmpty(t, winners)
	assert.Equal(t, "wallet-z", winners[0], "heaviest bucket takes a high draw")
}

func TestSelectWinnersProperties(t *testing.T) {
	env := newTestEnv(t, 3, 1, 4, 1, 5)
	id := finishedWithEligiblePool(env)

	winners, err := env.engine.SelectWinners(env.ctx, adminWallet, id)
	require.NoError(t, err)

	c, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(winners), len(c.Prizes))

	seen := make(map[string]bool)
	for _, w := range winners {
		assert.False(t, seen[w], "duplicate winner %s", w)
		seen[w] = true

		eligible, err := env.engine.IsEligibleForWinning(id, w)
		require.NoError(t, err)
		assert.True(t, eligible)
	}
}

func TestSelectWinnersExcludesIneligible(t *testing.T) {
	env := newTestEnv(t, 0, 0, 0)
	id := env.activeCampaign(3)
	env.stake(id, "wallet-x", 500)
	env.stake(id, "wallet-y", 500)
	// Only y completed the social tasks.
	require.NoError(t, env.engine.ConfirmSocialTasks(env.ctx, operatorWallet, id, "wallet-y"))
	env.finishCampaign(id)

	winners, err := env.engine.SelectWinners(env.ctx, adminWallet, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"wallet-y"}, winners)
}

// Scenario D: zero eligible participants is a successful empty selection,
// and the attempt is consumed.
func TestSelectWinnersEmptyPool(t *testing.T) {
	env := newTestEnv(t)
	id := env.activeCampaign(2)
	env.stake(id, "wallet-x", 500)
	env.finishCampaign(id)

	winners, err := env.engine.SelectWinners(env.ctx, adminWallet, id)
	require.NoError(t, err)
	assert.Empty(t, winners)

	_, err = env.engine.SelectWinners(env.ctx, adminWallet, id)
	assert.ErrorIs(t, err, models.ErrAlreadyDone)
}

func TestSelectWinnersTwiceFails(t *testing.T) {
	env := newTestEnv(t, 0)
	id := finishedWithEligiblePool(env)

	first, err := env.engine.SelectWinners(env.ctx, adminWallet, id)
	require.NoError(t, err)

	_, err = env.engine.SelectWinners(env.ctx, adminWallet, id)
	assert.ErrorIs(t, err, models.ErrAlreadyDone)

	c, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.Equal(t, first, c.Winners)
}

func TestSelectWinnersRequiresFinished(t *testing.T) {
	env := newTestEnv(t)
	id := env.activeCampaign(1)

	_, err := env.engine.SelectWinners(env.ctx, adminWallet, id)
	assert.ErrorIs(t, err, models.ErrInvalidState)
}

func TestSelectWinnersUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	id := env.activeCampaign(1)
	env.finishCampaign(id)

	_, err := env.engine.SelectWinners(env.ctx, "wallet-random", id)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestSelectWinnersSkipsZeroTicketEligibles(t *testing.T) {
	env := newTestEnv(t, 0, 0, 0, 0)
	id := env.activeCampaign(4)
	// Below the ticket price: eligible but zero weight.
	env.stake(id, "wallet-w", 50)
	env.stake(id, "wallet-x", 100)
	for _, w := range []string{"wallet-w", "wallet-x"} {
		require.NoError(t, env.engine.ConfirmSocialTasks(env.ctx, operatorWallet, id, w))
	}
	env.finishCampaign(id)

	winners, err := env.engine.SelectWinners(env.ctx, adminWallet, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"wallet-x"}, winners, "zero-ticket stakes never win")
}

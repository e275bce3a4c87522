package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stakeburn-backend/internal/features/campaign/models"
)

func validCreate(env *testEnv) *models.CampaignCreate {
	return &models.CampaignCreate{
		Name:         "burn week",
		SoftCap:      1000,
		HardCap:      10000,
		TicketAmount: 100,
		StartDate:    env.clock.Now().Add(time.Hour),
		EndDate:      env.clock.Now().Add(25 * time.Hour),
	}
}

func TestCreateCampaign(t *testing.T) {
	env := newTestEnv(t)

	id, err := env.engine.CreateCampaign(env.ctx, adminWallet, validCreate(env))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	c, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusPending, c.Status)
	assert.Equal(t, int64(0), c.CurrentAmount)
	assert.Equal(t, int64(0), c.ParticipantCount)
	assert.False(t, c.TokensAreBurned)
	assert.Empty(t, c.Winners)
}

func TestCreateCampaignSequentialIDs(t *testing.T) {
	env := newTestEnv(t)

	for want := int64(1); want <= 3; want++ {
		id, err := env.engine.CreateCampaign(env.ctx, adminWallet, validCreate(env))
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
	assert.Equal(t, int64(3), env.engine.GetCampaignCount())
}

func TestCreateCampaignZeroPrizesIsLegal(t *testing.T) {
	env := newTestEnv(t)

	input := validCreate(env)
	input.Prizes = nil
	_, err := env.engine.CreateCampaign(env.ctx, operatorWallet, input)
	require.NoError(t, err)
}

func TestCreateCampaignValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		mutate func(*models.CampaignCreate)
	}{
		{"empty name", func(in *models.CampaignCreate) { in.Name = "" }},
		{"zero soft cap", func(in *models.CampaignCreate) { in.SoftCap = 0 }},
		{"hard cap below soft cap", func(in *models.CampaignCreate) { in.HardCap = in.SoftCap - 1 }},
		{"hard cap equals soft cap", func(in *models.CampaignCreate) { in.HardCap = in.SoftCap }},
		{"zero ticket amount", func(in *models.CampaignCreate) { in.TicketAmount = 0 }},
		{"start inside lead time", func(in *models.CampaignCreate) { in.StartDate = env.clock.Now().Add(10 * time.Minute) }},
		{"end before start", func(in *models.CampaignCreate) { in.EndDate = in.StartDate.Add(-time.Minute) }},
		{"end equals start", func(in *models.CampaignCreate) { in.EndDate = in.StartDate }},
		{"unnamed prize", func(in *models.CampaignCreate) { in.Prizes = []models.Prize{{}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreate(env)
			tt.mutate(input)
			_, err := env.engine.CreateCampaign(env.ctx, adminWallet, input)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
	assert.Equal(t, int64(0), env.engine.GetCampaignCount())
}

func TestCreateCampaignUnauthorized(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.engine.CreateCampaign(env.ctx, "wallet-random", validCreate(env))
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	assert.Equal(t, int64(0), env.engine.GetCampaignCount())
}

func TestCreateCampaignPrizePlacesFollowOrder(t *testing.T) {
	env := newTestEnv(t)

	input := validCreate(env)
	input.Prizes = []models.Prize{{Name: "first"}, {Name: "second"}, {Name: "third"}}
	id, err := env.engine.CreateCampaign(env.ctx, adminWallet, input)
	require.NoError(t, err)

	c, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	require.Len(t, c.Prizes, 3)
	for i, p := range c.Prizes {
		assert.Equal(t, i+1, p.Place)
	}
}

func TestGetCampaignNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.engine.GetCampaign(99)
	assert.ErrorIs(t, err, models.ErrCampaignNotFound)
}

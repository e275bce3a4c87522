package service

import (
	"context"
	"fmt"

	"stakeburn-backend/internal/common/logger"
	"stakeburn-backend/internal/features/campaign/models"
)

// BurnTokens destroys the entire custodial balance of a finished campaign.
// This is the single point of permanent value destruction: the
// TokensAreBurned flag makes a second call fail regardless of status, and
// winner selection is not a prerequisite, so zero-prize campaigns burn
// without ever selecting.
func (e *campaignEngine) BurnTokens(ctx context.Context, caller string, id int64) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireCapability(caller, models.CapabilityOperator); err != nil {
		return 0, err
	}
	if err := e.requireRunning(); err != nil {
		return 0, err
	}
	c, err := e.campaign(id)
	if err != nil {
		return 0, err
	}
	if c.TokensAreBurned {
		return 0, fmt.Errorf("%w: campaign %d already burned %d", models.ErrAlreadyDone, id, c.TotalBurned)
	}
	if c.Status != models.CampaignStatusFinished {
		return 0, fmt.Errorf("%w: campaign %d is %s, burn requires finished", models.ErrInvalidState, id, c.Status)
	}
	if err := e.acquire(id); err != nil {
		return 0, err
	}
	defer e.release(id)

	amount := c.CurrentAmount
	prevStatus := c.Status
	c.TotalBurned = amount
	c.TokensAreBurned = true
	c.Status = models.CampaignStatusBurned
	c.UpdatedAt = e.now()

	if amount > 0 {
		if err := e.token.Burn(ctx, e.custody, amount); err != nil {
			c.TotalBurned = 0
			c.TokensAreBurned = false
			c.Status = prevStatus
			return 0, fmt.Errorf("token burn failed: %w", err)
		}
	}

	logger.Info().
		Int64("campaign_id", id).
		Int64("amount", amount).
		Msg("Campaign pool burned")

	e.mirrorCampaign(ctx, c)
	e.emit(ctx, models.NewEvent(models.EventTokensBurned, id, c.UpdatedAt).
		WithInt("amount", amount).
		With("burned_by", caller))

	return amount, nil
}

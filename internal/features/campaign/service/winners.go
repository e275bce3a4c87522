package service

import (
	"context"
	"fmt"

	"stakeburn-backend/internal/common/logger"
	"stakeburn-backend/internal/features/campaign/models"
)

// SelectWinners draws up to min(len(prizes), len(eligible)) distinct
// winners, weighted by ticket count, from the injected randomness source.
// Selection happens at most once per campaign: an empty eligible pool
// yields zero winners but still consumes the attempt.
func (e *campaignEngine) SelectWinners(ctx context.Context, caller string, id int64) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireCapability(caller, models.CapabilityOperator); err != nil {
		return nil, err
	}
	if err := e.requireRunning(); err != nil {
		return nil, err
	}
	c, err := e.campaign(id)
	if err != nil {
		return nil, err
	}
	if c.WinnersSelected {
		return nil, fmt.Errorf("%w: winners already selected for campaign %d", models.ErrAlreadyDone, id)
	}
	if c.Status != models.CampaignStatusFinished {
		return nil, fmt.Errorf("%w: campaign %d is %s, selection requires finished", models.ErrInvalidState, id, c.Status)
	}

	// Eligible pool in stake order, so draws are reproducible for a
	// given randomness source.
	type entry struct {
		wallet string
		weight int64
	}
	var pool []entry
	for _, wallet := range e.stakeOrder[id] {
		p := e.participants[id][wallet]
		if p.Eligible() {
			pool = append(pool, entry{wallet: wallet, weight: p.TicketCount})
		}
	}

	maxWinners := len(c.Prizes)
	if len(pool) < maxWinners {
		maxWinners = len(pool)
	}

	winners := make([]string, 0, maxWinners)
	selected := make(map[string]bool)
	for place := 1; place <= maxWinners; place++ {
		var totalWeight int64
		for _, en := range pool {
			if !selected[en.wallet] {
				totalWeight += en.weight
			}
		}
		if totalWeight == 0 {
			break
		}

		draw, err := e.rng.Draw(totalWeight)
		if err != nil {
			return nil, fmt.Errorf("randomness source failed: %w", err)
		}

		var cumulative int64
		for _, en := range pool {
			if selected[en.wallet] {
				continue
			}
			cumulative += en.weight
			if draw < cumulative {
				winners = append(winners, en.wallet)
				selected[en.wallet] = true
				break
			}
		}
	}

	now := e.now()
	c.Winners = winners
	c.WinnersSelected = true
	c.SelectionMarker = e.rng.Marker()
	c.UpdatedAt = now

	logger.Info().
		Int64("campaign_id", id).
		Int("eligible", len(pool)).
		Int("winners", len(winners)).
		Uint64("selection_marker", c.SelectionMarker).
		Msg("Winners selected")

	e.mirrorCampaign(ctx, c)
	e.emit(ctx, models.NewEvent(models.EventWinnersSelected, id, now).
		WithList("winners", winners).
		With("selected_by", caller))

	return append([]string(nil), winners...), nil
}

package service

import (
	"context"
	"fmt"

	"stakeburn-backend/internal/common/logger"
	"stakeburn-backend/internal/features/campaign/models"
)

// StakeTokens pulls amount from the caller's wallet into custody and
// credits the stake. All preconditions, including the hard-cap check, run
// before the token transfer so a doomed call never touches the token.
// Ledger effects are applied before the transfer and undone if it fails,
// leaving no observable trace of a failed call.
func (e *campaignEngine) StakeTokens(ctx context.Context, caller string, id int64, amount int64) (*models.Participant, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireRunning(); err != nil {
		return nil, err
	}
	c, err := e.campaign(id)
	if err != nil {
		return nil, err
	}
	now := e.now()
	if c.Status != models.CampaignStatusActive {
		return nil, fmt.Errorf("%w: campaign %d is %s, staking requires active", models.ErrInvalidState, id, c.Status)
	}
	if now.Before(c.StartDate) || !now.Before(c.EndDate) {
		return nil, fmt.Errorf("%w: campaign %d staking window is [%s, %s)", models.ErrInvalidState, id, c.StartDate, c.EndDate)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: stake amount must be positive", models.ErrValidation)
	}
	if c.CurrentAmount+amount > c.HardCap {
		return nil, fmt.Errorf("%w: %d staked + %d requested > hard cap %d", models.ErrCapacityExceeded, c.CurrentAmount, amount, c.HardCap)
	}
	if err := e.acquire(id); err != nil {
		return nil, err
	}
	defer e.release(id)

	// Effects before the external call.
	p, isNew := e.participants[id][caller], false
	if p == nil {
		isNew = true
		p = &models.Participant{
			CampaignID: id,
			Wallet:     caller,
			JoinedAt:   now,
		}
		e.participants[id][caller] = p
		e.stakeOrder[id] = append(e.stakeOrder[id], caller)
		c.ParticipantCount++
	}
	prevStaked := p.StakedAmount
	p.StakedAmount += amount
	p.RecomputeTickets(c.TicketAmount)
	c.CurrentAmount += amount
	c.UpdatedAt = now

	if err := e.token.TransferFrom(ctx, caller, e.custody, amount); err != nil {
		// Undo every effect of this call.
		c.CurrentAmount -= amount
		if isNew {
			delete(e.participants[id], caller)
			e.stakeOrder[id] = e.stakeOrder[id][:len(e.stakeOrder[id])-1]
			c.ParticipantCount--
		} else {
			p.StakedAmount = prevStaked
			p.RecomputeTickets(c.TicketAmount)
		}
		return nil, fmt.Errorf("token transfer failed: %w", err)
	}

	logger.Info().
		Int64("campaign_id", id).
		Str("wallet", caller).
		Int64("amount", amount).
		Int64("tickets", p.TicketCount).
		Msg("Stake accepted")

	e.mirrorCampaign(ctx, c)
	e.mirrorParticipant(ctx, p)
	e.emit(ctx, models.NewEvent(models.EventUserStaked, id, now).
		With("wallet", caller).
		WithInt("amount", amount).
		WithInt("tickets", p.TicketCount))

	return p.Clone(), nil
}

// ConfirmSocialTasks marks a staker as having completed the off-chain
// engagement gates. Confirming twice is a no-op, not an error.
func (e *campaignEngine) ConfirmSocialTasks(ctx context.Context, caller string, id int64, wallet string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireCapability(caller, models.CapabilityOperator); err != nil {
		return err
	}
	if err := e.requireRunning(); err != nil {
		return err
	}
	if _, err := e.campaign(id); err != nil {
		return err
	}
	p, ok := e.participants[id][wallet]
	if !ok {
		return fmt.Errorf("%w: %s in campaign %d", models.ErrParticipantNotFound, wallet, id)
	}
	if p.HasCompletedSocial {
		return nil
	}
	p.HasCompletedSocial = true

	e.mirrorParticipant(ctx, p)
	e.emit(ctx, models.NewEvent(models.EventSocialTasksCompleted, id, e.now()).
		With("wallet", wallet).
		With("confirmed_by", caller))
	return nil
}

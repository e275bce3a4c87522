package service

import (
	"context"
	"fmt"

	"stakeburn-backend/internal/common/logger"
	"stakeburn-backend/internal/features/campaign/models"
)

// EmergencyPause engages the global circuit breaker. While engaged every
// campaign-mutating entry point fails with ErrEnginePaused; emergency and
// role-management calls stay available so the pause can be lifted.
func (e *campaignEngine) EmergencyPause(ctx context.Context, caller string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireCapability(caller, models.CapabilityAdmin); err != nil {
		return err
	}
	if e.paused {
		return nil
	}
	e.paused = true
	logger.Warn().Str("by", caller).Msg("Engine paused")
	e.emit(ctx, models.NewEvent(models.EventEnginePaused, 0, e.now()).With("by", caller))
	return nil
}

func (e *campaignEngine) EmergencyUnpause(ctx context.Context, caller string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireCapability(caller, models.CapabilityAdmin); err != nil {
		return err
	}
	if !e.paused {
		return nil
	}
	e.paused = false
	logger.Warn().Str("by", caller).Msg("Engine resumed")
	e.emit(ctx, models.NewEvent(models.EventEngineResumed, 0, e.now()).With("by", caller))
	return nil
}

// EmergencyTerminateCampaign shuts a campaign down from any non-terminal
// state. With refund, every participant gets their full stake back from
// custody before the campaign is marked terminated. Refunds are recorded
// incrementally: each successful transfer marks the participant refunded
// and deducts their stake from the pool before the next one starts, so a
// mid-loop failure leaves ledger and custody in agreement and a retried
// termination resumes with the remaining participants.
func (e *campaignEngine) EmergencyTerminateCampaign(ctx context.Context, caller string, id int64, refund bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireCapability(caller, models.CapabilityAdmin); err != nil {
		return err
	}
	c, err := e.campaign(id)
	if err != nil {
		return err
	}
	if c.Status.IsTerminal() {
		return fmt.Errorf("%w: campaign %d is already %s", models.ErrAlreadyDone, id, c.Status)
	}
	if err := e.acquire(id); err != nil {
		return err
	}
	defer e.release(id)

	now := e.now()
	refunded := int64(0)
	if refund {
		for _, wallet := range e.stakeOrder[id] {
			p := e.participants[id][wallet]
			if p.StakedAmount == 0 || p.Refunded {
				continue
			}
			if err := e.token.Transfer(ctx, e.custody, wallet, p.StakedAmount); err != nil {
				// Refunds already sent stay recorded; the caller retries
				// the termination and the loop picks up here.
				c.UpdatedAt = now
				e.mirrorCampaign(ctx, c)
				logger.Error().Err(err).
					Int64("campaign_id", id).
					Str("wallet", wallet).
					Int64("refunded", refunded).
					Msg("Refund transfer failed, termination aborted")
				return fmt.Errorf("refund to %s failed: %w", wallet, err)
			}
			p.Refunded = true
			c.CurrentAmount -= p.StakedAmount
			refunded += p.StakedAmount
			e.mirrorParticipant(ctx, p)
		}
	}

	prev := c.Status
	c.Status = models.CampaignStatusTerminated
	c.UpdatedAt = now

	logger.Warn().
		Int64("campaign_id", id).
		Str("from", string(prev)).
		Bool("refund", refund).
		Int64("refunded", refunded).
		Msg("Campaign terminated")

	e.mirrorCampaign(ctx, c)
	e.emit(ctx, models.NewEvent(models.EventCampaignTerminated, id, now).
		With("by", caller).
		With("refund", fmt.Sprintf("%t", refund)).
		WithInt("refunded", refunded))
	return nil
}

// EmergencyRecoverTokens moves tokens that were accidentally sent to
// custody. The primary staking token is refused outright so this escape
// hatch can never drain legitimate stakes.
func (e *campaignEngine) EmergencyRecoverTokens(ctx context.Context, caller string, tokenAddress, to string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireCapability(caller, models.CapabilityOwner); err != nil {
		return err
	}
	if tokenAddress == e.token.Address() {
		return models.ErrProtectedToken
	}
	if to == "" {
		return fmt.Errorf("%w: recovery destination must not be empty", models.ErrValidation)
	}
	if e.resolver == nil {
		return fmt.Errorf("%w: no token resolver configured", models.ErrValidation)
	}
	stray, err := e.resolver.Resolve(tokenAddress)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	balance, err := stray.BalanceOf(ctx, e.custody)
	if err != nil {
		return fmt.Errorf("balance lookup failed: %w", err)
	}
	if balance > 0 {
		if err := stray.Transfer(ctx, e.custody, to, balance); err != nil {
			return fmt.Errorf("recovery transfer failed: %w", err)
		}
	}

	logger.Warn().
		Str("token", tokenAddress).
		Str("to", to).
		Int64("amount", balance).
		Msg("Stray tokens recovered")

	e.emit(ctx, models.NewEvent(models.EventTokensRecovered, 0, e.now()).
		With("token", tokenAddress).
		With("to", to).
		WithInt("amount", balance))
	return nil
}

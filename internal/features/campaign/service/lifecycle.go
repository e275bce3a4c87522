package service

import (
	"context"
	"fmt"

	"stakeburn-backend/internal/common/logger"
	"stakeburn-backend/internal/features/campaign/models"
)

// transition applies a guarded status change. The guard receives the
// record with e.mu held; returning an error leaves the record untouched.
func (e *campaignEngine) transition(
	ctx context.Context,
	caller string,
	id int64,
	from, to models.CampaignStatus,
	eventType models.EventType,
	guard func(c *models.Campaign) error,
) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireCapability(caller, models.CapabilityOperator); err != nil {
		return err
	}
	if err := e.requireRunning(); err != nil {
		return err
	}
	c, err := e.campaign(id)
	if err != nil {
		return err
	}
	if c.Status != from {
		return fmt.Errorf("%w: campaign %d is %s, expected %s", models.ErrInvalidState, id, c.Status, from)
	}
	if guard != nil {
		if err := guard(c); err != nil {
			return err
		}
	}

	now := e.now()
	c.Status = to
	c.UpdatedAt = now

	logger.Info().
		Int64("campaign_id", id).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("Campaign status changed")

	e.mirrorCampaign(ctx, c)
	e.emit(ctx, models.NewEvent(eventType, id, now).With("by", caller))
	return nil
}

// ActivateCampaign opens staking once the start date has passed.
func (e *campaignEngine) ActivateCampaign(ctx context.Context, caller string, id int64) error {
	return e.transition(ctx, caller, id,
		models.CampaignStatusPending, models.CampaignStatusActive,
		models.EventCampaignActivated,
		func(c *models.Campaign) error {
			if e.now().Before(c.StartDate) {
				return fmt.Errorf("%w: campaign %d starts at %s", models.ErrInvalidState, id, c.StartDate)
			}
			return nil
		})
}

// PauseCampaign halts staking without affecting read access.
func (e *campaignEngine) PauseCampaign(ctx context.Context, caller string, id int64) error {
	return e.transition(ctx, caller, id,
		models.CampaignStatusActive, models.CampaignStatusPaused,
		models.EventCampaignPaused, nil)
}

func (e *campaignEngine) ResumeCampaign(ctx context.Context, caller string, id int64) error {
	return e.transition(ctx, caller, id,
		models.CampaignStatusPaused, models.CampaignStatusActive,
		models.EventCampaignResumed, nil)
}

// CloseCampaign moves an active campaign past its end date into the
// finished state, where selection and burn become possible.
func (e *campaignEngine) CloseCampaign(ctx context.Context, caller string, id int64) error {
	return e.transition(ctx, caller, id,
		models.CampaignStatusActive, models.CampaignStatusFinished,
		models.EventCampaignClosed,
		func(c *models.Campaign) error {
			if e.now().Before(c.EndDate) {
				return fmt.Errorf("%w: campaign %d ends at %s", models.ErrInvalidState, id, c.EndDate)
			}
			return nil
		})
}

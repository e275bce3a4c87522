package service

import (
	"context"
	"fmt"

	"stakeburn-backend/internal/common/logger"
	"stakeburn-backend/internal/features/campaign/models"
)

// CreateCampaign validates the parameters, allocates the next sequential id
// and stores the record with status pending. Ids are never reused; the
// arena is append-only.
func (e *campaignEngine) CreateCampaign(ctx context.Context, caller string, input *models.CampaignCreate) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireCapability(caller, models.CapabilityOperator); err != nil {
		return 0, err
	}
	if err := e.requireRunning(); err != nil {
		return 0, err
	}

	now := e.now()
	switch {
	case input.Name == "":
		return 0, fmt.Errorf("%w: name must not be empty", models.ErrValidation)
	case input.SoftCap <= 0:
		return 0, fmt.Errorf("%w: soft cap must be positive", models.ErrValidation)
	case input.HardCap <= input.SoftCap:
		return 0, fmt.Errorf("%w: hard cap %d must exceed soft cap %d", models.ErrValidation, input.HardCap, input.SoftCap)
	case input.TicketAmount <= 0:
		return 0, fmt.Errorf("%w: ticket amount must be positive", models.ErrValidation)
	case input.StartDate.Before(now.Add(e.minLead)):
		return 0, fmt.Errorf("%w: start date must be at least %s from now", models.ErrValidation, e.minLead)
	case !input.EndDate.After(input.StartDate):
		return 0, fmt.Errorf("%w: end date must be after start date", models.ErrValidation)
	}
	for i, p := range input.Prizes {
		if p.Name == "" {
			return 0, fmt.Errorf("%w: prize %d has no name", models.ErrValidation, i+1)
		}
	}

	prizes := make([]models.Prize, len(input.Prizes))
	copy(prizes, input.Prizes)
	for i := range prizes {
		prizes[i].Place = i + 1
	}

	c := &models.Campaign{
		ID:           int64(len(e.campaigns)) + 1,
		Name:         input.Name,
		Description:  input.Description,
		ImageURL:     input.ImageURL,
		SoftCap:      input.SoftCap,
		HardCap:      input.HardCap,
		TicketAmount: input.TicketAmount,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Prizes:       prizes,
		Status:       models.CampaignStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	e.campaigns = append(e.campaigns, c)
	e.participants[c.ID] = make(map[string]*models.Participant)

	logger.Info().
		Int64("campaign_id", c.ID).
		Str("name", c.Name).
		Int64("hard_cap", c.HardCap).
		Int("prizes", len(c.Prizes)).
		Msg("Campaign created")

	e.mirrorCampaign(ctx, c)
	e.emit(ctx, models.NewEvent(models.EventCampaignCreated, c.ID, now).
		With("name", c.Name).
		WithInt("soft_cap", c.SoftCap).
		WithInt("hard_cap", c.HardCap).
		WithInt("ticket_amount", c.TicketAmount).
		With("created_by", caller))

	return c.ID, nil
}

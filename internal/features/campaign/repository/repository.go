package repository

import (
	"context"

	"stakeburn-backend/internal/features/campaign/models"
)

// CampaignMirror receives engine state and events for off-chain consumers.
// The ledger arena in the engine is authoritative; the mirror is a
// best-effort projection and must never be read back to make decisions.
type CampaignMirror interface {
	SaveCampaign(ctx context.Context, c *models.Campaign) error
	SaveParticipant(ctx context.Context, p *models.Participant) error
	Publish(ctx context.Context, ev *models.Event) error
}

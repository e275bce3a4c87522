package service

import (
	"context"

	"stakeburn-backend/internal/features/campaign/models"
)

// CampaignService is the full engine surface. Mutating calls are atomic:
// they either apply completely or leave the ledger untouched, and every
// precondition failure returns one of the sentinel errors from the models
// package.
type CampaignService interface {
	// Registry
	CreateCampaign(ctx context.Context, caller string, input *models.CampaignCreate) (int64, error)

	// Lifecycle
	ActivateCampaign(ctx context.Context, caller string, id int64) error
	PauseCampaign(ctx context.Context, caller string, id int64) error
	ResumeCampaign(ctx context.Context, caller string, id int64) error
	CloseCampaign(ctx context.Context, caller string, id int64) error

	// Staking ledger
	StakeTokens(ctx context.Context, caller string, id int64, amount int64) (*models.Participant, error)
	ConfirmSocialTasks(ctx context.Context, caller string, id int64, wallet string) error

	// Winner selection and burn
	SelectWinners(ctx context.Context, caller string, id int64) ([]string, error)
	BurnTokens(ctx context.Context, caller string, id int64) (int64, error)

	// Emergency controls
	EmergencyPause(ctx context.Context, caller string) error
	EmergencyUnpause(ctx context.Context, caller string) error
	EmergencyTerminateCampaign(ctx context.Context, caller string, id int64, refund bool) error
	EmergencyRecoverTokens(ctx context.Context, caller string, tokenAddress, to string) error

	// Role management
	GrantRole(ctx context.Context, caller string, wallet string, capability models.Capability) error
	RevokeRole(ctx context.Context, caller string, wallet string) error
	RoleOf(wallet string) models.Capability

	// Reads
	GetCampaign(id int64) (*models.Campaign, error)
	GetParticipant(id int64, wallet string) (*models.Participant, error)
	GetCampaignCount() int64
	GetCampaignsByStatus(status models.CampaignStatus) []*models.Campaign
	GetTicketCount(id int64, wallet string) (int64, error)
	IsEligibleForWinning(id int64, wallet string) (bool, error)
}

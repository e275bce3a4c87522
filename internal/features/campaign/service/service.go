package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"stakeburn-backend/internal/common/logger"
	"stakeburn-backend/internal/features/campaign/models"
	"stakeburn-backend/internal/features/campaign/repository"
	"stakeburn-backend/internal/platform/token"
)

// campaignEngine is the ledger and state machine behind CampaignService.
//
// All state lives in an in-process arena: campaigns indexed by sequential
// id, participants keyed by (campaign, wallet). A single mutex serializes
// every entry point, which gives each call the strict total order and
// all-or-nothing semantics the ledger contract requires. External token
// calls happen after internal bookkeeping; if the token call fails, the
// bookkeeping applied by that call is undone before returning.
type campaignEngine struct {
	mu sync.Mutex

	owner   string
	custody string
	minLead time.Duration

	roles map[string]models.Capability

	campaigns    []*models.Campaign
	participants map[int64]map[string]*models.Participant
	stakeOrder   map[int64][]string

	// busy is the per-campaign reentrancy guard around the three
	// fund-moving operations.
	busy map[int64]bool

	paused bool

	token    token.Token
	resolver token.Resolver
	rng      RandomnessSource
	mirror   repository.CampaignMirror

	now func() time.Time
}

// Deps bundles the collaborators of the engine.
type Deps struct {
	// OwnerWallet is the single distinguished Owner identity.
	OwnerWallet string
	// CustodyWallet is the account that holds staked tokens.
	CustodyWallet string
	// MinLeadTime is the minimum gap between creation and start date.
	MinLeadTime time.Duration
	Token       token.Token
	Resolver    token.Resolver
	Randomness  RandomnessSource
	// Mirror may be nil; mirroring is then skipped.
	Mirror repository.CampaignMirror
}

func NewCampaignEngine(deps Deps) CampaignService {
	e := &campaignEngine{
		owner:        deps.OwnerWallet,
		custody:      deps.CustodyWallet,
		minLead:      deps.MinLeadTime,
		roles:        make(map[string]models.Capability),
		participants: make(map[int64]map[string]*models.Participant),
		stakeOrder:   make(map[int64][]string),
		busy:         make(map[int64]bool),
		token:        deps.Token,
		resolver:     deps.Resolver,
		rng:          deps.Randomness,
		mirror:       deps.Mirror,
		now:          time.Now,
	}
	if e.rng == nil {
		e.rng = CryptoSource{}
	}
	return e
}

// campaign returns the arena record for id. Callers hold e.mu.
func (e *campaignEngine) campaign(id int64) (*models.Campaign, error) {
	if id < 1 || id > int64(len(e.campaigns)) {
		return nil, fmt.Errorf("%w: id %d", models.ErrCampaignNotFound, id)
	}
	return e.campaigns[id-1], nil
}

// acquire sets the per-campaign busy flag for a fund-moving operation.
// Callers hold e.mu, so the flag can only be observed set if a collaborator
// re-entered the engine mid-operation.
func (e *campaignEngine) acquire(id int64) error {
	if e.busy[id] {
		return models.ErrReentrantCall
	}
	e.busy[id] = true
	return nil
}

func (e *campaignEngine) release(id int64) {
	delete(e.busy, id)
}

// emit publishes an event to the mirror. Mirroring is best effort: a
// failure is logged and never aborts the engine call that produced it.
func (e *campaignEngine) emit(ctx context.Context, ev *models.Event) {
	logger.Debug().
		Str("event", string(ev.Type)).
		Int64("campaign_id", ev.CampaignID).
		Msg("Engine event")
	if e.mirror == nil {
		return
	}
	if err := e.mirror.Publish(ctx, ev); err != nil {
		logger.Error().Err(err).Str("event", string(ev.Type)).Msg("Failed to publish event")
	}
}

func (e *campaignEngine) mirrorCampaign(ctx context.Context, c *models.Campaign) {
	if e.mirror == nil {
		return
	}
	if err := e.mirror.SaveCampaign(ctx, c.Clone()); err != nil {
		logger.Error().Err(err).Int64("campaign_id", c.ID).Msg("Failed to mirror campaign")
	}
}

func (e *campaignEngine) mirrorParticipant(ctx context.Context, p *models.Participant) {
	if e.mirror == nil {
		return
	}
	if err := e.mirror.SaveParticipant(ctx, p.Clone()); err != nil {
		logger.Error().Err(err).Int64("campaign_id", p.CampaignID).Str("wallet", p.Wallet).
			Msg("Failed to mirror participant")
	}
}

func (e *campaignEngine) GetCampaign(id int64) (*models.Campaign, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, err := e.campaign(id)
	if err != nil {
		return nil, err
	}
	return c.Clone(), nil
}

func (e *campaignEngine) GetParticipant(id int64, wallet string) (*models.Participant, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.campaign(id); err != nil {
		return nil, err
	}
	p, ok := e.participants[id][wallet]
	if !ok {
		return nil, fmt.Errorf("%w: %s in campaign %d", models.ErrParticipantNotFound, wallet, id)
	}
	return p.Clone(), nil
}

func (e *campaignEngine) GetCampaignCount() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return int64(len(e.campaigns))
}

func (e *campaignEngine) GetCampaignsByStatus(status models.CampaignStatus) []*models.Campaign {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*models.Campaign, 0)
	for _, c := range e.campaigns {
		if c.Status == status {
			out = append(out, c.Clone())
		}
	}
	return out
}

func (e *campaignEngine) GetTicketCount(id int64, wallet string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.campaign(id); err != nil {
		return 0, err
	}
	p, ok := e.participants[id][wallet]
	if !ok {
		return 0, nil
	}
	return p.TicketCount, nil
}

func (e *campaignEngine) IsEligibleForWinning(id int64, wallet string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.campaign(id); err != nil {
		return false, err
	}
	p, ok := e.participants[id][wallet]
	if !ok {
		return false, nil
	}
	return p.Eligible(), nil
}

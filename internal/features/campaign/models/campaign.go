package models

import "time"

// CampaignStatus represents the lifecycle state of a campaign
type CampaignStatus string

const (
	CampaignStatusPending    CampaignStatus = "pending"    // Created, staking not yet open
	CampaignStatusActive     CampaignStatus = "active"     // Accepting stakes
	CampaignStatusPaused     CampaignStatus = "paused"     // Staking halted, reads still allowed
	CampaignStatusFinished   CampaignStatus = "finished"   // Past end date, awaiting selection/burn
	CampaignStatusBurned     CampaignStatus = "burned"     // Staked pool destroyed (terminal)
	CampaignStatusTerminated CampaignStatus = "terminated" // Emergency shutdown (terminal)
)

// IsTerminal reports whether no further lifecycle transition is possible.
func (s CampaignStatus) IsTerminal() bool {
	return s == CampaignStatusBurned || s == CampaignStatusTerminated
}

// Valid reports whether s is a known status value.
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusPending, CampaignStatusActive, CampaignStatusPaused,
		CampaignStatusFinished, CampaignStatusBurned, CampaignStatusTerminated:
		return true
	}
	return false
}

// Prize represents a single prize slot. Prize order is fixed at creation;
// the first selected winner takes the first prize and so on.
type Prize struct {
	Place       int    `json:"place"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Campaign represents a time-boxed stake-and-burn cycle.
// Records are append-only: a campaign is never deleted, it only advances
// through statuses until a terminal one.
type Campaign struct {
	ID               int64          `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description,omitempty"`
	ImageURL         string         `json:"image_url,omitempty"`
	SoftCap          int64          `json:"soft_cap"`
	HardCap          int64          `json:"hard_cap"`
	TicketAmount     int64          `json:"ticket_amount"`
	CurrentAmount    int64          `json:"current_amount"`
	StartDate        time.Time      `json:"start_date"`
	EndDate          time.Time      `json:"end_date"`
	ParticipantCount int64          `json:"participant_count"`
	Prizes           []Prize        `json:"prizes"`
	Winners          []string       `json:"winners,omitempty"`
	Status           CampaignStatus `json:"status"`
	TotalBurned      int64          `json:"total_burned"`
	TokensAreBurned  bool           `json:"tokens_are_burned"`
	WinnersSelected  bool           `json:"winners_selected"`
	SelectionMarker  uint64         `json:"winner_selection_block,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// Clone returns a deep copy so read endpoints never hand out a pointer
// into the ledger arena.
func (c *Campaign) Clone() *Campaign {
	cp := *c
	cp.Prizes = append([]Prize(nil), c.Prizes...)
	cp.Winners = append([]string(nil), c.Winners...)
	return &cp
}

// CampaignCreate represents data for creating a new campaign
type CampaignCreate struct {
	Name         string    `json:"name" binding:"required"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	SoftCap      int64     `json:"soft_cap" binding:"required"`
	HardCap      int64     `json:"hard_cap" binding:"required"`
	TicketAmount int64     `json:"ticket_amount" binding:"required"`
	StartDate    time.Time `json:"start_date" binding:"required"`
	EndDate      time.Time `json:"end_date" binding:"required"`
	Prizes       []Prize   `json:"prizes"`
}

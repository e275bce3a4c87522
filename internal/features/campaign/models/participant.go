package models

import "time"

// Participant represents per-campaign stake accounting for a single wallet.
// A record is created on the wallet's first stake and never deleted, even
// after the campaign burns, so it stays available as an audit trail.
type Participant struct {
	CampaignID         int64     `json:"campaign_id"`
	Wallet             string    `json:"wallet"`
	StakedAmount       int64     `json:"staked_amount"`
	TicketCount        int64     `json:"ticket_count"`
	HasCompletedSocial bool      `json:"has_completed_social"`
	Refunded           bool      `json:"refunded,omitempty"`
	JoinedAt           time.Time `json:"joined_at"`
}

// RecomputeTickets rederives the ticket count from the staked amount.
// TicketCount is never mutated independently.
func (p *Participant) RecomputeTickets(ticketAmount int64) {
	p.TicketCount = p.StakedAmount / ticketAmount
}

// Eligible reports whether the participant can be drawn as a winner.
func (p *Participant) Eligible() bool {
	return p.StakedAmount > 0 && p.HasCompletedSocial
}

// Clone returns a copy for read endpoints.
func (p *Participant) Clone() *Participant {
	cp := *p
	return &cp
}

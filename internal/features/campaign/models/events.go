package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventType identifies an engine event for the off-chain mirror.
type EventType string

const (
	EventCampaignCreated      EventType = "campaign_created"
	EventCampaignActivated    EventType = "campaign_activated"
	EventCampaignPaused       EventType = "campaign_paused"
	EventCampaignResumed      EventType = "campaign_resumed"
	EventCampaignClosed       EventType = "campaign_closed"
	EventUserStaked           EventType = "user_staked"
	EventSocialTasksCompleted EventType = "social_tasks_completed"
	EventWinnersSelected      EventType = "winners_selected"
	EventTokensBurned         EventType = "tokens_burned"
	EventCampaignTerminated   EventType = "campaign_terminated"
	EventEnginePaused         EventType = "engine_paused"
	EventEngineResumed        EventType = "engine_resumed"
	EventRoleGranted          EventType = "role_granted"
	EventRoleRevoked          EventType = "role_revoked"
	EventTokensRecovered      EventType = "tokens_recovered"
)

// Event is the envelope pushed to the event stream. Events are the sole
// channel the off-chain backend consumes; everything it needs to mirror a
// state change rides in Data.
type Event struct {
	ID         string            `json:"id"`
	Type       EventType         `json:"type"`
	CampaignID int64             `json:"campaign_id,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
	Data       map[string]string `json:"data,omitempty"`
}

// NewEvent builds an event envelope with a fresh id.
func NewEvent(t EventType, campaignID int64, now time.Time) *Event {
	return &Event{
		ID:         uuid.New().String(),
		Type:       t,
		CampaignID: campaignID,
		Timestamp:  now,
		Data:       make(map[string]string),
	}
}

func (e *Event) With(key, value string) *Event {
	e.Data[key] = value
	return e
}

func (e *Event) WithInt(key string, value int64) *Event {
	e.Data[key] = strconv.FormatInt(value, 10)
	return e
}

func (e *Event) WithList(key string, values []string) *Event {
	e.Data[key] = strings.Join(values, ",")
	return e
}

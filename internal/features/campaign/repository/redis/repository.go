package redis

import (
	"context"
	"encoding/json"
	"fmt"

	go_redis "github.com/redis/go-redis/v9"

	"stakeburn-backend/internal/features/campaign/models"
	"stakeburn-backend/internal/features/campaign/repository"
	"stakeburn-backend/internal/platform/redis"
)

const (
	keyPrefixCampaign    = "campaign:"
	keyPrefixByStatus    = "campaigns:status:"
	keyCampaignCount     = "campaigns:count"
	keyEventStream       = "campaign:events"
	eventStreamMaxLength = 100000
)

// mirror projects engine state into Redis for the off-chain backend:
// campaign and participant records as JSON keys, status membership as
// sets, and every event appended to a capped stream.
type mirror struct {
	client *redis.Client
}

func NewCampaignMirror(client *redis.Client) repository.CampaignMirror {
	return &mirror{client: client}
}

func makeCampaignKey(id int64) string {
	return fmt.Sprintf("%s%d", keyPrefixCampaign, id)
}

func makeParticipantKey(id int64, wallet string) string {
	return fmt.Sprintf("%s%d:participant:%s", keyPrefixCampaign, id, wallet)
}

func makeStatusKey(status models.CampaignStatus) string {
	return keyPrefixByStatus + string(status)
}

func (m *mirror) SaveCampaign(ctx context.Context, c *models.Campaign) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal campaign: %w", err)
	}

	pipe := m.client.Pipeline()
	pipe.Set(ctx, makeCampaignKey(c.ID), data, 0)
	for _, status := range []models.CampaignStatus{
		models.CampaignStatusPending, models.CampaignStatusActive,
		models.CampaignStatusPaused, models.CampaignStatusFinished,
		models.CampaignStatusBurned, models.CampaignStatusTerminated,
	} {
		if status == c.Status {
			pipe.SAdd(ctx, makeStatusKey(status), c.ID)
		} else {
			pipe.SRem(ctx, makeStatusKey(status), c.ID)
		}
	}
	// Ids are sequential, so the count is the highest id seen.
	pipe.Set(ctx, keyCampaignCount, c.ID, 0)

	_, err = pipe.Exec(ctx)
	return err
}

func (m *mirror) SaveParticipant(ctx context.Context, p *models.Participant) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal participant: %w", err)
	}
	return m.client.Set(ctx, makeParticipantKey(p.CampaignID, p.Wallet), data, 0).Err()
}

func (m *mirror) Publish(ctx context.Context, ev *models.Event) error {
	values := map[string]interface{}{
		"id":          ev.ID,
		"type":        string(ev.Type),
		"campaign_id": ev.CampaignID,
		"timestamp":   ev.Timestamp.UnixNano(),
	}
	for k, v := range ev.Data {
		values["data_"+k] = v
	}

	return m.client.XAdd(ctx, &go_redis.XAddArgs{
		Stream: keyEventStream,
		MaxLen: eventStreamMaxLength,
		Approx: true,
		Values: values,
	}).Err()
}

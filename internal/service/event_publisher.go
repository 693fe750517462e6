package service

import (
	"context"
	"encoding/json"
	"quiz_assessment_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
)

const EventResultSubmitted = "result.submitted"

// SubmissionEvent 答卷提交事件，发布到 Redis 频道
type SubmissionEvent struct {
	Type            string    `json:"type"`
	ResultID        string    `json:"result_id"`
	ProjectID       uint      `json:"project_id"`
	ParticipantName string    `json:"participant_name"`
	Period          string    `json:"period"`
	Percentage      float64   `json:"percentage"`
	CompletedAt     time.Time `json:"completed_at"`
}

// EventPublisher Client 为 nil 时不发布
type EventPublisher struct {
	Client  *redis.Client
	Channel string
}

func NewEventPublisher(rdb *redis.Client, channel string) *EventPublisher {
	return &EventPublisher{Client: rdb, Channel: channel}
}

func (p *EventPublisher) Enabled() bool {
	return p != nil && p.Client != nil
}

func (p *EventPublisher) PublishSubmitted(ctx context.Context, r *model.Result) error {
	if !p.Enabled() {
		return nil
	}

	payload, err := json.Marshal(SubmissionEvent{
		Type:            EventResultSubmitted,
		ResultID:        r.ID,
		ProjectID:       r.ProjectID,
		ParticipantName: r.ParticipantName,
		Period:          r.Period,
		Percentage:      r.Percentage,
		CompletedAt:     r.CompletedAt,
	})
	if err != nil {
		return err
	}
	return p.Client.Publish(ctx, p.Channel, payload).Err()
}

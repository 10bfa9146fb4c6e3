package services

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"learnhub/logger"
)

const (
	EventAssessmentCreated = "assessment.created"
	EventAssessmentUpdated = "assessment.updated"
	EventAssessmentDeleted = "assessment.deleted"
)

// Event describes a committed change to an assessment. Events are
// advisory: consumers must not treat them as the system of record.
type Event struct {
	Type         string    `json:"type"`
	AssessmentID uint      `json:"assessment_id"`
	CourseID     uint      `json:"course_id"`
	ActorID      uint      `json:"actor_id"`
	At           time.Time `json:"at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisPublisher fans assessment change events out over a redis pub/sub
// channel.
type RedisPublisher struct {
	rdb     *goredis.Client
	channel string
	log     *logger.Logger
}

func NewRedisPublisher(rdb *goredis.Client, log *logger.Logger) *RedisPublisher {
	return &RedisPublisher{
		rdb:     rdb,
		channel: "assessment.events",
		log:     log.With("service", "RedisPublisher"),
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, p.channel, raw).Err()
}

// NopPublisher discards events. Used in tests and when redis is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error { return nil }

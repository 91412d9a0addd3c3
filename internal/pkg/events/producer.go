package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Event types published to the guild-activity topic
const (
	TypeRecordCreated    = "guild.record.created"
	TypeMemberApproved   = "guild.member.approved"
	TypeMissionCompleted = "guild.mission.completed"
)

// GuildActivity is the payload published for guild events
type GuildActivity struct {
	Type      string    `json:"type"`
	GuildID   int64     `json:"guildId"`
	UserID    int64     `json:"userId"`
	RefID     int64     `json:"refId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Producer publishes guild activity events to Kafka. A nil Producer is
// valid and drops every event, so callers never have to branch on whether
// the stream is configured.
type Producer struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

// Config holds Kafka producer settings
type Config struct {
	Brokers []string
	Topic   string
}

// NewProducer creates a Kafka producer. Returns nil when no brokers are
// configured.
func NewProducer(cfg Config, logger zerolog.Logger) *Producer {
	if len(cfg.Brokers) == 0 {
		return nil
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &Producer{writer: w, logger: logger}
}

// Publish sends a guild activity event, keyed by guild ID so events for one
// guild stay ordered. Publish failures are logged, not propagated; the API
// call that caused the event must not fail because the stream is down.
func (p *Producer) Publish(ctx context.Context, activity GuildActivity) {
	if p == nil {
		return
	}

	if activity.Timestamp.IsZero() {
		activity.Timestamp = time.Now()
	}

	value, err := json.Marshal(activity)
	if err != nil {
		p.logger.Error().Err(err).Str("type", activity.Type).Msg("Failed to marshal guild activity event")
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(activity.GuildID, 10)),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Warn().Err(err).Str("type", activity.Type).Int64("guildID", activity.GuildID).
			Msg("Failed to publish guild activity event")
	}
}

// Close closes the underlying writer
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

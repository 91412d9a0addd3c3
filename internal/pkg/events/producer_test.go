package events

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewProducer_NoBrokersDisablesProducer(t *testing.T) {
	p := NewProducer(Config{Topic: "tastemap.guild-activity"}, zerolog.Nop())
	assert.Nil(t, p)
}

func TestNilProducer_PublishAndCloseAreSafe(t *testing.T) {
	var p *Producer

	// Publishing through a disabled producer must be a no-op
	p.Publish(context.Background(), GuildActivity{
		Type:    TypeRecordCreated,
		GuildID: 1,
		UserID:  2,
		RefID:   3,
	})

	assert.NoError(t, p.Close())
}

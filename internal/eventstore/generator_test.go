package eventstore

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEventsProducesRequestedCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	events := GenerateEvents(50, DefaultGeneratorConfig, rng)
	assert.Len(t, events, 50)
}

func TestGenerateEventsAddsHavePositiveQty(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	events := GenerateEvents(200, DefaultGeneratorConfig, rng)
	for _, ev := range events {
		if ev.Kind == KindAdd {
			require.Greater(t, ev.Qty, uint32(0))
		}
	}
}

func TestGenerateEventsWithZeroCancelChanceOnlyAdds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	cfg := DefaultGeneratorConfig
	cfg.CancelChance = 0
	events := GenerateEvents(100, cfg, rng)
	for _, ev := range events {
		assert.Equal(t, KindAdd, ev.Kind)
	}
}

func TestGenerateEventsRespectsBookRange(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	cfg := DefaultGeneratorConfig
	cfg.Books = 3
	events := GenerateEvents(100, cfg, rng)
	for _, ev := range events {
		assert.Less(t, ev.BookID, uint16(3))
	}
}

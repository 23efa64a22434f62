package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedkhairy/ta-stream/internal/pubsub"
)

// TestPipeline_QuoteToSnapshot runs the full consume-compute-publish path
// against the in-memory transport.
func TestPipeline_QuoteToSnapshot(t *testing.T) {
	mock := pubsub.NewMockRedisClient()

	registry := NewRegistry()
	require.NoError(t, RegisterDefaults(registry, testEngineConfig()))
	engine := NewEngine(registry)
	defer engine.Stop()

	pubCfg := DefaultPublisherConfig("indicators.updated")
	pubCfg.BatchSize = 1
	publisher := NewPublisher(mock, pubCfg)
	defer publisher.Close()

	engine.SetOnSnapshot(func(s *Snapshot) {
		_ = publisher.Publish(s)
	})

	consumer := newTestConsumer(mock)
	consumer.SetProcessor(engine)
	require.NoError(t, consumer.Start())
	defer consumer.Stop()

	// Enough quotes to fill every warm-up window in the test config
	for i := 0; i < 10; i++ {
		mock.Incoming <- quoteMessage(t, "", testQuote("AAPL", i, 100+float64(i)))
	}

	waitFor(t, func() bool {
		return len(mock.PublishedTo("indicators.updated")) >= 1 &&
			consumer.GetStats().QuotesProcessed == 10
	})

	published := mock.PublishedTo("indicators.updated")
	var last Snapshot
	require.NoError(t, json.Unmarshal(
		[]byte(published[len(published)-1].Values["snapshot"].(string)), &last))

	assert.Equal(t, "AAPL", last.Symbol)
	assert.NotEmpty(t, last.Values)
	assert.Contains(t, last.Values, "ema_5")

	stats := consumer.GetStats()
	assert.EqualValues(t, 10, stats.QuotesProcessed)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 39, 0, 0, time.UTC), stats.LastQuoteTime)
}

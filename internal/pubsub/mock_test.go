package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockRedisClient_PublishBatch(t *testing.T) {
	mock := NewMockRedisClient()

	err := mock.PublishBatchToStream(context.Background(), "indicators.updated", []map[string]interface{}{
		{"snapshot": `{"symbol":"AAPL"}`},
		{"snapshot": `{"symbol":"MSFT"}`},
	})
	require.NoError(t, err)

	published := mock.PublishedTo("indicators.updated")
	require.Len(t, published, 2)
	assert.Equal(t, `{"symbol":"AAPL"}`, published[0].Values["snapshot"])
	assert.Empty(t, mock.PublishedTo("other.stream"))
}

func TestMockRedisClient_ConsumeDeliversAndStopsOnCancel(t *testing.T) {
	mock := NewMockRedisClient()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := mock.ConsumeFromStream(ctx, "quotes.finalized", "ta-engine", "c1")
	require.NoError(t, err)

	mock.Incoming <- StreamMessage{ID: "1-0", Stream: "quotes.finalized", Values: map[string]interface{}{"quote": "{}"}}

	select {
	case msg := <-ch:
		assert.Equal(t, "1-0", msg.ID)
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for message")
	}

	cancel()
	select {
	case _, open := <-ch:
		assert.False(t, open, "Channel should close after cancel")
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for channel close")
	}
}

func TestMockRedisClient_PublishError(t *testing.T) {
	mock := NewMockRedisClient()
	mock.PublishErr = assert.AnError

	err := mock.PublishToStream(context.Background(), "s", "k", "v")
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, mock.Published)
}

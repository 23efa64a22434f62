package pubsub

import (
	"context"
	"fmt"
	"sync"
)

// MockRedisClient is an in-memory RedisClient for testing
type MockRedisClient struct {
	mu         sync.Mutex
	Published  []StreamMessage
	Acked      []string
	Incoming   chan StreamMessage
	PublishErr error
	ConsumeErr error
	closed     bool
}

// NewMockRedisClient creates an empty mock with a buffered incoming channel
func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{
		Incoming: make(chan StreamMessage, 100),
	}
}

func (m *MockRedisClient) PublishToStream(ctx context.Context, stream string, key string, value interface{}) error {
	if m.PublishErr != nil {
		return m.PublishErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, StreamMessage{
		ID:     fmt.Sprintf("0-%d", len(m.Published)+1),
		Stream: stream,
		Values: map[string]interface{}{key: value},
	})
	return nil
}

func (m *MockRedisClient) PublishBatchToStream(ctx context.Context, stream string, messages []map[string]interface{}) error {
	if m.PublishErr != nil {
		return m.PublishErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range messages {
		m.Published = append(m.Published, StreamMessage{
			ID:     fmt.Sprintf("0-%d", len(m.Published)+1),
			Stream: stream,
			Values: msg,
		})
	}
	return nil
}

func (m *MockRedisClient) ConsumeFromStream(ctx context.Context, stream string, group string, consumer string) (<-chan StreamMessage, error) {
	if m.ConsumeErr != nil {
		return nil, m.ConsumeErr
	}
	out := make(chan StreamMessage, cap(m.Incoming))
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-m.Incoming:
				if !ok {
					return
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (m *MockRedisClient) AcknowledgeMessage(ctx context.Context, stream string, group string, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Acked = append(m.Acked, id)
	return nil
}

func (m *MockRedisClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// PublishedTo returns the messages published to a given stream
func (m *MockRedisClient) PublishedTo(stream string) []StreamMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []StreamMessage
	for _, msg := range m.Published {
		if msg.Stream == stream {
			out = append(out, msg)
		}
	}
	return out
}

// AckCount returns the number of acknowledged messages
func (m *MockRedisClient) AckCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Acked)
}

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mohamedkhairy/ta-stream/internal/pubsub"
	"github.com/mohamedkhairy/ta-stream/pkg/logger"
)

// PublisherConfig holds configuration for the snapshot publisher
type PublisherConfig struct {
	StreamName    string
	BatchSize     int
	BatchTimeout  time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// DefaultPublisherConfig returns default configuration
func DefaultPublisherConfig(streamName string) PublisherConfig {
	return PublisherConfig{
		StreamName:    streamName,
		BatchSize:     100,
		BatchTimeout:  100 * time.Millisecond,
		RetryAttempts: 3,
		RetryDelay:    100 * time.Millisecond,
	}
}

// Publisher batches indicator snapshots and writes them to the output stream
type Publisher struct {
	config  PublisherConfig
	redis   pubsub.RedisClient
	batch   []*Snapshot
	batchMu sync.Mutex
	ticker  *time.Ticker
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewPublisher creates a new snapshot publisher
func NewPublisher(redis pubsub.RedisClient, config PublisherConfig) *Publisher {
	ctx, cancel := context.WithCancel(context.Background())

	return &Publisher{
		config: config,
		redis:  redis,
		batch:  make([]*Snapshot, 0, config.BatchSize),
		ticker: time.NewTicker(config.BatchTimeout),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start starts the batch publishing loop
func (p *Publisher) Start() {
	p.wg.Add(1)
	go p.batchLoop()
}

// Publish adds a snapshot to the batch (non-blocking unless the batch fills)
func (p *Publisher) Publish(snapshot *Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	p.batchMu.Lock()
	p.batch = append(p.batch, snapshot)
	shouldFlush := len(p.batch) >= p.config.BatchSize
	p.batchMu.Unlock()

	if shouldFlush {
		return p.flush()
	}
	return nil
}

// batchLoop periodically flushes the batch
func (p *Publisher) batchLoop() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			p.flush()
			return
		case <-p.ticker.C:
			p.flush()
		}
	}
}

// flush publishes the current batch to the output stream
func (p *Publisher) flush() error {
	p.batchMu.Lock()
	if len(p.batch) == 0 {
		p.batchMu.Unlock()
		return nil
	}

	batch := make([]*Snapshot, len(p.batch))
	copy(batch, p.batch)
	p.batch = p.batch[:0]
	p.batchMu.Unlock()

	messages := make([]map[string]interface{}, 0, len(batch))
	for _, snapshot := range batch {
		data, err := json.Marshal(snapshot)
		if err != nil {
			logger.Error("Failed to marshal snapshot",
				logger.ErrorField(err),
				logger.String("symbol", snapshot.Symbol),
			)
			continue
		}
		messages = append(messages, map[string]interface{}{
			"snapshot": string(data),
		})
	}

	if len(messages) == 0 {
		return nil
	}

	// Fresh context so the final flush still works during shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	for attempt := 0; attempt < p.config.RetryAttempts; attempt++ {
		err = p.redis.PublishBatchToStream(ctx, p.config.StreamName, messages)
		if err == nil {
			break
		}

		if attempt < p.config.RetryAttempts-1 {
			logger.Warn("Failed to publish batch, retrying",
				logger.ErrorField(err),
				logger.String("stream", p.config.StreamName),
				logger.Int("attempt", attempt+1),
				logger.Int("count", len(messages)),
			)
			time.Sleep(p.config.RetryDelay * time.Duration(attempt+1))
		}
	}

	if err != nil {
		logger.PublishErrors.WithLabelValues(p.config.StreamName).Add(float64(len(messages)))
		logger.Error("Failed to publish batch after retries",
			logger.ErrorField(err),
			logger.String("stream", p.config.StreamName),
			logger.Int("count", len(messages)),
		)
		return err
	}

	logger.SnapshotsPublished.WithLabelValues(p.config.StreamName).Add(float64(len(messages)))
	logger.Debug("Published snapshot batch",
		logger.String("stream", p.config.StreamName),
		logger.Int("count", len(messages)),
	)

	return nil
}

// Flush forces an immediate flush of the current batch
func (p *Publisher) Flush() error {
	return p.flush()
}

// Close stops the publisher and flushes remaining snapshots
func (p *Publisher) Close() error {
	p.cancel()
	p.ticker.Stop()
	p.wg.Wait()
	return p.flush()
}

// GetBatchSize returns the number of snapshots waiting to be flushed
func (p *Publisher) GetBatchSize() int {
	p.batchMu.Lock()
	defer p.batchMu.Unlock()
	return len(p.batch)
}

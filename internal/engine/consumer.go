package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mohamedkhairy/ta-stream/internal/models"
	"github.com/mohamedkhairy/ta-stream/internal/pubsub"
	"github.com/mohamedkhairy/ta-stream/pkg/logger"
)

// ConsumerConfig holds configuration for the quote consumer
type ConsumerConfig struct {
	StreamName    string
	ConsumerGroup string
	ConsumerName  string
	BatchSize     int
	AckTimeout    time.Duration
	Symbols       []string // allowlist; empty accepts every symbol
}

// DefaultConsumerConfig returns default configuration with a unique consumer name
func DefaultConsumerConfig(streamName, consumerGroup string) ConsumerConfig {
	return ConsumerConfig{
		StreamName:    streamName,
		ConsumerGroup: consumerGroup,
		ConsumerName:  fmt.Sprintf("ta-engine-%s", uuid.NewString()[:8]),
		BatchSize:     100,
		AckTimeout:    10 * time.Second,
	}
}

// QuoteProcessor receives decoded quotes from the consumer
type QuoteProcessor interface {
	ProcessQuote(q *models.Quote) error
}

// ConsumerStats holds statistics about the consumer
type ConsumerStats struct {
	QuotesProcessed int64
	QuotesAcked     int64
	QuotesFailed    int64
	QuotesSkipped   int64
	LastQuoteTime   time.Time
}

// QuoteConsumer reads finalized quotes from the input stream and feeds the engine
type QuoteConsumer struct {
	config    ConsumerConfig
	redis     pubsub.RedisClient
	processor QuoteProcessor
	allowlist map[string]bool
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.RWMutex
	running   bool
	statsMu   sync.RWMutex
	stats     ConsumerStats
}

// NewQuoteConsumer creates a new quote consumer
func NewQuoteConsumer(redis pubsub.RedisClient, config ConsumerConfig) *QuoteConsumer {
	ctx, cancel := context.WithCancel(context.Background())

	var allowlist map[string]bool
	if len(config.Symbols) > 0 {
		allowlist = make(map[string]bool, len(config.Symbols))
		for _, symbol := range config.Symbols {
			allowlist[symbol] = true
		}
	}

	return &QuoteConsumer{
		config:    config,
		redis:     redis,
		allowlist: allowlist,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// SetProcessor sets the processor that receives decoded quotes
func (c *QuoteConsumer) SetProcessor(processor QuoteProcessor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processor = processor
}

// Start starts consuming from the stream
func (c *QuoteConsumer) Start() error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("consumer is already running")
	}
	c.running = true
	c.mu.Unlock()

	logger.Info("Starting quote consumer",
		logger.String("stream", c.config.StreamName),
		logger.String("group", c.config.ConsumerGroup),
		logger.String("consumer", c.config.ConsumerName),
	)

	c.wg.Add(1)
	go c.consumeLoop()

	return nil
}

// Stop stops the consumer
func (c *QuoteConsumer) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	c.mu.Unlock()

	logger.Info("Stopping quote consumer")
	c.cancel()
	c.wg.Wait()
	logger.Info("Quote consumer stopped")
}

// IsRunning returns whether the consumer is running
func (c *QuoteConsumer) IsRunning() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.running
}

// GetStats returns a copy of the consumer statistics
func (c *QuoteConsumer) GetStats() ConsumerStats {
	c.statsMu.RLock()
	defer c.statsMu.RUnlock()
	return c.stats
}

// consumeLoop reads messages and hands them off in batches
func (c *QuoteConsumer) consumeLoop() {
	defer c.wg.Done()

	messageChan, err := c.redis.ConsumeFromStream(c.ctx, c.config.StreamName, c.config.ConsumerGroup, c.config.ConsumerName)
	if err != nil {
		logger.Error("Failed to start consuming from stream",
			logger.ErrorField(err),
			logger.String("stream", c.config.StreamName),
		)
		return
	}

	batch := make([]pubsub.StreamMessage, 0, c.config.BatchSize)
	ticker := time.NewTicker(c.config.AckTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			if len(batch) > 0 {
				c.processBatch(batch)
			}
			return

		case msg, ok := <-messageChan:
			if !ok {
				logger.Warn("Message channel closed",
					logger.String("stream", c.config.StreamName),
				)
				if len(batch) > 0 {
					c.processBatch(batch)
				}
				return
			}

			batch = append(batch, msg)
			if len(batch) >= c.config.BatchSize {
				c.processBatch(batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			if len(batch) > 0 {
				c.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

// processBatch decodes and processes a batch of messages
func (c *QuoteConsumer) processBatch(messages []pubsub.StreamMessage) {
	if len(messages) == 0 {
		return
	}

	acked := make([]string, 0, len(messages))
	failed := 0

	c.mu.RLock()
	processor := c.processor
	c.mu.RUnlock()

	for _, msg := range messages {
		quote, err := c.decodeQuote(msg)
		if err != nil {
			logger.Error("Failed to decode quote",
				logger.ErrorField(err),
				logger.String("message_id", msg.ID),
			)
			logger.QuotesRejected.WithLabelValues("decode").Inc()
			// Malformed messages are acked so they don't poison the group
			acked = append(acked, msg.ID)
			failed++
			c.incrementFailed()
			continue
		}

		if c.allowlist != nil && !c.allowlist[quote.Symbol] {
			acked = append(acked, msg.ID)
			c.incrementSkipped()
			continue
		}

		if processor == nil {
			logger.Warn("No processor set, skipping quote",
				logger.String("symbol", quote.Symbol),
			)
			failed++
			continue
		}

		if err := processor.ProcessQuote(quote); err != nil {
			logger.Error("Failed to process quote",
				logger.ErrorField(err),
				logger.String("symbol", quote.Symbol),
				logger.String("message_id", msg.ID),
			)
			// Quotes that fail validation never become processable; ack them
			acked = append(acked, msg.ID)
			failed++
			c.incrementFailed()
			continue
		}

		logger.QuotesConsumed.WithLabelValues(c.config.StreamName).Inc()
		acked = append(acked, msg.ID)
		c.incrementProcessed(quote.Timestamp)
	}

	if len(acked) > 0 {
		c.acknowledgeMessages(acked)
	}

	if failed > 0 {
		logger.Warn("Some quotes failed to process",
			logger.Int("failed_count", failed),
			logger.String("stream", c.config.StreamName),
		)
	}
}

// decodeQuote deserializes a stream message into a Quote
func (c *QuoteConsumer) decodeQuote(msg pubsub.StreamMessage) (*models.Quote, error) {
	quoteJSON, ok := msg.Values["quote"].(string)
	if !ok {
		// Fall back to the first string value in the message
		for _, v := range msg.Values {
			if str, ok := v.(string); ok {
				quoteJSON = str
				break
			}
		}
		if quoteJSON == "" {
			return nil, fmt.Errorf("no quote data found in message")
		}
	}

	var quote models.Quote
	if err := json.Unmarshal([]byte(quoteJSON), &quote); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote: %w", err)
	}

	return &quote, nil
}

// acknowledgeMessages acknowledges a batch of message IDs
func (c *QuoteConsumer) acknowledgeMessages(messageIDs []string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.config.AckTimeout)
	defer cancel()

	for _, id := range messageIDs {
		if err := c.redis.AcknowledgeMessage(ctx, c.config.StreamName, c.config.ConsumerGroup, id); err != nil {
			logger.Error("Failed to acknowledge message",
				logger.ErrorField(err),
				logger.String("stream", c.config.StreamName),
				logger.String("message_id", id),
			)
			continue
		}
		c.incrementAcked()
	}
}

func (c *QuoteConsumer) incrementProcessed(timestamp time.Time) {
	c.statsMu.Lock()
	c.stats.QuotesProcessed++
	c.stats.LastQuoteTime = timestamp
	c.statsMu.Unlock()
}

func (c *QuoteConsumer) incrementAcked() {
	c.statsMu.Lock()
	c.stats.QuotesAcked++
	c.statsMu.Unlock()
}

func (c *QuoteConsumer) incrementFailed() {
	c.statsMu.Lock()
	c.stats.QuotesFailed++
	c.statsMu.Unlock()
}

func (c *QuoteConsumer) incrementSkipped() {
	c.statsMu.Lock()
	c.stats.QuotesSkipped++
	c.statsMu.Unlock()
}

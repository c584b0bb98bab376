package outbox

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/eventbus"
)

// ProcessorConfig tunes the outbox polling loop.
type ProcessorConfig struct {
	PollInterval     time.Duration
	BatchSize        int
	MaxRetries       int
	RetryBackoffBase time.Duration
	RetryBackoffMax  time.Duration
}

// DefaultProcessorConfig returns the defaults used outside tests.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		PollInterval:     100 * time.Millisecond,
		BatchSize:        100,
		MaxRetries:       5,
		RetryBackoffBase: time.Second,
		RetryBackoffMax:  time.Minute,
	}
}

// Processor polls the outbox and relays pending messages to the broker.
// Failed deliveries back off exponentially and dead-letter after
// MaxRetries attempts.
type Processor struct {
	repo      Repository
	publisher eventbus.Publisher
	config    ProcessorConfig
	logger    *slog.Logger

	mu      sync.Mutex
	wg      sync.WaitGroup
	stop    chan struct{}
	running bool
}

// NewProcessor creates an outbox processor.
func NewProcessor(repo Repository, publisher eventbus.Publisher, config ProcessorConfig, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		repo:      repo,
		publisher: publisher,
		config:    config,
		logger:    logger,
	}
}

// Start launches the polling loop. Calling Start on a running processor
// is a no-op.
func (p *Processor) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stop = make(chan struct{})
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run(ctx)

	p.logger.Info("outbox processor started",
		"poll_interval", p.config.PollInterval,
		"batch_size", p.config.BatchSize,
	)
}

// Stop halts the loop and waits for the in-flight batch to finish.
func (p *Processor) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stop)
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Info("outbox processor stopped")
}

func (p *Processor) run(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case <-ticker.C:
			if err := p.processBatch(ctx); err != nil {
				p.logger.Error("outbox batch failed", "error", err)
			}
		}
	}
}

// ProcessOnce relays a single batch synchronously.
func (p *Processor) ProcessOnce(ctx context.Context) error {
	return p.processBatch(ctx)
}

func (p *Processor) processBatch(ctx context.Context) error {
	msgs, err := p.repo.GetUnpublished(ctx, p.config.BatchSize)
	if err != nil {
		return err
	}

	for _, msg := range msgs {
		if err := p.publisher.Publish(ctx, msg.RoutingKey, msg.Payload); err != nil {
			p.handlePublishFailure(ctx, msg, err)
			continue
		}
		if err := p.repo.MarkPublished(ctx, msg.ID); err != nil {
			p.logger.Error("mark published failed", "id", msg.ID, "event_id", msg.EventID, "error", err)
		}
	}
	return nil
}

func (p *Processor) handlePublishFailure(ctx context.Context, msg *Message, pubErr error) {
	p.logger.Warn("publish failed",
		"id", msg.ID,
		"routing_key", msg.RoutingKey,
		"event_id", msg.EventID,
		"retry_count", msg.RetryCount,
		"error", pubErr,
	)

	if p.exhausted(msg) {
		if err := p.repo.MarkDead(ctx, msg.ID, pubErr.Error()); err != nil {
			p.logger.Error("dead-letter failed", "id", msg.ID, "error", err)
		}
		return
	}

	nextRetryAt := time.Now().Add(p.backoff(msg.RetryCount + 1))
	if err := p.repo.MarkFailed(ctx, msg.ID, pubErr.Error(), nextRetryAt); err != nil {
		p.logger.Error("mark failed failed", "id", msg.ID, "error", err)
	}
}

func (p *Processor) exhausted(msg *Message) bool {
	return p.config.MaxRetries <= 0 || msg.RetryCount+1 >= p.config.MaxRetries
}

func (p *Processor) backoff(attempt int) time.Duration {
	base := p.config.RetryBackoffBase
	if base <= 0 {
		base = time.Second
	}
	maxBackoff := p.config.RetryBackoffMax
	if maxBackoff <= 0 {
		maxBackoff = time.Minute
	}
	if attempt < 1 {
		attempt = 1
	}

	backoff := base << (attempt - 1)
	if backoff > maxBackoff || backoff <= 0 {
		return maxBackoff
	}
	return backoff
}

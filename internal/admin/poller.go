package admin

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/anwarshop/storefront/internal/docstore"
	"github.com/anwarshop/storefront/internal/domain"
)

// DefaultPollInterval matches the back-office badge refresh cadence
const DefaultPollInterval = 30 * time.Second

// Poller periodically counts pending orders for the back-office badge.
// It has one owner: Start launches the loop, Stop tears it down and
// waits for it. A fetch completing after Stop is discarded.
type Poller struct {
	client   *docstore.Client
	interval time.Duration
	onCount  func(int)
	logger   *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

func NewPoller(client *docstore.Client, interval time.Duration, onCount func(int), logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		client:   client,
		interval: interval,
		onCount:  onCount,
		logger:   logger,
	}
}

// Start begins polling. The first fetch happens immediately, then every
// interval. Calling Start twice without Stop is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.started = true

	go p.run(ctx)
}

// Stop cancels the loop and waits until it has exited
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.started = false
	p.mu.Unlock()

	cancel()
	<-done
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	raw, err := p.client.Collection(ctx, docstore.CollectionOrders)
	if err != nil {
		// Transient failures keep the last reported count
		p.logger.Warn("Failed to poll pending orders", zap.Error(err))
		return
	}
	if ctx.Err() != nil {
		// Stopped while the fetch was in flight; discard the response
		return
	}

	count := 0
	for _, record := range raw {
		var order domain.Order
		if err := json.Unmarshal(record, &order); err != nil {
			continue
		}
		if order.Status == domain.OrderStatusPending {
			count++
		}
	}
	p.onCount(count)
}

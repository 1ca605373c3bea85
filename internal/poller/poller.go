package poller

import (
	"context"
	"sync"
	"time"

	"github.com/coinvault/transfer-gateway/internal/auth"
	"github.com/coinvault/transfer-gateway/internal/consts"
	"github.com/coinvault/transfer-gateway/internal/custody"
	"github.com/coinvault/transfer-gateway/internal/model"
	"github.com/coinvault/transfer-gateway/internal/utils/logger"
)

// Poller re-fetches one transfer record on a fixed cadence until the status
// turns terminal or the poller is torn down. Each successful fetch replaces
// the held record wholesale; there is no delta merge. A failed fetch is
// swallowed and retried on the next tick.
//
// Fetches run synchronously inside the loop, so a fetch slower than the
// interval simply coalesces the missed ticks instead of overlapping.
type Poller struct {
	custodyAPI custody.ICustodyAPI
	actx       *auth.Context
	logger     *logger.Logger
	transferID string
	interval   time.Duration
	onUpdate   func(*model.TransferRecord)

	mu      sync.Mutex
	record  *model.TransferRecord
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

type Option func(*Poller)

// WithInterval overrides the default 5s cadence.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

// WithOnUpdate registers a callback invoked after every successful fetch,
// from the polling goroutine.
func WithOnUpdate(fn func(*model.TransferRecord)) Option {
	return func(p *Poller) { p.onUpdate = fn }
}

func New(custodyAPI custody.ICustodyAPI, actx *auth.Context, logger *logger.Logger, transferID string, opts ...Option) *Poller {
	p := &Poller{
		custodyAPI: custodyAPI,
		actx:       actx,
		logger:     logger,
		transferID: transferID,
		interval:   consts.RECEIPT_POLL_INTERVAL,
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins polling. The first fetch fires immediately so there is a
// record to render before the first tick. Start is a no-op when called twice.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	go p.run(ctx)
}

// Stop tears the poller down and releases its timer. Safe to call multiple
// times and before Start.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Done is closed once the polling loop has exited, either on terminal status
// or teardown.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// Record returns the last fetched record, nil before the first successful
// fetch.
func (p *Poller) Record() *model.TransferRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.record
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	if p.fetch() {
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.fetch() {
				return
			}
		}
	}
}

// fetch refreshes the record once and reports whether polling should stop.
func (p *Poller) fetch() bool {
	record, err := p.custodyAPI.GetTransfer(p.actx, p.transferID)
	if err != nil {
		// swallowed: the next tick retries; only teardown or a terminal
		// status stops the loop
		p.logger.Debug("[Poller][GetTransfer]", map[string]string{
			"error":       err.Error(),
			"transfer_id": p.transferID,
		})
		return false
	}

	p.mu.Lock()
	p.record = record
	p.mu.Unlock()

	if p.onUpdate != nil {
		p.onUpdate(record)
	}

	return record.Status.Terminal()
}

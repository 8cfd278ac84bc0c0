package api

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// fees served when no estimate was ever fetched
const (
	DefaultFeeFast = 220
	DefaultFeeHour = 160
)

// FeeSource is anything that can produce a fresh fee estimate
type FeeSource interface {
	GetFee(ctx context.Context, class FeeClass) (decimal.Decimal, error)
}

type feeSlot struct {
	value      decimal.Decimal
	present    bool
	lastUpdate time.Time
}

// FeeCache serves fee estimates per class, refreshing from its source at
// most once per ttl. It never fails: when the source is down it serves the
// last fetched value, or the static default if there is none.
//
// Slots are read and written under a mutex but the upstream call is made
// without it, so two callers crossing the ttl together may both refresh and
// the later write wins. WithSingleFlight collapses those into one call.
type FeeCache struct {
	source   FeeSource
	settings *Settings
	now      func() time.Time
	logger   *zap.Logger
	metrics  *Metrics
	group    *singleflight.Group

	mu    sync.Mutex
	slots [2]feeSlot
}

type FeeCacheOption func(*FeeCache)

// WithClock replaces time.Now
func WithClock(now func() time.Time) FeeCacheOption {
	return func(c *FeeCache) {
		c.now = now
	}
}

// WithSingleFlight shares one upstream call between concurrent refreshes of a class
func WithSingleFlight() FeeCacheOption {
	return func(c *FeeCache) {
		c.group = &singleflight.Group{}
	}
}

func WithFeeLogger(logger *zap.Logger) FeeCacheOption {
	return func(c *FeeCache) {
		c.logger = logger
	}
}

func WithFeeMetrics(m *Metrics) FeeCacheOption {
	return func(c *FeeCache) {
		c.metrics = m
	}
}

// NewFeeCache creates an empty cache over source. The ttl is read from
// settings on every lookup.
func NewFeeCache(source FeeSource, settings *Settings, opts ...FeeCacheOption) *FeeCache {
	if settings == nil {
		settings = NewSettings()
	}

	c := &FeeCache{
		source:   source,
		settings: settings,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetFee returns the fee for class. Unknown classes are served as FeeFast.
func (c *FeeCache) GetFee(ctx context.Context, class FeeClass) decimal.Decimal {
	if class != FeeHour {
		class = FeeFast
	}

	now := c.now()
	slot := c.load(class)
	if slot.present && now.Sub(slot.lastUpdate) <= c.settings.FeeCacheTTL() {
		c.metrics.observeFeeLookup(class, feeHit)
		return slot.value
	}

	fee, err := c.fetch(ctx, class)
	if err == nil {
		c.mu.Lock()
		c.slots[class] = feeSlot{value: fee, present: true, lastUpdate: now}
		c.mu.Unlock()

		c.metrics.observeFeeLookup(class, feeRefresh)
		c.logger.Debug("FeeCache::GetFee refreshed", zap.Stringer("class", class), zap.Stringer("fee", fee))
		return fee
	}

	// another caller may have refreshed while we were waiting
	if slot = c.load(class); slot.present {
		c.metrics.observeFeeLookup(class, feeStale)
		c.logger.Warn("FeeCache::GetFee serving stale fee",
			zap.Stringer("class", class),
			zap.Time("last_update", slot.lastUpdate),
			zap.Error(err))
		return slot.value
	}

	c.metrics.observeFeeLookup(class, feeDefault)
	c.logger.Warn("FeeCache::GetFee serving default fee", zap.Stringer("class", class), zap.Error(err))
	return defaultFee(class)
}

func (c *FeeCache) load(class FeeClass) feeSlot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slots[class]
}

func (c *FeeCache) fetch(ctx context.Context, class FeeClass) (decimal.Decimal, error) {
	if c.group == nil {
		return c.source.GetFee(ctx, class)
	}

	v, err, _ := c.group.Do(class.String(), func() (interface{}, error) {
		return c.source.GetFee(ctx, class)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return v.(decimal.Decimal), nil
}

func defaultFee(class FeeClass) decimal.Decimal {
	if class == FeeHour {
		return decimal.NewFromInt(DefaultFeeHour)
	}
	return decimal.NewFromInt(DefaultFeeFast)
}

package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeeSource struct {
	fees  map[FeeClass]decimal.Decimal
	err   error
	calls atomic.Int32
}

func (f *fakeFeeSource) GetFee(_ context.Context, class FeeClass) (decimal.Decimal, error) {
	f.calls.Add(1)
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return f.fees[class], nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestFeeCache(source FeeSource, opts ...FeeCacheOption) (*FeeCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewFeeCache(source, NewSettings(), append([]FeeCacheOption{WithClock(clock.Now)}, opts...)...), clock
}

func TestFeeCacheColdStart(t *testing.T) {
	src := &fakeFeeSource{fees: map[FeeClass]decimal.Decimal{FeeFast: decimal.NewFromInt(5)}}
	cache, _ := newTestFeeCache(src)

	fee := cache.GetFee(context.Background(), FeeFast)
	assert.True(t, decimal.NewFromInt(5).Equal(fee))
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestFeeCacheWarmRead(t *testing.T) {
	src := &fakeFeeSource{fees: map[FeeClass]decimal.Decimal{FeeFast: decimal.NewFromInt(5)}}
	cache, clock := newTestFeeCache(src)

	cache.GetFee(context.Background(), FeeFast)
	src.fees[FeeFast] = decimal.NewFromInt(9)
	clock.Advance(DefaultFeeCacheTTL)

	fee := cache.GetFee(context.Background(), FeeFast)
	assert.True(t, decimal.NewFromInt(5).Equal(fee))
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestFeeCacheRefreshAfterTTL(t *testing.T) {
	src := &fakeFeeSource{fees: map[FeeClass]decimal.Decimal{FeeFast: decimal.NewFromInt(5)}}
	cache, clock := newTestFeeCache(src)

	cache.GetFee(context.Background(), FeeFast)
	src.fees[FeeFast] = decimal.NewFromInt(9)
	clock.Advance(DefaultFeeCacheTTL + time.Second)

	fee := cache.GetFee(context.Background(), FeeFast)
	assert.True(t, decimal.NewFromInt(9).Equal(fee))
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestFeeCacheServesStaleOnFailure(t *testing.T) {
	src := &fakeFeeSource{fees: map[FeeClass]decimal.Decimal{FeeHour: decimal.RequireFromString("2.5")}}
	cache, clock := newTestFeeCache(src)

	cache.GetFee(context.Background(), FeeHour)
	src.err = transientError("blockcypher", OpFee, errors.New("timeout"))
	clock.Advance(time.Hour)

	fee := cache.GetFee(context.Background(), FeeHour)
	assert.True(t, decimal.RequireFromString("2.5").Equal(fee))
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestFeeCacheDefaults(t *testing.T) {
	src := &fakeFeeSource{err: errors.New("down")}
	cache, _ := newTestFeeCache(src)

	assert.True(t, decimal.NewFromInt(220).Equal(cache.GetFee(context.Background(), FeeFast)))
	assert.True(t, decimal.NewFromInt(160).Equal(cache.GetFee(context.Background(), FeeHour)))

	// a default is not cached, the next read tries again
	cache.GetFee(context.Background(), FeeFast)
	assert.Equal(t, int32(3), src.calls.Load())
}

func TestFeeCacheClassesAreIndependent(t *testing.T) {
	src := &fakeFeeSource{fees: map[FeeClass]decimal.Decimal{
		FeeFast: decimal.NewFromInt(5),
		FeeHour: decimal.NewFromInt(2),
	}}
	cache, _ := newTestFeeCache(src)

	assert.True(t, decimal.NewFromInt(5).Equal(cache.GetFee(context.Background(), FeeFast)))
	assert.True(t, decimal.NewFromInt(2).Equal(cache.GetFee(context.Background(), FeeHour)))
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestFeeCacheTTLFromSettings(t *testing.T) {
	src := &fakeFeeSource{fees: map[FeeClass]decimal.Decimal{FeeFast: decimal.NewFromInt(5)}}
	settings := NewSettings()
	clock := &fakeClock{now: time.Unix(0, 0)}
	cache := NewFeeCache(src, settings, WithClock(clock.Now))

	cache.GetFee(context.Background(), FeeFast)
	settings.SetFeeCacheTime(30)
	clock.Advance(31 * time.Second)
	cache.GetFee(context.Background(), FeeFast)

	assert.Equal(t, int32(2), src.calls.Load())
}

func TestFeeCacheMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	src := &fakeFeeSource{fees: map[FeeClass]decimal.Decimal{FeeFast: decimal.NewFromInt(5)}}
	cache, clock := newTestFeeCache(src, WithFeeMetrics(m))

	cache.GetFee(context.Background(), FeeFast)
	cache.GetFee(context.Background(), FeeFast)
	src.err = errors.New("down")
	clock.Advance(time.Hour)
	cache.GetFee(context.Background(), FeeFast)
	cache.GetFee(context.Background(), FeeHour)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.feeLookups.WithLabelValues("fast", feeRefresh)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.feeLookups.WithLabelValues("fast", feeHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.feeLookups.WithLabelValues("fast", feeStale)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.feeLookups.WithLabelValues("hour", feeDefault)))
}

// blockingFeeSource holds every call until release is closed
type blockingFeeSource struct {
	release chan struct{}
	calls   atomic.Int32
}

func (b *blockingFeeSource) GetFee(context.Context, FeeClass) (decimal.Decimal, error) {
	b.calls.Add(1)
	<-b.release
	return decimal.NewFromInt(4), nil
}

func TestFeeCacheSingleFlight(t *testing.T) {
	src := &blockingFeeSource{release: make(chan struct{})}
	cache := NewFeeCache(src, NewSettings(), WithSingleFlight())

	var wg sync.WaitGroup
	results := make([]decimal.Decimal, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.GetFee(context.Background(), FeeFast)
		}(i)
	}

	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(src.release)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
	for _, fee := range results {
		assert.True(t, decimal.NewFromInt(4).Equal(fee))
	}
}

func TestBlockCypherAPI(t *testing.T) {
	c, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, BlockCypherLitecoinAPI, httpmock.NewStringResponder(200,
		`{"name":"LTC.main","high_fee_per_kb":123456,"medium_fee_per_kb":50000,"low_fee_per_kb":25000}`))

	src := NewBlockCypherAPI(c, "")

	fast, err := src.GetFee(context.Background(), FeeFast)
	require.NoError(t, err)
	assert.Equal(t, "12.3456", fast.String())

	hour, err := src.GetFee(context.Background(), FeeHour)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2.5").Equal(hour))
}

func TestBlockCypherAPIMissingField(t *testing.T) {
	c, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, BlockCypherLitecoinAPI, httpmock.NewStringResponder(200, `{"high_fee_per_kb":1000}`))

	_, err := NewBlockCypherAPI(c, "").GetFee(context.Background(), FeeHour)
	assert.True(t, IsProtocol(err))
}

func TestFeeCacheOverBlockCypher(t *testing.T) {
	c, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, BlockCypherLitecoinAPI, httpmock.NewStringResponder(200,
		`{"high_fee_per_kb":2000000,"low_fee_per_kb":1000000}`))

	cache := NewFeeCache(NewBlockCypherAPI(c, ""), c.Settings())

	assert.True(t, decimal.NewFromInt(200).Equal(cache.GetFee(context.Background(), FeeFast)))
	assert.True(t, decimal.NewFromInt(200).Equal(cache.GetFee(context.Background(), FeeFast)))
	assert.Equal(t, 1, mt.GetTotalCallCount())
}

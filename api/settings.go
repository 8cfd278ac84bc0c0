package api

import (
	"time"

	"go.uber.org/atomic"
)

const (
	// DefaultTimeout bounds every upstream HTTP call
	DefaultTimeout = 10 * time.Second

	// DefaultFeeCacheTTL is how long a fetched fee is served without refreshing
	DefaultFeeCacheTTL = 10 * time.Minute
)

// Settings holds the process-wide mutable knobs shared by the Client and the
// FeeCache. It is created once at startup and never torn down. Setters take
// effect for every call made after they return; concurrent writers race
// benignly and the last write wins.
type Settings struct {
	timeout     *atomic.Duration
	feeCacheTTL *atomic.Duration
}

// NewSettings creates Settings with the default timeout and fee cache ttl
func NewSettings() *Settings {
	return &Settings{
		timeout:     atomic.NewDuration(DefaultTimeout),
		feeCacheTTL: atomic.NewDuration(DefaultFeeCacheTTL),
	}
}

func (s *Settings) Timeout() time.Duration {
	return s.timeout.Load()
}

// SetTimeout sets the per-call timeout. Non-positive values are ignored.
func (s *Settings) SetTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	s.timeout.Store(d)
}

// SetServiceTimeout sets the per-call timeout in seconds
func (s *Settings) SetServiceTimeout(seconds int) {
	s.SetTimeout(time.Duration(seconds) * time.Second)
}

func (s *Settings) FeeCacheTTL() time.Duration {
	return s.feeCacheTTL.Load()
}

func (s *Settings) SetFeeCacheTTL(d time.Duration) {
	s.feeCacheTTL.Store(d)
}

// SetFeeCacheTime sets the fee cache ttl in seconds
func (s *Settings) SetFeeCacheTime(seconds int) {
	s.SetFeeCacheTTL(time.Duration(seconds) * time.Second)
}

package api

import (
	"context"
	"fmt"
	"time"

	"github.com/blockterms/lit/chains/litecoin"
	"go.uber.org/zap"
)

// NetworkAPI answers each operation from the first provider in its order
// that succeeds. Providers are tried one at a time, never concurrently,
// and results are returned as the provider gave them.
//
// A malformed provider response is skipped like an unreachable provider
// unless strict protocol mode is on, in which case it is returned at once.
type NetworkAPI struct {
	order          Order
	logger         *zap.Logger
	metrics        *Metrics
	strictProtocol bool
}

type NetworkOption func(*NetworkAPI)

// WithStrictProtocol makes a malformed response abort the failover walk
func WithStrictProtocol(strict bool) NetworkOption {
	return func(n *NetworkAPI) {
		n.strictProtocol = strict
	}
}

func WithMetrics(m *Metrics) NetworkOption {
	return func(n *NetworkAPI) {
		n.metrics = m
	}
}

// NewNetworkAPI creates an orchestrator over order, logging through the client's logger
func NewNetworkAPI(client *Client, order Order, opts ...NetworkOption) *NetworkAPI {
	n := &NetworkAPI{
		order:  order.clone(),
		logger: zap.NewNop(),
	}
	if client != nil {
		n.logger = client.Logger()
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Order returns a copy of the provider order
func (n *NetworkAPI) Order() Order {
	return n.order.clone()
}

// GetBalance returns the balance of address in litoshi
func (n *NetworkAPI) GetBalance(ctx context.Context, address string) (int64, error) {
	return failover(ctx, n, OpBalance, n.order.Balance, func(p Provider) (int64, error) {
		return p.GetBalance(ctx, address)
	})
}

// GetTransactions returns the transaction ids of address
func (n *NetworkAPI) GetTransactions(ctx context.Context, address string) ([]string, error) {
	return failover(ctx, n, OpTransactions, n.order.Transactions, func(p Provider) ([]string, error) {
		return p.GetTransactions(ctx, address)
	})
}

// GetUnspent returns the unspent outputs of address
func (n *NetworkAPI) GetUnspent(ctx context.Context, address string) ([]Unspent, error) {
	return failover(ctx, n, OpUnspent, n.order.Unspent, func(p Provider) ([]Unspent, error) {
		return p.GetUnspent(ctx, address)
	})
}

// BroadcastTx pushes a signed raw transaction. The hex is decoded locally
// first and rejected with litecoin.ErrMalformedTx before any provider is
// contacted. MWEB transactions do not decode and are always rejected here.
//
// ErrBroadcastRejected is returned when at least one provider was reached
// and refused; ErrAllProvidersUnreachable when none could be reached.
func (n *NetworkAPI) BroadcastTx(ctx context.Context, txHex string) error {
	if _, err := litecoin.DecodeTx(txHex); err != nil {
		return err
	}

	rejected := false
	var lastErr error
	for _, p := range n.order.Broadcast {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		ok, err := p.BroadcastTx(ctx, txHex)
		elapsed := time.Since(start)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !n.skip(p, OpBroadcast, err, elapsed) {
				return err
			}
			lastErr = err
			continue
		}

		if ok {
			n.metrics.observeRequest(p.Name(), OpBroadcast, statusOK, elapsed)
			n.logger.Info("NetworkAPI::BroadcastTx accepted", zap.String("provider", p.Name()))
			return nil
		}

		n.metrics.observeRequest(p.Name(), OpBroadcast, statusRejected, elapsed)
		n.logger.Warn("NetworkAPI::BroadcastTx rejected", zap.String("provider", p.Name()))
		rejected = true
	}

	if rejected {
		return ErrBroadcastRejected
	}
	return exhausted(lastErr)
}

// failover walks providers in order and returns the first success
func failover[T any](ctx context.Context, n *NetworkAPI, op string, providers []Provider, call func(Provider) (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)

	for _, p := range providers {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		start := time.Now()
		v, err := call(p)
		elapsed := time.Since(start)
		if err == nil {
			n.metrics.observeRequest(p.Name(), op, statusOK, elapsed)
			n.logger.Debug("NetworkAPI::"+op,
				zap.String("provider", p.Name()),
				zap.Duration("elapsed", elapsed))
			return v, nil
		}

		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		if !n.skip(p, op, err, elapsed) {
			return zero, err
		}
		lastErr = err
	}

	return zero, exhausted(lastErr)
}

// skip records a failed call and reports whether the walk should move on
func (n *NetworkAPI) skip(p Provider, op string, err error, elapsed time.Duration) bool {
	if IsProtocol(err) {
		n.metrics.observeRequest(p.Name(), op, statusProtocol, elapsed)
		n.logger.Warn("NetworkAPI::"+op+" malformed response",
			zap.String("provider", p.Name()),
			zap.Bool("strict", n.strictProtocol),
			zap.Error(err))
		return !n.strictProtocol
	}

	// unclassified errors are treated as transient
	n.metrics.observeRequest(p.Name(), op, statusTransient, elapsed)
	n.logger.Warn("NetworkAPI::"+op+" provider unreachable",
		zap.String("provider", p.Name()),
		zap.Error(err))
	return true
}

func exhausted(lastErr error) error {
	if lastErr == nil {
		return ErrAllProvidersUnreachable
	}
	return fmt.Errorf("%w: last error: %v", ErrAllProvidersUnreachable, lastErr)
}

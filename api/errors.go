package api

import (
	"errors"
	"fmt"
)

var (
	// ErrTransient marks a provider failure worth failing over: network error,
	// timeout or a non-2xx HTTP status
	ErrTransient = errors.New("provider unreachable")

	// ErrProtocol marks a response that arrived but did not have the expected shape
	ErrProtocol = errors.New("unexpected provider response")

	// ErrAllProvidersUnreachable is returned when every provider in the order failed
	ErrAllProvidersUnreachable = errors.New("all APIs are unreachable")

	// ErrBroadcastRejected is returned when at least one provider was reached and refused the transaction
	ErrBroadcastRejected = errors.New("transaction broadcast failed, or unspents were already used")
)

// ErrorKind classifies a provider failure
type ErrorKind int

const (
	KindTransient ErrorKind = iota + 1
	KindProtocol
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// ProviderError is the single classified failure an adapter returns.
// errors.Is matches it against ErrTransient or ErrProtocol according to Kind.
type ProviderError struct {
	Provider string
	Op       string
	Kind     ErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Provider, e.Op, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	switch target {
	case ErrTransient:
		return e.Kind == KindTransient
	case ErrProtocol:
		return e.Kind == KindProtocol
	}
	return false
}

// IsTransient reports whether err is a transient provider failure
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// IsProtocol reports whether err is a malformed provider response
func IsProtocol(err error) bool {
	return errors.Is(err, ErrProtocol)
}

func transientError(provider, op string, err error) error {
	return &ProviderError{Provider: provider, Op: op, Kind: KindTransient, Err: err}
}

func protocolError(provider, op string, err error) error {
	return &ProviderError{Provider: provider, Op: op, Kind: KindProtocol, Err: err}
}

func missingField(provider, op, field string) error {
	return protocolError(provider, op, fmt.Errorf("missing field %q", field))
}

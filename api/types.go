package api

import (
	"fmt"
	"math"

	"github.com/blockterms/lit/chains/litecoin"
	"github.com/shopspring/decimal"
)

// operation names, used in errors, logs and metric labels
const (
	OpBalance      = "balance"
	OpTransactions = "transactions"
	OpUnspent      = "unspent"
	OpBroadcast    = "broadcast"
	OpFee          = "fee"
	OpPrice        = "price"
)

// Unspent represents one unspent transaction output
type Unspent struct {
	Amount        int64  `json:"amount"`        // litoshi
	Confirmations int64  `json:"confirmations"` // 0 means unconfirmed
	Script        string `json:"script"`        // locking script, hex
	TxID          string `json:"txid"`
	Vout          uint32 `json:"vout"`
}

func (u Unspent) String() string {
	return fmt.Sprintf("%s:%d", u.TxID, u.Vout)
}

// newUnspent builds an Unspent from provider values, rejecting anything that
// breaks the record's invariants as a protocol error of that provider
func newUnspent(provider, op string, amount, confirmations int64, script, txid string, vout int64) (Unspent, error) {
	if amount < 0 {
		return Unspent{}, protocolError(provider, op, fmt.Errorf("negative amount %d", amount))
	}
	if confirmations < 0 {
		return Unspent{}, protocolError(provider, op, fmt.Errorf("negative confirmations %d", confirmations))
	}
	if vout < 0 || vout > math.MaxUint32 {
		return Unspent{}, protocolError(provider, op, fmt.Errorf("output index %d out of range", vout))
	}
	if err := litecoin.ValidateTxID(txid); err != nil {
		return Unspent{}, protocolError(provider, op, err)
	}

	return Unspent{
		Amount:        amount,
		Confirmations: confirmations,
		Script:        script,
		TxID:          txid,
		Vout:          uint32(vout),
	}, nil
}

// field pairs a provider field name with whether the response carried it
type field struct {
	name    string
	present bool
}

// requireFields returns a missing field error for the first absent field
func requireFields(provider, op string, fields ...field) error {
	for _, f := range fields {
		if !f.present {
			return missingField(provider, op, f.name)
		}
	}
	return nil
}

// toLitoshi converts a provider LTC amount, reporting a malformed value as a protocol error
func toLitoshi(provider, op, amount string) (int64, error) {
	litoshi, err := litecoin.LitecoinToLitoshi(amount)
	if err != nil {
		return 0, protocolError(provider, op, err)
	}
	return litoshi, nil
}

// FeeClass selects the confirmation target of a fee estimate
type FeeClass int

const (
	// FeeFast confirms in the next block or two
	FeeFast FeeClass = iota
	// FeeHour confirms within the hour
	FeeHour
)

func (c FeeClass) String() string {
	switch c {
	case FeeFast:
		return "fast"
	case FeeHour:
		return "hour"
	default:
		return fmt.Sprintf("FeeClass(%d)", int(c))
	}
}

// ParseFeeClass parses "fast" or "hour"
func ParseFeeClass(s string) (FeeClass, error) {
	switch s {
	case "fast", "":
		return FeeFast, nil
	case "hour", "slow":
		return FeeHour, nil
	default:
		return 0, fmt.Errorf("unknown fee class: %s. Use 'fast' or 'hour'", s)
	}
}

// PriceData represents cryptocurrency price information
type PriceData struct {
	Symbol   string          `json:"symbol"`
	Currency string          `json:"currency"`
	Price    decimal.Decimal `json:"price"`
}

package litecoin

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// ErrMalformedTx is returned when a raw transaction hex string cannot be decoded
var ErrMalformedTx = errors.New("malformed raw transaction")

// DecodeTx decodes a signed raw transaction in hex form.
// MWEB transactions are not understood by the wire codec and are rejected.
func DecodeTx(txHex string) (*wire.MsgTx, error) {
	raw, err := hex.DecodeString(txHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTx, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty transaction", ErrMalformedTx)
	}

	reader := bytes.NewReader(raw)
	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(reader); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTx, err)
	}

	if reader.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedTx, reader.Len())
	}

	return tx, nil
}

// TxID returns the transaction id of a signed raw transaction in hex form
func TxID(txHex string) (string, error) {
	tx, err := DecodeTx(txHex)
	if err != nil {
		return "", err
	}
	return tx.TxHash().String(), nil
}

// ValidateTxID checks that id is a 64 character hex transaction id
func ValidateTxID(id string) error {
	if len(id) != chainhash.MaxHashStringSize {
		return fmt.Errorf("invalid transaction id %q: want %d hex characters", id, chainhash.MaxHashStringSize)
	}

	if _, err := chainhash.NewHashFromStr(id); err != nil {
		return fmt.Errorf("invalid transaction id %q: %w", id, err)
	}

	return nil
}

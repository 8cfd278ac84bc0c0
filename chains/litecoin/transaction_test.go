package litecoin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTxHex = "01000000011111111111111111111111111111111111111111111111111111111111111111" +
		"0000000000ffffffff01e8030000000000000000000000"
	testTxID = "2954e7aee84e65022906924ac72e2cbb44d28baa3d364cc5c8269790cd30c1db"
)

func TestDecodeTx(t *testing.T) {
	tx, err := DecodeTx(testTxHex)
	require.NoError(t, err)

	assert.Equal(t, int32(1), tx.Version)
	require.Len(t, tx.TxIn, 1)
	require.Len(t, tx.TxOut, 1)
	assert.Equal(t, int64(1000), tx.TxOut[0].Value)
}

func TestTxID(t *testing.T) {
	id, err := TxID(testTxHex)
	require.NoError(t, err)
	assert.Equal(t, testTxID, id)
}

func TestDecodeTxMalformed(t *testing.T) {
	for name, txHex := range map[string]string{
		"empty":     "",
		"not hex":   "zz",
		"truncated": testTxHex[:40],
		"trailing":  testTxHex + "00",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeTx(txHex)
			assert.ErrorIs(t, err, ErrMalformedTx)
		})
	}
}

func TestValidateTxID(t *testing.T) {
	require.NoError(t, ValidateTxID(testTxID))

	assert.Error(t, ValidateTxID(""))
	assert.Error(t, ValidateTxID(testTxID[:63]))
	assert.Error(t, ValidateTxID(strings.Repeat("g", 64)))
}

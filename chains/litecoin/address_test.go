package litecoin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddressMainnet(t *testing.T) {
	for _, address := range []string{
		"LKKHMBjCU89fyFNgSRprDoD8Jb25N8uWvd",
		"M7zVKQKmtV5Rc7erVGVVC3khZbXxsS5HEX",
		"ltc1qqypqxpq9qcrsszg2pvxq6rs0zqg3yyc5dyg36p",
	} {
		addr, err := ParseAddress(address, &MainNetParams)
		require.NoError(t, err, address)
		assert.Equal(t, address, addr.EncodeAddress())
	}
}

func TestParseAddressTestnet(t *testing.T) {
	for _, address := range []string{
		"mfcHP2WMCVLsVZA8yrovmhMgxNFW9r98xw",
		"tltc1qqypqxpq9qcrsszg2pvxq6rs0zqg3yyc56ktcft",
	} {
		require.NoError(t, ValidateAddress(address, &TestNetParams), address)
	}
}

func TestValidateAddressWrongNetwork(t *testing.T) {
	// testnet address on mainnet
	assert.Error(t, ValidateAddress("mfcHP2WMCVLsVZA8yrovmhMgxNFW9r98xw", &MainNetParams))

	// bitcoin address
	assert.Error(t, ValidateAddress("16L5yRNPTuciSgXGHqYwn9N6NeoKqopAu", &MainNetParams))

	// mainnet bech32 on testnet
	assert.Error(t, ValidateAddress("ltc1qqypqxpq9qcrsszg2pvxq6rs0zqg3yyc5dyg36p", &TestNetParams))
}

func TestValidateAddressGarbage(t *testing.T) {
	assert.Error(t, ValidateAddress("", &MainNetParams))
	assert.Error(t, ValidateAddress("not-an-address", &MainNetParams))
	assert.Error(t, ValidateAddress("LKKHMBjCU89fyFNgSRprDoD8Jb25N8uWve", &MainNetParams))
}

package litecoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
)

// MainNetParams describes the Litecoin main network address encodings
var MainNetParams = chaincfg.Params{
	Name:        "litecoin-mainnet",
	Net:         wire.BitcoinNet(0xdbb6c0fb),
	DefaultPort: "9333",

	Bech32HRPSegwit: "ltc",

	PubKeyHashAddrID: 0x30, // starts with L
	ScriptHashAddrID: 0x32, // starts with M
	PrivateKeyID:     0xb0,

	HDPrivateKeyID: [4]byte{0x01, 0x9d, 0x9c, 0xfe}, // Ltpv
	HDPublicKeyID:  [4]byte{0x01, 0x9d, 0xa4, 0x62}, // Ltub
	HDCoinType:     2,
}

// TestNetParams describes the Litecoin test network (testnet4) address encodings
var TestNetParams = chaincfg.Params{
	Name:        "litecoin-testnet4",
	Net:         wire.BitcoinNet(0xf1c8d2fd),
	DefaultPort: "19335",

	Bech32HRPSegwit: "tltc",

	PubKeyHashAddrID: 0x6f, // starts with m or n
	ScriptHashAddrID: 0x3a, // starts with Q
	PrivateKeyID:     0xef,

	HDPrivateKeyID: [4]byte{0x04, 0x36, 0xef, 0x7d}, // ttpv
	HDPublicKeyID:  [4]byte{0x04, 0x36, 0xf6, 0xe1}, // ttub
	HDCoinType:     1,
}

func init() {
	// btcutil only recognises bech32 prefixes of registered networks
	for _, params := range []*chaincfg.Params{&MainNetParams, &TestNetParams} {
		if err := chaincfg.Register(params); err != nil {
			panic(fmt.Sprintf("failed to register %s params: %v", params.Name, err))
		}
	}
}

// ParseAddress parses a Litecoin address for the given network
func ParseAddress(address string, params *chaincfg.Params) (btcutil.Address, error) {
	addr, err := btcutil.DecodeAddress(address, params)
	if err != nil {
		return nil, fmt.Errorf("invalid address %q: %w", address, err)
	}

	if !addr.IsForNet(params) {
		return nil, fmt.Errorf("address %q is not for %s", address, params.Name)
	}

	return addr, nil
}

// ValidateAddress validates a Litecoin address for the given network
func ValidateAddress(address string, params *chaincfg.Params) error {
	_, err := ParseAddress(address, params)
	return err
}

package api

import "fmt"

// network type constants
const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

// explorer endpoints
const (
	// insight (litecore) explorers
	MainnetInsightAPI = "https://insight.litecore.io/api/"
	TestnetInsightAPI = "https://testnet.litecore.io/api/"

	// bitpay's insight fork
	MainnetBitpayAPI = "https://insight.bitpay.com/api/"
	TestnetBitpayAPI = "https://test-insight.bitpay.com/api/"

	// blockchain.info has no test network
	MainnetBlockchainAPI = "https://blockchain.info/"

	MainnetSmartbitAPI = "https://api.smartbit.com.au/v1/blockchain/"
	TestnetSmartbitAPI = "https://testnet-api.smartbit.com.au/v1/blockchain/"

	// sochain serves both networks from one endpoint
	SoChainEndpoint = "https://chain.so/api/v2/"
)

// fee and price endpoints
const (
	BlockCypherLitecoinAPI = "https://api.blockcypher.com/v1/ltc/main"
	CoinGeckoAPI           = "https://api.coingecko.com/api/v3/"
)

func checkNetwork(network string) error {
	if network != NetworkMainnet && network != NetworkTestnet {
		return fmt.Errorf("invalid network: %s", network)
	}
	return nil
}

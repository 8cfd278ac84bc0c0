package api

// Litecoin network services-
//
// Files:
//   config.go      - network names and service endpoints
//   types.go       - Unspent, FeeClass, PriceData and operation names
//   errors.go      - ProviderError and the failover sentinels
//   settings.go    - process-wide timeout and fee cache ttl
//   base.go        - shared HTTP client (requests, classification, price lookup)
//   provider.go    - Provider interface, factory and per-operation Order
//   insight.go     - Insight and bitpay explorers
//   blockchain.go  - blockchain.info
//   smartbit.go    - smartbit
//   sochain.go     - chain.so
//   network.go     - NetworkAPI failover across providers
//   blockcypher.go - upstream fee estimates
//   fees.go        - FeeCache
//   metrics.go     - prometheus collectors
//
// Usage:
//   client := api.NewClient(api.NewSettings())
//   order, err := api.DefaultOrder(client, api.NetworkMainnet)
//   network := api.NewNetworkAPI(client, order)
//   balance, err := network.GetBalance(ctx, address)            // litoshi
//   err = network.BroadcastTx(ctx, txHex)
//   fees := api.NewFeeCache(api.NewBlockCypherAPI(client, ""), client.Settings())
//   fee := fees.GetFee(ctx, api.FeeFast)

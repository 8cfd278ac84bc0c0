package api

import (
	"context"
	"fmt"
)

// Provider is one explorer service bound to one network
type Provider interface {
	Name() string
	// GetBalance returns the confirmed balance in litoshi
	GetBalance(ctx context.Context, address string) (int64, error)
	// GetTransactions returns transaction ids touching address, newest first
	// where the service orders them
	GetTransactions(ctx context.Context, address string) ([]string, error)
	GetUnspent(ctx context.Context, address string) ([]Unspent, error)
	// BroadcastTx reports whether the service accepted the transaction.
	// An error means the service could not be reached.
	BroadcastTx(ctx context.Context, txHex string) (bool, error)
}

// provider names
const (
	ProviderInsight    = "insight"
	ProviderBitpay     = "bitpay"
	ProviderBlockchain = "blockchain"
	ProviderSmartbit   = "smartbit"
	ProviderSoChain    = "sochain"
)

// ProviderNames lists every name NewProvider accepts
func ProviderNames() []string {
	return []string{ProviderInsight, ProviderBitpay, ProviderBlockchain, ProviderSmartbit, ProviderSoChain}
}

// NewProvider creates the named adapter for network. A non-empty baseURL
// replaces the service's built-in endpoint.
func NewProvider(client *Client, name, network, baseURL string) (Provider, error) {
	if err := checkNetwork(network); err != nil {
		return nil, err
	}

	switch name {
	case ProviderInsight:
		return NewInsightAPI(client, network, baseURL), nil
	case ProviderBitpay:
		return NewBitpayAPI(client, network, baseURL), nil
	case ProviderBlockchain:
		if network == NetworkTestnet && baseURL == "" {
			return nil, fmt.Errorf("%s is not supported in testnet mode", name)
		}
		return NewBlockchainAPI(client, baseURL), nil
	case ProviderSmartbit:
		return NewSmartbitAPI(client, network, baseURL), nil
	case ProviderSoChain:
		return NewSoChainAPI(client, network, baseURL), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
}

// Order holds the provider priority list of each operation, highest
// priority first
type Order struct {
	Balance      []Provider
	Transactions []Provider
	Unspent      []Provider
	Broadcast    []Provider
}

func (o Order) clone() Order {
	return Order{
		Balance:      append([]Provider(nil), o.Balance...),
		Transactions: append([]Provider(nil), o.Transactions...),
		Unspent:      append([]Provider(nil), o.Unspent...),
		Broadcast:    append([]Provider(nil), o.Broadcast...),
	}
}

// Names returns the provider names of each list, for display
func (o Order) Names() map[string][]string {
	names := func(ps []Provider) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.Name())
		}
		return out
	}
	return map[string][]string{
		OpBalance:      names(o.Balance),
		OpTransactions: names(o.Transactions),
		OpUnspent:      names(o.Unspent),
		OpBroadcast:    names(o.Broadcast),
	}
}

// OrderNames is an Order spelled with provider names, as read from configuration
type OrderNames struct {
	Balance      []string
	Transactions []string
	Unspent      []string
	Broadcast    []string
}

// defaultNames are the services that serve Litecoin on both networks
var defaultNames = []string{ProviderSoChain, ProviderInsight}

// DefaultOrder returns the built-in order for network
func DefaultOrder(client *Client, network string) (Order, error) {
	return OrderFromNames(client, network, OrderNames{}, nil)
}

// OrderFromNames builds an Order from provider names. An empty list falls
// back to the built-in order for that operation. endpoints maps a provider
// name to a base URL override.
func OrderFromNames(client *Client, network string, names OrderNames, endpoints map[string]string) (Order, error) {
	built := make(map[string]Provider)

	resolve := func(list []string) ([]Provider, error) {
		if len(list) == 0 {
			list = defaultNames
		}
		out := make([]Provider, 0, len(list))
		for _, name := range list {
			p, ok := built[name]
			if !ok {
				var err error
				p, err = NewProvider(client, name, network, endpoints[name])
				if err != nil {
					return nil, err
				}
				built[name] = p
			}
			out = append(out, p)
		}
		return out, nil
	}

	var (
		o   Order
		err error
	)
	if o.Balance, err = resolve(names.Balance); err != nil {
		return Order{}, fmt.Errorf("balance order: %w", err)
	}
	if o.Transactions, err = resolve(names.Transactions); err != nil {
		return Order{}, fmt.Errorf("transactions order: %w", err)
	}
	if o.Unspent, err = resolve(names.Unspent); err != nil {
		return Order{}, fmt.Errorf("unspent order: %w", err)
	}
	if o.Broadcast, err = resolve(names.Broadcast); err != nil {
		return Order{}, fmt.Errorf("broadcast order: %w", err)
	}
	return o, nil
}

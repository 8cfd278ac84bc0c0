package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// InsightAPI talks to an Insight explorer. The litecore instance is used
// unless another base URL is given.
type InsightAPI struct {
	client  *Client
	name    string
	baseURL string
}

// NewInsightAPI creates an Insight adapter for network
func NewInsightAPI(client *Client, network, baseURL string) *InsightAPI {
	if baseURL == "" {
		baseURL = MainnetInsightAPI
		if network == NetworkTestnet {
			baseURL = TestnetInsightAPI
		}
	}
	return &InsightAPI{client: client, name: ProviderInsight, baseURL: baseURL}
}

// BitpayAPI is bitpay's Insight deployment
type BitpayAPI struct {
	InsightAPI
}

func NewBitpayAPI(client *Client, network, baseURL string) *BitpayAPI {
	if baseURL == "" {
		baseURL = MainnetBitpayAPI
		if network == NetworkTestnet {
			baseURL = TestnetBitpayAPI
		}
	}
	return &BitpayAPI{InsightAPI{client: client, name: ProviderBitpay, baseURL: baseURL}}
}

func (i *InsightAPI) Name() string {
	return i.name
}

// GetBalance fetches the balance, returned by Insight as a bare integer
func (i *InsightAPI) GetBalance(ctx context.Context, address string) (int64, error) {
	var balance json.Number
	if err := i.client.getJSON(ctx, i.name, OpBalance, i.addrURL(address)+"/balance", &balance); err != nil {
		return 0, err
	}

	litoshi, err := balance.Int64()
	if err != nil || litoshi < 0 {
		return 0, protocolError(i.name, OpBalance, fmt.Errorf("invalid balance %q", balance))
	}
	return litoshi, nil
}

func (i *InsightAPI) GetTransactions(ctx context.Context, address string) ([]string, error) {
	var result struct {
		Transactions []string `json:"transactions"`
	}
	if err := i.client.getJSON(ctx, i.name, OpTransactions, i.addrURL(address), &result); err != nil {
		return nil, err
	}
	if result.Transactions == nil {
		return nil, missingField(i.name, OpTransactions, "transactions")
	}
	return result.Transactions, nil
}

func (i *InsightAPI) GetUnspent(ctx context.Context, address string) ([]Unspent, error) {
	var result []struct {
		Amount        *json.Number `json:"amount"`
		Confirmations *int64       `json:"confirmations"`
		ScriptPubKey  *string      `json:"scriptPubKey"`
		TxID          string       `json:"txid"`
		Vout          *int64       `json:"vout"`
	}
	if err := i.client.getJSON(ctx, i.name, OpUnspent, i.addrURL(address)+"/utxo", &result); err != nil {
		return nil, err
	}

	unspents := make([]Unspent, 0, len(result))
	for _, tx := range result {
		err := requireFields(i.name, OpUnspent,
			field{"amount", tx.Amount != nil},
			field{"confirmations", tx.Confirmations != nil},
			field{"scriptPubKey", tx.ScriptPubKey != nil},
			field{"vout", tx.Vout != nil})
		if err != nil {
			return nil, err
		}
		amount, err := toLitoshi(i.name, OpUnspent, tx.Amount.String())
		if err != nil {
			return nil, err
		}
		u, err := newUnspent(i.name, OpUnspent, amount, *tx.Confirmations, *tx.ScriptPubKey, tx.TxID, *tx.Vout)
		if err != nil {
			return nil, err
		}
		unspents = append(unspents, u)
	}
	return unspents, nil
}

func (i *InsightAPI) BroadcastTx(ctx context.Context, txHex string) (bool, error) {
	status, body, err := i.client.postForm(ctx, i.name, OpBroadcast, i.baseURL+"tx/send", url.Values{"rawtx": {txHex}})
	if err != nil {
		return false, err
	}
	return i.client.accepted(i.name, status, body), nil
}

func (i *InsightAPI) addrURL(address string) string {
	return i.baseURL + "addr/" + url.PathEscape(address)
}

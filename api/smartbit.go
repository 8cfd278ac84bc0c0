package api

import (
	"context"
	"fmt"
	"net/url"
)

// SmartbitAPI talks to the smartbit explorer
type SmartbitAPI struct {
	client  *Client
	baseURL string
}

func NewSmartbitAPI(client *Client, network, baseURL string) *SmartbitAPI {
	if baseURL == "" {
		baseURL = MainnetSmartbitAPI
		if network == NetworkTestnet {
			baseURL = TestnetSmartbitAPI
		}
	}
	return &SmartbitAPI{client: client, baseURL: baseURL}
}

func (s *SmartbitAPI) Name() string {
	return ProviderSmartbit
}

func (s *SmartbitAPI) GetBalance(ctx context.Context, address string) (int64, error) {
	var result struct {
		Address *struct {
			Total *struct {
				BalanceInt *int64 `json:"balance_int"`
			} `json:"total"`
		} `json:"address"`
	}
	if err := s.client.getJSON(ctx, ProviderSmartbit, OpBalance, s.addressURL(address)+"?limit=1", &result); err != nil {
		return 0, err
	}
	if result.Address == nil || result.Address.Total == nil || result.Address.Total.BalanceInt == nil {
		return 0, missingField(ProviderSmartbit, OpBalance, "address.total.balance_int")
	}
	if *result.Address.Total.BalanceInt < 0 {
		return 0, protocolError(ProviderSmartbit, OpBalance, fmt.Errorf("negative balance %d", *result.Address.Total.BalanceInt))
	}
	return *result.Address.Total.BalanceInt, nil
}

// GetTransactions returns up to 1000 transactions. An address the service
// has never seen comes back without a transactions list.
func (s *SmartbitAPI) GetTransactions(ctx context.Context, address string) ([]string, error) {
	var result struct {
		Address *struct {
			Transactions []struct {
				Hash string `json:"hash"`
			} `json:"transactions"`
		} `json:"address"`
	}
	if err := s.client.getJSON(ctx, ProviderSmartbit, OpTransactions, s.addressURL(address)+"?limit=1000", &result); err != nil {
		return nil, err
	}
	if result.Address == nil {
		return nil, missingField(ProviderSmartbit, OpTransactions, "address")
	}

	transactions := make([]string, 0, len(result.Address.Transactions))
	for _, tx := range result.Address.Transactions {
		transactions = append(transactions, tx.Hash)
	}
	return transactions, nil
}

func (s *SmartbitAPI) GetUnspent(ctx context.Context, address string) ([]Unspent, error) {
	var result struct {
		Unspent []struct {
			Value         *string `json:"value"`
			Confirmations *int64  `json:"confirmations"`
			ScriptPubKey  *struct {
				Hex *string `json:"hex"`
			} `json:"script_pub_key"`
			TxID string `json:"txid"`
			N    *int64 `json:"n"`
		} `json:"unspent"`
	}
	if err := s.client.getJSON(ctx, ProviderSmartbit, OpUnspent, s.addressURL(address)+"/unspent?limit=1000", &result); err != nil {
		return nil, err
	}
	if result.Unspent == nil {
		return nil, missingField(ProviderSmartbit, OpUnspent, "unspent")
	}

	unspents := make([]Unspent, 0, len(result.Unspent))
	for _, tx := range result.Unspent {
		err := requireFields(ProviderSmartbit, OpUnspent,
			field{"value", tx.Value != nil},
			field{"confirmations", tx.Confirmations != nil},
			field{"script_pub_key.hex", tx.ScriptPubKey != nil && tx.ScriptPubKey.Hex != nil},
			field{"n", tx.N != nil})
		if err != nil {
			return nil, err
		}
		amount, err := toLitoshi(ProviderSmartbit, OpUnspent, *tx.Value)
		if err != nil {
			return nil, err
		}
		u, err := newUnspent(ProviderSmartbit, OpUnspent, amount, *tx.Confirmations, *tx.ScriptPubKey.Hex, tx.TxID, *tx.N)
		if err != nil {
			return nil, err
		}
		unspents = append(unspents, u)
	}
	return unspents, nil
}

func (s *SmartbitAPI) BroadcastTx(ctx context.Context, txHex string) (bool, error) {
	payload := map[string]string{"hex": txHex}

	status, body, err := s.client.postJSON(ctx, ProviderSmartbit, OpBroadcast, s.baseURL+"pushtx", payload)
	if err != nil {
		return false, err
	}
	return s.client.accepted(ProviderSmartbit, status, body), nil
}

func (s *SmartbitAPI) addressURL(address string) string {
	return s.baseURL + "address/" + url.PathEscape(address)
}

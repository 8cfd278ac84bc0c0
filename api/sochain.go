package api

import (
	"context"
	"net/url"
)

// SoChainAPI talks to chain.so, which serves both networks and names them
// LTC and LTCTEST
type SoChainAPI struct {
	client  *Client
	baseURL string
	network string
}

func NewSoChainAPI(client *Client, network, baseURL string) *SoChainAPI {
	if baseURL == "" {
		baseURL = SoChainEndpoint
	}
	net := "LTC"
	if network == NetworkTestnet {
		net = "LTCTEST"
	}
	return &SoChainAPI{client: client, baseURL: baseURL, network: net}
}

func (s *SoChainAPI) Name() string {
	return ProviderSoChain
}

// GetBalance fetches the confirmed balance, reported by chain.so in LTC
func (s *SoChainAPI) GetBalance(ctx context.Context, address string) (int64, error) {
	var result struct {
		Data *struct {
			ConfirmedBalance *string `json:"confirmed_balance"`
		} `json:"data"`
	}
	if err := s.client.getJSON(ctx, ProviderSoChain, OpBalance, s.url("get_address_balance", address), &result); err != nil {
		return 0, err
	}
	if result.Data == nil || result.Data.ConfirmedBalance == nil {
		return 0, missingField(ProviderSoChain, OpBalance, "data.confirmed_balance")
	}
	return toLitoshi(ProviderSoChain, OpBalance, *result.Data.ConfirmedBalance)
}

func (s *SoChainAPI) GetTransactions(ctx context.Context, address string) ([]string, error) {
	var result struct {
		Data *struct {
			Txs []struct {
				TxID string `json:"txid"`
			} `json:"txs"`
		} `json:"data"`
	}
	if err := s.client.getJSON(ctx, ProviderSoChain, OpTransactions, s.url("address", address), &result); err != nil {
		return nil, err
	}
	if result.Data == nil || result.Data.Txs == nil {
		return nil, missingField(ProviderSoChain, OpTransactions, "data.txs")
	}

	transactions := make([]string, 0, len(result.Data.Txs))
	for _, tx := range result.Data.Txs {
		transactions = append(transactions, tx.TxID)
	}
	return transactions, nil
}

func (s *SoChainAPI) GetUnspent(ctx context.Context, address string) ([]Unspent, error) {
	var result struct {
		Data *struct {
			Txs []struct {
				Value         *string `json:"value"`
				Confirmations *int64  `json:"confirmations"`
				ScriptHex     *string `json:"script_hex"`
				TxID          string  `json:"txid"`
				OutputNo      *int64  `json:"output_no"`
			} `json:"txs"`
		} `json:"data"`
	}
	if err := s.client.getJSON(ctx, ProviderSoChain, OpUnspent, s.url("get_tx_unspent", address), &result); err != nil {
		return nil, err
	}
	if result.Data == nil || result.Data.Txs == nil {
		return nil, missingField(ProviderSoChain, OpUnspent, "data.txs")
	}

	unspents := make([]Unspent, 0, len(result.Data.Txs))
	for _, tx := range result.Data.Txs {
		err := requireFields(ProviderSoChain, OpUnspent,
			field{"value", tx.Value != nil},
			field{"confirmations", tx.Confirmations != nil},
			field{"script_hex", tx.ScriptHex != nil},
			field{"output_no", tx.OutputNo != nil})
		if err != nil {
			return nil, err
		}
		amount, err := toLitoshi(ProviderSoChain, OpUnspent, *tx.Value)
		if err != nil {
			return nil, err
		}
		u, err := newUnspent(ProviderSoChain, OpUnspent, amount, *tx.Confirmations, *tx.ScriptHex, tx.TxID, *tx.OutputNo)
		if err != nil {
			return nil, err
		}
		unspents = append(unspents, u)
	}
	return unspents, nil
}

func (s *SoChainAPI) BroadcastTx(ctx context.Context, txHex string) (bool, error) {
	status, body, err := s.client.postForm(ctx, ProviderSoChain, OpBroadcast,
		s.baseURL+"send_tx/"+s.network+"/", url.Values{"tx_hex": {txHex}})
	if err != nil {
		return false, err
	}
	return s.client.accepted(ProviderSoChain, status, body), nil
}

func (s *SoChainAPI) url(endpoint, address string) string {
	return s.baseURL + endpoint + "/" + s.network + "/" + url.PathEscape(address)
}

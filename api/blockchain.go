package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
)

// blockchain.info returns at most this many transactions per address page
const blockchainTxsPerPage = 50

// BlockchainAPI talks to blockchain.info. It has no test network.
type BlockchainAPI struct {
	client  *Client
	baseURL string
}

func NewBlockchainAPI(client *Client, baseURL string) *BlockchainAPI {
	if baseURL == "" {
		baseURL = MainnetBlockchainAPI
	}
	return &BlockchainAPI{client: client, baseURL: baseURL}
}

func (b *BlockchainAPI) Name() string {
	return ProviderBlockchain
}

// GetBalance fetches the final balance without any transactions attached
func (b *BlockchainAPI) GetBalance(ctx context.Context, address string) (int64, error) {
	var result struct {
		FinalBalance *int64 `json:"final_balance"`
	}
	if err := b.client.getJSON(ctx, ProviderBlockchain, OpBalance, b.addressURL(address)+"&limit=0", &result); err != nil {
		return 0, err
	}
	if result.FinalBalance == nil {
		return 0, missingField(ProviderBlockchain, OpBalance, "final_balance")
	}
	if *result.FinalBalance < 0 {
		return 0, protocolError(ProviderBlockchain, OpBalance, fmt.Errorf("negative balance %d", *result.FinalBalance))
	}
	return *result.FinalBalance, nil
}

// GetTransactions walks every page of the address history
func (b *BlockchainAPI) GetTransactions(ctx context.Context, address string) ([]string, error) {
	var transactions []string

	for offset := 0; ; offset += blockchainTxsPerPage {
		var page struct {
			NTx *int `json:"n_tx"`
			Txs []struct {
				Hash string `json:"hash"`
			} `json:"txs"`
		}
		pageURL := b.addressURL(address) + "&offset=" + strconv.Itoa(offset)
		if err := b.client.getJSON(ctx, ProviderBlockchain, OpTransactions, pageURL, &page); err != nil {
			return nil, err
		}
		if page.NTx == nil {
			return nil, missingField(ProviderBlockchain, OpTransactions, "n_tx")
		}

		for _, tx := range page.Txs {
			transactions = append(transactions, tx.Hash)
		}

		// an empty page ends the walk even if n_tx promised more
		if len(page.Txs) == 0 || offset+blockchainTxsPerPage >= *page.NTx {
			break
		}
	}

	if transactions == nil {
		transactions = []string{}
	}
	return transactions, nil
}

// GetUnspent fetches unspent outputs. blockchain.info answers 500 when the
// address has none.
func (b *BlockchainAPI) GetUnspent(ctx context.Context, address string) ([]Unspent, error) {
	status, body, err := b.client.do(ctx, ProviderBlockchain, OpUnspent, http.MethodGet,
		b.baseURL+"unspent?active="+url.QueryEscape(address), nil, "")
	if err != nil {
		return nil, err
	}
	if status == http.StatusInternalServerError {
		return []Unspent{}, nil
	}
	if !isSuccess(status) {
		return nil, statusError(ProviderBlockchain, OpUnspent, status, body)
	}

	var result struct {
		UnspentOutputs []struct {
			Value           *int64  `json:"value"`
			Confirmations   *int64  `json:"confirmations"`
			Script          *string `json:"script"`
			TxHashBigEndian string  `json:"tx_hash_big_endian"`
			TxOutputN       *int64  `json:"tx_output_n"`
		} `json:"unspent_outputs"`
	}
	if err := decodeJSON(ProviderBlockchain, OpUnspent, body, &result); err != nil {
		return nil, err
	}
	if result.UnspentOutputs == nil {
		return nil, missingField(ProviderBlockchain, OpUnspent, "unspent_outputs")
	}

	unspents := make([]Unspent, 0, len(result.UnspentOutputs))
	for _, tx := range result.UnspentOutputs {
		err := requireFields(ProviderBlockchain, OpUnspent,
			field{"value", tx.Value != nil},
			field{"confirmations", tx.Confirmations != nil},
			field{"script", tx.Script != nil},
			field{"tx_output_n", tx.TxOutputN != nil})
		if err != nil {
			return nil, err
		}
		u, err := newUnspent(ProviderBlockchain, OpUnspent, *tx.Value, *tx.Confirmations, *tx.Script, tx.TxHashBigEndian, *tx.TxOutputN)
		if err != nil {
			return nil, err
		}
		unspents = append(unspents, u)
	}

	// the service lists outputs in reverse
	slices.Reverse(unspents)
	return unspents, nil
}

func (b *BlockchainAPI) BroadcastTx(ctx context.Context, txHex string) (bool, error) {
	status, body, err := b.client.postForm(ctx, ProviderBlockchain, OpBroadcast, b.baseURL+"pushtx", url.Values{"tx": {txHex}})
	if err != nil {
		return false, err
	}
	return b.client.accepted(ProviderBlockchain, status, body), nil
}

func (b *BlockchainAPI) addressURL(address string) string {
	return b.baseURL + "address/" + url.PathEscape(address) + "?format=json"
}

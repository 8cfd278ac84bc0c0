package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// feeFactor rescales blockcypher's per-kb figures
var feeFactor = decimal.New(1, -4)

// BlockCypherAPI reads fee estimates from blockcypher. Only the main
// network is published for Litecoin.
type BlockCypherAPI struct {
	client *Client
	url    string
}

// NewBlockCypherAPI creates a fee source. An empty url uses the public endpoint.
func NewBlockCypherAPI(client *Client, url string) *BlockCypherAPI {
	if url == "" {
		url = BlockCypherLitecoinAPI
	}
	return &BlockCypherAPI{client: client, url: url}
}

// GetFee fetches the recommended fee for class without caching
func (b *BlockCypherAPI) GetFee(ctx context.Context, class FeeClass) (decimal.Decimal, error) {
	var result struct {
		HighFeePerKb *json.Number `json:"high_fee_per_kb"`
		LowFeePerKb  *json.Number `json:"low_fee_per_kb"`
	}
	if err := b.client.getJSON(ctx, "blockcypher", OpFee, b.url, &result); err != nil {
		return decimal.Zero, err
	}

	field, name := result.HighFeePerKb, "high_fee_per_kb"
	if class == FeeHour {
		field, name = result.LowFeePerKb, "low_fee_per_kb"
	}
	if field == nil {
		return decimal.Zero, missingField("blockcypher", OpFee, name)
	}

	perKb, err := decimal.NewFromString(field.String())
	if err != nil {
		return decimal.Zero, protocolError("blockcypher", OpFee, fmt.Errorf("failed to parse %s: %w", name, err))
	}
	if perKb.IsNegative() {
		return decimal.Zero, protocolError("blockcypher", OpFee, fmt.Errorf("negative %s %s", name, perKb))
	}

	return perKb.Mul(feeFactor), nil
}

package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAddress        = "LKKHMBjCU89fyFNgSRprDoD8Jb25N8uWvd"
	testTestnetAddress = "mfcHP2WMCVLsVZA8yrovmhMgxNFW9r98xw"
	testTxID           = "2954e7aee84e65022906924ac72e2cbb44d28baa3d364cc5c8269790cd30c1db"
	testTxID2          = "abababababababababababababababababababababababababababababababab"
	testTxHex          = "010000000111111111111111111111111111111111111111111111111111111111111111110000000000ffffffff01e8030000000000000000000000"
)

// newMockClient returns a Client whose requests are served by a fresh httpmock transport
func newMockClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()

	mt := httpmock.NewMockTransport()
	return NewClient(NewSettings(), WithHTTPClient(&http.Client{Transport: mt})), mt
}

func TestClientGetJSONClassification(t *testing.T) {
	const u = "https://example.test/thing"

	t.Run("non-2xx is transient", func(t *testing.T) {
		c, mt := newMockClient(t)
		mt.RegisterResponder(http.MethodGet, u, httpmock.NewStringResponder(503, "busy"))

		var out map[string]interface{}
		err := c.getJSON(context.Background(), "example", OpBalance, u, &out)
		require.Error(t, err)
		assert.True(t, IsTransient(err))
		assert.Contains(t, err.Error(), "503")

		var perr *ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "example", perr.Provider)
		assert.Equal(t, OpBalance, perr.Op)
	})

	t.Run("network failure is transient", func(t *testing.T) {
		c, mt := newMockClient(t)
		mt.RegisterResponder(http.MethodGet, u, httpmock.NewErrorResponder(assert.AnError))

		var out map[string]interface{}
		err := c.getJSON(context.Background(), "example", OpBalance, u, &out)
		assert.True(t, IsTransient(err))
		assert.False(t, IsProtocol(err))
	})

	t.Run("bad json is protocol", func(t *testing.T) {
		c, mt := newMockClient(t)
		mt.RegisterResponder(http.MethodGet, u, httpmock.NewStringResponder(200, "<html>"))

		var out map[string]interface{}
		err := c.getJSON(context.Background(), "example", OpBalance, u, &out)
		assert.True(t, IsProtocol(err))
		assert.False(t, IsTransient(err))
	})
}

func TestClientTimeout(t *testing.T) {
	const u = "https://example.test/slow"

	c, mt := newMockClient(t)
	c.Settings().SetTimeout(20 * time.Millisecond)
	mt.RegisterResponder(http.MethodGet, u, func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})

	start := time.Now()
	var out map[string]interface{}
	err := c.getJSON(context.Background(), "example", OpBalance, u, &out)
	assert.True(t, IsTransient(err))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestClientGetPrice(t *testing.T) {
	c, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, CoinGeckoAPI+"simple/price?ids=litecoin&vs_currencies=usd",
		httpmock.NewStringResponder(200, `{"litecoin":{"usd":71.23}}`))

	price, err := c.GetPrice(context.Background(), "litecoin", "USD")
	require.NoError(t, err)
	assert.Equal(t, "usd", price.Currency)
	assert.True(t, decimal.RequireFromString("71.23").Equal(price.Price))

	_, err = c.GetPrice(context.Background(), "dogecoin", "usd")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	long := make([]byte, maxLoggedBody+10)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, truncate(long), maxLoggedBody+3)
	assert.Equal(t, "short", truncate([]byte(" short\n")))
}

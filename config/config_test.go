package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, NetworkMainnet, c.Network)
	assert.Equal(t, DefaultTimeout, c.Timeout)
	assert.Equal(t, DefaultFeeCacheTTL, c.FeeCacheTTL)
	assert.Equal(t, DefaultLogLevel, c.LogLevel)
	assert.False(t, c.StrictProtocol)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
network: testnet
timeout: 3s
fee_cache_ttl: 1m
strict_protocol: true
providers:
  testnet:
    balance: [smartbit, sochain]
    broadcast: [sochain]
endpoints:
  insight:
    testnet: http://localhost:3001/api/
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	c, err := Load(path)
	require.NoError(t, err)

	assert.True(t, c.IsTestnet())
	assert.Equal(t, 3*time.Second, c.Timeout)
	assert.Equal(t, time.Minute, c.FeeCacheTTL)
	assert.True(t, c.StrictProtocol)
	assert.Equal(t, DefaultLogLevel, c.LogLevel)

	order := c.OrderFor(NetworkTestnet)
	assert.Equal(t, []string{"smartbit", "sochain"}, order.Balance)
	assert.Equal(t, []string{"sochain"}, order.Broadcast)
	assert.Empty(t, order.Unspent)
	assert.Empty(t, c.OrderFor(NetworkMainnet).Balance)

	assert.Equal(t, "http://localhost:3001/api/", c.EndpointFor("insight", NetworkTestnet))
	assert.Equal(t, "", c.EndpointFor("insight", NetworkMainnet))
	assert.Equal(t, "", c.EndpointFor("sochain", NetworkTestnet))
}

func TestLoadInvalid(t *testing.T) {
	for name, data := range map[string]string{
		"bad network":  "network: regtest\n",
		"bad timeout":  "timeout: -1s\n",
		"bad level":    "log_level: loud\n",
		"invalid yaml": "network: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(data), 0600))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	c := Default()
	c.Network = NetworkTestnet
	c.FeeCacheTTL = 30 * time.Second
	c.Providers.Mainnet.Unspent = []string{"insight", "blockchain"}

	require.NoError(t, Save(path, c))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestSaveRejectsInvalid(t *testing.T) {
	c := Default()
	c.Network = "moonnet"
	assert.Error(t, Save(filepath.Join(t.TempDir(), "config.yaml"), c))
}

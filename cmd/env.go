package cmd

import (
	"fmt"
	"os"

	"github.com/blockterms/lit/api"
	"github.com/blockterms/lit/chains/litecoin"
	"github.com/blockterms/lit/config"
	"github.com/blockterms/lit/logging"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// environment is everything a command needs, built from the config file
// and the global flags
type environment struct {
	cfg        *config.Config
	configPath string
	network    string
	logger     *zap.Logger
	client     *api.Client
	metrics    *api.Metrics
	registry   *prometheus.Registry
}

func newEnvironment(cmd *cobra.Command) (*environment, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	network := cfg.Network
	if testnet, _ := cmd.Flags().GetBool("testnet"); testnet {
		network = config.NetworkTestnet
	}
	timeout := cfg.Timeout
	if t, _ := cmd.Flags().GetDuration("timeout"); t > 0 {
		timeout = t
	}

	level := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	logger, err := logging.NewLogger(level, "console")
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	settings := api.NewSettings()
	settings.SetTimeout(timeout)
	settings.SetFeeCacheTTL(cfg.FeeCacheTTL)

	env := &environment{
		cfg:        cfg,
		configPath: path,
		network:    network,
		logger:     logger,
		client:     api.NewClient(settings, api.WithLogger(logger)),
	}

	if withMetrics, _ := cmd.Flags().GetBool("metrics"); withMetrics {
		env.registry = prometheus.NewRegistry()
		env.metrics = api.NewMetrics(env.registry)
	}

	return env, nil
}

func (e *environment) isTestnet() bool {
	return e.network == config.NetworkTestnet
}

func (e *environment) params() *chaincfg.Params {
	if e.isTestnet() {
		return &litecoin.TestNetParams
	}
	return &litecoin.MainNetParams
}

// networkAPI builds the failover orchestrator for the selected network
func (e *environment) networkAPI() (*api.NetworkAPI, error) {
	order, err := e.order()
	if err != nil {
		return nil, err
	}
	return api.NewNetworkAPI(e.client, order,
		api.WithStrictProtocol(e.cfg.StrictProtocol),
		api.WithMetrics(e.metrics)), nil
}

func (e *environment) order() (api.Order, error) {
	names := e.cfg.OrderFor(e.network)

	endpoints := make(map[string]string)
	for name := range e.cfg.Endpoints {
		if u := e.cfg.EndpointFor(name, e.network); u != "" {
			endpoints[name] = u
		}
	}

	order, err := api.OrderFromNames(e.client, e.network, api.OrderNames{
		Balance:      names.Balance,
		Transactions: names.Transactions,
		Unspent:      names.Unspent,
		Broadcast:    names.Broadcast,
	}, endpoints)
	if err != nil {
		return api.Order{}, fmt.Errorf("invalid provider order: %w", err)
	}
	return order, nil
}

func (e *environment) feeCache() *api.FeeCache {
	opts := []api.FeeCacheOption{
		api.WithFeeLogger(e.logger),
		api.WithFeeMetrics(e.metrics),
	}
	if e.cfg.FeeSingleFlight {
		opts = append(opts, api.WithSingleFlight())
	}
	return api.NewFeeCache(api.NewBlockCypherAPI(e.client, ""), e.client.Settings(), opts...)
}

// finish flushes the logger and prints metrics when --metrics is set
func (e *environment) finish() {
	_ = e.logger.Sync()

	if e.registry == nil {
		return
	}
	families, err := e.registry.Gather()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to gather metrics: %v\n", err)
		return
	}
	fmt.Println()
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write metrics: %v\n", err)
			return
		}
	}
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/blockterms/lit/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var networkCmd = &cobra.Command{
	Use:   "network [mainnet|testnet]",
	Short: "Show or change network",
	Long: `Show the current network or switch between mainnet and testnet.
The choice is saved to the config file.

Examples:
  lit network            # Show current network
  lit network mainnet    # Switch to mainnet
  lit network testnet    # Switch to testnet`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNetwork,
}

func runNetwork(cmd *cobra.Command, args []string) error {
	env, err := newEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.finish()

	// If no arguments provided, show current network
	if len(args) == 0 {
		showCurrentNetwork(env.network)
		return nil
	}

	network := strings.ToLower(args[0])
	if network != config.NetworkMainnet && network != config.NetworkTestnet {
		return fmt.Errorf("invalid network: %s. Use 'mainnet' or 'testnet'", network)
	}

	env.cfg.Network = network
	if err := config.Save(env.configPath, env.cfg); err != nil {
		return err
	}

	fmt.Printf("🌐 Switched to %s network\n", strings.ToUpper(network))
	if network == config.NetworkTestnet {
		fmt.Println()
		fmt.Println("⚠️  You are now on TESTNET mode")
		fmt.Println("   - blockchain.info is not available on testnet")
		fmt.Println("   - fee estimates still come from mainnet")
	}
	return nil
}

func showCurrentNetwork(network string) {
	if network == config.NetworkMainnet {
		fmt.Printf("🌐 Current network: %s\n", color.GreenString("Mainnet"))
		return
	}
	fmt.Printf("🌐 Current network: %s\n", color.YellowString("Testnet"))
}

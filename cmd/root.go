package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lit",
	Short: "Query and broadcast to the Litecoin network",
	Long: `Lit talks to the Litecoin network through public block explorers.
Every lookup walks an ordered list of explorers and answers from the first
one that responds, so a single explorer going down does not stop you.

Features:
  • Balances, history and unspent outputs for any address
  • Raw transaction broadcast with local validation
  • Cached fee estimates with safe defaults
  • Mainnet and Testnet support
  • Configurable explorer order per operation

Examples:
  lit balance LKKHMBjCU89fyFNgSRprDoD8Jb25N8uWvd --usd
  lit unspent LKKHMBjCU89fyFNgSRprDoD8Jb25N8uWvd
  lit broadcast 0100000001...
  lit fee hour
  lit network testnet
  lit providers`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			color.NoColor = true
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default ~/.lit/config.yaml)")
	rootCmd.PersistentFlags().Bool("testnet", false, "use the test network regardless of config")
	rootCmd.PersistentFlags().Duration("timeout", 0, "per-request timeout (default from config)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("metrics", false, "print provider metrics after the command")

	// Add subcommands
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(transactionsCmd)
	rootCmd.AddCommand(unspentCmd)
	rootCmd.AddCommand(broadcastCmd)
	rootCmd.AddCommand(feeCmd)
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lit v%s\n", version)
	},
}

package cmd

import (
	"fmt"
	"time"

	"github.com/blockterms/lit/chains/litecoin"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var limitFlag int

var transactionsCmd = &cobra.Command{
	Use:   "transactions <address>",
	Short: "Show the transaction history of an address",
	Long: `Show the transaction ids touching a Litecoin address, as reported by the
first explorer that answers.

Examples:
  lit transactions LKKHMBjCU89fyFNgSRprDoD8Jb25N8uWvd
  lit transactions LKKHMBjCU89fyFNgSRprDoD8Jb25N8uWvd --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: runTransactions,
}

func init() {
	transactionsCmd.Flags().IntVarP(&limitFlag, "limit", "l", 0, "show at most this many transactions (0 for all)")
}

func runTransactions(cmd *cobra.Command, args []string) error {
	if limitFlag < 0 {
		return fmt.Errorf("limit must not be negative")
	}

	env, err := newEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.finish()

	address := args[0]
	if err := litecoin.ValidateAddress(address, env.params()); err != nil {
		return err
	}

	network, err := env.networkAPI()
	if err != nil {
		return err
	}

	startTime := time.Now()
	s := startSpinner("Loading transactions...")
	txs, err := network.GetTransactions(cmd.Context(), address)
	s.Stop()
	if err != nil {
		return fmt.Errorf("failed to fetch transactions: %w", err)
	}

	if len(txs) == 0 {
		fmt.Println("📭 No transactions found")
		return nil
	}

	shown := txs
	if limitFlag > 0 && len(shown) > limitFlag {
		shown = shown[:limitFlag]
	}

	fmt.Printf("📜 %d transactions for %s\n", len(txs), address)
	fmt.Println()
	for i, txid := range shown {
		fmt.Printf("%3d. %s\n", i+1, color.CyanString(txid))
	}
	if len(shown) < len(txs) {
		fmt.Printf("   ... and %d more\n", len(txs)-len(shown))
	}

	fmt.Printf("\n⏱️ Loaded in %v\n", time.Since(startTime).Round(time.Millisecond*10))
	return nil
}

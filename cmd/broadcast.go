package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blockterms/lit/api"
	"github.com/blockterms/lit/chains/litecoin"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var broadcastCmd = &cobra.Command{
	Use:   "broadcast <raw-tx-hex>",
	Short: "Broadcast a signed raw transaction",
	Long: `Broadcast a signed raw transaction to the Litecoin network.

The transaction is decoded locally first; malformed hex never leaves your
machine. Explorers are tried in order until one accepts it.

MWEB transactions are not supported.

Examples:
  lit broadcast 0100000001...
  lit broadcast 0100000001... --testnet`,
	Args: cobra.ExactArgs(1),
	RunE: runBroadcast,
}

func runBroadcast(cmd *cobra.Command, args []string) error {
	env, err := newEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.finish()

	txHex := strings.TrimSpace(args[0])
	txid, err := litecoin.TxID(txHex)
	if err != nil {
		return err
	}

	network, err := env.networkAPI()
	if err != nil {
		return err
	}

	fmt.Printf("📡 Broadcasting %s\n", color.CyanString(txid))

	s := startSpinner("Broadcasting...")
	err = network.BroadcastTx(cmd.Context(), txHex)
	s.Stop()

	switch {
	case err == nil:
		fmt.Printf("✅ %s\n", color.GreenString("Transaction accepted"))
		return nil
	case errors.Is(err, api.ErrBroadcastRejected):
		fmt.Printf("❌ %s\n", color.RedString("Transaction rejected"))
		fmt.Println("💡 Check that the inputs are unspent and the fee is high enough")
		return err
	default:
		return fmt.Errorf("failed to broadcast transaction: %w", err)
	}
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/blockterms/lit/chains/litecoin"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var unspentCmd = &cobra.Command{
	Use:   "unspent <address>",
	Short: "List the unspent outputs of an address",
	Long: `List the unspent transaction outputs of a Litecoin address, with amounts
in litoshi and LTC.

Examples:
  lit unspent LKKHMBjCU89fyFNgSRprDoD8Jb25N8uWvd
  lit unspent LKKHMBjCU89fyFNgSRprDoD8Jb25N8uWvd --json`,
	Args: cobra.ExactArgs(1),
	RunE: runUnspent,
}

func init() {
	unspentCmd.Flags().Bool("json", false, "print outputs as JSON")
}

func runUnspent(cmd *cobra.Command, args []string) error {
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

	s := startSpinner("Fetching unspent outputs...")
	unspents, err := network.GetUnspent(cmd.Context(), address)
	s.Stop()
	if err != nil {
		return fmt.Errorf("failed to fetch unspent outputs: %w", err)
	}

	if jsonFlag, _ := cmd.Flags().GetBool("json"); jsonFlag {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(unspents)
	}

	if len(unspents) == 0 {
		fmt.Println("📭 No unspent outputs")
		return nil
	}

	var total int64
	for _, u := range unspents {
		total += u.Amount
		confirmations := color.GreenString("%d conf", u.Confirmations)
		if u.Confirmations == 0 {
			confirmations = color.YellowString("unconfirmed")
		}
		fmt.Printf("• %s\n", color.CyanString(u.String()))
		fmt.Printf("   💰 %s (%d litoshi), %s\n", litecoin.FormatAmount(u.Amount), u.Amount, confirmations)
	}

	fmt.Println()
	fmt.Printf("Total: %s in %d outputs\n", color.GreenString(litecoin.FormatAmount(total)), len(unspents))
	return nil
}

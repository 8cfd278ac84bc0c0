package cmd

import (
	"fmt"

	"github.com/blockterms/lit/chains/litecoin"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "Check the balance of an address",
	Long: `Check the confirmed balance of a Litecoin address.

Examples:
  lit balance LKKHMBjCU89fyFNgSRprDoD8Jb25N8uWvd
  lit balance LKKHMBjCU89fyFNgSRprDoD8Jb25N8uWvd --usd
  lit balance mfcHP2WMCVLsVZA8yrovmhMgxNFW9r98xw --testnet`,
	Args: cobra.ExactArgs(1),
	RunE: runBalance,
}

func init() {
	balanceCmd.Flags().Bool("usd", false, "show the USD value (mainnet only)")
}

func runBalance(cmd *cobra.Command, args []string) error {
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

	s := startSpinner("Fetching balance...")
	balance, err := network.GetBalance(cmd.Context(), address)
	s.Stop()
	if err != nil {
		return fmt.Errorf("failed to fetch balance: %w", err)
	}

	if env.isTestnet() {
		fmt.Printf("🪙 Litecoin (Testnet): %s\n", color.GreenString(litecoin.FormatAmount(balance)))
	} else {
		fmt.Printf("🪙 Litecoin: %s\n", color.GreenString(litecoin.FormatAmount(balance)))
	}

	usdFlag, _ := cmd.Flags().GetBool("usd")
	if usdFlag && !env.isTestnet() {
		price, err := env.client.GetPrice(cmd.Context(), "litecoin", "usd")
		if err != nil {
			fmt.Printf("   💵 USD: Error fetching price - %v\n", err)
		} else {
			usdValue := litecoin.LitoshiToLitecoin(balance).Mul(price.Price)
			fmt.Printf("   💵 USD: $%s\n", usdValue.StringFixed(2))
		}
	}

	fmt.Printf("   📍 Address: %s\n", address)
	return nil
}

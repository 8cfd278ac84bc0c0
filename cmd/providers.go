package cmd

import (
	"fmt"
	"strings"

	"github.com/blockterms/lit/api"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Show the explorer order used for each operation",
	Long: `Show which explorers are tried, and in what order, for each operation on
the current network. Change the order under "providers" in the config file.

Known explorers: ` + strings.Join(api.ProviderNames(), ", "),
	Args: cobra.NoArgs,
	RunE: runProviders,
}

func runProviders(cmd *cobra.Command, args []string) error {
	env, err := newEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.finish()

	order, err := env.order()
	if err != nil {
		return err
	}

	fmt.Printf("🌐 Network: %s\n\n", env.network)
	names := order.Names()
	for _, op := range []string{api.OpBalance, api.OpTransactions, api.OpUnspent, api.OpBroadcast} {
		fmt.Printf("%-13s %s\n", op, color.CyanString(strings.Join(names[op], " → ")))
	}
	if env.cfg.StrictProtocol {
		fmt.Println("\n🔒 Strict protocol mode: a malformed response stops the walk")
	}
	return nil
}

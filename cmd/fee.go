package cmd

import (
	"fmt"
	"strings"

	"github.com/blockterms/lit/api"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var feeCmd = &cobra.Command{
	Use:   "fee [fast|hour]",
	Short: "Show the recommended fee",
	Long: `Show the recommended fee rate. "fast" targets the next block or two,
"hour" confirms within the hour. Without an argument both are shown.

Estimates come from blockcypher's main network figures. When blockcypher is
unreachable a built-in default is shown instead.

Examples:
  lit fee
  lit fee fast
  lit fee hour`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"fast", "hour"},
	RunE:      runFee,
}

func runFee(cmd *cobra.Command, args []string) error {
	classes := []api.FeeClass{api.FeeFast, api.FeeHour}
	if len(args) == 1 {
		class, err := api.ParseFeeClass(strings.ToLower(args[0]))
		if err != nil {
			return err
		}
		classes = []api.FeeClass{class}
	}

	env, err := newEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.finish()

	fees := env.feeCache()
	for _, class := range classes {
		fee := fees.GetFee(cmd.Context(), class)
		fmt.Printf("⛽ %-4s %s litoshi/byte\n", class, color.GreenString(fee.String()))
	}
	return nil
}

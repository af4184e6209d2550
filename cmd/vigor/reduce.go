package main

import (
	"github.com/aretw0/vigor"
	"github.com/aretw0/vigor/internal/cli"
	"github.com/aretw0/vigor/pkg/domain"
	"github.com/spf13/cobra"
)

var reduceCmd = &cobra.Command{
	Use:   "reduce <action>...",
	Short: "Fold actions over a state and print the trace",
	Long: `Applies each action, left to right, starting from the configured initial energy
(or --energy) and prints every intermediate state.

Actions: run (-15), walk (-5), sit (+10).`,
	Example: `  vigor reduce run walk sit
  vigor reduce --energy 20 --json run`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		start := cfg.InitialState()
		if cmd.Flags().Changed("energy") {
			energy, _ := cmd.Flags().GetFloat64("energy")
			start = domain.State{Energy: energy}
		}
		format, _ := cmd.Flags().GetString("output")
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			format = cli.FormatJSON
		}
		noBanner, _ := cmd.Flags().GetBool("no-banner")

		return cli.RunReduce(cmd.Context(), vigor.NewReducer(vigor.WithLogger(logger)), cli.ReduceOptions{
			Start:  start,
			Format: format,
			Banner: !noBanner,
			Out:    cmd.OutOrStdout(),
		}, args)
	},
}

func init() {
	rootCmd.AddCommand(reduceCmd)

	reduceCmd.Flags().Float64("energy", domain.DefaultEnergy, "Starting energy (overrides config)")
	reduceCmd.Flags().StringP("output", "o", cli.FormatAuto, "Output format: auto, plain, markdown or json")
	reduceCmd.Flags().Bool("json", false, "Print the final state as JSON (same as --output json)")
	reduceCmd.Flags().Bool("no-banner", false, "Do not print the banner above markdown reports")
}

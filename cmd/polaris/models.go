package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"polaris-hq/polaris/pkg/providers"
)

var modelsFlags struct {
	jsonOutput bool
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models the configured profile can use",
	Long: `Query the provider's model listing endpoint and print the result.

When the endpoint is unreachable or returns an unusable response, the
static fallback list is printed instead and the source column says so.
The command fails only when the profile has no API key configured.

Examples:
  # Human-readable table
  polaris models

  # Machine-readable output
  polaris models --json`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)

	modelsCmd.Flags().BoolVar(&modelsFlags.jsonOutput, "json", false, "print the raw discovery result as JSON")
}

func runModels(cmd *cobra.Command, args []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}

	result := rt.strategy.ListModels(context.Background(), rt.cfg.Provider.Profile, rt.store)

	if modelsFlags.jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if !result.Success {
		return fmt.Errorf("model discovery failed: %s", result.Error)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tINPUT $/MTok\tOUTPUT $/MTok\tSOURCE")
	for _, m := range result.Models {
		var in, out float64
		if m.Info != nil {
			in = m.Info.InputCostPerToken * 1e6
			out = m.Info.OutputCostPerToken * 1e6
		}
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%s\n", m.ID, in, out, result.Source)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if result.Source == providers.DiscoverySourceFallback {
		fmt.Fprintln(os.Stderr, "note: listing endpoint unavailable, showing the static fallback list")
	}
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"polaris-hq/polaris/pkg/providers"
	"polaris-hq/polaris/pkg/usage"
)

var costFlags struct {
	model      string
	input      int
	output     int
	cached     int
	cacheWrite int
	cacheRead  int
	taskID     string
	priorTotal float64
}

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Price a completed call and print the usage report",
	Long: `Compute the cost of one completed call from its token counts and the
configured pricing catalog, and print the resulting usage report.

Token counts mirror what the provider reports: --input includes cache
reads, which are subtracted out before pricing. --cache-read takes
precedence over the generic --cached counter, matching how provider
metadata overrides the usage snapshot.

Examples:
  # A plain call
  polaris cost --model MiniMax-M2 --input 1000 --output 500

  # A call with prompt caching, accumulating into a task
  polaris cost --model MiniMax-M2 --input 1000 --output 500 \
    --cache-write 200 --cache-read 300 \
    --task-id task-42 --prior-total 5.0`,
	RunE: runCost,
}

func init() {
	rootCmd.AddCommand(costCmd)

	costCmd.Flags().StringVarP(&costFlags.model, "model", "m", "", "model identifier (required)")
	costCmd.Flags().IntVar(&costFlags.input, "input", 0, "input token count, cache reads included")
	costCmd.Flags().IntVar(&costFlags.output, "output", 0, "generated token count")
	costCmd.Flags().IntVar(&costFlags.cached, "cached", 0, "generic cached token count")
	costCmd.Flags().IntVar(&costFlags.cacheWrite, "cache-write", 0, "cache-write token count")
	costCmd.Flags().IntVar(&costFlags.cacheRead, "cache-read", 0, "provider cache-read token count")
	costCmd.Flags().StringVar(&costFlags.taskID, "task-id", "", "task to accumulate into")
	costCmd.Flags().Float64Var(&costFlags.priorTotal, "prior-total", 0, "task cost before this call, in USD")

	_ = costCmd.MarkFlagRequired("model")
}

func runCost(cmd *cobra.Command, args []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}

	model := providers.Model{
		ID:       costFlags.model,
		Provider: rt.cfg.Provider.Profile.ID,
	}
	if info, ok := rt.catalog.Lookup(costFlags.model); ok {
		model.Info = &info
	} else {
		fmt.Fprintf(os.Stderr, "note: model %q is not in the catalog, pricing at zero\n", costFlags.model)
	}

	meta := &providers.CallMetadata{
		CacheWriteTokens: costFlags.cacheWrite,
	}
	if cmd.Flags().Changed("cache-read") {
		meta.CacheReadTokens = &costFlags.cacheRead
	}

	report := usage.BuildReport(
		usage.Task{ID: costFlags.taskID, TotalCost: costFlags.priorTotal},
		model,
		providers.TokenUsage{
			InputTokens:  costFlags.input,
			OutputTokens: costFlags.output,
			CachedTokens: costFlags.cached,
		},
		meta,
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var envFlags struct {
	model      string
	jsonOutput bool
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the aider environment for a model",
	Long: `Print the model name and environment variables an aider subprocess
needs to reach the configured provider.

The base URL is always exported. The API key is exported only when the
profile carries an explicit key: a key that lives in the process
environment is already visible to the subprocess.

Examples:
  # Shell-sourceable exports
  eval "$(polaris env --model MiniMax-M2)"

  # Machine-readable output
  polaris env --model MiniMax-M2 --json`,
	RunE: runEnv,
}

func init() {
	rootCmd.AddCommand(envCmd)

	envCmd.Flags().StringVarP(&envFlags.model, "model", "m", "", "model identifier (required)")
	envCmd.Flags().BoolVar(&envFlags.jsonOutput, "json", false, "print the mapping as JSON")

	_ = envCmd.MarkFlagRequired("model")
}

func runEnv(cmd *cobra.Command, args []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}

	mapping := rt.strategy.AiderMapping(rt.cfg.Provider.Profile, envFlags.model)

	if envFlags.jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(mapping)
	}

	names := make([]string, 0, len(mapping.Env))
	for name := range mapping.Env {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("export %s=%q\n", name, mapping.Env[name])
	}
	fmt.Printf("# model: %s\n", mapping.ModelName)
	return nil
}

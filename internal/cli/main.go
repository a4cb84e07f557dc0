package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "videosum <input>",
		Short:        "Build a highlight reel from a local video",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().Int("target", 60, "Target highlight duration in seconds")
	root.Flags().String("data", "", "Data directory for job artifacts")
	root.Flags().String("policy", "", "Selection policy: greedy, chunk or temporal")

	// Hidden tuning flags (internal)
	root.Flags().Float64("min-segment", 0, "Minimum kept segment length in seconds")
	root.Flags().StringSlice("llm-allowed-hosts", nil, "Extra allow-listed ranking API hosts")
	_ = root.Flags().MarkHidden("min-segment")
	_ = root.Flags().MarkHidden("llm-allowed-hosts")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package cli

import (
	"io"
	"os"
	"strings"

	"github.com/eoralabs/aura-memory/internal/meter"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "cost [text]",
		Short: "Estimate or reconcile the point cost of a turn",
		Long: "With text (arg or stdin), prints the pre-flight estimate. With --total-tokens, " +
			"reconciles an actual usage report into a point charge instead.",
		Run: runCost,
	}

	cmd.Flags().Int("max-completion", 512, "Completion token cap for the estimate")
	cmd.Flags().Int("prompt-tokens", 0, "Actual prompt tokens (reconcile mode)")
	cmd.Flags().Int("completion-tokens", 0, "Actual completion tokens (reconcile mode)")
	cmd.Flags().Int("total-tokens", -1, "Actual total tokens (enables reconcile mode)")

	RootCmd.AddCommand(cmd)
}

func runCost(cmd *cobra.Command, args []string) {
	maxCompletion, _ := cmd.Flags().GetInt("max-completion")
	promptTokens, _ := cmd.Flags().GetInt("prompt-tokens")
	completionTokens, _ := cmd.Flags().GetInt("completion-tokens")
	totalTokens, _ := cmd.Flags().GetInt("total-tokens")

	m := meter.New(cfg.Model, cfg.Meter.Multiplier, logger)

	// Reconcile mode: an actual usage report was supplied.
	if totalTokens >= 0 {
		u := meter.Usage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      totalTokens,
		}
		u.PointsToDeduct = m.Reconcile(u)
		printJSON(u)
		return
	}

	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			text = string(b)
		}
	}

	printJSON(m.Estimate(text, maxCompletion))
}

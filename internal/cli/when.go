package cli

import (
	"strings"
	"time"

	"github.com/eoralabs/aura-memory/internal/reltime"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "when [expression]",
		Short: "Resolve a relative-time expression",
		Long:  `Parses expressions like "어제", "3시간 전" or "2 days ago" into a timestamp and its bucketed description.`,
		Args:  cobra.MinimumNArgs(1),
		Run:   runWhen,
	}

	cmd.Flags().String("ref", "", "Reference time, RFC3339 (default: now)")

	RootCmd.AddCommand(cmd)
}

func runWhen(cmd *cobra.Command, args []string) {
	refStr, _ := cmd.Flags().GetString("ref")
	expr := strings.Join(args, " ")

	ref := time.Now()
	if refStr != "" {
		var err error
		ref, err = time.Parse(time.RFC3339, refStr)
		if err != nil {
			exitErr("parse --ref", err)
		}
	}

	target := reltime.Parse(expr, ref)

	printJSON(map[string]string{
		"expression": expr,
		"timestamp":  target.Format(time.RFC3339),
		"relative":   reltime.Describe(target, ref),
	})
}

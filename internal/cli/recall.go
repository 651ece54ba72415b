package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/eoralabs/aura-memory/internal/recall"
	"github.com/eoralabs/aura-memory/internal/reltime"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "recall [query]",
		Short: "Recall memory atoms relevant to a query",
		Long:  "Runs tag, keyword and recency retrieval against the store, then merges, deduplicates and ranks the results.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runRecall,
	}

	cmd.Flags().StringP("user", "u", "", "User id (required)")
	cmd.Flags().IntP("limit", "l", 5, "Max results")
	cmd.Flags().Bool("time-adjust", false, "Re-weight results by relative-time phrases in the query")

	cmd.MarkFlagRequired("user")

	RootCmd.AddCommand(cmd)
}

func runRecall(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")
	limit, _ := cmd.Flags().GetInt("limit")
	timeAdjust, _ := cmd.Flags().GetBool("time-adjust")
	query := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	engine := recall.New(s, logger, recall.Options{
		OverlapWeight: cfg.Recall.OverlapWeight,
		FreshnessDays: cfg.Recall.FreshnessDays,
		RecencyWindow: time.Duration(cfg.Recall.RecencyWindowDays) * 24 * time.Hour,
	})

	atoms := engine.Recall(cmd.Context(), query, user, limit)

	if timeAdjust {
		scored := reltime.AdjustContext(query, atoms, time.Now())
		printJSON(scored)
		return
	}
	printJSON(atoms)
}

func printJSON(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		exitErr("encode", err)
	}
	s := string(b)
	if s == "null" {
		s = "[]"
	}
	fmt.Println(s)
}

package cli

import (
	"time"

	"github.com/eoralabs/aura-memory/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List memory atoms matching filters",
		Run:   runList,
	}

	cmd.Flags().StringP("user", "u", "", "Filter by user id")
	cmd.Flags().StringP("session", "s", "", "Filter by session id")
	cmd.Flags().String("type", "", "Filter by memory type")
	cmd.Flags().StringSliceP("tag", "t", nil, "Filter by tag (any of, repeatable)")
	cmd.Flags().String("contains", "", "Filter by text containment")
	cmd.Flags().String("since", "", "Only atoms at or after this RFC3339 time")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")
	session, _ := cmd.Flags().GetString("session")
	memType, _ := cmd.Flags().GetString("type")
	tags, _ := cmd.Flags().GetStringSlice("tag")
	contains, _ := cmd.Flags().GetString("contains")
	sinceStr, _ := cmd.Flags().GetString("since")
	limit, _ := cmd.Flags().GetInt("limit")

	var since time.Time
	if sinceStr != "" {
		var err error
		since, err = time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			exitErr("parse --since", err)
		}
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	atoms, err := s.Query(cmd.Context(), store.QueryParams{
		UserID:     user,
		SessionID:  session,
		MemoryType: memType,
		Tags:       tags,
		Contains:   contains,
		Since:      since,
		Limit:      limit,
	})
	if err != nil {
		exitErr("list", err)
	}

	printJSON(atoms)
}

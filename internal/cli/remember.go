package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eoralabs/aura-memory/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "remember [message]",
		Short: "Store a conversation turn as a memory atom",
		Long:  "Store a turn. The message can be a positional arg or piped via stdin; derived signals are computed at creation.",
		Run:   runRemember,
	}

	cmd.Flags().StringP("user", "u", "", "User id (required)")
	cmd.Flags().StringP("session", "s", "", "Session id")
	cmd.Flags().StringP("response", "r", "", "Assistant response text")
	cmd.Flags().String("type", "conversation", "Memory type: conversation, insight, emotion, belief, intuition")
	cmd.Flags().Float64P("importance", "i", 0.5, "Importance in [0,1]")

	cmd.MarkFlagRequired("user")

	RootCmd.AddCommand(cmd)
}

func runRemember(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")
	session, _ := cmd.Flags().GetString("session")
	response, _ := cmd.Flags().GetString("response")
	memType, _ := cmd.Flags().GetString("type")
	importance, _ := cmd.Flags().GetFloat64("importance")

	// Message: positional arg first, then stdin
	var message string
	if len(args) > 0 {
		message = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			message = strings.TrimSpace(string(b))
		}
	}

	if message == "" && response == "" {
		exitErr("remember", fmt.Errorf("a message (positional arg or stdin) or --response is required"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	atom, err := s.Create(cmd.Context(), store.CreateParams{
		UserID:     user,
		SessionID:  session,
		Message:    message,
		Response:   response,
		MemoryType: memType,
		Importance: &importance,
	})
	if err != nil {
		exitErr("remember", err)
	}

	b, _ := json.Marshal(atom)
	fmt.Println(string(b))
}

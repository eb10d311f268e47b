package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tacit-labs/tacit/internal/app"
	"github.com/tacit-labs/tacit/internal/extraction/application/commands"
	"github.com/tacit-labs/tacit/pkg/config"
)

var (
	extractSender    string
	extractRecipient string
	extractAsJSON    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [text]",
	Short: "Extract commitments from a piece of text",
	Long: `Runs the extraction pipeline once over the given text and prints
the scheduled reminders. Text is read from the arguments, or from
stdin when no arguments are given.`,
	Example: `  tacit extract "I'll call you tomorrow at 15:30"
  echo "Lunch with Sam on Friday" | tacit extract --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		content := strings.Join(args, " ")
		if content == "" {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			content = strings.TrimSpace(string(raw))
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		container, err := app.NewLocalContainer(cfg, logger)
		if err != nil {
			return fmt.Errorf("initializing pipeline: %w", err)
		}

		now := time.Now()
		resp, err := container.UseCase.Execute(cmd.Context(), commands.ProcessCommunicationRequest{
			Content:   content,
			Sender:    extractSender,
			Recipient: extractRecipient,
			Timestamp: &now,
		})
		if err != nil {
			return err
		}

		if extractAsJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(resp)
		}

		if len(resp.Reminders) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No commitments found.")
			return nil
		}
		for _, r := range resp.Reminders {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n  remind at %s\n",
				r.Message, r.When.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractSender, "sender", "me", "sender of the communication")
	extractCmd.Flags().StringVar(&extractRecipient, "recipient", "me", "recipient of the communication")
	extractCmd.Flags().BoolVar(&extractAsJSON, "json", false, "print the full response as JSON")

	rootCmd.AddCommand(extractCmd)
}

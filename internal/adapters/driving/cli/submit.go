package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sigplace/internal/core/domain"
)

var submitCmd = &cobra.Command{
	Use:   "submit [session-id]",
	Short: "Send the document and placeholders to the signing API",
	Long: `Upload the PDF with its recipients and placeholders to api.base_url.
On success the session is discarded. Configure the API with:

  sigplace settings set api.base_url https://sign.example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if submissionService == nil {
		return errors.New("submission service not configured")
	}

	receipt, err := submissionService.Submit(commandContext(cmd), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrSubmissionDisabled) {
			return fmt.Errorf("%w: set api.base_url first", err)
		}
		return fmt.Errorf("failed to submit: %w", err)
	}

	cmd.Printf("Submitted as %s (%s)\n", receipt.DocumentID, receipt.Status)
	return nil
}

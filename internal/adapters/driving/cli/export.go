package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [session-id]",
	Short: "Write the signing request as JSON without submitting it",
	Long: `Validate a session and write the payload that submit would send:
document path, recipients and placeholders in signing order, in PDF
document space.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if submissionService == nil {
		return errors.New("submission service not configured")
	}

	payload, err := submissionService.BuildPayload(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to build payload: %w", err)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if exportOutput == "" {
		cmd.Println(string(data))
		return nil
	}
	if err := os.WriteFile(exportOutput, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}
	cmd.Printf("Wrote %s\n", exportOutput)
	return nil
}

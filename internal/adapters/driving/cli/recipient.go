package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recipientCmd = &cobra.Command{
	Use:   "recipient",
	Short: "Manage the signers of a session",
}

var recipientAddCmd = &cobra.Command{
	Use:   "add [session-id] [name] [email]",
	Short: "Add a signer",
	Args:  cobra.ExactArgs(3),
	RunE:  runRecipientAdd,
}

var recipientListCmd = &cobra.Command{
	Use:   "list [session-id]",
	Short: "List signers and whether they have a placeholder",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipientList,
}

var recipientRemoveCmd = &cobra.Command{
	Use:   "remove [session-id] [recipient-id]",
	Short: "Remove a signer and their placeholder",
	Args:  cobra.ExactArgs(2),
	RunE:  runRecipientRemove,
}

func init() {
	recipientCmd.AddCommand(recipientAddCmd)
	recipientCmd.AddCommand(recipientListCmd)
	recipientCmd.AddCommand(recipientRemoveCmd)
	rootCmd.AddCommand(recipientCmd)
}

func runRecipientAdd(cmd *cobra.Command, args []string) error {
	if err := requirePlacement(); err != nil {
		return err
	}

	r, err := placementService.AddRecipient(commandContext(cmd), args[0], args[1], args[2])
	if err != nil {
		return fmt.Errorf("failed to add recipient: %w", err)
	}
	cmd.Printf("Added recipient %s (%s <%s>)\n", r.ID, r.Name, r.Email)
	return nil
}

func runRecipientList(cmd *cobra.Command, args []string) error {
	if err := requirePlacement(); err != nil {
		return err
	}

	session, err := placementService.GetSession(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	printRecipients(cmd, session)
	return nil
}

func runRecipientRemove(cmd *cobra.Command, args []string) error {
	if err := requirePlacement(); err != nil {
		return err
	}

	if err := placementService.RemoveRecipient(commandContext(cmd), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to remove recipient: %w", err)
	}
	cmd.Printf("Removed recipient %s\n", args[1])
	return nil
}

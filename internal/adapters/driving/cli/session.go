package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/placement"
)

var sessionJSON bool

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage placement sessions",
	Long: `A session holds one PDF, its recipients and their signature placeholders
until it is submitted or deleted.`,
}

var sessionNewCmd = &cobra.Command{
	Use:   "new [pdf]",
	Short: "Start a session for a PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionNew,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions",
	RunE:  runSessionList,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show a session with its recipients and placeholders",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionShow,
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Discard a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionDelete,
}

func init() {
	sessionShowCmd.Flags().BoolVar(&sessionJSON, "json", false, "output the session as JSON")
	sessionCmd.AddCommand(sessionNewCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionNew(cmd *cobra.Command, args []string) error {
	if err := requirePlacement(); err != nil {
		return err
	}

	session, err := placementService.CreateSession(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	cmd.Printf("Created session %s\n", session.ID)
	cmd.Printf("  Document: %s (%d pages)\n", session.Document.Path, session.Document.NumPages())
	return nil
}

func runSessionList(cmd *cobra.Command, _ []string) error {
	if err := requirePlacement(); err != nil {
		return err
	}

	sessions, err := placementService.ListSessions(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		cmd.Println("No sessions. Start one with: sigplace session new <pdf>")
		return nil
	}

	for i := range sessions {
		s := &sessions[i]
		cmd.Printf("%s  %s  pages=%d recipients=%d placeholders=%d  updated %s\n",
			s.ID, s.Name(), s.Document.NumPages(), len(s.Recipients), len(s.Placeholders),
			s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	if err := requirePlacement(); err != nil {
		return err
	}

	session, err := placementService.GetSession(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	if sessionJSON {
		data, err := json.MarshalIndent(session, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printSession(cmd, session)
	return nil
}

func runSessionDelete(cmd *cobra.Command, args []string) error {
	if err := requirePlacement(); err != nil {
		return err
	}

	if err := placementService.DeleteSession(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	cmd.Printf("Deleted session %s\n", args[0])
	return nil
}

func printSession(cmd *cobra.Command, session *domain.PlacementSession) {
	cmd.Printf("Session %s\n", session.ID)
	cmd.Printf("  Document: %s\n", session.Document.Path)
	for i, p := range session.Document.Pages {
		cmd.Printf("    page %d: %.2f x %.2f\n", i+1, p.Width, p.Height)
	}
	cmd.Printf("  Viewport: page %d at %.0f%%\n", session.CurrentPage, session.Scale*100)
	cmd.Println()

	printRecipients(cmd, session)
	cmd.Println()
	printPlaceholders(cmd, session.Placeholders)

	gate := placement.NewGate(session.Placeholders)
	if len(gate.Unassigned(session.Recipients)) > 0 {
		cmd.Println()
		cmd.Printf("Next: %s\n", gate.NextLabel())
	}
}

func printRecipients(cmd *cobra.Command, session *domain.PlacementSession) {
	if len(session.Recipients) == 0 {
		cmd.Println("Recipients: none")
		return
	}

	gate := placement.NewGate(session.Placeholders)
	cmd.Println("Recipients:")
	for _, r := range session.Recipients {
		status := "unplaced"
		if gate.IsAssigned(r.ID) {
			status = "placed"
		}
		cmd.Printf("  %s  %s <%s>  %s\n", r.ID, r.Name, r.Email, status)
	}
}

func printPlaceholders(cmd *cobra.Command, placeholders []domain.SignaturePlaceholder) {
	if len(placeholders) == 0 {
		cmd.Println("Placeholders: none")
		return
	}

	cmd.Println("Placeholders:")
	for _, p := range placeholders {
		cmd.Printf("  #%d %s  page %d  x=%.2f y=%.2f w=%.2f h=%.2f  %s\n",
			p.Order, p.ID, p.PageNumber, p.X, p.Y, p.Width, p.Height, p.RecipientName)
	}
}

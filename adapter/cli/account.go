package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	trackingCommands "github.com/felixgeelhaar/codestrike/internal/tracking/application/commands"
)

var accountDeleteForce bool

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your account data",
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete all tracked data",
	Long: `Permanently delete your tracker, all daily logs, and all goals.
There is no undo.

Examples:
  codestrike account delete
  codestrike account delete --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !accountDeleteForce {
			fmt.Print("This permanently deletes all progress, logs, and goals. Type 'delete' to confirm: ")
			reader := bufio.NewReader(cmd.InOrStdin())
			answer, err := reader.ReadString('\n')
			if err != nil || strings.TrimSpace(answer) != "delete" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		app := GetApp()
		if err := app.DeleteAccountHandler.Handle(cmd.Context(), trackingCommands.DeleteAccountCommand{UserID: app.CurrentUserID}); err != nil {
			return fmt.Errorf("account deletion failed: %w", err)
		}
		fmt.Println("All data deleted. Fresh start.")
		return nil
	},
}

func init() {
	accountDeleteCmd.Flags().BoolVar(&accountDeleteForce, "force", false, "skip the confirmation prompt")
	accountCmd.AddCommand(accountDeleteCmd)
	rootCmd.AddCommand(accountCmd)
}

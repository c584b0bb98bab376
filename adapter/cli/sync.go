package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	trackingCommands "github.com/felixgeelhaar/codestrike/internal/tracking/application/commands"
)

var syncUsername string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull solved counts from LeetCode",
	Long: `Fetch your LeetCode submission stats and fold them into the local
history. Manually logged solves are kept; the synced portion of the
history is replaced by what the API reports.

Examples:
  codestrike sync
  codestrike sync --username someone_else`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()

		username := syncUsername
		if username == "" {
			username = app.LeetCodeUsername
		}
		if username == "" {
			return fmt.Errorf("no LeetCode username configured, set LEETCODE_USERNAME or pass --username")
		}

		result, err := app.SyncProgressHandler.Handle(cmd.Context(), trackingCommands.SyncProgressCommand{
			UserID:   app.CurrentUserID,
			Username: username,
		})
		if err != nil {
			return err
		}
		if !result.Synced {
			fmt.Println("No stats available right now, nothing changed. Try again later.")
			return nil
		}

		fmt.Printf("Synced %s: %d solved today, %d total. Today: %d/%d, streak %d day(s).",
			username, result.SolvedToday, result.TotalSolved, result.TodayTotal, result.DailyTarget, result.Streak)
		if result.TargetJustMet {
			fmt.Print("\n🎉 Daily target met!")
		}
		fmt.Println()
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVarP(&syncUsername, "username", "u", "", "LeetCode username (defaults to configured one)")
	rootCmd.AddCommand(syncCmd)
}

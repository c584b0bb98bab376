package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	trackingCommands "github.com/felixgeelhaar/codestrike/internal/tracking/application/commands"
)

var logCmd = &cobra.Command{
	Use:   "log <count>",
	Short: "Log manually solved problems for today",
	Long: `Add hand-counted solves to today's total. Counts from other
platforms, whiteboard sessions, whatever you solved outside LeetCode.

Examples:
  codestrike log 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := strconv.Atoi(args[0])
		if err != nil || count <= 0 {
			return fmt.Errorf("count must be a positive number, got %q", args[0])
		}

		app := GetApp()
		result, err := app.RecordManualHandler.Handle(cmd.Context(), trackingCommands.RecordManualCommand{
			UserID: app.CurrentUserID,
			Count:  count,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Logged %d. Today: %d/%d", count, result.TodayTotal, result.DailyTarget)
		if result.TargetJustMet {
			fmt.Printf("\n🎉 Daily target met! Streak: %d day(s)", result.Streak)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
}

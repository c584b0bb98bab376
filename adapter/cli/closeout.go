package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	trackingCommands "github.com/felixgeelhaar/codestrike/internal/tracking/application/commands"
	"github.com/felixgeelhaar/codestrike/internal/tracking/domain"
)

var closeoutReason string

var closeoutCmd = &cobra.Command{
	Use:   "closeout",
	Short: "Close out today against your target",
	Long: `End-of-day reckoning. A met target gets a celebration and, if you
were in a catch-up period, drops the target back to baseline. A missed
target requires a reason; the deficit is added to tomorrow's target and
the miss goes into the Hall of Excuses.

Examples:
  codestrike closeout
  codestrike closeout --reason "work ran late"`,
	Aliases: []string{"giveup", "eod"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()

		result, err := app.CloseDayHandler.Handle(cmd.Context(), trackingCommands.CloseDayCommand{UserID: app.CurrentUserID})
		if err != nil {
			return err
		}

		if result.Outcome == domain.OutcomeMet {
			fmt.Printf("🎉 Target met: %d/%d. Well done.\n", result.TodayTotal, result.DailyTarget)
			if result.TargetReset {
				fmt.Printf("Catch-up period over, daily target back to %d.\n", result.DailyTarget)
			}
			return nil
		}

		fmt.Printf("Today: %d/%d, %d short.\n", result.TodayTotal, result.DailyTarget, result.Deficit)

		reason := strings.TrimSpace(closeoutReason)
		if reason == "" {
			fmt.Println("A missed day needs a reason. Re-run with --reason \"...\" to accept the catch-up plan.")
			return nil
		}

		accepted, err := app.AcceptCatchUpHandler.Handle(cmd.Context(), trackingCommands.AcceptCatchUpCommand{
			UserID: app.CurrentUserID,
			Reason: reason,
		})
		if err != nil {
			return err
		}

		analysis := accepted.Analysis
		fmt.Println()
		fmt.Printf("  Risk level: %s\n", analysis.RiskLevel)
		fmt.Printf("  Impact:     %s\n", analysis.ImpactDescription)
		fmt.Printf("  Plan:       %s\n", analysis.AdjustedPlan)
		fmt.Printf("  %s\n", analysis.MotivationalMessage)
		fmt.Println()
		fmt.Printf("Tomorrow's target: %d (+%d catch-up).\n", accepted.DailyTarget, accepted.Deficit)
		return nil
	},
}

func init() {
	closeoutCmd.Flags().StringVarP(&closeoutReason, "reason", "r", "", "why today's target was missed")
	rootCmd.AddCommand(closeoutCmd)
}

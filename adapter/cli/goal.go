package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	goalCommands "github.com/felixgeelhaar/codestrike/internal/goals/application/commands"
	goalQueries "github.com/felixgeelhaar/codestrike/internal/goals/application/queries"
)

var (
	goalDescription string
	goalTarget      int
	goalDeadline    string
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage goals",
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		goals, err := app.ListGoalsHandler.Handle(cmd.Context(), goalQueries.ListGoalsQuery{UserID: app.CurrentUserID})
		if err != nil {
			return err
		}
		if len(goals) == 0 {
			fmt.Println("No goals yet.")
			return nil
		}

		fmt.Println()
		for _, g := range goals {
			fmt.Printf("  %s  [%s]\n", g.Description, strings.ToLower(strings.ReplaceAll(g.Kind, "_", " ")))
			fmt.Printf("    %d/%d %s (%d%%)", g.Progress, g.TargetCount, g.Unit, g.Percent)
			if g.Deadline != "" {
				fmt.Printf("  due %s", g.Deadline)
			}
			fmt.Printf("\n    id: %s\n\n", g.ID)
		}
		return nil
	},
}

var goalUpdateCmd = &cobra.Command{
	Use:   "update <goal-id>",
	Short: "Update a goal's description, target, or deadline",
	Long: `Edit a goal. Updating the daily goal's target also moves the
tracker's daily target.

Examples:
  codestrike goal update 4b2a... --target 100
  codestrike goal update 4b2a... --description "Complete 100" --deadline 2026-12-31`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		goalID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid goal id %q", args[0])
		}
		if goalTarget <= 0 {
			return fmt.Errorf("target must be positive")
		}
		if strings.TrimSpace(goalDescription) == "" {
			return fmt.Errorf("description must not be empty")
		}

		app := GetApp()
		goal, err := app.UpdateGoalHandler.Handle(cmd.Context(), goalCommands.UpdateGoalCommand{
			UserID:      app.CurrentUserID,
			GoalID:      goalID,
			Description: goalDescription,
			TargetCount: goalTarget,
			Deadline:    goalDeadline,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Updated: %s, target %d.\n", goal.Description(), goal.TargetCount())
		return nil
	},
}

func init() {
	goalUpdateCmd.Flags().StringVarP(&goalDescription, "description", "d", "", "goal description")
	goalUpdateCmd.Flags().IntVarP(&goalTarget, "target", "t", 0, "target count")
	goalUpdateCmd.Flags().StringVar(&goalDeadline, "deadline", "", "deadline (YYYY-MM-DD)")

	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalUpdateCmd)
	rootCmd.AddCommand(goalCmd)
}

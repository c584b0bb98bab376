package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	trackingQueries "github.com/felixgeelhaar/codestrike/internal/tracking/application/queries"
)

var excusesCmd = &cobra.Command{
	Use:   "excuses",
	Short: "Show the Hall of Excuses",
	Long: `Every reason you ever gave for missing a day, ranked by how often
you reached for it. Read it and feel something.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		stats, err := app.GetExcusesHandler.Handle(cmd.Context(), trackingQueries.GetExcusesQuery{UserID: app.CurrentUserID})
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			fmt.Println("No excuses on record. Keep it that way.")
			return nil
		}

		fmt.Println("\n  🏛  HALL OF EXCUSES")
		fmt.Println(strings.Repeat("═", 60))
		for i, s := range stats {
			fmt.Printf("  %2d. %-40s ×%-3d %3d%%\n", i+1, s.Reason, s.Count, s.Percent)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(excusesCmd)
}

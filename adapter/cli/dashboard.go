package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	trackingQueries "github.com/felixgeelhaar/codestrike/internal/tracking/application/queries"
)

var heatmapLevels = []string{"░", "▁", "▃", "▅", "█"}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show today's progress dashboard",
	Long: `Display the full picture of your practice:
- Today's total against the daily target
- Current streak and lifetime solved count
- Goal progress
- Weekly consistency and the yearly heatmap

Examples:
  codestrike dashboard`,
	Aliases: []string{"today", "dash"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			fmt.Println("Dashboard requires an initialized application.")
			return nil
		}

		fmt.Printf("\n  📅 %s\n", time.Now().Format("Monday, January 2, 2006"))
		fmt.Println(strings.Repeat("═", 60))

		view, err := app.GetDashboardHandler.Handle(cmd.Context(), trackingQueries.GetDashboardQuery{UserID: app.CurrentUserID})
		if err != nil {
			return err
		}
		showStats(view)
		showGoals(view)

		if week, err := app.GetWeekHandler.Handle(cmd.Context(), trackingQueries.GetWeekQuery{UserID: app.CurrentUserID}); err == nil {
			showWeek(week)
		}
		if heatmap, err := app.GetHeatmapHandler.Handle(cmd.Context(), trackingQueries.GetHeatmapQuery{UserID: app.CurrentUserID}); err == nil {
			showHeatmap(heatmap)
		}

		fmt.Println()
		return nil
	},
}

func showStats(view *trackingQueries.DashboardView) {
	fmt.Println("\n  🎯 TODAY")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("    Solved today:  %d / %d", view.TodayTotal, view.DailyTarget)
	if view.TargetMet {
		fmt.Print("  ✓ target met")
	} else {
		fmt.Printf("  (%d to go)", view.Remaining)
	}
	fmt.Println()
	fmt.Printf("    Streak:        %d day(s) 🔥\n", view.Streak)
	fmt.Printf("    Total solved:  %d\n", view.TotalSolved)
	if view.LastSyncAt != nil {
		fmt.Printf("    Last sync:     %s\n", view.LastSyncAt.Local().Format("Jan 2 15:04"))
	} else {
		fmt.Println("    Last sync:     never (run 'codestrike sync')")
	}
}

func showGoals(view *trackingQueries.DashboardView) {
	if len(view.Goals) == 0 {
		return
	}
	fmt.Println("\n  🏁 GOALS")
	fmt.Println(strings.Repeat("-", 60))
	for _, g := range view.Goals {
		fmt.Printf("    %-34s %4d/%-4d %3d%%\n", g.Description, g.Progress, g.TargetCount, g.Percent)
	}
}

func showWeek(week []trackingQueries.WeekDay) {
	fmt.Println("\n  📈 LAST 7 DAYS")
	fmt.Println(strings.Repeat("-", 60))
	for _, d := range week {
		marker := " "
		if d.Met {
			marker = "✓"
		}
		bar := strings.Repeat("■", d.Solved)
		fmt.Printf("    %s %s %-12s (%d, target %d)\n", d.Day.Time().Format("Mon"), marker, bar, d.Solved, d.Target)
	}
}

func showHeatmap(heatmap *trackingQueries.HeatmapView) {
	fmt.Println("\n  🗓  LAST YEAR")
	fmt.Println(strings.Repeat("-", 60))
	// One row per weekday, one column per week.
	for d := 0; d < 7; d++ {
		var row strings.Builder
		row.WriteString("    ")
		for _, week := range heatmap.Weeks {
			cell := week[d]
			if cell.Future {
				row.WriteString(" ")
				continue
			}
			row.WriteString(heatmapLevels[cell.Level])
		}
		fmt.Println(row.String())
	}
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var focusDuration int

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Start a focused practice session",
	Long: `Run a countdown for a focused problem-solving session.

The timer is anchored to a wall-clock end time, so a suspended laptop
does not stretch the session. The timer never touches your progress;
log what you actually solved afterwards.

Examples:
  codestrike focus                # 25 minute session
  codestrike focus --duration 50`,
	Aliases: []string{"pomodoro", "timer"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if focusDuration <= 0 {
			return fmt.Errorf("duration must be positive, got %d", focusDuration)
		}
		duration := time.Duration(focusDuration) * time.Minute

		fmt.Println()
		fmt.Println(strings.Repeat("=", 50))
		fmt.Println("  FOCUS MODE")
		fmt.Println(strings.Repeat("=", 50))
		fmt.Printf("  Duration: %d minutes\n", focusDuration)
		fmt.Println()
		fmt.Println("  Press Ctrl+C to end session early")
		fmt.Println(strings.Repeat("-", 50))

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		go func() {
			<-sigCh
			fmt.Println("\n\n  Session interrupted!")
			cancel()
		}()

		startTime := time.Now()
		endTime := startTime.Add(duration)

		fmt.Println()
		if runTimer(ctx, duration, endTime) {
			fmt.Println("\n  Session complete! Now log what you solved: codestrike log <count>")
		}

		fmt.Println()
		fmt.Println(strings.Repeat("=", 50))
		fmt.Printf("  Session ended. Total time: %s\n", formatElapsed(time.Since(startTime)))
		fmt.Println(strings.Repeat("=", 50))
		fmt.Println()
		return nil
	},
}

// runTimer counts down to the absolute endTime. Remaining time is always
// recomputed from the clock, never decremented.
func runTimer(ctx context.Context, duration time.Duration, endTime time.Time) bool {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case now := <-ticker.C:
			remaining := endTime.Sub(now)
			if remaining <= 0 {
				fmt.Printf("\r  %s - DONE!          ", formatDurationTimer(0))
				return true
			}

			progress := float64(duration-remaining) / float64(duration)
			if progress < 0 {
				progress = 0
			}
			barWidth := 30
			filled := int(progress * float64(barWidth))
			bar := strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled)

			fmt.Printf("\r  %s [%s] %.0f%%", formatDurationTimer(remaining), bar, progress*100)
		}
	}
}

func formatDurationTimer(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d", m, s)
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

func init() {
	focusCmd.Flags().IntVarP(&focusDuration, "duration", "d", 25, "focus duration in minutes")
	rootCmd.AddCommand(focusCmd)
}

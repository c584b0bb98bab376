package cli

import (
	"bufio"
	"fmt"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"
)

type quote struct {
	text   string
	author string
}

var quotes = []quote{
	{"You were dangerous back then. Now you're just scrolling (Please bring back that beast!!!!)", "Self"},
	{"It always seems impossible until it is done.", "Nelson Mandela"},
	{"Arrays broke you today? Fine. They'll fund your rent tomorrow", "Reality"},
	{"Are we building problem-solving skills or just building excuses today?", "Discipline"},
	{"Be honest — are we still an aspirant or just emotionally attached to the idea? (stop dreaming and get into action)", "Hard Truth"},
	{"Solve it or not — showing up already puts you top 10%", "Statistics"},
	{"Your DSA streak is so inconsistent even Git can't track it. So please continue solving!", "GitHub"},
	{"Your brain has a PhD in overthinking and a diploma in execution. Make use of your brain!", "Focus"},
	{"You're not bad. You're just underperforming on purpose — and that's the most tragic flex of all. Now go solve one problem. Not because you're motivated. Because your future self is tired of your nonsense", "Tough Love"},
	{"The expert in anything was once a beginner.", "Helen Hayes"},
	{"If effort were WiFi, yours would say \"connected, no internet.\" (Basically no use!!!)", "Tech Humor"},
	{"Your mind is a programmable supercomputer. Use it.", "Unknown"},
}

// maxShuffles is how many re-rolls you get before the ultimatum.
const maxShuffles = 4

var motivateCmd = &cobra.Command{
	Use:   "motivate",
	Short: "Get a motivational quote",
	Long: `Print a motivational quote. You can re-roll a few times, but
motivation hunting has a limit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(cmd.InOrStdin())

		for shuffles := 0; ; shuffles++ {
			if shuffles > maxShuffles {
				printUltimatum()
				return nil
			}
			q := quotes[rand.Intn(len(quotes))]
			fmt.Printf("\n  “%s”\n     — %s\n\n", q.text, q.author)

			fmt.Print("  Still feeling low? [y/N] ")
			answer, err := reader.ReadString('\n')
			if err != nil || !strings.EqualFold(strings.TrimSpace(answer), "y") {
				fmt.Println("\n  Let's code! 🚀")
				return nil
			}
		}
	},
}

func printUltimatum() {
	fmt.Println()
	fmt.Println("  ⚠  Enough hunting for motivation.")
	fmt.Println("  Either shut the laptop and live with the guilt,")
	fmt.Println("  or open it and earn some dignity.")
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(motivateCmd)
}

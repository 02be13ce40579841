package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hijaydeep/Trivia-Game/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past games",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		source, _ := cmd.Flags().GetString("source")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		games, err := e.store.GameRepo().ListGames(cmd.Context(), store.QueryOpts{Limit: limit, Source: source})
		if err != nil {
			return fmt.Errorf("list games: %w", err)
		}
		if len(games) == 0 {
			fmt.Println("No games played yet.")
			return nil
		}

		fmt.Printf("%-19s  %-8s  %-24s  %-6s  %5s  %4s  %s\n",
			"Finished", "Source", "Category", "Diff", "Score", "Pct", "Time")
		fmt.Println(strings.Repeat("─", 84))
		for _, g := range games {
			category := g.Category
			if category == "" {
				category = "Any"
			}
			difficulty := g.Difficulty
			if difficulty == "" {
				difficulty = "any"
			}
			pct := 0.0
			if g.Total > 0 {
				pct = 100 * float64(g.Score) / float64(g.Total)
			}
			d := g.FinishedAt.Sub(g.StartedAt).Round(time.Second)
			fmt.Printf("%-19s  %-8s  %-24s  %-6s  %2d/%-2d  %3.0f%%  %d:%02d\n",
				g.FinishedAt.Local().Format("2006-01-02 15:04:05"),
				g.Source,
				truncate(category, 24),
				difficulty,
				g.Score, g.Total,
				pct,
				int(d.Minutes()), int(d.Seconds())%60,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of games to show")
	historyCmd.Flags().String("source", "", "Only show games from this source (opentdb or llm)")
}

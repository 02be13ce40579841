package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show totals across all games",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		s, err := e.store.GameRepo().Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		if s.Games == 0 {
			fmt.Println("No games played yet.")
			return nil
		}

		fmt.Printf("Games played:       %d\n", s.Games)
		fmt.Printf("Questions answered: %d\n", s.Questions)
		fmt.Printf("Correct answers:    %d\n", s.Correct)
		fmt.Printf("Accuracy:           %.1f%%\n", 100*s.Accuracy)
		fmt.Printf("Best game:          %d/%d\n", s.BestScore, s.BestTotal)
		return nil
	},
}

package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List Open Trivia DB categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		cats, err := newAPIClient(cfg).Categories(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch categories: %w", err)
		}
		sort.Slice(cats, func(i, j int) bool { return cats[i].ID < cats[j].ID })

		fmt.Printf("%-4s  %s\n", "ID", "Category")
		fmt.Println(strings.Repeat("─", 48))
		for _, c := range cats {
			fmt.Printf("%-4d  %s\n", c.ID, c.Name)
		}
		fmt.Println()
		fmt.Println("Play one with: trivia --category <ID>")
		return nil
	},
}

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored games",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm("Delete every stored game? [y/N] ") {
			fmt.Println("Aborted.")
			return nil
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		n, err := e.store.GameRepo().Reset(cmd.Context())
		if err != nil {
			return fmt.Errorf("reset games: %w", err)
		}
		fmt.Printf("Deleted %d game(s).\n", n)
		return nil
	},
}

// confirm asks prompt on stdout and reads a yes/no answer from stdin.
func confirm(prompt string) bool {
	fmt.Print(prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

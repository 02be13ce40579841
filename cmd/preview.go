package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hijaydeep/Trivia-Game/internal/config"
	"github.com/hijaydeep/Trivia-Game/internal/trivia"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Answer a few questions in plain text (no database)",
	Long: `Fetch questions from the configured source and answer them on stdin.

Nothing is stored. Useful for checking a category, difficulty or LLM
provider before playing.`,
	RunE: runPreview,
}

func init() {
	f := previewCmd.Flags()
	f.Int("count", 3, "Number of questions to fetch")
	f.IntP("category", "c", 0, "Category ID (0 = any)")
	f.StringP("difficulty", "d", "", "easy, medium or hard (empty = any)")
	f.StringP("type", "t", "", "multiple or boolean (empty = any)")
	f.String("source", config.SourceOpenTDB, "Question source: opentdb or llm")
}

func runPreview(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	qs, err := newQuestionSource(ctx, cfg, nil, zap.NewNop())
	if err != nil {
		return err
	}

	fmt.Printf("Source: %s\n", qs.label)
	if qs.category != "" {
		fmt.Printf("Category: %s\n", qs.category)
	}
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	var correct, asked int

	for i := 1; i <= count; i++ {
		q, err := qs.source.Next(ctx)
		if err != nil {
			fmt.Printf("Question %d: fetch failed: %v\n\n", i, err)
			continue
		}
		asked++

		fmt.Printf("── Question %d/%d · %s · %s ──\n", i, count, q.Category, q.Difficulty)
		fmt.Println(q.Text)
		for j, o := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, o)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		pick, ok := parsePick(scanner.Text(), q)
		if !ok {
			fmt.Printf("(skipped) Answer: %s\n\n", q.Correct)
			continue
		}

		if q.IsCorrect(pick) {
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", q.Correct)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, asked)
	return nil
}

// parsePick accepts an option number (1-based), a letter (a-d) or the
// option text itself.
func parsePick(input string, q *trivia.Question) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(q.Options) {
			return q.Options[n-1], true
		}
		return "", false
	}
	if len(input) == 1 {
		if i := int(strings.ToLower(input)[0] - 'a'); i >= 0 && i < len(q.Options) {
			return q.Options[i], true
		}
	}
	for _, o := range q.Options {
		if strings.EqualFold(o, input) {
			return o, true
		}
	}
	return "", false
}

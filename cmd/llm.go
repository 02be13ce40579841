package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hijaydeep/Trivia-Game/internal/llm"
	"github.com/hijaydeep/Trivia-Game/internal/questiongen"
	"github.com/hijaydeep/Trivia-Game/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect questions generated with --source llm",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated questions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		var f eventFilter
		f.failedOnly, _ = cmd.Flags().GetBool("failed")
		f.model, _ = cmd.Flags().GetString("model")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		list, err := e.store.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		printQuestionLog(os.Stdout, f.apply(list))
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one generated question with its prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}
		raw, _ := cmd.Flags().GetBool("raw")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ev, err := e.store.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if ev == nil {
			return fmt.Errorf("event %d not found", id)
		}
		printEvent(os.Stdout, ev, raw)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost per question",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		events := e.store.EventRepo()
		ctx := cmd.Context()
		byPurpose, err := events.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := events.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		printUsage(os.Stdout, byPurpose, byModel)
		return nil
	},
}

// eventFilter narrows the question log. The zero value keeps everything.
type eventFilter struct {
	failedOnly bool
	model      string // case-insensitive substring
}

func (f eventFilter) apply(list []store.LLMEvent) []store.LLMEvent {
	var out []store.LLMEvent
	for _, ev := range list {
		if f.failedOnly && ev.Success {
			continue
		}
		if f.model != "" && !strings.Contains(strings.ToLower(ev.Model), strings.ToLower(f.model)) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// decodeQuestion reads the generated question out of a stored response.
func decodeQuestion(body string) (*questiongen.Output, bool) {
	var out questiongen.Output
	if body == "" || json.Unmarshal([]byte(body), &out) != nil || out.Question == "" {
		return nil, false
	}
	return &out, true
}

// summary is the one-line description of an event in the log.
func summary(ev store.LLMEvent) string {
	if !ev.Success {
		return "error: " + ev.ErrorMessage
	}
	if q, ok := decodeQuestion(ev.ResponseBody); ok {
		return q.Question
	}
	return "(unreadable response)"
}

func printQuestionLog(w io.Writer, list []store.LLMEvent) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No generated questions found.")
		return
	}
	fmt.Fprintf(w, "%-5s  %-16s  %-20s  %6s  %6s  %s\n", "ID", "Time", "Model", "Tokens", "Ms", "Question")
	fmt.Fprintln(w, strings.Repeat("─", 100))
	for _, ev := range list {
		fmt.Fprintf(w, "%-5d  %-16s  %-20s  %6d  %6d  %s\n",
			ev.ID,
			ev.Timestamp.Local().Format("2006-01-02 15:04"),
			truncate(ev.Model, 20),
			ev.InputTokens+ev.OutputTokens,
			ev.LatencyMs,
			truncate(summary(ev), 60),
		)
	}
}

func printEvent(w io.Writer, ev *store.LLMEvent, raw bool) {
	fmt.Fprintf(w, "#%d  %s  %s/%s  %dms  %d in / %d out\n",
		ev.ID, ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
		ev.Provider, ev.Model, ev.LatencyMs, ev.InputTokens, ev.OutputTokens)
	fmt.Fprintln(w)

	q, ok := decodeQuestion(ev.ResponseBody)
	switch {
	case !ev.Success:
		fmt.Fprintf(w, "Failed: %s\n", ev.ErrorMessage)
	case ok:
		fmt.Fprintf(w, "%s\n\n", q.Question)
		fmt.Fprintf(w, "  ✓ %s\n", q.CorrectAnswer)
		for _, a := range q.IncorrectAnswers {
			fmt.Fprintf(w, "  ✗ %s\n", a)
		}
		fmt.Fprintf(w, "\n%s · %s · %s\n", orAny(q.Category), orAny(q.Difficulty), orAny(q.Type))
	default:
		raw = true
	}

	if !raw {
		return
	}
	section(w, "PROMPT", ev.RequestBody)
	section(w, "RESPONSE", ev.ResponseBody)
}

func section(w io.Writer, title, body string) {
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintf(w, "\n── %s %s\n%s\n", title, strings.Repeat("─", 56-len(title)), body)
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

func printUsage(w io.Writer, byPurpose []store.LLMPurposeUsage, byModel []store.LLMModelUsage) {
	var questions store.LLMPurposeUsage
	for _, u := range byPurpose {
		if u.Purpose == questiongen.Purpose {
			questions = u
		}
	}
	if questions.Calls == 0 && len(byModel) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return
	}
	fmt.Fprintf(w, "%d question requests, %d tokens, %dms average\n\n",
		questions.Calls, questions.InputTokens+questions.OutputTokens, questions.AvgLatencyMs)

	fmt.Fprintf(w, "%-28s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Tokens", "Cost", "Per call")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	var total float64
	var calls int
	var unpriced []string
	for _, u := range byModel {
		price := llm.LookupCost(u.Model)
		if price == nil {
			unpriced = append(unpriced, u.Model)
			fmt.Fprintf(w, "%-28s  %6d  %10d  %10s  %10s\n",
				truncate(u.Model, 28), u.Calls, u.InputTokens+u.OutputTokens, "?", "?")
			continue
		}
		c := price.Cost(u.InputTokens, u.OutputTokens)
		total += c
		calls += u.Calls
		fmt.Fprintf(w, "%-28s  %6d  %10d  %10s  %10s\n",
			truncate(u.Model, 28), u.Calls, u.InputTokens+u.OutputTokens, formatCost(c), perCall(c, u.Calls))
	}
	fmt.Fprintln(w, strings.Repeat("─", 72))
	fmt.Fprintf(w, "%-28s  %6d  %10s  %10s  %10s\n", "Priced total", calls, "", formatCost(total), perCall(total, calls))

	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

func perCall(usd float64, calls int) string {
	if calls == 0 {
		return "-"
	}
	return formatCost(usd / float64(calls))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to read")
	llmListCmd.Flags().Bool("failed", false, "Only show failed requests")
	llmListCmd.Flags().StringP("model", "m", "", "Only show models containing this text")
	llmViewCmd.Flags().Bool("raw", false, "Also print the prompt and raw response")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}

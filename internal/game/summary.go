package game

import "time"

// Summary holds the data displayed on the results screen.
type Summary struct {
	GameID   string
	Score    int
	Total    int
	Answered int
	Accuracy float64
	Duration time.Duration
	Answers  []Answer
}

// Summary builds the end-of-game summary. It can be called mid-game, in
// which case Duration runs to now.
func (s *State) Summary() *Summary {
	end := s.FinishedAt
	if end.IsZero() {
		end = s.now()
	}

	var accuracy float64
	if len(s.Answers) > 0 {
		accuracy = float64(s.Score) / float64(len(s.Answers))
	}

	answers := make([]Answer, len(s.Answers))
	copy(answers, s.Answers)

	return &Summary{
		GameID:   s.ID,
		Score:    s.Score,
		Total:    s.Total,
		Answered: len(s.Answers),
		Accuracy: accuracy,
		Duration: end.Sub(s.StartedAt),
		Answers:  answers,
	}
}

// Missed returns the answers that were wrong.
func (sum *Summary) Missed() []Answer {
	var out []Answer
	for _, a := range sum.Answers {
		if !a.IsCorrect {
			out = append(out, a)
		}
	}
	return out
}

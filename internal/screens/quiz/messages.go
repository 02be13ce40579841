package quiz

import (
	"github.com/hijaydeep/Trivia-Game/internal/trivia"
)

// questionLoadedMsg carries the result of one fetch. Seq ties it to the
// fetch that produced it so stale results can be dropped.
type questionLoadedMsg struct {
	Seq      int
	Question *trivia.Question
	Err      error
}

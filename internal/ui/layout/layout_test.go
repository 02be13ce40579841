package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestFrame_Render(t *testing.T) {
	f := Frame{
		Title:  "Question 3 of 10",
		Status: "Score 2",
		Hints:  []KeyHint{{Key: "1-4", Description: "Answer"}, {Key: "Esc", Description: "Quit"}},
	}

	var gotW, gotH int
	out := f.Render(100, 30, func(w, h int) string {
		gotW, gotH = w, h
		return "BODY"
	})

	assert.Equal(t, 100, gotW)
	assert.Equal(t, 30-6, gotH, "two bordered bars take three lines each")
	assert.Equal(t, 30, lipgloss.Height(out))
	for _, want := range []string{"Trivia", "Question 3 of 10", "Score 2", "BODY", "1-4", "Answer", "Esc"} {
		assert.Contains(t, out, want)
	}
}

func TestFrame_TooSmall(t *testing.T) {
	called := false
	out := Frame{Title: "Home"}.Render(60, 20, func(int, int) string {
		called = true
		return ""
	})
	assert.False(t, called)
	assert.True(t, strings.Contains(out, "Terminal too small"))
	assert.Contains(t, out, "60 x 20")
}

func TestIsCompact(t *testing.T) {
	assert.True(t, IsCompact(99, 40))
	assert.True(t, IsCompact(120, 29))
	assert.False(t, IsCompact(100, 30))
}

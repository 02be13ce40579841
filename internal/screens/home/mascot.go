package home

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/hijaydeep/Trivia-Game/internal/ui/theme"
)

// MascotVariant selects which quizmaster art to display.
type MascotVariant int

const (
	MascotIdle    MascotVariant = iota // no games yet, or an average last game
	MascotCheer                        // last game was 70% or better
	MascotPuzzled                      // last game was below 40%
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│  ?  │
└─────┘`

const mascotCheer = `┌─────┐
│ ★ ★ │
│  ◡  │
│  ✓  │
└─╥═╥─┘
  ╚═╝`

const mascotPuzzled = `┌─────┐
│ ◉ ◔ │ ?
│  ~  │
│  ?  │
└─────┘`

// mascotFor picks the variant from the accuracy of the last game.
func mascotFor(last *lastGame) MascotVariant {
	if last == nil || last.total == 0 {
		return MascotIdle
	}
	acc := float64(last.score) / float64(last.total)
	switch {
	case acc >= 0.7:
		return MascotCheer
	case acc < 0.4:
		return MascotPuzzled
	}
	return MascotIdle
}

// mascots maps each variant to its art and colour.
var mascots = map[MascotVariant]struct {
	art string
	fg  color.Color
}{
	MascotIdle:    {mascotIdle, theme.Primary},
	MascotCheer:   {mascotCheer, theme.Gold},
	MascotPuzzled: {mascotPuzzled, theme.Accent},
}

// RenderMascot returns the coloured art for variant.
func RenderMascot(variant MascotVariant) string {
	m, ok := mascots[variant]
	if !ok {
		m = mascots[MascotIdle]
	}
	return lipgloss.NewStyle().Foreground(m.fg).Render(m.art)
}

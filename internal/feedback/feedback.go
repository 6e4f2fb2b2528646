// Package feedback decides how seventy reacts to a saved entry: the
// mascot's mood, the celebration or nudge text and whether confetti flies.
package feedback

import (
	"math/rand/v2"
	"strings"

	"github.com/theirongolddev/seventy/internal/ledger"
	"github.com/theirongolddev/seventy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Mood selects the mascot face.
type Mood int

const (
	MoodIdle Mood = iota
	MoodHappy
	MoodSad
	MoodThinking
)

func (m Mood) String() string {
	switch m {
	case MoodHappy:
		return "happy"
	case MoodSad:
		return "sad"
	case MoodThinking:
		return "thinking"
	default:
		return "idle"
	}
}

// Reaction is what the interface shows after an event. Modal reactions
// carry a Title and Body; a nudge carries only a Badge.
type Reaction struct {
	Mood     Mood
	Title    string
	Body     string
	Badge    string
	Confetti bool
	Spin     bool
}

// Modal reports whether the reaction opens a dialog.
func (r Reaction) Modal() bool { return r.Title != "" }

const (
	celebrateTitle = "Nice job!"
	celebrateBody  = "You kept your spending within 70%, that builds real discipline."
	overBadge      = "Try again"
	motivateTitle  = "Need a push?"
)

// React returns the reaction to a saved entry.
func React(o ledger.Outcome) Reaction {
	if o.Within {
		return Reaction{
			Mood:     MoodHappy,
			Title:    celebrateTitle,
			Body:     celebrateBody,
			Confetti: true,
			Spin:     true,
		}
	}
	return Reaction{Mood: MoodSad, Badge: overBadge}
}

// Motivation returns the mascot prompt carrying quote.
func Motivation(quote string) Reaction {
	return Reaction{Mood: MoodThinking, Title: motivateTitle, Body: quote}
}

var confettiGlyphs = []rune{'*', '+', 'o', '~', '.', '^', 'x'}

// Confetti renders a single line of width colored glyphs. The same seed
// always yields the same line.
func Confetti(width int, seed uint64) string {
	if width <= 0 {
		return ""
	}
	t := theme.Active
	colors := []lipgloss.Color{t.Within, t.Accent, t.Yellow, t.Magenta, t.Blue, t.Over}
	rng := rand.New(rand.NewPCG(seed, seed^0x7030))

	var b strings.Builder
	for range width {
		if rng.IntN(3) == 0 {
			b.WriteByte(' ')
			continue
		}
		g := confettiGlyphs[rng.IntN(len(confettiGlyphs))]
		c := colors[rng.IntN(len(colors))]
		b.WriteString(lipgloss.NewStyle().Foreground(c).Render(string(g)))
	}
	return b.String()
}

var mascotFrames = map[Mood][]string{
	MoodIdle:     {"(•‿•)", "(•‿-)"},
	MoodHappy:    {"\\(^‿^)/", "(^‿^)", "\\(^o^)/"},
	MoodSad:      {"(•︵•)", "(-︵-)"},
	MoodThinking: {"(•_•)?", "(•_•)"},
}

// Frames returns the animation frames for mood.
func Frames(m Mood) []string {
	f, ok := mascotFrames[m]
	if !ok {
		f = mascotFrames[MoodIdle]
	}
	out := make([]string, len(f))
	copy(out, f)
	return out
}

// Frame returns frame i of mood's animation, wrapping around.
func Frame(m Mood, i int) string {
	f := Frames(m)
	if i < 0 {
		i = -i
	}
	return f[i%len(f)]
}

// Package abc reads a compact whitespace-separated music notation. A token
// is an optional accidental mark (^ sharp, _ flat, = natural), a note letter
// whose case picks the octave, and an optional duration modifier: a bare
// integer multiplies the base duration, `/n` divides it (n defaults to 2).
// `z` is a rest. Parsed tokens carry both a wall-clock duration for live
// playback and a whole-note span for the shared timeline grid.
package abc

import (
	"log/slog"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/nexis-yamamoto/rappa/constants"
	"github.com/nexis-yamamoto/rappa/timeline"
)

// BaseDuration is the length of an unmodified note, a quarter at 120 BPM.
const BaseDuration = 500 * time.Millisecond

// Note is one parsed token.
type Note struct {
	Token      string
	Rest       bool
	Accidental int
	Letter     string
	Frequency  float64
	Duration   time.Duration
	Whole      *big.Rat
}

// Options adjusts parsing. The zero value is ready to use.
type Options struct {
	// Logger receives notices when a token degrades to a rest or to the
	// base duration. Nil means slog.Default().
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Parse splits text on whitespace and reads every token. Malformed tokens
// degrade to rests, so one stray token never silences a whole line.
func Parse(text string, o Options) []Note {
	var notes []Note
	for _, tok := range strings.Fields(text) {
		notes = append(notes, ParseNote(tok, o))
	}
	return notes
}

// ParseNote reads a single token.
func ParseNote(token string, o Options) Note {
	n := Note{Token: token, Duration: BaseDuration, Whole: big.NewRat(1, 4)}
	if token == "" {
		n.Rest = true
		return n
	}
	if token[0] == 'z' {
		n.Rest = true
		n.Duration, n.Whole = o.parseModifier(token, modifierRun(token[1:]))
		return n
	}

	i, accidental := 0, 0
	switch token[0] {
	case '^':
		accidental, i = 1, 1
	case '_':
		accidental, i = -1, 1
	case '=':
		i = 1
	}
	if i >= len(token) || !isLetter(token[i]) {
		o.logger().Debug("token is not a note, playing a rest", "token", token)
		n.Rest = true
		return n
	}
	n.Accidental = accidental
	n.Letter = string(token[i])
	n.Frequency = Frequencies[n.Letter]
	if n.Accidental > 0 {
		n.Frequency *= SemitoneRatio
	} else if n.Accidental < 0 {
		n.Frequency /= SemitoneRatio
	}
	n.Duration, n.Whole = o.parseModifier(token, modifierRun(token[i+1:]))
	return n
}

// ToEvents lays parsed notes end to end on the tick grid so ABC input can
// share the SMF and live-playback paths. Rests become soundless events.
// A zero resolution means the default.
func ToEvents(notes []Note, resolution uint16) []timeline.Event {
	if resolution == 0 {
		resolution = constants.DefaultResolution
	}
	at := new(big.Rat)
	events := make([]timeline.Event, 0, len(notes))
	for _, n := range notes {
		e := timeline.Event{
			Start:    timeline.Ticks(at, resolution),
			Duration: timeline.DurationTicks(n.Whole, resolution),
			Note:     -1,
		}
		if !n.Rest {
			e.Note = NoteNumber(n.Frequency)
		}
		events = append(events, e)
		at.Add(at, n.Whole)
	}
	return events
}

// parseModifier reads a duration modifier. Unreadable modifiers keep the
// base duration.
func (o Options) parseModifier(token, mod string) (time.Duration, *big.Rat) {
	switch {
	case mod == "":
		return BaseDuration, big.NewRat(1, 4)
	case mod[0] == '/':
		div := 2
		if rest := mod[1:]; rest != "" {
			d, err := strconv.Atoi(rest)
			if err != nil || d <= 0 {
				o.logger().Debug("unreadable duration modifier, keeping the base duration", "token", token)
				return BaseDuration, big.NewRat(1, 4)
			}
			div = d
		}
		return BaseDuration / time.Duration(div), big.NewRat(1, int64(4*div))
	default:
		m, err := strconv.Atoi(mod)
		if err != nil || m <= 0 {
			o.logger().Debug("unreadable duration modifier, keeping the base duration", "token", token)
			return BaseDuration, big.NewRat(1, 4)
		}
		return BaseDuration * time.Duration(m), big.NewRat(int64(m), 4)
	}
}

// modifierRun returns the leading run of digits and slashes.
func modifierRun(s string) string {
	i := 0
	for i < len(s) && (s[i] == '/' || s[i] >= '0' && s[i] <= '9') {
		i++
	}
	return s[:i]
}

func isLetter(b byte) bool {
	return b >= 'A' && b <= 'G' || b >= 'a' && b <= 'g'
}

package ly

import (
	"math"
	"math/big"
)

// Kind discriminates document tree nodes. The set is closed: traversal
// switches over it and nodes of no kind contribute nothing.
type Kind int

const (
	KindDocument Kind = iota + 1
	KindMusic
	KindRelative
	KindScaler
	KindRepeat
	KindDrumMode
	KindAssignment
	KindChord
	KindTempo
	KindNote
	KindRest
	KindSkip
	KindChordRepeat
	KindDrumNote
	KindUnpitched
)

// Node is one vertex of the parsed document. Which fields carry meaning
// depends on Kind; the rest stay at their zero value.
type Node struct {
	Kind     Kind
	Children []*Node

	// durable leaves and chords
	Duration *big.Rat // written length in whole notes; nil on chord members
	DurMult  *big.Rat // *n/m suffix multiplier; nil means 1

	Pitch    Pitch
	HasPitch bool // KindNote with a pitch, or KindRelative with a reference

	DrumName string // KindDrumNote

	Simultaneous bool     // KindMusic: << >> instead of { }
	Factor       *big.Rat // KindScaler
	Count        int      // KindRepeat
	Name         string   // KindAssignment

	TempoBPM  int      // KindTempo; 0 when the marking carries no number
	TempoUnit *big.Rat // KindTempo beat unit in whole notes; nil means 1/4
}

// Value returns an assignment's value node.
func (n *Node) Value() *Node {
	if n.Kind != KindAssignment || len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// Pitch is a pitch spec: diatonic letter class (0 is C, 6 is B), octave and
// alteration. Octave 0 is the octave starting at MIDI note 48, one octave
// below middle C. Alter is in whole-tone units, so a sharp is 1/2 and a
// quarter-tone sharp is 1/4.
type Pitch struct {
	Letter int
	Octave int
	Alter  *big.Rat
}

var diatonicSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}

// Note converts the pitch to a MIDI note number. Out-of-range pitches
// saturate to [0,127] silently rather than failing.
func (p Pitch) Note() int {
	var alter float64
	if p.Alter != nil {
		alter, _ = p.Alter.Float64()
	}
	n := 12*(p.Octave+4) + diatonicSemitones[p.Letter] + int(math.Round(alter*2))
	if n < 0 {
		return 0
	}
	if n > 127 {
		return 127
	}
	return n
}

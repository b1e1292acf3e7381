package ly

import "math/big"

// FindMusic returns the first node in document order that is itself music,
// or the first assignment whose value is music. Nil means the document has
// nothing playable.
func FindMusic(doc *Node) *Node {
	for _, child := range doc.Children {
		if found := findMusic(child); found != nil {
			return found
		}
	}
	return nil
}

func findMusic(n *Node) *Node {
	if isMusic(n) {
		return n
	}
	if n.Kind == KindAssignment {
		if v := n.Value(); v != nil && isMusic(v) {
			return v
		}
	}
	for _, child := range n.Children {
		if found := findMusic(child); found != nil {
			return found
		}
	}
	return nil
}

func isMusic(n *Node) bool {
	switch n.Kind {
	case KindMusic, KindRelative, KindScaler, KindRepeat, KindDrumMode, KindChord:
		return true
	}
	return false
}

// Tempo returns the quarter-note BPM of the first tempo marking that
// carries a number, scanning the whole document in document order. The
// marking's own beat unit normalizes the value: `\tempo 2 = 60` reads as
// 120 quarter BPM. fallback applies when no such marking exists.
func Tempo(doc *Node, fallback float64) float64 {
	if n := findTempo(doc); n != nil {
		unit := n.TempoUnit
		if unit == nil {
			unit = big.NewRat(1, 4)
		}
		quarter := new(big.Rat).Mul(unit, big.NewRat(4, 1))
		quarter.Mul(quarter, big.NewRat(int64(n.TempoBPM), 1))
		f, _ := quarter.Float64()
		return f
	}
	return fallback
}

func findTempo(n *Node) *Node {
	if n.Kind == KindTempo && n.TempoBPM > 0 {
		return n
	}
	for _, child := range n.Children {
		if found := findTempo(child); found != nil {
			return found
		}
	}
	return nil
}

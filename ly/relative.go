package ly

import "errors"

// ResolveRelative rewrites relative-octave shorthand into absolute octaves,
// in place. Each relative block resolves atomically: when one fails its
// written pitches stay untouched and the first failure is reported, while
// every other block still resolves. Callers are expected to proceed with
// the document either way; unresolved pitches just read as absolute.
func ResolveRelative(doc *Node) error {
	var firstErr error
	var visit func(n *Node)
	visit = func(n *Node) {
		for _, child := range n.Children {
			if child.Kind == KindRelative {
				if err := resolveBlock(child); err != nil && firstErr == nil {
					firstErr = err
				}
				continue
			}
			visit(child)
		}
	}
	visit(doc)
	return firstErr
}

func resolveBlock(rel *Node) error {
	if len(rel.Children) == 0 {
		return errors.New("relative block has no music")
	}
	// no reference pitch written means relative to c'
	ref := Pitch{Octave: 1}
	if rel.HasPitch {
		ref = rel.Pitch
	}

	// Octaves are computed for the whole block before any node is touched,
	// so a failure part way cannot leave the block half rewritten.
	var notes []*Node
	var octaves []int
	var nestedErr error
	prev := ref

	var walk func(n *Node)
	walk = func(n *Node) {
		switch n.Kind {
		case KindRelative:
			// a nested block resolves against its own reference
			if err := resolveBlock(n); err != nil && nestedErr == nil {
				nestedErr = err
			}
		case KindChord:
			// members follow one another; the note after the chord
			// follows the chord's first member
			chordPrev := prev
			first := true
			for _, m := range n.Children {
				if m.Kind != KindNote || !m.HasPitch {
					continue
				}
				resolved := absolute(chordPrev, m.Pitch)
				notes = append(notes, m)
				octaves = append(octaves, resolved.Octave)
				if first {
					prev = resolved
					first = false
				}
				chordPrev = resolved
			}
		case KindNote:
			if n.HasPitch {
				resolved := absolute(prev, n.Pitch)
				notes = append(notes, n)
				octaves = append(octaves, resolved.Octave)
				prev = resolved
			}
		default:
			for _, child := range n.Children {
				walk(child)
			}
		}
	}
	for _, child := range rel.Children {
		walk(child)
	}

	for i, n := range notes {
		n.Pitch.Octave = octaves[i]
	}
	return nestedErr
}

// absolute places written within a fourth of prev, then applies the written
// octave marks on top of that choice.
func absolute(prev, written Pitch) Pitch {
	diff := written.Letter - prev.Letter
	written.Octave += prev.Octave - floorDiv(diff+3, 7)
	return written
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

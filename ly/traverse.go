package ly

import (
	"math/big"

	"github.com/nexis-yamamoto/rappa/timeline"
)

type collector struct {
	o      Options
	drums  map[string]uint8
	events []timeline.Event
}

func collect(root *Node, o Options) []timeline.Event {
	c := &collector{o: o, drums: o.drumMap()}
	c.walk(root, new(big.Rat), big.NewRat(1, 1), false)
	return c.events
}

// walk visits node at position `at` (whole notes since the start) under the
// ambient scaling factor and returns the node's elapsed duration in whole
// notes. drums reports whether a drum-mode block encloses the node; it is
// threaded down the recursion, never stored.
func (c *collector) walk(n *Node, at, scaling *big.Rat, drums bool) *big.Rat {
	switch n.Kind {
	case KindDocument, KindAssignment:
		return c.sequence(n.Children, at, scaling, drums)

	case KindMusic, KindRelative:
		if n.Simultaneous {
			// parallel branches share the entry time; the block lasts as
			// long as its longest branch
			longest := new(big.Rat)
			for _, child := range n.Children {
				if d := c.walk(child, at, scaling, drums); d.Cmp(longest) > 0 {
					longest = d
				}
			}
			return longest
		}
		return c.sequence(n.Children, at, scaling, drums)

	case KindScaler:
		return c.sequence(n.Children, at, new(big.Rat).Mul(scaling, n.Factor), drums)

	case KindRepeat:
		total := new(big.Rat)
		pos := new(big.Rat).Set(at)
		for i := 0; i < n.Count; i++ {
			d := c.sequence(n.Children, pos, scaling, drums)
			pos.Add(pos, d)
			total.Add(total, d)
		}
		return total

	case KindDrumMode:
		return c.sequence(n.Children, at, scaling, true)

	case KindTempo:
		return new(big.Rat)

	case KindChord:
		dur := durationOf(n, scaling)
		if drums {
			// the chord's timing is computed once and shared by every
			// drum hit inside it
			start := timeline.Ticks(at, c.o.resolution())
			ticks := timeline.DurationTicks(dur, c.o.resolution())
			for _, m := range n.Children {
				if m.Kind != KindDrumNote {
					continue
				}
				note, ok := c.drums[m.DrumName]
				if !ok {
					c.o.logger().Warn("skipping unknown drum name", "name", m.DrumName)
					continue
				}
				c.events = append(c.events, timeline.Event{
					Start:    start,
					Duration: ticks,
					Note:     int(note),
					Channel:  c.o.drumChannel(),
				})
			}
			return dur
		}
		// pitched members emit individually at the chord's start with
		// their own (empty) duration; only the chord advances time
		for _, m := range n.Children {
			c.walk(m, at, scaling, drums)
		}
		return dur

	case KindNote, KindRest, KindSkip, KindChordRepeat, KindDrumNote, KindUnpitched:
		dur := durationOf(n, scaling)
		start := timeline.Ticks(at, c.o.resolution())
		ticks := timeline.DurationTicks(dur, c.o.resolution())
		note := -1
		var channel uint8
		switch {
		case n.Kind == KindDrumNote && drums:
			v, ok := c.drums[n.DrumName]
			if !ok {
				c.o.logger().Warn("skipping unknown drum name", "name", n.DrumName)
				return dur
			}
			note = int(v)
			channel = c.o.drumChannel()
		case n.Kind == KindNote && n.HasPitch:
			note = n.Pitch.Note()
		}
		c.events = append(c.events, timeline.Event{
			Start:    start,
			Duration: ticks,
			Note:     note,
			Channel:  channel,
		})
		return dur
	}
	return new(big.Rat)
}

func (c *collector) sequence(children []*Node, at, scaling *big.Rat, drums bool) *big.Rat {
	pos := new(big.Rat).Set(at)
	for _, child := range children {
		pos.Add(pos, c.walk(child, pos, scaling, drums))
	}
	return new(big.Rat).Sub(pos, at)
}

func durationOf(n *Node, scaling *big.Rat) *big.Rat {
	d := new(big.Rat)
	if n.Duration != nil {
		d.Set(n.Duration)
		if n.DurMult != nil {
			d.Mul(d, n.DurMult)
		}
	}
	return d.Mul(d, scaling)
}

// Package timeline holds the intermediate event form between notation
// front ends and MIDI output. Front ends produce Events on a shared tick
// grid; this package orders them and renders them as SMF data or as a
// timed message stream for live output.
package timeline

import (
	"math/big"
	"sort"
)

// Event is one scheduled item on the timeline. Start and Duration are in
// MIDI ticks. Note is a MIDI note number, or -1 for items that occupy time
// but make no sound (rests, skips, unpitched input).
type Event struct {
	Start    uint32
	Duration uint32
	Note     int
	Channel  uint8
}

type entry struct {
	Tick      uint32
	IsNoteOff bool
	Note      uint8
	Channel   uint8
}

// assemble explodes events into note-on/note-off entries ordered for
// emission. Soundless events are dropped here. Ties prioritize smaller tick
// values then note off, so a note ending exactly where the next begins
// releases before the next strikes. The sort is stable: simultaneous
// note-ons keep the order their events were appended in.
func assemble(events []Event) []entry {
	var entries []entry
	for _, e := range events {
		if e.Note < 0 {
			continue
		}
		entries = append(entries, entry{Tick: e.Start, Note: uint8(e.Note), Channel: e.Channel})
		entries = append(entries, entry{Tick: e.Start + e.Duration, IsNoteOff: true, Note: uint8(e.Note), Channel: e.Channel})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Tick != entries[j].Tick {
			return entries[i].Tick < entries[j].Tick
		}
		return entries[i].IsNoteOff && !entries[j].IsNoteOff
	})
	return entries
}

// Length returns the tick where the last event ends.
func Length(events []Event) uint32 {
	var end uint32
	for _, e := range events {
		if t := e.Start + e.Duration; t > end {
			end = t
		}
	}
	return end
}

// Ticks converts a position in whole notes to an absolute tick count.
// resolution is in ticks per quarter note, so one whole note spans 4x it.
func Ticks(at *big.Rat, resolution uint16) uint32 {
	return uint32(roundRat(scaled(at, resolution)))
}

// DurationTicks converts a span in whole notes to ticks, never below one
// tick so arbitrarily short notes still sound.
func DurationTicks(d *big.Rat, resolution uint16) uint32 {
	t := roundRat(scaled(d, resolution))
	if t < 1 {
		t = 1
	}
	return uint32(t)
}

func scaled(r *big.Rat, resolution uint16) *big.Rat {
	return new(big.Rat).Mul(r, big.NewRat(int64(resolution)*4, 1))
}

// roundRat rounds a non-negative rational to the nearest integer, halves up.
func roundRat(r *big.Rat) int64 {
	q := new(big.Int)
	rem := new(big.Int)
	q.QuoRem(r.Num(), r.Denom(), rem)
	rem.Lsh(rem, 1)
	if rem.Cmp(r.Denom()) >= 0 {
		return q.Int64() + 1
	}
	return q.Int64()
}

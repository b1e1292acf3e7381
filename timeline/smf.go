package timeline

import (
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/nexis-yamamoto/rappa/constants"
)

// Options shape the rendered MIDI stream. Zero values fall back to the
// package defaults (480 PPQ, 120 BPM).
type Options struct {
	Resolution uint16  // ticks per quarter note
	Tempo      float64 // quarter-note beats per minute
	TrackName  string
}

func (o Options) resolution() uint16 {
	if o.Resolution == 0 {
		return constants.DefaultResolution
	}
	return o.Resolution
}

func (o Options) tempo() float64 {
	if o.Tempo == 0 {
		return constants.DefaultTempo
	}
	return o.Tempo
}

// NewSMF renders events as a format 1 file with a single track: track name,
// tempo, the delta-timed note stream, end of track. Every note message
// carries velocity 64.
func NewSMF(events []Event, o Options) *smf.SMF {
	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(o.resolution())

	track := smf.Track{}
	track = append(track, smf.Event{Delta: 0, Message: smf.MetaTrackSequenceName(o.TrackName)})
	track = append(track, smf.Event{Delta: 0, Message: smf.MetaTempo(o.tempo())})

	var lastTick uint32
	for _, e := range assemble(events) {
		var delta uint32
		if e.Tick > lastTick {
			delta = e.Tick - lastTick
		}
		lastTick = e.Tick
		track = append(track, smf.Event{Delta: delta, Message: smf.Message(message(e))})
	}

	track = append(track, smf.Event{Delta: 0, Message: smf.EOT})
	s.Add(track)
	return s
}

func message(e entry) midi.Message {
	if e.IsNoteOff {
		return midi.NoteOffVelocity(e.Channel, e.Note, constants.Velocity)
	}
	return midi.NoteOn(e.Channel, e.Note, constants.Velocity)
}

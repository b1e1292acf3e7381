// Package ly compiles LilyPond-style notation into timeline events: it
// parses the text into a document tree, resolves relative octaves, locates
// the playable music and the tempo, and walks the tree into timed note
// events ready for MIDI rendering.
package ly

import (
	"errors"
	"log/slog"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/nexis-yamamoto/rappa/constants"
	"github.com/nexis-yamamoto/rappa/timeline"
)

// Options configure a compilation. The zero value uses 480 ticks per
// quarter, a 120 BPM fallback, drum channel 9, the built-in drum map and
// the default logger.
type Options struct {
	Tempo       float64 // fallback quarter-note BPM when the input has no tempo marking
	Resolution  uint16  // ticks per quarter note
	DrumChannel uint8   // channel for drum-mode events
	DrumMap     map[string]uint8
	Logger      *slog.Logger
}

func (o Options) tempo() float64 {
	if o.Tempo == 0 {
		return constants.DefaultTempo
	}
	return o.Tempo
}

func (o Options) resolution() uint16 {
	if o.Resolution == 0 {
		return constants.DefaultResolution
	}
	return o.Resolution
}

func (o Options) drumChannel() uint8 {
	if o.DrumChannel == 0 {
		return constants.DefaultDrumChannel
	}
	return o.DrumChannel
}

func (o Options) drumMap() map[string]uint8 {
	if o.DrumMap == nil {
		return DefaultDrumMap
	}
	return o.DrumMap
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Events compiles LilyPond text into timeline events plus the effective
// quarter-note BPM. The only failure is input without playable music;
// every other anomaly degrades with a log entry instead.
func Events(text string, o Options) ([]timeline.Event, float64, error) {
	doc := Parse(text)
	if err := ResolveRelative(doc); err != nil {
		// keep going on the written pitches
		o.logger().Debug("relative pitch resolution failed", "err", err)
	}
	root := FindMusic(doc)
	if root == nil {
		return nil, 0, errors.New("could not find music content in the LilyPond input")
	}
	bpm := Tempo(doc, o.tempo())
	return collect(root, o), bpm, nil
}

// ToSMF compiles LilyPond text straight to a standard MIDI file.
func ToSMF(text string, o Options) (*smf.SMF, error) {
	events, bpm, err := Events(text, o)
	if err != nil {
		return nil, err
	}
	return timeline.NewSMF(events, timeline.Options{
		Resolution: o.resolution(),
		Tempo:      bpm,
		TrackName:  constants.LilyPondTrackName,
	}), nil
}

package midi

import (
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/nexis-yamamoto/rappa/util"
)

// Excerpt copies mf keeping only note on/off events from fromTick onward,
// capped per track at maxNotes events (no cap when maxNotes is zero or
// negative). Other events survive with their deltas collapsed so the
// excerpt starts right away.
func Excerpt(mf *smf.SMF, fromTick uint64, maxNotes int) *smf.SMF {
	var res smf.SMF
	res.TimeFormat = mf.TimeFormat

	for _, track := range mf.Tracks {
		var newTrack smf.Track
		var absTicks uint64
		var numNoteOnOff int
	TrackEventLoop:
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			switch {
			case evt.Message.Is(midi.NoteOnMsg),
				evt.Message.Is(midi.NoteOffMsg):
				if absTicks >= fromTick {
					newTrack = append(newTrack, evt)
					numNoteOnOff += 1
					if maxNotes > 0 && numNoteOnOff >= maxNotes {
						newTrack.Close(0)
						break TrackEventLoop
					}
				}
			default:
				evt.Delta = util.Min(evt.Delta, 1)
				newTrack = append(newTrack, evt)
			}
		}

		res.Tracks = append(res.Tracks, newTrack)
	}

	return &res
}

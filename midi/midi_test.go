package midi

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/nexis-yamamoto/rappa/timeline"
)

func testSMF(n int) *smf.SMF {
	var events []timeline.Event
	for i := 0; i < n; i++ {
		events = append(events, timeline.Event{
			Start:    uint32(i) * 480,
			Duration: 480,
			Note:     60 + i%12,
		})
	}
	return timeline.NewSMF(events, timeline.Options{TrackName: "excerpt test"})
}

func countNotes(s *smf.SMF) (ons, offs int) {
	var ch, key, vel uint8
	for _, track := range s.Tracks {
		for _, evt := range track {
			if evt.Message.GetNoteOn(&ch, &key, &vel) {
				ons++
			}
			if evt.Message.GetNoteOff(&ch, &key, &vel) {
				offs++
			}
		}
	}
	return ons, offs
}

func TestWriteFileReadFileRoundTrip(t *testing.T) {
	path := t.TempDir() + "/roundtrip.mid"

	assert := assert.New(t)
	assert.NoError(WriteFile(testSMF(3), path))

	s, err := ReadFile(path)
	assert.NoError(err)
	assert.Equal(s.TimeFormat, smf.TimeFormat(smf.MetricTicks(480)))
	assert.Equal(len(s.Tracks), 1)

	ons, offs := countNotes(s)
	assert.Equal(ons, 3)
	assert.Equal(offs, 3)
}

func TestWriteTempNamesAMidFile(t *testing.T) {
	path, err := WriteTemp(testSMF(1))

	assert := assert.New(t)
	assert.NoError(err)
	defer os.Remove(path)
	assert.Regexp(`rappa-.*\.mid$`, path)

	_, err = ReadFile(path)
	assert.NoError(err)
}

func TestReadFileReportsBadInput(t *testing.T) {
	assert := assert.New(t)

	_, err := ReadFile("does-not-exist.mid")
	assert.Error(err)

	path := t.TempDir() + "/garbage.mid"
	assert.NoError(os.WriteFile(path, []byte("this is not a midi file"), 0644))
	_, err = ReadFile(path)
	assert.Error(err)
}

func TestExcerptCapsNoteEvents(t *testing.T) {
	out := Excerpt(testSMF(12), 0, 10)

	assert := assert.New(t)
	ons, offs := countNotes(out)
	assert.Equal(ons+offs, 10)

	track := out.Tracks[0]
	assert.Equal(track[len(track)-1].Message.Type(), smf.MetaEndOfTrackMsg)

	var name string
	assert.True(track[0].Message.GetMetaTrackName(&name))
	assert.Equal(name, "excerpt test")
}

func TestExcerptSkipsNotesBeforeOffset(t *testing.T) {
	out := Excerpt(testSMF(4), 960, 0)

	assert := assert.New(t)
	ons, offs := countNotes(out)
	// the first note and the second note's strike fall before the offset
	assert.Equal(ons, 2)
	assert.Equal(offs, 3)

	var ch, key, vel uint8
	for _, evt := range out.Tracks[0] {
		if evt.Message.GetNoteOn(&ch, &key, &vel) {
			assert.GreaterOrEqual(key, uint8(62))
		}
	}
}

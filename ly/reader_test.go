package ly

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSequentialList(t *testing.T) {
	doc := Parse("{ c'4 d' e' }")

	assert := assert.New(t)
	assert.Equal(len(doc.Children), 1)

	music := doc.Children[0]
	assert.Equal(music.Kind, KindMusic)
	assert.False(music.Simultaneous)
	assert.Equal(len(music.Children), 3)

	c := music.Children[0]
	assert.Equal(c.Kind, KindNote)
	assert.True(c.HasPitch)
	assert.Equal(c.Pitch.Letter, 0)
	assert.Equal(c.Pitch.Octave, 1)
	assert.Equal(c.Duration, big.NewRat(1, 4))

	// d' and e' reuse the quarter by the sticky-duration rule
	assert.Equal(music.Children[1].Duration, big.NewRat(1, 4))
	assert.Equal(music.Children[2].Pitch.Letter, 2)
}

func TestParseSimultaneousList(t *testing.T) {
	doc := Parse("<< { c'4 } { e'2 } >>")

	assert := assert.New(t)
	music := doc.Children[0]
	assert.Equal(music.Kind, KindMusic)
	assert.True(music.Simultaneous)
	assert.Equal(len(music.Children), 2)
	assert.Equal(music.Children[0].Kind, KindMusic)
	assert.Equal(music.Children[1].Children[0].Duration, big.NewRat(1, 2))
}

func TestParsePitchWords(t *testing.T) {
	cases := []struct {
		word   string
		letter int
		alter  *big.Rat
		ok     bool
	}{
		{"c", 0, nil, true},
		{"b", 6, nil, true},
		{"cis", 0, big.NewRat(1, 2), true},
		{"bes", 6, big.NewRat(-1, 2), true},
		{"as", 5, big.NewRat(-1, 2), true},
		{"es", 2, big.NewRat(-1, 2), true},
		{"ases", 5, big.NewRat(-1, 1), true},
		{"fisis", 3, big.NewRat(1, 1), true},
		{"cih", 0, big.NewRat(1, 4), true},
		{"beh", 6, big.NewRat(-1, 4), true},
		{"h", 0, nil, false},
		{"bd", 0, nil, false},
		{"cymc", 0, nil, false},
	}
	for _, c := range cases {
		t.Run(c.word, func(t *testing.T) {
			p, ok := parsePitchWord(c.word)
			assert := assert.New(t)
			assert.Equal(ok, c.ok)
			if !c.ok {
				return
			}
			assert.Equal(p.Letter, c.letter)
			if c.alter == nil {
				assert.Nil(p.Alter)
			} else {
				assert.Equal(p.Alter, c.alter)
			}
		})
	}
}

func TestParseOctaveMarks(t *testing.T) {
	doc := Parse("{ c''4 g,,2 }")
	music := doc.Children[0]

	assert := assert.New(t)
	assert.Equal(music.Children[0].Pitch.Octave, 2)
	assert.Equal(music.Children[1].Pitch.Octave, -2)
}

func TestParseDottedAndMultipliedDurations(t *testing.T) {
	doc := Parse("{ c'4. d'8 e'4*2/3 f' }")
	music := doc.Children[0]

	assert := assert.New(t)
	assert.Equal(music.Children[0].Duration, big.NewRat(3, 8))
	assert.Equal(music.Children[1].Duration, big.NewRat(1, 8))
	assert.Equal(music.Children[2].Duration, big.NewRat(1, 4))
	assert.Equal(music.Children[2].DurMult, big.NewRat(2, 3))

	// the multiplier is part of the sticky duration
	assert.Equal(music.Children[3].Duration, big.NewRat(1, 4))
	assert.Equal(music.Children[3].DurMult, big.NewRat(2, 3))
}

func TestParseRestsAndSkips(t *testing.T) {
	doc := Parse("{ r4 s8 R1 q2 }")
	music := doc.Children[0]

	assert := assert.New(t)
	assert.Equal(music.Children[0].Kind, KindRest)
	assert.Equal(music.Children[1].Kind, KindSkip)
	assert.Equal(music.Children[1].Duration, big.NewRat(1, 8))
	assert.Equal(music.Children[2].Kind, KindRest)
	assert.Equal(music.Children[2].Duration, big.NewRat(1, 1))
	assert.Equal(music.Children[3].Kind, KindChordRepeat)
}

func TestParseChordKeepsMemberDurationsEmpty(t *testing.T) {
	doc := Parse("{ <c' e' g'>2 }")
	chord := doc.Children[0].Children[0]

	assert := assert.New(t)
	assert.Equal(chord.Kind, KindChord)
	assert.Equal(chord.Duration, big.NewRat(1, 2))
	assert.Equal(len(chord.Children), 3)
	for _, m := range chord.Children {
		assert.Equal(m.Kind, KindNote)
		assert.Nil(m.Duration)
	}
}

func TestParseRelativeReference(t *testing.T) {
	doc := Parse("\\relative c'' { c4 }")
	rel := doc.Children[0]

	assert := assert.New(t)
	assert.Equal(rel.Kind, KindRelative)
	assert.True(rel.HasPitch)
	assert.Equal(rel.Pitch.Octave, 2)
	assert.Equal(len(rel.Children), 1)
}

func TestParseRelativeWithoutReference(t *testing.T) {
	doc := Parse("\\relative { c4 }")
	rel := doc.Children[0]

	assert := assert.New(t)
	assert.Equal(rel.Kind, KindRelative)
	assert.False(rel.HasPitch)
}

func TestParseScalersAndRepeats(t *testing.T) {
	assert := assert.New(t)

	times := Parse("\\times 2/3 { c'8 }").Children[0]
	assert.Equal(times.Kind, KindScaler)
	assert.Equal(times.Factor, big.NewRat(2, 3))

	tuplet := Parse("\\tuplet 3/2 { c'8 }").Children[0]
	assert.Equal(tuplet.Kind, KindScaler)
	assert.Equal(tuplet.Factor, big.NewRat(2, 3))

	rep := Parse("\\repeat unfold 4 { c'8 }").Children[0]
	assert.Equal(rep.Kind, KindRepeat)
	assert.Equal(rep.Count, 4)

	volta := Parse("\\repeat volta 2 { c'8 }").Children[0]
	assert.Equal(volta.Count, 1)
}

func TestParseDrumMode(t *testing.T) {
	doc := Parse("\\drummode { bd4 sn <bd hh>8 }")
	inner := doc.Children[0]

	assert := assert.New(t)
	assert.Equal(inner.Kind, KindDrumMode)
	list := inner.Children[0]
	assert.Equal(list.Children[0].Kind, KindDrumNote)
	assert.Equal(list.Children[0].DrumName, "bd")
	assert.Equal(list.Children[1].DrumName, "sn")

	chord := list.Children[2]
	assert.Equal(chord.Kind, KindChord)
	assert.Equal(chord.Children[0].DrumName, "bd")
	assert.Equal(chord.Children[1].DrumName, "hh")
	assert.Equal(chord.Duration, big.NewRat(1, 8))
}

func TestParseTempoForms(t *testing.T) {
	assert := assert.New(t)

	plain := Parse("{ \\tempo 4 = 90 c'4 }").Children[0].Children[0]
	assert.Equal(plain.Kind, KindTempo)
	assert.Equal(plain.TempoBPM, 90)
	assert.Equal(plain.TempoUnit, big.NewRat(1, 4))

	dotted := Parse("{ \\tempo 4. = 40 c'4 }").Children[0].Children[0]
	assert.Equal(dotted.TempoBPM, 40)
	assert.Equal(dotted.TempoUnit, big.NewRat(3, 8))

	ranged := Parse("{ \\tempo 4 = 60-68 c'4 }").Children[0].Children[0]
	assert.Equal(ranged.TempoBPM, 60)

	text := Parse("{ \\tempo \"Allegro\" c'4 }").Children[0].Children[0]
	assert.Equal(text.Kind, KindTempo)
	assert.Equal(text.TempoBPM, 0)

	named := Parse("{ \\tempo \"Andante\" 4 = 72 c'4 }").Children[0].Children[0]
	assert.Equal(named.TempoBPM, 72)
}

func TestParseAssignment(t *testing.T) {
	doc := Parse("melody = { c'4 d' }\ntitle = \"song\"")

	assert := assert.New(t)
	assert.Equal(len(doc.Children), 2)

	melody := doc.Children[0]
	assert.Equal(melody.Kind, KindAssignment)
	assert.Equal(melody.Name, "melody")
	assert.Equal(melody.Value().Kind, KindMusic)

	title := doc.Children[1]
	assert.Equal(title.Name, "title")
	assert.Nil(title.Value())
}

func TestParseSkipsCommentsMarkupAndUnknownCommands(t *testing.T) {
	text := `\version "2.24.0"
% a line comment
%{ a block
comment %}
{
  \clef treble \time 3/4 \key g \major
  c'4^"marcato" d'4-. e'4
  | \unknownCommand f'4
}`
	doc := Parse(text)

	assert := assert.New(t)
	assert.Equal(len(doc.Children), 1)
	music := doc.Children[0]
	assert.Equal(music.Kind, KindMusic)
	assert.Equal(len(music.Children), 4)
	for _, n := range music.Children {
		assert.Equal(n.Kind, KindNote)
	}
}

func TestParseNewContextIsTransparent(t *testing.T) {
	doc := Parse("\\new Staff { c'4 }")
	music := doc.Children[0]

	assert := assert.New(t)
	assert.Equal(music.Kind, KindMusic)
	assert.Equal(len(music.Children), 1)
}

func TestParseUnterminatedGroupClosesAtEOF(t *testing.T) {
	doc := Parse("{ c'4 d'")
	music := doc.Children[0]

	assert := assert.New(t)
	assert.Equal(music.Kind, KindMusic)
	assert.Equal(len(music.Children), 2)
}

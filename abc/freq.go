package abc

import "math"

// Frequencies maps note letters to frequencies in hertz. Uppercase letters
// are the octave starting at middle C, lowercase the octave above.
var Frequencies = map[string]float64{
	"C": 261.63,
	"D": 293.66,
	"E": 329.63,
	"F": 349.23,
	"G": 392.00,
	"A": 440.00,
	"B": 493.88,
	"c": 523.25,
	"d": 587.33,
	"e": 659.25,
	"f": 698.46,
	"g": 783.99,
	"a": 880.00,
	"b": 987.77,
}

// Letters lists the note letters in ascending pitch order.
var Letters = []string{"C", "D", "E", "F", "G", "A", "B", "c", "d", "e", "f", "g", "a", "b"}

// SemitoneRatio is the frequency ratio between adjacent semitones.
var SemitoneRatio = math.Pow(2, 1.0/12)

// NoteNumber converts a frequency in hertz to the nearest MIDI note number.
// Non-positive frequencies map to note 0.
func NoteNumber(freq float64) int {
	if freq <= 0 {
		return 0
	}
	return int(math.Round(69 + 12*math.Log2(freq/440)))
}

// Frequency converts a MIDI note number to its frequency in hertz.
func Frequency(note int) float64 {
	return 440 * math.Pow(2, float64(note-69)/12)
}

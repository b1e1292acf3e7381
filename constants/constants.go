package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("RAPPA_OUT_DIR")
	if path != "" {
		return path
	}
	return "./out"
}

// DefaultResolution is the pulses-per-quarter-note of generated files.
const DefaultResolution uint16 = 480

// DefaultTempo is the quarter-note BPM used when the input names none.
const DefaultTempo float64 = 120

// Percussion events land on this zero-based channel (GM channel 10).
const DefaultDrumChannel uint8 = 9

const Velocity uint8 = 64

const LilyPondTrackName = "rappa LilyPond"

const AbcTrackName = "rappa ABC"

package timeline

import (
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Play walks the assembled stream in real time, sleeping out each delta at
// the configured tempo before handing the message to send. It returns the
// first send error.
func Play(events []Event, o Options, send func(midi.Message) error) error {
	return play(events, o, send, time.Sleep)
}

func play(events []Event, o Options, send func(midi.Message) error, sleep func(time.Duration)) error {
	ticks := smf.MetricTicks(o.resolution())
	var lastTick uint32
	for _, e := range assemble(events) {
		if e.Tick > lastTick {
			sleep(ticks.Duration(o.tempo(), e.Tick-lastTick))
		}
		lastTick = e.Tick
		if err := send(message(e)); err != nil {
			return err
		}
	}
	return nil
}

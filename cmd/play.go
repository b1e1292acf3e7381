package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"github.com/nexis-yamamoto/rappa/abc"
	"github.com/nexis-yamamoto/rappa/constants"
	midifile "github.com/nexis-yamamoto/rappa/midi"
	"github.com/nexis-yamamoto/rappa/timeline"
)

var playPort string
var playSave string
var playResolution uint16

func init() {
	playCmd.Flags().StringVar(&playPort, "port", "", "MIDI out port name or index, default is the first port")
	playCmd.Flags().StringVar(&playSave, "save", "", "write a .mid file instead of playing")
	playCmd.Flags().Uint16Var(&playResolution, "resolution", constants.DefaultResolution, "ticks per quarter note")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <notation>",
	Short: "Plays ABC notation on a MIDI out port",
	Long:  `Plays ABC notation on a MIDI out port, or writes it to a file with --save`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			panic("Need at least 1 arg...")
		}
		cobra.CheckErr(play(strings.Join(args, " ")))
	},
}

func play(text string) error {
	notes := abc.Parse(text, abc.Options{})
	events := abc.ToEvents(notes, playResolution)
	o := timeline.Options{Resolution: playResolution, TrackName: constants.AbcTrackName}

	if playSave != "" {
		return midifile.WriteFile(timeline.NewSMF(events, o), playSave)
	}

	defer midi.CloseDriver()
	out, err := openOutPort(playPort)
	if err != nil {
		return err
	}
	send, err := midi.SendTo(out)
	if err != nil {
		return err
	}
	return timeline.Play(events, o, send)
}

// openOutPort resolves a port by index or by name, defaulting to port 0.
func openOutPort(port string) (drivers.Out, error) {
	var out drivers.Out
	var err error
	if port == "" {
		out, err = midi.OutPort(0)
	} else if i, convErr := strconv.Atoi(port); convErr == nil {
		out, err = midi.OutPort(i)
	} else {
		out, err = midi.FindOutPort(port)
	}
	if err != nil {
		return nil, fmt.Errorf("no usable MIDI out port (%v), available ports: %v", err, midi.GetOutPorts())
	}
	return out, nil
}

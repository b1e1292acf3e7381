package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexis-yamamoto/rappa/midi"
	"github.com/nexis-yamamoto/rappa/util"
)

var inspectFromTick uint64
var inspectMaxNotes int
var inspectExcerpt string

func init() {
	inspectCmd.Flags().Uint64Var(&inspectFromTick, "from-tick", 0, "skip note events before this tick")
	inspectCmd.Flags().IntVar(&inspectMaxNotes, "max-notes", 0, "cap note events per track, 0 means all")
	inspectCmd.Flags().StringVar(&inspectExcerpt, "excerpt", "", "also write the selected slice to this .mid path")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a MIDI file",
	Long:  `Inspects a MIDI file`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		cobra.CheckErr(inspect(args[0]))
	},
}

func inspect(path string) error {
	mf, err := midi.ReadFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("format: %v\n", mf.TimeFormat)
	fmt.Printf("tracks: %v\n", len(mf.Tracks))

	for i, track := range mf.Tracks {
		deltas := make([]uint32, 0, len(track))
		var absTicks uint64
		var printed int
		var ch, key, vel uint8
		var name string
		var bpm float64
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			deltas = append(deltas, evt.Delta)
			switch {
			case evt.Message.GetMetaTrackName(&name):
				fmt.Printf("track %v name: %v\n", i, name)
			case evt.Message.GetMetaTempo(&bpm):
				fmt.Printf("track %v tempo: %.2f BPM\n", i, bpm)
			case evt.Message.GetNoteOn(&ch, &key, &vel):
				if absTicks >= inspectFromTick && (inspectMaxNotes <= 0 || printed < inspectMaxNotes) {
					fmt.Printf("%8d on  ch=%v note=%v vel=%v\n", absTicks, ch, key, vel)
					printed++
				}
			case evt.Message.GetNoteOff(&ch, &key, &vel):
				if absTicks >= inspectFromTick && (inspectMaxNotes <= 0 || printed < inspectMaxNotes) {
					fmt.Printf("%8d off ch=%v note=%v vel=%v\n", absTicks, ch, key, vel)
					printed++
				}
			}
		}
		fmt.Printf("track %v spans %v ticks over %v events\n", i, util.Sum(deltas), len(track))
	}

	if inspectExcerpt != "" {
		out := midi.Excerpt(mf, inspectFromTick, inspectMaxNotes)
		if err := midi.WriteFile(out, inspectExcerpt); err != nil {
			return err
		}
		fmt.Println(inspectExcerpt)
	}
	return nil
}

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nexis-yamamoto/rappa/constants"
	"github.com/nexis-yamamoto/rappa/ly"
	"github.com/nexis-yamamoto/rappa/midi"
	"github.com/nexis-yamamoto/rappa/util"
)

var convertOut string
var convertTempo float64
var convertResolution uint16
var convertDrumChannel uint8
var convertDrumMap string

func init() {
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "output .mid path, default is a fresh temp file")
	convertCmd.Flags().Float64Var(&convertTempo, "tempo", constants.DefaultTempo, "fallback BPM for input without a tempo marking")
	convertCmd.Flags().Uint16Var(&convertResolution, "resolution", constants.DefaultResolution, "ticks per quarter note")
	convertCmd.Flags().Uint8Var(&convertDrumChannel, "drum-channel", constants.DefaultDrumChannel, "channel for drum notes")
	convertCmd.Flags().StringVar(&convertDrumMap, "drum-map", "", "YAML file overriding drum name to note mappings")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <file.ly>",
	Short: "Converts LilyPond notation to a MIDI file",
	Long:  `Converts LilyPond notation to a MIDI file`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		cobra.CheckErr(convert(args[0]))
	},
}

func convert(path string) error {
	f := util.OpenFileOrPanic(path)
	defer f.Close()
	dat, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	o := ly.Options{
		Tempo:       convertTempo,
		Resolution:  convertResolution,
		DrumChannel: convertDrumChannel,
	}
	if convertDrumMap != "" {
		m, err := ly.LoadDrumMap(convertDrumMap)
		if err != nil {
			return err
		}
		o.DrumMap = m
	}

	s, err := ly.ToSMF(string(dat), o)
	if err != nil {
		return err
	}

	out := convertOut
	if out == "" {
		out, err = midi.WriteTemp(s)
		if err != nil {
			return err
		}
	} else if err := midi.WriteFile(s, out); err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

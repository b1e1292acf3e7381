package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rappa",
	Short: "Music notation to MIDI",
	Long:  `Compiles LilyPond notation and a compact ABC-like notation into MIDI files or live MIDI output.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

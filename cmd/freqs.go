package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexis-yamamoto/rappa/abc"
)

func init() {
	rootCmd.AddCommand(freqsCmd)
}

var freqsCmd = &cobra.Command{
	Use:   "freqs",
	Short: "Lists the note frequency table",
	Long:  `Lists the note frequency table`,
	Run: func(cmd *cobra.Command, args []string) {
		freqs()
	},
}

func freqs() {
	for _, letter := range abc.Letters {
		f := abc.Frequencies[letter]
		fmt.Printf("%v: %.2f Hz (note %v)\n", letter, f, abc.NoteNumber(f))
	}
}

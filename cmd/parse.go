package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexis-yamamoto/rappa/abc"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <notation>",
	Short: "Shows how ABC notation tokens are read",
	Long:  `Shows how ABC notation tokens are read`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			panic("Need at least 1 arg...")
		}
		parse(strings.Join(args, " "))
	},
}

func parse(text string) {
	for _, n := range abc.Parse(text, abc.Options{}) {
		if n.Rest {
			fmt.Printf("%v: rest, %v\n", n.Token, n.Duration)
			continue
		}
		fmt.Printf("%v: %.2f Hz, note %v, %v\n", n.Token, n.Frequency, abc.NoteNumber(n.Frequency), n.Duration)
	}
}

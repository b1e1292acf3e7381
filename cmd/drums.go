package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/nexis-yamamoto/rappa/ly"
	"github.com/nexis-yamamoto/rappa/util"
)

var drumsMapFile string

func init() {
	drumsCmd.Flags().StringVar(&drumsMapFile, "drum-map", "", "YAML file overriding drum name to note mappings")
	rootCmd.AddCommand(drumsCmd)
}

var drumsCmd = &cobra.Command{
	Use:   "drums",
	Short: "Lists the drum name to MIDI note table",
	Long:  `Lists the drum name to MIDI note table`,
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(drums())
	},
}

func drums() error {
	m := ly.DefaultDrumMap
	if drumsMapFile != "" {
		loaded, err := ly.LoadDrumMap(drumsMapFile)
		if err != nil {
			return err
		}
		m = loaded
	}

	keys := util.GetKeys(m)
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%v: %v\n", k, m[k])
	}
	return nil
}

package ly

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// DefaultDrumMap maps percussion names, short mnemonics and their long
// forms, to General MIDI percussion note numbers.
var DefaultDrumMap = map[string]uint8{
	"bda": 35, "acousticbassdrum": 35,
	"bd": 36, "bassdrum": 36,
	"ss": 37, "sidestick": 37,
	"sn": 38, "snare": 38, "acousticsnare": 38,
	"hc": 39, "handclap": 39,
	"sne": 40, "electricsnare": 40,
	"tomfl": 41, "lowfloortom": 41,
	"hh": 42, "hihat": 42, "closedhihat": 42,
	"tomfh": 43, "highfloortom": 43,
	"hhp": 44, "pedalhihat": 44,
	"toml": 45, "lowtom": 45,
	"hho": 46, "openhihat": 46,
	"tomml": 47, "lowmidtom": 47,
	"tommh": 48, "himidtom": 48,
	"cymc": 49, "crashcymbal": 49,
	"tomh": 50, "hightom": 50,
	"cymr": 51, "ridecymbal": 51,
	"cymch": 52, "chinesecymbal": 52,
	"rb": 53, "ridebell": 53,
	"tamb": 54, "tambourine": 54,
	"cyms": 55, "splashcymbal": 55,
	"cb": 56, "cowbell": 56,
	"boh": 60, "hibongo": 60,
	"bol": 61, "lobongo": 61,
	"cgh": 63, "hiconga": 63,
	"cgl": 64, "lowconga": 64,
	"mar": 70, "maracas": 70,
	"guis": 73, "shortguiro": 73,
	"guil": 74, "longguiro": 74,
	"cl": 75, "claves": 75,
}

// LoadDrumMap reads a YAML name-to-note table and overlays it on the
// default map, so a file only needs to list the names it changes or adds.
func LoadDrumMap(path string) (map[string]uint8, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading drum map: %w", err)
	}
	var overrides map[string]uint8
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing drum map %v: %w", path, err)
	}
	m := make(map[string]uint8, len(DefaultDrumMap)+len(overrides))
	for k, v := range DefaultDrumMap {
		m[k] = v
	}
	for k, v := range overrides {
		m[k] = v
	}
	return m, nil
}

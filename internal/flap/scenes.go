package flap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scene is one full board of the demo sequence. Colors are optional and
// positional; empty entries leave the line's color untouched.
type Scene struct {
	Lines  []string `yaml:"lines"`
	Colors []string `yaml:"colors,omitempty"`
}

// DefaultScenes is the built-in demo: a Munich departure board, true to the
// sign this simulator imitates.
var DefaultScenes = []Scene{
	{
		Lines: []string{"FLUGHAFEN", "MUENCHEN", "TERMINAL 2", "ABFLUG", "GATE A15", "12:30"},
	},
	{
		Lines:  []string{"LH 442", "NACH", "NEW YORK JFK", "BOARDING", "GATE B22", "PUENKTLICH"},
		Colors: []string{"", "", "", "gruen", "", "gruen"},
	},
	{
		Lines:  []string{"AF 1123", "NACH", "PARIS CDG", "VERSPAETET", "GATE C04", "14:55"},
		Colors: []string{"", "", "", "gelb", "", "gelb"},
	},
	{
		Lines:  []string{"OS 118", "NACH", "WIEN", "GESTRICHEN", "", ""},
		Colors: []string{"", "", "", "rot", "", ""},
	},
	{
		Lines:  []string{"WILLKOMMEN", "IN", "MUENCHEN", "", "GUTEN FLUG", "SERVUS"},
		Colors: []string{"hellblau", "hellblau", "hellblau", "", "weiss", "weiss"},
	},
}

// LoadScenes reads a demo sequence from a YAML file of the form:
//
//	scenes:
//	  - lines: ["HALLO", "WELT"]
//	    colors: ["rot", ""]
func LoadScenes(path string) ([]Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenes: %w", err)
	}
	var doc struct {
		Scenes []Scene `yaml:"scenes"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("scenes: parsing %s: %w", path, err)
	}
	if len(doc.Scenes) == 0 {
		return nil, fmt.Errorf("scenes: %s contains no scenes", path)
	}
	return doc.Scenes, nil
}

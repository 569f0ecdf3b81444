package tui

import (
	"encoding/json"

	"github.com/Sidolux/pesel-generator/internal/export"
)

// configEnvelope wraps a JSON-encoded config value so we can store
// heterogeneous config types in a single zstore collection.
type configEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// Defaults holds the saved generation defaults. They pre-fill the
// export form and bound random identifier generation.
type Defaults struct {
	StartYear int    `json:"start_year"`
	EndYear   int    `json:"end_year"`
	Sex       string `json:"sex"`
	OutDir    string `json:"out_dir"`
	Workers   int    `json:"workers"`
}

// normalized fills unset fields so a missing or partial config behaves
// like the built-in defaults.
func (d Defaults) normalized() Defaults {
	if d.StartYear == 0 {
		d.StartYear = export.DefaultStartYear
	}
	if d.EndYear == 0 {
		d.EndYear = export.DefaultEndYear
	}
	if d.Sex == "" {
		d.Sex = "both"
	}
	if d.OutDir == "" {
		d.OutDir = export.DefaultOutDir
	}
	if d.Workers < 1 {
		d.Workers = 1
	}
	return d
}

package export

import (
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/zarlcorp/core/pkg/zfilesystem"
)

// manifestFile sits beside the partition files and records what the
// last run produced.
const manifestFile = "manifest.json"

// Manifest is the on-disk description of one export run.
type Manifest struct {
	CreatedAt time.Time      `json:"created_at"`
	StartYear int            `json:"start_year"`
	EndYear   int            `json:"end_year"`
	Sex       string         `json:"sex"`
	Count     int64          `json:"count"`
	Bytes     int64          `json:"bytes"`
	Files     []ManifestFile `json:"files"`
}

// ManifestFile describes one partition file of the run.
type ManifestFile struct {
	Name    string `json:"name"`
	Count   int64  `json:"count"`
	Bytes   int64  `json:"bytes"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewManifest builds the manifest for a completed run.
func NewManifest(req Request, res Result) Manifest {
	m := Manifest{
		CreatedAt: time.Now().UTC(),
		StartYear: req.StartYear,
		EndYear:   req.EndYear,
		Sex:       req.Sex.String(),
		Count:     res.TotalCount(),
		Bytes:     res.TotalBytes(),
	}
	for _, f := range res.Files {
		mf := ManifestFile{
			Name:    filepath.Base(f.Path),
			Count:   f.Count,
			Bytes:   f.Bytes,
			Skipped: f.Skipped,
		}
		if f.Err != nil {
			mf.Error = f.Err.Error()
		}
		m.Files = append(m.Files, mf)
	}
	return m
}

func writeManifest(req Request, res Result) error {
	data, err := json.MarshalIndent(NewManifest(req, res), "", "  ")
	if err != nil {
		return err
	}

	fsys := zfilesystem.NewOSFileSystem(req.OutDir)
	return fsys.WriteFile(manifestFile, append(data, '\n'), 0o644)
}

// ReadManifest loads the manifest from a previous run, if any.
func ReadManifest(dir string) (Manifest, error) {
	fsys := zfilesystem.NewOSFileSystem(dir)
	data, err := fsys.ReadFile(manifestFile)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

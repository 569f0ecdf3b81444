// Package export writes identifier partition files, one per year and
// sex, with a manifest describing what was produced.
package export

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Sidolux/pesel-generator/internal/pesel"
)

// each identifier is 11 digits plus a newline
const lineBytes = 12

// Defaults for batch export; the same year window seeds random
// generation elsewhere.
const (
	DefaultStartYear = 1950
	DefaultEndYear   = 2030
	DefaultOutDir    = "generated_pesels"
)

// Request describes one export run.
type Request struct {
	StartYear int
	EndYear   int
	Sex       pesel.Sex // Both produces a male and a female file per year
	OutDir    string
	Workers   int // concurrent file writers; values below 1 mean 1

	// Progress, when set, observes the run. Calls are serialized even
	// with multiple workers.
	Progress func(Event)
}

// Event is one progress observation: where a single file stands and how
// far the whole run has come.
type Event struct {
	Year       int
	Sex        pesel.Sex
	DaysDone   int // days finished within the current file
	DaysTotal  int
	FilesDone  int // files completed or skipped across the run
	FilesTotal int
}

// FileResult records the outcome for one partition file.
type FileResult struct {
	Path    string
	Year    int
	Sex     pesel.Sex
	Count   int64 // identifiers written
	Bytes   int64
	Skipped bool // already existed, left untouched
	Err     error
}

// Result summarizes a completed export.
type Result struct {
	OutDir   string
	Files    []FileResult
	Duration time.Duration
}

// HasErrors returns true if any file failed.
func (r Result) HasErrors() bool {
	for _, f := range r.Files {
		if f.Err != nil {
			return true
		}
	}
	return false
}

// Written returns how many files were actually produced.
func (r Result) Written() int {
	n := 0
	for _, f := range r.Files {
		if f.Err == nil && !f.Skipped {
			n++
		}
	}
	return n
}

// TotalCount returns the number of identifiers written across all files.
func (r Result) TotalCount() int64 {
	var n int64
	for _, f := range r.Files {
		n += f.Count
	}
	return n
}

// TotalBytes returns the bytes written across all files.
func (r Result) TotalBytes() int64 {
	var n int64
	for _, f := range r.Files {
		n += f.Bytes
	}
	return n
}

// Summary returns a human-readable summary of the export result.
func (r Result) Summary() string {
	var b strings.Builder

	if r.HasErrors() {
		fmt.Fprintf(&b, "exported %d identifiers to %s (with errors)", r.TotalCount(), r.OutDir)
	} else {
		fmt.Fprintf(&b, "exported %d identifiers to %s", r.TotalCount(), r.OutDir)
	}
	fmt.Fprintf(&b, "\n- %d files written (%s), %d skipped", r.Written(), FormatBytes(r.TotalBytes()), r.SkippedCount())

	for _, f := range r.Files {
		if f.Err != nil {
			fmt.Fprintf(&b, "\n- %s: %v", filepath.Base(f.Path), f.Err)
		}
	}

	return b.String()
}

// SkippedCount returns how many files already existed.
func (r Result) SkippedCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Skipped {
			n++
		}
	}
	return n
}

// unit is one partition file to produce.
type unit struct {
	year int
	sex  pesel.Sex
	name string
}

func unitsFor(req Request) []unit {
	sexes := []pesel.Sex{req.Sex}
	if req.Sex == pesel.Both {
		sexes = []pesel.Sex{pesel.Male, pesel.Female}
	}

	var units []unit
	for year := req.StartYear; year <= req.EndYear; year++ {
		for _, sex := range sexes {
			units = append(units, unit{
				year: year,
				sex:  sex,
				name: fmt.Sprintf("%d_%s.txt", year, sex),
			})
		}
	}
	return units
}

// Validate fails fast on requests Execute would reject.
func Validate(req Request) error {
	if req.OutDir == "" {
		return errors.New("output directory required")
	}
	_, err := pesel.YearSpan(req.StartYear, req.EndYear, req.Sex)
	return err
}

// Plan returns human-readable descriptions of what Execute will do.
// Used to populate the confirmation dialog.
func Plan(req Request) []string {
	units := unitsFor(req)
	var total int64
	for _, u := range units {
		span, err := pesel.YearSpan(u.year, u.year, u.sex)
		if err != nil {
			continue
		}
		total += span.Count()
	}

	return []string{
		fmt.Sprintf("write %d partition files to %s", len(units), req.OutDir),
		fmt.Sprintf("emit %d identifiers, %s on disk", total, FormatBytes(total*lineBytes)),
		"skip files that already exist",
	}
}

// Execute writes every partition file the request names. It is
// best-effort across files: one file failing is recorded in its
// FileResult and does not stop the others. Cancelling ctx stops all
// writers at the next day boundary; partial files are removed, never
// promoted.
func Execute(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	if err := Validate(req); err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(req.OutDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}

	units := unitsFor(req)
	results := make([]FileResult, len(units))

	var mu sync.Mutex
	filesDone := 0
	observe := func(u unit, daysDone, daysTotal int) {
		if req.Progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		req.Progress(Event{
			Year:       u.year,
			Sex:        u.sex,
			DaysDone:   daysDone,
			DaysTotal:  daysTotal,
			FilesDone:  filesDone,
			FilesTotal: len(units),
		})
	}
	finish := func(i int, fr FileResult) {
		mu.Lock()
		defer mu.Unlock()
		results[i] = fr
		filesDone++
	}

	workers := req.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, u := range units {
		g.Go(func() error {
			fr := writeUnit(gctx, req.OutDir, u, observe)
			finish(i, fr)
			// per-file errors stay in the result; only cancellation
			// stops the remaining files
			if errors.Is(fr.Err, context.Canceled) {
				return fr.Err
			}
			return nil
		})
	}
	err := g.Wait()

	res := Result{OutDir: req.OutDir, Files: results, Duration: time.Since(start)}
	if err != nil {
		return res, err
	}
	if merr := writeManifest(req, res); merr != nil {
		return res, fmt.Errorf("write manifest: %w", merr)
	}
	return res, nil
}

// writeUnit produces one partition file. Output streams through a
// .partial file that is renamed into place only on success, so an
// existing file is always complete.
func writeUnit(ctx context.Context, dir string, u unit, observe func(unit, int, int)) FileResult {
	res := FileResult{Path: filepath.Join(dir, u.name), Year: u.year, Sex: u.sex}

	if _, err := os.Stat(res.Path); err == nil {
		res.Skipped = true
		return res
	}

	span, err := pesel.YearSpan(u.year, u.year, u.sex)
	if err != nil {
		res.Err = err
		return res
	}
	span.Progress = func(done, total int) {
		observe(u, done, total)
	}
	perDay := span.Count() / int64(span.Days())

	tmp := res.Path + ".partial"
	f, err := os.Create(tmp)
	if err != nil {
		res.Err = fmt.Errorf("create %s: %w", u.name, err)
		return res
	}

	w := bufio.NewWriterSize(f, 1<<20)
	var n int64
	werr := span.Enumerate(func(id string) error {
		if n%perDay == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		n++
		if _, err := w.WriteString(id); err != nil {
			return err
		}
		return w.WriteByte('\n')
	})
	if werr == nil {
		werr = w.Flush()
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(tmp)
		res.Err = werr
		return res
	}
	if err := os.Rename(tmp, res.Path); err != nil {
		os.Remove(tmp)
		res.Err = fmt.Errorf("finalize %s: %w", u.name, err)
		return res
	}

	res.Count = n
	res.Bytes = n * lineBytes
	return res
}

// FormatBytes renders a byte count with 1024-based units.
func FormatBytes(n int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case n >= gb:
		return fmt.Sprintf("%.2f GB", float64(n)/gb)
	case n >= mb:
		return fmt.Sprintf("%.2f MB", float64(n)/mb)
	default:
		return fmt.Sprintf("%.2f KB", float64(n)/kb)
	}
}

package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Sidolux/pesel-generator/internal/export"
	"github.com/Sidolux/pesel-generator/internal/pesel"
)

// CmdExport writes per-year partition files for a range of years.
func CmdExport(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	from := fs.Int("from", export.DefaultStartYear, "first year")
	to := fs.Int("to", export.DefaultEndYear, "last year")
	sexFlag := fs.String("sex", "", "male, female or both")
	out := fs.String("out", export.DefaultOutDir, "output directory")
	workers := fs.Int("workers", 1, "concurrent file writers")
	fs.Parse(args)

	sex, err := pesel.ParseSex(*sexFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "peselgen: %v\n", err)
		os.Exit(1)
	}

	req := export.Request{
		StartYear: *from,
		EndYear:   *to,
		Sex:       sex,
		OutDir:    *out,
		Workers:   *workers,
	}
	if err := export.Validate(req); err != nil {
		fmt.Fprintf(os.Stderr, "peselgen: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Storing generated files in: %s\n", *out)

	bar := newProgressPrinter(os.Stderr)
	var lastDone int
	req.Progress = func(e export.Event) {
		// per-mille across equally weighted files; clamped so uneven
		// year lengths never move the bar backwards
		done := e.FilesDone*1000 + 1000*e.DaysDone/e.DaysTotal
		if done > lastDone {
			lastDone = done
		}
		bar.update(lastDone, e.FilesTotal*1000)
	}

	res, err := export.Execute(ctx, req)
	bar.finish()
	if err != nil {
		fmt.Fprintf(os.Stderr, "peselgen: %v\n", err)
		os.Exit(1)
	}

	for _, f := range res.Files {
		switch {
		case f.Skipped:
			fmt.Printf("File %s already exists, skipping...\n", f.Path)
		case f.Err != nil:
			fmt.Printf("Error generating %s: %v\n", f.Path, f.Err)
		default:
			fmt.Printf("Generated %s (%.1f MB)\n", f.Path, float64(f.Bytes)/(1<<20))
		}
	}

	fmt.Println("\nGeneration complete!")
	fmt.Printf("Total files generated: %d\n", res.Written())
	fmt.Printf("Total size: %.1f GB\n", float64(res.TotalBytes())/(1<<30))

	if res.HasErrors() {
		os.Exit(1)
	}
}

package cli

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/Sidolux/pesel-generator/internal/pesel"
)

// CmdRange enumerates every identifier for a year range, to stdout or
// to a file.
func CmdRange(args []string) {
	fs := flag.NewFlagSet("range", flag.ExitOnError)
	var sexFlag, output string
	fs.StringVar(&sexFlag, "sex", "", "restrict to male or female")
	fs.StringVar(&sexFlag, "s", "", "shorthand for --sex")
	fs.StringVar(&output, "output", "", "write identifiers to a file")
	fs.StringVar(&output, "o", "", "shorthand for --output")

	years, rest := splitYears(args)
	fs.Parse(rest)
	years = append(years, fs.Args()...)

	if len(years) < 1 || len(years) > 2 {
		fmt.Fprintln(os.Stderr, "usage: peselgen range START_YEAR [END_YEAR] [--sex male|female] [--output FILE]")
		os.Exit(1)
	}
	startYear, err := strconv.Atoi(years[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "peselgen: start year %q is not a number\n", years[0])
		os.Exit(1)
	}
	endYear := startYear
	if len(years) == 2 {
		endYear, err = strconv.Atoi(years[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "peselgen: end year %q is not a number\n", years[1])
			os.Exit(1)
		}
	}

	sex, err := pesel.ParseSex(sexFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "peselgen: %v\n", err)
		os.Exit(1)
	}
	span, err := pesel.YearSpan(startYear, endYear, sex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "peselgen: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Generating PESEL numbers for years %d-%d...\n", startYear, endYear)
	if sex != pesel.Both {
		fmt.Fprintf(os.Stderr, "Generating only %s PESELs\n", sex)
	}

	if output != "" {
		writeRangeFile(span, output)
		return
	}
	writeRangeStdout(span)
}

func writeRangeStdout(span pesel.Span) {
	// the bar only draws when stdout is redirected; on a terminal the
	// identifiers themselves show the motion
	var bar *progressPrinter
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		bar = newProgressPrinter(os.Stderr)
		span.Progress = bar.update
	}

	w := bufio.NewWriterSize(os.Stdout, 1<<20)
	var n int64
	err := span.Enumerate(func(id string) error {
		n++
		if _, err := w.WriteString(id); err != nil {
			return err
		}
		return w.WriteByte('\n')
	})
	if err == nil {
		err = w.Flush()
	}
	if bar != nil {
		bar.finish()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "peselgen: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nGenerated %d PESEL numbers\n", n)
}

func writeRangeFile(span pesel.Span, path string) {
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("File %s already exists. Overwrite? [y/N] ", path)
		sc := bufio.NewScanner(os.Stdin)
		answer := ""
		if sc.Scan() {
			answer = strings.TrimSpace(sc.Text())
		}
		if !strings.EqualFold(answer, "y") {
			fmt.Println("Operation cancelled.")
			return
		}
	}

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "peselgen: %v\n", err)
		os.Exit(1)
	}

	bar := newProgressPrinter(os.Stderr)
	span.Progress = bar.update

	w := bufio.NewWriterSize(f, 1<<20)
	var n int64
	werr := span.Enumerate(func(id string) error {
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
	bar.finish()
	if werr != nil {
		fmt.Fprintf(os.Stderr, "peselgen: %v\n", werr)
		os.Exit(1)
	}
	fmt.Printf("Generated %d PESEL numbers and saved to %s\n", n, path)
}

// splitYears peels leading non-flag arguments so years may come before
// the flags, argparse style.
func splitYears(args []string) (years, rest []string) {
	i := 0
	for i < len(args) && !strings.HasPrefix(args[i], "-") {
		years = append(years, args[i])
		i++
	}
	return years, args[i:]
}

package cli

import (
	"fmt"
	"os"

	"github.com/Sidolux/pesel-generator/internal/scan"
)

// CmdScan reads files (or stdin when none are given) and reports every
// verified identifier with its location, grep style.
func CmdScan(args []string) {
	if len(args) == 0 {
		matches, err := scan.ExtractReader(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "peselgen: scan: %v\n", err)
			os.Exit(1)
		}
		for _, m := range matches {
			fmt.Printf("stdin:%d: %s\n", m.Line, m.Value)
		}
		return
	}

	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "peselgen: scan: %v\n", err)
			os.Exit(1)
		}
		matches, err := scan.ExtractReader(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "peselgen: scan %s: %v\n", path, err)
			os.Exit(1)
		}
		for _, m := range matches {
			fmt.Printf("%s:%d: %s\n", path, m.Line, m.Value)
		}
	}
}

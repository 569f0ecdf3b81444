package cli

import (
	"fmt"
	"os"

	"github.com/Sidolux/pesel-generator/internal/pesel"
)

// CmdCheck verifies each argument and prints its decoded fields. Exits
// non-zero if any identifier fails.
func CmdCheck(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: peselgen check PESEL...")
		os.Exit(1)
	}

	failed := false
	for i, id := range args {
		if i > 0 {
			fmt.Println()
		}
		dec, err := pesel.Decode(id)
		if err != nil {
			fmt.Printf("%v\n", err)
			failed = true
			continue
		}
		fmt.Printf("%s: valid\n", id)
		fmt.Printf("  date:   %s\n", dec.Date)
		fmt.Printf("  serial: %d\n", dec.Serial)
		fmt.Printf("  sex:    %s\n", dec.Sex)
	}

	if failed {
		os.Exit(1)
	}
}

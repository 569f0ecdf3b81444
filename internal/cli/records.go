package cli

import (
	"flag"
	"fmt"
	"os"
	"sort"
)

// CmdList lists all saved records, newest first.
func CmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "print JSON")
	fs.Parse(args)

	s, col, err := OpenVault(DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "peselgen: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	recs, err := col.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "peselgen: list: %v\n", err)
		os.Exit(1)
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})

	if len(recs) == 0 {
		fmt.Println("no saved records")
		return
	}

	if *asJSON {
		printJSON(recs)
		return
	}

	for _, r := range recs {
		fmt.Printf("  %-10s %-13s %-24s %s\n",
			r.ID,
			r.Value,
			r.Label,
			r.CreatedAt.Format("2006-01-02"),
		)
	}
}

// CmdForget deletes a saved record by ID.
func CmdForget(id string) {
	s, col, err := OpenVault(DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "peselgen: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	if err := col.Delete(id); err != nil {
		fmt.Fprintf(os.Stderr, "peselgen: forget: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("deleted %s\n", id)
}

package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Sidolux/pesel-generator/internal/export"
	"github.com/Sidolux/pesel-generator/internal/pesel"
	"github.com/Sidolux/pesel-generator/internal/record"
)

// identifierJSON is the machine-readable form of one identifier.
type identifierJSON struct {
	Value  string `json:"value"`
	Date   string `json:"date"`
	Serial int    `json:"serial"`
	Sex    string `json:"sex"`
}

// CmdGenerate generates one or more identifiers. With --date the encode
// is deterministic; without it the date and serial are random within the
// default year window.
func CmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	dateFlag := fs.String("date", "", "birth date YYYY-MM-DD (random when omitted)")
	serialFlag := fs.Int("serial", 0, "serial 0-9999 (with --date)")
	sexFlag := fs.String("sex", "", "male or female (serial parity when omitted)")
	countFlag := fs.Int("count", 1, "how many identifiers to generate")
	asJSON := fs.Bool("json", false, "print JSON")
	fs.Parse(args)

	sex, err := pesel.ParseSex(*sexFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "peselgen: %v\n", err)
		os.Exit(1)
	}
	if *countFlag < 1 {
		fmt.Fprintln(os.Stderr, "peselgen: --count must be at least 1")
		os.Exit(1)
	}

	ids, err := generate(*dateFlag, *serialFlag, sex, *countFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "peselgen: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		if len(ids) == 1 {
			printJSON(toJSON(ids[0]))
			return
		}
		out := make([]identifierJSON, len(ids))
		for i, id := range ids {
			out[i] = toJSON(id)
		}
		printJSON(out)
		return
	}

	for i, id := range ids {
		if i > 0 {
			fmt.Println()
		}
		printIdentifier(id)
	}
}

// generate produces count identifiers: sequential serials from a fixed
// date, or independent random draws when no date is given.
func generate(date string, serial int, sex pesel.Sex, count int) ([]pesel.Decoded, error) {
	if date == "" {
		span, err := pesel.YearSpan(export.DefaultStartYear, export.DefaultEndYear, sex)
		if err != nil {
			return nil, err
		}
		ids := make([]pesel.Decoded, 0, count)
		for i := 0; i < count; i++ {
			v, err := pesel.Random(span)
			if err != nil {
				return nil, err
			}
			dec, err := pesel.Decode(v)
			if err != nil {
				return nil, err
			}
			ids = append(ids, dec)
		}
		return ids, nil
	}

	d, err := pesel.ParseDate(date)
	if err != nil {
		return nil, err
	}
	if d.Year() < pesel.MinYear || d.Year() > pesel.MaxYear {
		return nil, fmt.Errorf("year %d: %w (valid: %d-%d)", d.Year(), pesel.ErrYearRange, pesel.MinYear, pesel.MaxYear)
	}
	if serial < 0 || serial > 9999 {
		return nil, fmt.Errorf("serial %d out of range (0-9999)", serial)
	}

	// a fixed sex halves the serial space, so consecutive identifiers
	// step by two within that parity
	step := 1
	if sex != pesel.Both {
		step = 2
	}

	ids := make([]pesel.Decoded, 0, count)
	next := serial
	for i := 0; i < count; i++ {
		if next > 9999 {
			return nil, fmt.Errorf("serial space exhausted at %d of %d", i, count)
		}
		dec, err := pesel.Decode(pesel.Encode(d, next, sex))
		if err != nil {
			return nil, err
		}
		ids = append(ids, dec)
		next = dec.Serial + step
	}
	return ids, nil
}

func toJSON(dec pesel.Decoded) identifierJSON {
	return identifierJSON{
		Value:  pesel.Encode(dec.Date, dec.Serial, dec.Sex),
		Date:   dec.Date.String(),
		Serial: dec.Serial,
		Sex:    dec.Sex.String(),
	}
}

func printIdentifier(dec pesel.Decoded) {
	fmt.Printf("  pesel:  %s\n", pesel.Encode(dec.Date, dec.Serial, dec.Sex))
	fmt.Printf("  date:   %s\n", dec.Date)
	fmt.Printf("  serial: %d\n", dec.Serial)
	fmt.Printf("  sex:    %s\n", dec.Sex)
}

// CmdSave stores an identifier in the vault: the given value when one
// is passed, otherwise a fresh random one.
func CmdSave(args []string) {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	label := fs.String("label", "", "label for the saved record")
	notes := fs.String("notes", "", "free-form notes")
	fs.Parse(args)

	var value string
	if fs.NArg() > 0 {
		value = fs.Arg(0)
		if err := pesel.Verify(value); err != nil {
			fmt.Fprintf(os.Stderr, "peselgen: %v\n", err)
			os.Exit(1)
		}
	} else {
		span, err := pesel.YearSpan(export.DefaultStartYear, export.DefaultEndYear, pesel.Both)
		if err != nil {
			fmt.Fprintf(os.Stderr, "peselgen: %v\n", err)
			os.Exit(1)
		}
		value, err = pesel.Random(span)
		if err != nil {
			fmt.Fprintf(os.Stderr, "peselgen: %v\n", err)
			os.Exit(1)
		}
	}

	dec, err := pesel.Decode(value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "peselgen: %v\n", err)
		os.Exit(1)
	}
	printIdentifier(dec)

	s, col, err := OpenVault(DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "peselgen: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	rec := record.Record{
		ID:        record.NewID(),
		Value:     value,
		Label:     *label,
		Notes:     *notes,
		CreatedAt: time.Now(),
	}
	if err := col.Put(rec.ID, rec); err != nil {
		fmt.Fprintf(os.Stderr, "peselgen: save: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", rec.ID)
}

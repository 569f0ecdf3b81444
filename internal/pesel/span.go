package pesel

import (
	"errors"
	"fmt"
	"time"
)

// ErrYearRange rejects spans outside the encodable window.
var ErrYearRange = errors.New("year out of range")

// serialsPerDay is the full serial space for one calendar day.
const serialsPerDay = 10000

// Span is an inclusive day interval with an optional sex restriction.
// Spans are plain values: enumeration holds no state between calls, so
// the same span always reproduces the same sequence.
type Span struct {
	Start Date
	End   Date
	Sex   Sex

	// Progress, when set, observes enumeration once per completed day.
	// It never alters what is emitted or in which order.
	Progress func(daysDone, daysTotal int)
}

// YearSpan builds the validated span covering whole years: January 1 of
// startYear through December 31 of endYear.
func YearSpan(startYear, endYear int, sex Sex) (Span, error) {
	s := Span{
		Start: Date{year: startYear, month: time.January, day: 1},
		End:   Date{year: endYear, month: time.December, day: 31},
		Sex:   sex,
	}
	if err := s.Validate(); err != nil {
		return Span{}, err
	}
	return s, nil
}

// Validate fails fast on the bounds the encoder assumes: both years
// inside [MinYear, MaxYear] and Start not after End. An invalid span
// emits nothing.
func (s Span) Validate() error {
	if s.Start.year < MinYear || s.Start.year > MaxYear {
		return fmt.Errorf("start year %d: %w (valid: %d-%d)", s.Start.year, ErrYearRange, MinYear, MaxYear)
	}
	if s.End.year < MinYear || s.End.year > MaxYear {
		return fmt.Errorf("end year %d: %w (valid: %d-%d)", s.End.year, ErrYearRange, MinYear, MaxYear)
	}
	if s.End.Before(s.Start) {
		return fmt.Errorf("start %s after end %s: %w", s.Start, s.End, ErrYearRange)
	}
	return nil
}

// Days returns the number of calendar days the span covers.
func (s Span) Days() int {
	return daysBetween(s.Start, s.End)
}

// Count returns how many identifiers Enumerate will emit: 10,000 per
// day unfiltered, 5,000 with a sex restriction.
func (s Span) Count() int64 {
	per := int64(serialsPerDay)
	if s.Sex != Both {
		per /= 2
	}
	return int64(s.Days()) * per
}

// Enumerate streams every identifier in the span in deterministic
// order: ascending date, then ascending serial. With Sex Both every
// serial is emitted once, its parity deciding the sex; with Male or
// Female only matching parities are emitted. Identifiers are produced
// one at a time and never collected. A non-nil error from visit
// aborts the walk and is returned unchanged.
func (s Span) Enumerate(visit func(id string) error) error {
	if err := s.Validate(); err != nil {
		return err
	}

	total := s.Days()
	done := 0
	for d := s.Start; !s.End.Before(d); d = d.Next() {
		for serial := 0; serial < serialsPerDay; serial++ {
			switch s.Sex {
			case Male:
				if serial%2 == 0 {
					continue
				}
			case Female:
				if serial%2 == 1 {
					continue
				}
			}
			if err := visit(Encode(d, serial, s.Sex)); err != nil {
				return err
			}
		}
		done++
		if s.Progress != nil {
			s.Progress(done, total)
		}
	}
	return nil
}

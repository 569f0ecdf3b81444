// Package pesel implements the PESEL national identifier: an 11-digit
// value encoding a birth date with a century-shifted month, a serial
// disambiguator whose parity carries sex, and a weighted check digit.
package pesel

import (
	"errors"
	"fmt"
	"strings"
)

// Encodable year bounds. The month offset table below covers exactly
// these five century spans.
const (
	MinYear = 1800
	MaxYear = 2299
)

// Sex selects which serial parities an identifier or span covers.
type Sex int

const (
	// Both places no restriction: each serial keeps its own parity.
	Both Sex = iota
	// Male identifiers carry an odd serial block.
	Male
	// Female identifiers carry an even serial block.
	Female
)

// ErrSex rejects unknown sex spellings.
var ErrSex = errors.New("unknown sex")

func (s Sex) String() string {
	switch s {
	case Male:
		return "male"
	case Female:
		return "female"
	}
	return "both"
}

// ParseSex maps a CLI spelling onto a Sex. Empty and "both" mean Both.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both":
		return Both, nil
	case "male", "m":
		return Male, nil
	case "female", "f":
		return Female, nil
	}
	return Both, fmt.Errorf("%q: %w (use male, female or both)", s, ErrSex)
}

// checksum weights for the first ten digits.
var weights = [10]int{1, 3, 7, 9, 1, 3, 7, 9, 1, 3}

// Encode builds the identifier for a birth date, serial and sex. The
// serial is clamped into [0, 9999] and parity-corrected (odd male, even
// female); with Both the serial's own parity decides the sex. The year
// is assumed to lie in [MinYear, MaxYear] — Span.Validate and the CLI
// enforce that before any encoding happens.
func Encode(d Date, serial int, sex Sex) string {
	var b [11]byte
	put2(b[0:2], d.year%100)
	put2(b[2:4], int(d.month)+monthOffset(d.year))
	put2(b[4:6], d.day)

	serial = adjustSerial(serial, sex)
	put2(b[6:8], serial/100)
	put2(b[8:10], serial%100)

	b[10] = '0' + byte(checkDigit(b[:10]))
	return string(b[:])
}

// monthOffset returns the century addend for the month field. Years
// outside the table fall through with no offset, like 1900-1999.
func monthOffset(year int) int {
	switch {
	case year >= 1800 && year <= 1899:
		return 80
	case year >= 2000 && year <= 2099:
		return 20
	case year >= 2100 && year <= 2199:
		return 40
	case year >= 2200 && year <= 2299:
		return 60
	default:
		return 0
	}
}

// adjustSerial clamps serial into [0, 9999] and corrects its parity to
// match sex. The correction is a single arithmetic step, not a retry:
// +1 for male, -1 for female, so 9999 requested female becomes 9998 and
// the result never leaves the range.
func adjustSerial(serial int, sex Sex) int {
	if serial < 0 {
		serial = 0
	}
	if serial > 9999 {
		serial = 9999
	}

	odd := serial%2 == 1
	switch {
	case sex == Male && !odd:
		serial++
	case sex == Female && odd:
		serial--
	}
	return serial
}

// checkDigit derives digit 11 from the ten base digits: weighted sum
// mod 10, subtracted from 10, mod 10 again so a round sum maps to 0.
func checkDigit(base []byte) int {
	sum := 0
	for i, w := range weights {
		sum += int(base[i]-'0') * w
	}
	return (10 - sum%10) % 10
}

// put2 writes v as two ASCII digits.
func put2(b []byte, v int) {
	b[0] = '0' + byte(v/10)
	b[1] = '0' + byte(v%10)
}

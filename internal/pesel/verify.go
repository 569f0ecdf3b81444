package pesel

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMalformed rejects verification input that is not 11 ASCII digits.
	ErrMalformed = errors.New("identifier must be 11 digits")
	// ErrChecksumMismatch means the trailing digit disagrees with the
	// checksum re-derived from the first ten.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// Verify re-derives the checksum of an identifier. It checks nothing
// beyond shape and checksum.
func Verify(id string) error {
	if len(id) != 11 {
		return fmt.Errorf("%q: %w", id, ErrMalformed)
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return fmt.Errorf("%q: %w", id, ErrMalformed)
		}
	}
	if int(id[10]-'0') != checkDigit([]byte(id[:10])) {
		return fmt.Errorf("%q: %w", id, ErrChecksumMismatch)
	}
	return nil
}

// Decoded is the inverse view of a verified identifier.
type Decoded struct {
	Date   Date
	Serial int
	Sex    Sex // Male or Female, from the serial's parity
}

// Decode verifies id and recovers its date, serial and sex. The century
// comes from the month block: 81-92 are the 1800s, 01-12 the 1900s,
// 21-32 the 2000s, 41-52 the 2100s, 61-72 the 2200s.
func Decode(id string) (Decoded, error) {
	if err := Verify(id); err != nil {
		return Decoded{}, err
	}

	yy := digits2(id[0:2])
	mm := digits2(id[2:4])
	dd := digits2(id[4:6])
	serial := digits2(id[6:8])*100 + digits2(id[8:10])

	var base int
	switch {
	case mm >= 81 && mm <= 92:
		base, mm = 1800, mm-80
	case mm >= 1 && mm <= 12:
		base = 1900
	case mm >= 21 && mm <= 32:
		base, mm = 2000, mm-20
	case mm >= 41 && mm <= 52:
		base, mm = 2100, mm-40
	case mm >= 61 && mm <= 72:
		base, mm = 2200, mm-60
	default:
		return Decoded{}, fmt.Errorf("%q: month block %02d: %w", id, mm, ErrInvalidDate)
	}

	d, err := NewDate(base+yy, time.Month(mm), dd)
	if err != nil {
		return Decoded{}, fmt.Errorf("%q: %w", id, err)
	}

	sex := Female
	if serial%2 == 1 {
		sex = Male
	}
	return Decoded{Date: d, Serial: serial, Sex: sex}, nil
}

func digits2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

package pesel

import (
	"errors"
	"testing"
	"time"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name   string
		date   Date
		serial int
		sex    Sex
		want   string
	}{
		{name: "1900s female", date: MustDate(1999, time.January, 1), serial: 0, sex: Female, want: "99010100002"},
		{name: "2000s shifts month block", date: MustDate(2000, time.January, 1), serial: 0, sex: Female, want: "00210100004"},
		{name: "2000s male", date: MustDate(2020, time.January, 1), serial: 1, sex: Male, want: "20210100019"},
		{name: "1800s female", date: MustDate(1800, time.January, 1), serial: 2, sex: Female, want: "00810100026"},
		{name: "2100s male", date: MustDate(2100, time.January, 1), serial: 3, sex: Male, want: "00410100031"},
		{name: "2200s female", date: MustDate(2200, time.January, 1), serial: 4, sex: Female, want: "00610100044"},
		{name: "mid-century male", date: MustDate(1944, time.May, 14), serial: 145, sex: Male, want: "44051401458"},
		{name: "male bumps even serial", date: MustDate(1999, time.January, 1), serial: 4, sex: Male, want: "99010100057"},
		{name: "female drops odd serial", date: MustDate(1999, time.January, 1), serial: 9999, sex: Female, want: "99010199985"},
		{name: "either sex keeps serial", date: MustDate(1999, time.January, 1), serial: 7, sex: Both, want: "99010100071"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.date, tt.serial, tt.sex)
			if got != tt.want {
				t.Errorf("Encode(%s, %d, %s) = %q, want %q", tt.date, tt.serial, tt.sex, got, tt.want)
			}
		})
	}
}

func TestEncodeMonthBlock(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  string
	}{
		{1850, time.January, "81"},
		{1899, time.December, "92"},
		{1999, time.January, "01"},
		{2050, time.January, "21"},
		{2099, time.December, "32"},
		{2150, time.January, "41"},
		{2250, time.January, "61"},
	}
	for _, tt := range tests {
		id := Encode(MustDate(tt.year, tt.month, 1), 0, Both)
		if got := id[2:4]; got != tt.want {
			t.Errorf("%d-%02d: month block %q, want %q", tt.year, int(tt.month), got, tt.want)
		}
	}
}

func TestEncodeSerialClamp(t *testing.T) {
	day := MustDate(1999, time.January, 1)
	if got, want := Encode(day, -5, Female), Encode(day, 0, Female); got != want {
		t.Errorf("negative serial encoded as %q, want %q", got, want)
	}
	if got, want := Encode(day, 123456, Male), Encode(day, 9999, Male); got != want {
		t.Errorf("oversized serial encoded as %q, want %q", got, want)
	}
	// 9999 is odd, so the female adjustment steps down and stays in range.
	if got := Encode(day, 9999, Female); got[6:10] != "9998" {
		t.Errorf("serial block = %q, want %q", got[6:10], "9998")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	dates := []Date{
		MustDate(1800, time.January, 1),
		MustDate(1876, time.November, 30),
		MustDate(1900, time.February, 28),
		MustDate(1944, time.May, 14),
		MustDate(2000, time.February, 29),
		MustDate(2099, time.December, 31),
		MustDate(2155, time.July, 4),
		MustDate(2299, time.December, 31),
	}
	for _, d := range dates {
		for _, sex := range []Sex{Both, Male, Female} {
			for _, serial := range []int{0, 1, 42, 4999, 9998, 9999} {
				id := Encode(d, serial, sex)
				if err := Verify(id); err != nil {
					t.Fatalf("Verify(Encode(%s, %d, %s)) = %v", d, serial, sex, err)
				}
				dec, err := Decode(id)
				if err != nil {
					t.Fatalf("Decode(%q) = %v", id, err)
				}
				if dec.Date != d {
					t.Errorf("Decode(%q).Date = %s, want %s", id, dec.Date, d)
				}
				if sex != Both && dec.Sex != sex {
					t.Errorf("Decode(%q).Sex = %s, want %s", id, dec.Sex, sex)
				}
			}
		}
	}
}

func TestParseSex(t *testing.T) {
	tests := []struct {
		in      string
		want    Sex
		wantErr bool
	}{
		{in: "male", want: Male},
		{in: "m", want: Male},
		{in: "MALE", want: Male},
		{in: "female", want: Female},
		{in: "f", want: Female},
		{in: " female ", want: Female},
		{in: "both", want: Both},
		{in: "", want: Both},
		{in: "x", wantErr: true},
		{in: "men", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseSex(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrSex) {
				t.Errorf("ParseSex(%q) err = %v, want ErrSex", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSex(%q) = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSexString(t *testing.T) {
	tests := []struct {
		sex  Sex
		want string
	}{
		{Male, "male"},
		{Female, "female"},
		{Both, "both"},
	}
	for _, tt := range tests {
		if got := tt.sex.String(); got != tt.want {
			t.Errorf("Sex(%d).String() = %q, want %q", int(tt.sex), got, tt.want)
		}
	}
}

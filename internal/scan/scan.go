// Package scan finds valid identifiers inside arbitrary text.
package scan

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/Sidolux/pesel-generator/internal/pesel"
)

// Match is one verified identifier found in the scanned input.
type Match struct {
	Value string // the identifier itself
	Line  int    // 1-based line it first appeared on
}

// candidate identifiers: exactly 11 consecutive digits
var candidateRe = regexp.MustCompile(`\d{11}`)

// Extract returns every verified identifier in the text, in order of
// first appearance. Candidates that fail checksum verification, or that
// sit inside a longer digit run, are skipped. Repeated identifiers are
// reported once, at their first occurrence.
func Extract(text string) []Match {
	if text == "" {
		return nil
	}

	seen := make(map[string]bool)
	var matches []Match
	for i, line := range strings.Split(text, "\n") {
		matches = scanLine(line, i+1, seen, matches)
	}
	return matches
}

// ExtractReader is Extract over a stream, scanning line by line so the
// whole input is never held in memory.
func ExtractReader(r io.Reader) ([]Match, error) {
	seen := make(map[string]bool)
	var matches []Match

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		matches = scanLine(sc.Text(), line, seen, matches)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func scanLine(line string, lineNo int, seen map[string]bool, matches []Match) []Match {
	for _, loc := range candidateRe.FindAllStringIndex(line, -1) {
		start, end := loc[0], loc[1]

		// part of a longer digit run (phone numbers, account numbers)
		if start > 0 && isDigit(line[start-1]) {
			continue
		}
		if end < len(line) && isDigit(line[end]) {
			continue
		}

		val := line[start:end]
		if seen[val] || pesel.Verify(val) != nil {
			continue
		}
		seen[val] = true
		matches = append(matches, Match{Value: val, Line: lineNo})
	}
	return matches
}

func isDigit(b byte) bool {
	return unicode.IsDigit(rune(b))
}

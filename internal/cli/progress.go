package cli

import (
	"fmt"
	"io"
	"strings"
)

const barWidth = 50

// progressPrinter redraws a terminal progress bar in place, at most
// once per whole percent so fast loops stay cheap.
type progressPrinter struct {
	w    io.Writer
	last int
	drew bool
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{w: w, last: -1}
}

func (p *progressPrinter) update(done, total int) {
	if total <= 0 {
		return
	}
	pct := done * 100 / total
	if pct == p.last {
		return
	}
	p.last = pct
	filled := barWidth * done / total
	bar := strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled)
	fmt.Fprintf(p.w, "\rProgress: [%s] %d%%", bar, pct)
	p.drew = true
}

// finish terminates the redraw line, if one was ever drawn.
func (p *progressPrinter) finish() {
	if p.drew {
		fmt.Fprintln(p.w)
	}
}

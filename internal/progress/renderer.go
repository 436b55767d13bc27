package progress

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/marruca/snag/internal/output"
	"github.com/marruca/snag/internal/utils"
)

// Renderer maintains a single continuously overwritten status line on the
// given writer. Write failures never surface: statistics must never prevent a
// transfer from completing, so every write result is deliberately discarded.
type Renderer struct {
	out       io.Writer
	maxWidth  int // terminal width, resolved once at construction
	lastWidth int // character count of the previously printed line
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out, maxWidth: output.TerminalWidth()}
}

// Render erases the previously drawn line by overwriting it with spaces,
// writes the current status line, and returns the cursor to column 0 without
// advancing a line.
func (r *Renderer) Render(t *Tracker) {
	if r.lastWidth > 0 {
		_, _ = fmt.Fprint(r.out, strings.Repeat(" ", r.lastWidth), "\r")
	}
	line := r.Line(t, time.Now())
	_, _ = fmt.Fprint(r.out, line, "\r")
	r.lastWidth = utf8.RuneCountInString(line)
}

// Finish writes one final status line and the trailing newline that ends the
// live display.
func (r *Renderer) Finish(t *Tracker) {
	line := r.Line(t, time.Now())
	_, _ = fmt.Fprintln(r.out, line)
	r.lastWidth = 0
}

// Line formats the transfer state into one status line. With a known length
// it includes percentage and ETA; without one it reports totals only. The
// percentage is intentionally left unclamped so a server that under-reports
// its Content-Length is visible; remaining bytes are clamped at zero so the
// ETA never goes negative.
func (r *Renderer) Line(t *Tracker, now time.Time) string {
	speed := t.Speed()
	total := utils.FormatBytes(t.TotalDownloaded())
	elapsed := utils.FormatDuration(t.Elapsed(now))

	var line string
	if cl := t.ContentLength(); cl >= 0 {
		percent := 100.0
		if cl > 0 {
			percent = float64(t.TotalDownloaded()) / float64(cl) * 100
		}
		remaining := cl - t.TotalDownloaded()
		if remaining < 0 {
			remaining = 0
		}
		var etaSecs int64
		if speed > 0 {
			etaSecs = remaining / speed
		}
		line = fmt.Sprintf("%s / %s (%3.0f %%) %s in %s ETA: %s",
			total, utils.FormatBytes(cl), percent, utils.FormatSpeed(speed),
			elapsed, utils.FormatDuration(time.Duration(etaSecs)*time.Second))
	} else {
		line = fmt.Sprintf("Total: %s Speed: %s Elapsed: %s",
			total, utils.FormatSpeed(speed), elapsed)
	}

	// Cap at the terminal width so the erase discipline cannot wrap.
	if utf8.RuneCountInString(line) > r.maxWidth {
		line = string([]rune(line)[:r.maxWidth])
	}
	return line
}

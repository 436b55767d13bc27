package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLineKnownLength(t *testing.T) {
	tr := NewTracker(1000)
	tr.Add(50)
	tr.Commit(time.Now())
	tr.Add(200)

	line := NewRenderer(&bytes.Buffer{}).Line(tr, time.Now())
	require.Contains(t, line, "250 B / 1000 B")
	require.Contains(t, line, "( 25 %)")
	// remaining 750 at 50 B/s
	require.Contains(t, line, "ETA: 15s")
}

func TestLineUnknownLength(t *testing.T) {
	tr := NewTracker(-1)
	tr.Add(2048)

	line := NewRenderer(&bytes.Buffer{}).Line(tr, time.Now())
	require.True(t, strings.HasPrefix(line, "Total: "))
	require.Contains(t, line, "  2.0 KiB")
	require.Contains(t, line, "Speed:   0 B/s")
	require.NotContains(t, line, "ETA")
}

func TestLineZeroSpeedYieldsZeroEta(t *testing.T) {
	tr := NewTracker(1000)
	tr.Commit(time.Now()) // commits a zero sample, speed stays 0
	tr.Add(250)

	line := NewRenderer(&bytes.Buffer{}).Line(tr, time.Now())
	require.Contains(t, line, "ETA:  0s")
}

func TestLineRemainingClampedWhenOverAdvertised(t *testing.T) {
	tr := NewTracker(100)
	tr.Add(50)
	tr.Commit(time.Now())
	tr.Add(100) // 150 total against an advertised 100

	line := NewRenderer(&bytes.Buffer{}).Line(tr, time.Now())
	require.Contains(t, line, "(150 %)")
	require.Contains(t, line, "ETA:  0s")
}

func TestLineZeroContentLength(t *testing.T) {
	// A zero-length resource is complete the moment the stream opens, so it
	// renders as 100 % rather than dividing zero by zero.
	tr := NewTracker(0)

	line := NewRenderer(&bytes.Buffer{}).Line(tr, time.Now())
	require.Contains(t, line, "  0 B /   0 B")
	require.Contains(t, line, "(100 %)")
	require.Contains(t, line, "ETA:  0s")
}

func TestLineCappedAtTerminalWidth(t *testing.T) {
	tr := NewTracker(1000)
	tr.Add(250)
	r := NewRenderer(&bytes.Buffer{})
	r.maxWidth = 20

	line := r.Line(tr, time.Now())
	require.Len(t, []rune(line), 20)
}

func TestRenderEraseDiscipline(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracker(-1)
	tr.Add(100)
	r := NewRenderer(&buf)

	r.Render(tr)
	first := buf.String()
	// No previous line, so nothing to erase: just the line and a return to
	// column 0.
	require.False(t, strings.HasPrefix(first, " "))
	require.True(t, strings.HasSuffix(first, "\r"))
	firstWidth := strings.Index(first, "\r")

	r.Render(tr)
	second := buf.String()[len(first):]
	// The redraw pads over the previous line before drawing the new one.
	require.True(t, strings.HasPrefix(second, strings.Repeat(" ", firstWidth)+"\r"))
	require.True(t, strings.HasSuffix(second, "\r"))
}

func TestFinishEndsLine(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracker(-1)
	r := NewRenderer(&buf)

	r.Finish(tr)
	require.True(t, strings.HasSuffix(buf.String(), "\n"))
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("status stream closed")
}

func TestWriteFailuresAreSwallowed(t *testing.T) {
	tr := NewTracker(1000)
	tr.Add(100)
	r := NewRenderer(failingWriter{})

	require.NotPanics(t, func() {
		r.Render(tr)
		r.Render(tr)
		r.Finish(tr)
	})
}

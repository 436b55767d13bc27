package progress

import "time"

// SpeedSamples is how many per-second byte counts the sample window keeps.
const SpeedSamples = 5

// Tracker accumulates the state of one transfer: total bytes, the bytes of
// the second currently in progress, and a bounded window of recent per-second
// counts used to smooth the speed estimate. A Tracker belongs to exactly one
// transfer and is never shared.
type Tracker struct {
	contentLength int64 // advertised size, negative when unknown
	total         int64
	windowBytes   int64
	samples       []int64 // most recent first
	startTime     time.Time
	lastTick      time.Time
}

func NewTracker(contentLength int64) *Tracker {
	return &Tracker{
		contentLength: contentLength,
		samples:       make([]int64, 0, SpeedSamples),
		startTime:     time.Now(),
	}
}

// Add counts n freshly read bytes toward the total and the in-progress
// second.
func (t *Tracker) Add(n int) {
	t.total += int64(n)
	t.windowBytes += int64(n)
}

// TickDue reports whether a full second has elapsed since the last committed
// sample. The tick clock starts with the first call, so the first second is
// measured from the first received chunk rather than from the request.
func (t *Tracker) TickDue(now time.Time) bool {
	if t.lastTick.IsZero() {
		t.lastTick = now
		return false
	}
	return now.Sub(t.lastTick) >= time.Second
}

// Commit pushes the just-finished second's byte count into the sample window,
// evicting the oldest sample when the window is full, and resets the
// in-progress counter.
func (t *Tracker) Commit(now time.Time) {
	if len(t.samples) == SpeedSamples {
		t.samples = t.samples[:SpeedSamples-1]
	}
	t.samples = append([]int64{t.windowBytes}, t.samples...)
	t.windowBytes = 0
	t.lastTick = now
}

// Speed estimates bytes per second as the mean of the sample window. Before
// the first sample lands it falls back to the advertised length, which covers
// a large body arriving within the first second, and to 0 when no length is
// known.
func (t *Tracker) Speed() int64 {
	if len(t.samples) > 0 {
		var sum int64
		for _, s := range t.samples {
			sum += s
		}
		return sum / int64(len(t.samples))
	}
	if t.contentLength > 0 {
		return t.contentLength
	}
	return 0
}

// Samples returns a copy of the window, most recent first.
func (t *Tracker) Samples() []int64 {
	out := make([]int64, len(t.samples))
	copy(out, t.samples)
	return out
}

func (t *Tracker) TotalDownloaded() int64 {
	return t.total
}

func (t *Tracker) ContentLength() int64 {
	return t.contentLength
}

func (t *Tracker) Elapsed(now time.Time) time.Duration {
	if now.Before(t.startTime) {
		return 0
	}
	return now.Sub(t.startTime)
}

package download

import (
	"errors"
	"io"
	"syscall"
	"time"

	"github.com/marruca/snag/internal/progress"
)

// DefaultChunkSize is how many bytes each read attempt asks for.
const DefaultChunkSize = 8192

// RemoteReader consumes a response body chunk by chunk while keeping transfer
// statistics and redrawing a status line once per elapsed second. The whole
// loop is synchronous and blocking; one transfer owns its reader exclusively.
type RemoteReader struct {
	body     io.Reader
	tracker  *progress.Tracker
	renderer *progress.Renderer
}

// NewRemoteReader prepares a response for downloading. The advertised content
// length, when present, is used as a size hint for the output buffer and as
// the speed fallback before the first sample lands.
func NewRemoteReader(resp *Response, status io.Writer) *RemoteReader {
	return &RemoteReader{
		body:     resp.Body,
		tracker:  progress.NewTracker(resp.ContentLength),
		renderer: progress.NewRenderer(status),
	}
}

// Tracker exposes the transfer state, mainly so callers and tests can inspect
// byte accounting after the fact.
func (r *RemoteReader) Tracker() *progress.Tracker {
	return r.tracker
}

// Download reads the body to completion and returns it as one buffer.
//
// End of stream triggers a final unconditional render plus the newline that
// finalizes the status line. Interrupted reads are retried without bound and
// without counting progress; the source is expected to eventually yield data
// or a terminal outcome. Any other read error propagates unchanged, leaving a
// partially drawn status line as-is.
func (r *RemoteReader) Download() ([]byte, error) {
	buffer := make([]byte, DefaultChunkSize)
	var data []byte
	if cl := r.tracker.ContentLength(); cl > 0 {
		data = make([]byte, 0, cl)
	} else {
		data = make([]byte, 0, DefaultChunkSize)
	}

	for {
		n, err := r.body.Read(buffer)
		if n > 0 {
			data = append(data, buffer[:n]...)
			r.tracker.Add(n)
			if r.tracker.TickDue(time.Now()) {
				r.tracker.Commit(time.Now())
				r.renderer.Render(r.tracker)
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			if errors.Is(err, syscall.EINTR) {
				continue
			}
			return nil, err
		}
	}

	r.renderer.Finish(r.tracker)
	return data, nil
}

package download

import (
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/marruca/snag/internal/utils"
)

// Response is the classified outcome of a successful fetch: the body stream
// and the advertised length (negative when the server sent none).
type Response struct {
	Body          io.ReadCloser
	ContentLength int64
}

// Fetch issues exactly one GET for the URL and classifies the outcome. There
// is no retry at this layer: a transport or build failure becomes a
// TransferError wrapping the cause, a 404 becomes ErrNotFound, any other
// non-2xx status becomes a TransferError carrying it, and a 2xx hands the
// body stream onward unread.
func Fetch(url string, client *utils.SnagHTTPClient) (*Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransferError{Cause: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransferError{Cause: err}
	}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		log.Debug().Str("op", "download/fetch").Str("url", url).
			Int64("contentLength", resp.ContentLength).Msg("Fetch classified as success")
		return &Response{Body: resp.Body, ContentLength: resp.ContentLength}, nil
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	default:
		resp.Body.Close()
		return nil, &TransferError{Status: resp.StatusCode}
	}
}

// FetchWithProgress downloads the URL into memory while rendering live
// transfer statistics to the status writer.
func FetchWithProgress(url string, client *utils.SnagHTTPClient, status io.Writer) ([]byte, error) {
	resp, err := Fetch(url, client)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return NewRemoteReader(resp, status).Download()
}

package download

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marruca/snag/internal/utils"
)

func newTestClient() *utils.SnagHTTPClient {
	return utils.NewSnagHTTPClient(utils.HTTPClientConfig{})
}

func TestFetchSuccess(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("hello"))
	}))
	defer server.Close()

	resp, err := Fetch(server.URL, newTestClient())
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, int64(5), resp.ContentLength)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), body)
	require.Equal(t, utils.ToolUserAgent, gotUA)
}

func TestFetchNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := Fetch(server.URL, newTestClient())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := Fetch(server.URL, newTestClient())
	var terr *TransferError
	require.ErrorAs(t, err, &terr)
	require.Equal(t, http.StatusInternalServerError, terr.Status)
}

func TestFetchWithProgress(t *testing.T) {
	payload := bytes.Repeat([]byte{0x42}, 3072)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	var status bytes.Buffer
	data, err := FetchWithProgress(server.URL, newTestClient(), &status)
	require.NoError(t, err)
	require.Equal(t, payload, data)
	require.True(t, strings.HasSuffix(status.String(), "\n"))
}

func TestFetchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	_, err := Fetch(server.URL, newTestClient())
	var terr *TransferError
	require.ErrorAs(t, err, &terr)
	require.Zero(t, terr.Status)
	require.Error(t, terr.Cause)
}

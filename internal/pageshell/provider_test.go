package pageshell

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrent_DefaultSnapshotWithoutUpstream(t *testing.T) {
	p := NewProvider("", time.Minute)
	p.Start()

	snap := p.Current()

	assert.NotEmpty(t, snap.Header)
	assert.Equal(t, "ticketline", snap.BodyClass)
}

func TestRefresh_StoresUpstreamShell(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"head": "<style>body{}</style>",
			"header": "<header>Gala</header>",
			"footer": "<footer>2026</footer>",
			"body_class": "gala"
		}`))
	}))
	defer upstream.Close()

	p := NewProvider(upstream.URL, time.Minute)
	p.refresh()

	snap := p.Current()
	assert.Contains(t, string(snap.Header), "Gala")
	assert.Contains(t, string(snap.Footer), "2026")
	assert.Equal(t, "gala", snap.BodyClass)
}

func TestRefresh_KeepsPreviousSnapshotOnError(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	p := NewProvider(failing.URL, time.Minute)
	before := p.Current()
	p.refresh()

	assert.Equal(t, before, p.Current())
}

func TestRefresh_KeepsPreviousSnapshotOnMalformedBody(t *testing.T) {
	malformed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer malformed.Close()

	p := NewProvider(malformed.URL, time.Minute)
	before := p.Current()
	p.refresh()

	assert.Equal(t, before, p.Current())
}

package pageshell

import (
	"encoding/json"
	"html/template"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Snapshot is the cosmetic page shell wrapped around every rendered page.
// The markup comes from an upstream branding endpoint and is trusted as-is.
type Snapshot struct {
	Head      template.HTML
	Header    template.HTML
	Footer    template.HTML
	BodyClass string
}

type shellDocument struct {
	Head      string `json:"head"`
	Header    string `json:"header"`
	Footer    string `json:"footer"`
	BodyClass string `json:"body_class"`
}

// Provider serves the last-known-good shell snapshot. A background goroutine
// refreshes it on a fixed interval; handlers only ever read the stored value
// and never wait on a fetch. With no upstream URL (or before the first
// successful fetch) the default shell is served.
type Provider struct {
	url      string
	interval time.Duration
	client   *http.Client
	current  atomic.Value
}

func NewProvider(url string, interval time.Duration) *Provider {
	p := &Provider{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	p.current.Store(defaultSnapshot())
	return p
}

// Start fetches once and then refreshes on the configured interval. It is a
// no-op when no upstream URL is configured.
func (p *Provider) Start() {
	if p.url == "" {
		return
	}
	p.refresh()
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for range ticker.C {
			p.refresh()
		}
	}()
}

func (p *Provider) Current() Snapshot {
	return p.current.Load().(Snapshot)
}

func (p *Provider) refresh() {
	resp, err := p.client.Get(p.url)
	if err != nil {
		logrus.WithError(err).Warn("page shell refresh failed, keeping previous snapshot")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithField("status", resp.StatusCode).
			Warn("page shell upstream returned non-OK, keeping previous snapshot")
		return
	}

	var doc shellDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		logrus.WithError(err).Warn("page shell response malformed, keeping previous snapshot")
		return
	}

	p.current.Store(Snapshot{
		Head:      template.HTML(doc.Head),
		Header:    template.HTML(doc.Header),
		Footer:    template.HTML(doc.Footer),
		BodyClass: doc.BodyClass,
	})
}

func defaultSnapshot() Snapshot {
	return Snapshot{
		Header:    template.HTML("<header><h1>Event Tickets</h1></header>"),
		Footer:    template.HTML("<footer></footer>"),
		BodyClass: "ticketline",
	}
}

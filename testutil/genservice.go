// Package testutil provides utilities for testing.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// GenService is an in-process stand-in for the remote generation service.
// Configure the response fields before starting it; the zero value serves
// an empty 200 response with no Content-Disposition header.
type GenService struct {
	// Status is the response status code. Zero means 200.
	Status int

	// Payload is the archive body returned on success.
	Payload []byte

	// Disposition is the Content-Disposition header value. Empty omits
	// the header.
	Disposition string

	// ErrorBody is written as the response body for non-2xx statuses.
	// Empty falls back to the standard status text.
	ErrorBody string

	// Delay is how long the handler waits before responding.
	Delay time.Duration

	mu               sync.Mutex
	calls            int
	lastRequirements string
}

// NewGenService returns a service preconfigured with a small successful
// archive response.
func NewGenService() *GenService {
	return &GenService{
		Status:      http.StatusOK,
		Payload:     []byte{0x50, 0x4b, 0x03, 0x04},
		Disposition: `attachment; filename="generated.zip"`,
	}
}

// Start serves the fake service over HTTP. The server is closed when the
// test finishes.
func (g *GenService) Start(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(g.handle))
	t.Cleanup(server.Close)
	return server
}

func (g *GenService) handle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Requirements string `json:"requirements"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	g.mu.Lock()
	g.calls++
	g.lastRequirements = req.Requirements
	g.mu.Unlock()

	if g.Delay > 0 {
		time.Sleep(g.Delay)
	}

	status := g.Status
	if status == 0 {
		status = http.StatusOK
	}
	if status < 200 || status > 299 {
		body := g.ErrorBody
		if body == "" {
			body = http.StatusText(status)
		}
		http.Error(w, body, status)
		return
	}

	if g.Disposition != "" {
		w.Header().Set("Content-Disposition", g.Disposition)
	}
	w.WriteHeader(status)
	_, _ = w.Write(g.Payload)
}

// CallCount reports how many generation requests the service received.
func (g *GenService) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// LastRequirements returns the requirement text from the most recent
// request.
func (g *GenService) LastRequirements() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastRequirements
}

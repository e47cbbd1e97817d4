// Package network provides the HTTP client used for remote lookups such as the update check.
package network

import (
	"net/http"
	"time"

	"github.com/fastvideo-cli/fastvideo/constant"
)

// UserAgent identifies fastvideo to remote services.
var UserAgent = constant.App + "/" + constant.Version

// Client is the shared HTTP client. Requests carry UserAgent unless they set their own.
var Client = &http.Client{
	Timeout:   10 * time.Second,
	Transport: &agentTransport{next: newTransport()},
}

// newTransport clones the default transport with tighter timeouts.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 5 * time.Second
	return t
}

type agentTransport struct {
	next http.RoundTripper
}

func (t *agentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.next.RoundTrip(req)
	}

	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", UserAgent)
	return t.next.RoundTrip(req)
}

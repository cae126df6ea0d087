package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// Transport records the duration of every outbound request.
type Transport struct {
	Base    http.RoundTripper
	metrics Provider
}

// NewTransport wraps base. A nil base uses http.DefaultTransport.
func NewTransport(base http.RoundTripper, metrics Provider) *Transport {
	return &Transport{Base: base, metrics: metrics}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	elapsed := time.Since(start).Seconds()

	if resp == nil && err != nil {
		t.metrics.IncreaseJiraRequestErrors(req.Method, req.URL.Path)
		return resp, err
	}

	t.metrics.ObserveJiraRequestDuration(req.Method, req.URL.Path, strconv.Itoa(resp.StatusCode), elapsed)
	return resp, err
}

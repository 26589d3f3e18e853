//go:build !gcloud

package backend

import (
	"net/http"
	"time"
)

const requestTimeout = 15 * time.Second

// newHTTPClient returns an unauthenticated client; the local backend
// trusts the network.
func newHTTPClient(_ string) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 4

	return &http.Client{
		Timeout:   requestTimeout,
		Transport: transport,
	}
}

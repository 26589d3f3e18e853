//go:build gcloud

package backend

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/api/idtoken"
)

const requestTimeout = 15 * time.Second

// newHTTPClient signs requests with an ID token whose audience is the
// backend URL, as required by Cloud Run service-to-service calls.
func newHTTPClient(audience string) *http.Client {
	httpClient, err := idtoken.NewClient(context.Background(), audience)
	if err != nil {
		slog.Error("failed to create idtoken client for hydration backend, using unauthenticated client",
			slog.String("audience", audience),
			slog.String("error", err.Error()),
		)
		return &http.Client{Timeout: requestTimeout}
	}
	httpClient.Timeout = requestTimeout
	return httpClient
}

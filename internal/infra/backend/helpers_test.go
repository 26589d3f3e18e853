package backend_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func newRecordingServer(t *testing.T, record func(r *http.Request)) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reminders":[]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

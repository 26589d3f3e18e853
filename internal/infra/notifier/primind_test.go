//go:build !gcloud

package notifier

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestPrimindGateway_Deliver(t *testing.T) {
	var gotPath string
	var gotMsg PushMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		var req PrimindTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		raw, err := base64.StdEncoding.DecodeString(req.Task.HTTPRequest.Body)
		if err != nil {
			t.Errorf("decode body: %v", err)
		}
		if err := json.Unmarshal(raw, &gotMsg); err != nil {
			t.Errorf("decode push message: %v", err)
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(PrimindTaskResponse{
			Name:       "tasks/" + req.Task.Name,
			CreateTime: "2025-01-01T00:00:00Z",
		})
	}))
	defer srv.Close()

	gw := NewPrimindGateway(srv.URL, "hydration", 3)
	receipt, err := gw.Deliver(context.Background(), &PushMessage{ID: "m-1", UserID: "1", Kind: KindNotification, Title: "t"})
	if err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}

	if gotPath != "/tasks/hydration" {
		t.Errorf("path = %q, want /tasks/hydration", gotPath)
	}
	if gotMsg.ID != "m-1" || gotMsg.Title != "t" {
		t.Errorf("push message = %+v", gotMsg)
	}
	if receipt.Name != "tasks/m-1" {
		t.Errorf("receipt.Name = %q, want tasks/m-1", receipt.Name)
	}
	if receipt.CreateTime.IsZero() {
		t.Error("receipt.CreateTime should be parsed")
	}
}

func TestPrimindGateway_DeliverRetries(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(PrimindTaskResponse{Name: "ok"})
	}))
	defer srv.Close()

	gw := NewPrimindGateway(srv.URL, "", 3)
	if _, err := gw.Deliver(context.Background(), &PushMessage{ID: "m-2"}); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestPrimindGateway_DeliverExhausted(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	gw := NewPrimindGateway(srv.URL, "default", 2)
	if _, err := gw.Deliver(context.Background(), &PushMessage{ID: "m-3"}); err == nil {
		t.Fatal("Deliver() expected error")
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestPrimindGateway_Retract(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "deleted", status: http.StatusNoContent},
		{name: "already gone", status: http.StatusNotFound},
		{name: "server error", status: http.StatusInternalServerError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMethod, gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod, gotPath = r.Method, r.URL.Path
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			gw := NewPrimindGateway(srv.URL, "", 1)
			err := gw.Retract(context.Background(), "m-4")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Retract() error = %v, wantErr %v", err, tt.wantErr)
			}
			if gotMethod != http.MethodDelete || gotPath != "/tasks/m-4" {
				t.Errorf("request = %s %s, want DELETE /tasks/m-4", gotMethod, gotPath)
			}
		})
	}
}

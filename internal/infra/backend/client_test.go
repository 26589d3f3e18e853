package backend_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/infra/backend"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/testutil/stubbackend"
)

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }

func TestClient_GetReminders(t *testing.T) {
	srv, storage := stubbackend.NewServer(t)
	storage.SetReminders("1", []backend.ReminderResponse{
		{ID: "r1", Time: 540, DaysOfWeek: []bool{true, true, true, true, true, false, false}, Sound: true, AlertType: "sound", Enabled: true},
		{ID: "r2", Time: 1200, DaysOfWeek: []bool{true, true, true, true, true, true, true}, AlertType: "unknown"},
	})

	client := backend.NewClient(srv.URL, "1")
	reminders, err := client.GetReminders(context.Background())
	if err != nil {
		t.Fatalf("GetReminders() error = %v", err)
	}

	if len(reminders) != 2 {
		t.Fatalf("got %d reminders, want 2", len(reminders))
	}
	r1 := reminders[0]
	if r1.ID != "r1" || r1.Time != 540 || !r1.Sound || !r1.Enabled || r1.AlertType != domain.AlertTypeSound {
		t.Errorf("reminder[0] = %+v", r1)
	}
	if len(r1.DaysOfWeek) != 7 || r1.DaysOfWeek[5] {
		t.Errorf("reminder[0] days = %v", r1.DaysOfWeek)
	}
	if reminders[1].AlertType != domain.AlertTypeNotification {
		t.Errorf("unknown alert type should default to notification, got %v", reminders[1].AlertType)
	}
}

func TestClient_GetReminders_Empty(t *testing.T) {
	srv, _ := stubbackend.NewServer(t)

	reminders, err := backend.NewClient(srv.URL, "1").GetReminders(context.Background())
	if err != nil {
		t.Fatalf("GetReminders() error = %v", err)
	}
	if reminders == nil || len(reminders) != 0 {
		t.Errorf("GetReminders() = %v, want empty non-nil slice", reminders)
	}
}

func TestClient_GetNightMode(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *stubbackend.Storage)
		want  domain.NightMode
	}{
		{
			name: "configured",
			setup: func(s *stubbackend.Storage) {
				s.SetNightMode("1", backend.NightModeResponse{Enabled: true, StartTime: 1320, EndTime: 420, MuteReminders: true})
			},
			want: domain.NightMode{Enabled: true, Start: 1320, End: 420, MuteReminders: true},
		},
		{
			name:  "not configured is disabled",
			setup: func(s *stubbackend.Storage) {},
			want:  domain.NightMode{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, storage := stubbackend.NewServer(t)
			tt.setup(storage)

			nm, err := backend.NewClient(srv.URL, "1").GetNightMode(context.Background())
			if err != nil {
				t.Fatalf("GetNightMode() error = %v", err)
			}
			if *nm != tt.want {
				t.Errorf("GetNightMode() = %+v, want %+v", *nm, tt.want)
			}
		})
	}
}

func TestClient_GetWaterSnapshot(t *testing.T) {
	tests := []struct {
		name     string
		progress *backend.ProgressResponse
		want     *domain.WaterSnapshot
		wantErr  error
	}{
		{
			name:     "complete",
			progress: &backend.ProgressResponse{WakeUpTime: intPtr(420), SleepTime: intPtr(1320), DailyGoal: 2000, CurrentCount: int64Ptr(750)},
			want:     &domain.WaterSnapshot{WakeUpTime: 420, SleepTime: 1320, DailyGoal: 2000, CurrentCount: 750},
		},
		{
			name:     "count defaults to zero",
			progress: &backend.ProgressResponse{WakeUpTime: intPtr(420), SleepTime: intPtr(1320), DailyGoal: 2000},
			want:     &domain.WaterSnapshot{WakeUpTime: 420, SleepTime: 1320, DailyGoal: 2000},
		},
		{
			name:     "missing sleep time",
			progress: &backend.ProgressResponse{WakeUpTime: intPtr(420), DailyGoal: 2000},
			wantErr:  domain.ErrSnapshotIncomplete,
		},
		{
			name:    "no progress",
			wantErr: domain.ErrSnapshotIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, storage := stubbackend.NewServer(t)
			if tt.progress != nil {
				storage.SetProgress("1", *tt.progress)
			}

			ws, err := backend.NewClient(srv.URL, "1").GetWaterSnapshot(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("GetWaterSnapshot() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetWaterSnapshot() error = %v", err)
			}
			if *ws != *tt.want {
				t.Errorf("GetWaterSnapshot() = %+v, want %+v", *ws, *tt.want)
			}
		})
	}
}

func TestClient_SetDailyGoal(t *testing.T) {
	srv, storage := stubbackend.NewServer(t)
	storage.SetProgress("1", backend.ProgressResponse{WakeUpTime: intPtr(420), SleepTime: intPtr(1320), DailyGoal: 2000})
	client := backend.NewClient(srv.URL, "1")
	ctx := context.Background()

	if err := client.SetDailyGoal(ctx, 2400); err != nil {
		t.Fatalf("SetDailyGoal() error = %v", err)
	}
	if goals := storage.Goals("1"); len(goals) != 1 || goals[0] != 2400 {
		t.Errorf("stored goals = %v, want [2400]", goals)
	}

	ws, err := client.GetWaterSnapshot(ctx)
	if err != nil {
		t.Fatalf("GetWaterSnapshot() error = %v", err)
	}
	if ws.DailyGoal != 2400 {
		t.Errorf("daily goal after update = %d, want 2400", ws.DailyGoal)
	}

	if err := client.SetDailyGoal(ctx, 0); !errors.Is(err, domain.ErrInvalidDailyGoal) {
		t.Errorf("SetDailyGoal(0) error = %v, want %v", err, domain.ErrInvalidDailyGoal)
	}
}

func TestClient_ServerError(t *testing.T) {
	srv, storage := stubbackend.NewServer(t)
	storage.FailWith("reminders", http.StatusServiceUnavailable)

	_, err := backend.NewClient(srv.URL, "1").GetReminders(context.Background())
	if err == nil {
		t.Fatal("GetReminders() error = nil, want error")
	}
}

func TestClient_PropagatesRequestID(t *testing.T) {
	var got string
	srv := newRecordingServer(t, func(r *http.Request) {
		got = r.Header.Get("x-request-id")
	})

	_, _ = backend.NewClient(srv.URL, "1").GetReminders(context.Background())
	if got == "" {
		t.Error("x-request-id header was not set")
	}
}

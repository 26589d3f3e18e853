package stubbackend

import (
	"sync"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/infra/backend"
)

type userState struct {
	reminders []backend.ReminderResponse
	nightMode *backend.NightModeResponse
	progress  *backend.ProgressResponse
	goals     []int64
}

// Storage holds per-user hydration state served by the stub.
type Storage struct {
	mu       sync.RWMutex
	users    map[string]*userState
	failures map[string]int // resource -> forced status code
}

func NewStorage() *Storage {
	return &Storage{
		users:    make(map[string]*userState),
		failures: make(map[string]int),
	}
}

func (s *Storage) user(userID string) *userState {
	u, ok := s.users[userID]
	if !ok {
		u = &userState{}
		s.users[userID] = u
	}
	return u
}

func (s *Storage) SetReminders(userID string, reminders []backend.ReminderResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user(userID).reminders = append([]backend.ReminderResponse(nil), reminders...)
}

func (s *Storage) SetNightMode(userID string, nm backend.NightModeResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user(userID).nightMode = &nm
}

func (s *Storage) SetProgress(userID string, p backend.ProgressResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user(userID).progress = &p
}

// FailWith makes every request for resource answer with status until cleared
// with status 0.
func (s *Storage) FailWith(resource string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, resource)
		return
	}
	s.failures[resource] = status
}

func (s *Storage) failure(resource string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failures[resource]
}

func (s *Storage) Reminders(userID string) []backend.ReminderResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return []backend.ReminderResponse{}
	}
	return append([]backend.ReminderResponse{}, u.reminders...)
}

func (s *Storage) NightMode(userID string) (backend.NightModeResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok || u.nightMode == nil {
		return backend.NightModeResponse{}, false
	}
	return *u.nightMode, true
}

func (s *Storage) Progress(userID string) (backend.ProgressResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok || u.progress == nil {
		return backend.ProgressResponse{}, false
	}
	return *u.progress, true
}

// SetGoal stores the goal and reflects it in the user's progress, as the real
// backend does.
func (s *Storage) SetGoal(userID string, goal int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.user(userID)
	u.goals = append(u.goals, goal)
	if u.progress != nil {
		u.progress.DailyGoal = goal
	}
}

func (s *Storage) Goals(userID string) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	return append([]int64(nil), u.goals...)
}

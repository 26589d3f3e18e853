package domain

import (
	"context"
	"strings"
	"time"
)

//go:generate mockgen -source=notification.go -destination=notification_mock.go -package=domain

type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

func (p Permission) String() string {
	return string(p)
}

func ParsePermission(s string) Permission {
	switch Permission(strings.ToLower(strings.TrimSpace(s))) {
	case PermissionGranted:
		return PermissionGranted
	case PermissionDenied:
		return PermissionDenied
	default:
		return PermissionDefault
	}
}

type NotificationSource string

const (
	SourceReminder NotificationSource = "reminder"
	SourceHourly   NotificationSource = "hourly"
)

func (s NotificationSource) String() string {
	return string(s)
}

type NotificationPayload struct {
	Source NotificationSource
	Title  string
	Body   string
	Icon   string
	Badge  string
	// Tag lets the platform replace an earlier notification from the same source.
	Tag     string
	Silent  bool
	Vibrate []time.Duration
}

type NotificationHandle interface {
	ID() string
	OnClick(fn func(ctx context.Context))
	Close(ctx context.Context) error
}

type NotificationPort interface {
	Permission(ctx context.Context) Permission
	RequestPermission(ctx context.Context) (Permission, error)
	Show(ctx context.Context, payload NotificationPayload) (NotificationHandle, error)
}

// VibrationCapable is implemented by ports whose platform can vibrate.
type VibrationCapable interface {
	CanVibrate() bool
}

// AudioPlayer plays the reminder cue from the start. Calls that overlap a
// playback in progress are ignored.
type AudioPlayer interface {
	Play(ctx context.Context) error
}

type HostWindow interface {
	Focus(ctx context.Context) error
}

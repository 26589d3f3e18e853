package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
)

type Dispatcher struct {
	port      domain.NotificationPort
	audio     domain.AudioPlayer
	host      domain.HostWindow
	icon      string
	vibration bool

	requested atomic.Bool
}

// NewDispatcher wires the notification port with optional audio and host
// window capabilities. vibration disables haptics globally when false.
func NewDispatcher(
	port domain.NotificationPort,
	audio domain.AudioPlayer,
	host domain.HostWindow,
	icon string,
	vibration bool,
) *Dispatcher {
	if icon == "" {
		icon = DefaultIcon
	}
	return &Dispatcher{
		port:      port,
		audio:     audio,
		host:      host,
		icon:      icon,
		vibration: vibration,
	}
}

func (d *Dispatcher) Permission(ctx context.Context) domain.Permission {
	return d.port.Permission(ctx)
}

// EnsurePermission asks the platform for permission the first time it is
// still undecided and returns the resulting state.
func (d *Dispatcher) EnsurePermission(ctx context.Context) domain.Permission {
	perm := d.port.Permission(ctx)
	if perm != domain.PermissionDefault {
		return perm
	}
	if !d.requested.CompareAndSwap(false, true) {
		return perm
	}

	granted, err := d.port.RequestPermission(ctx)
	if err != nil {
		slog.WarnContext(ctx, "notification permission request failed",
			slog.String("error", err.Error()),
		)
		return domain.PermissionDefault
	}

	slog.InfoContext(ctx, "notification permission decided",
		slog.String("permission", granted.String()),
	)

	return granted
}

// FireReminder shows a custom reminder. It returns shown=false without error
// when permission has not been granted.
func (d *Dispatcher) FireReminder(ctx context.Context, r domain.Reminder) (bool, error) {
	payload := ReminderPayload(r, d.icon)
	if r.Vibration && d.canVibrate() {
		payload.Vibrate = VibrationPattern
	}
	return d.fire(ctx, payload, r.Sound)
}

// FireHourly shows the hourly auto-reminder, which always plays the cue.
func (d *Dispatcher) FireHourly(ctx context.Context, remainingHours int) (bool, error) {
	return d.fire(ctx, HourlyPayload(remainingHours, d.icon), true)
}

func (d *Dispatcher) fire(ctx context.Context, payload domain.NotificationPayload, sound bool) (bool, error) {
	if perm := d.port.Permission(ctx); perm != domain.PermissionGranted {
		slog.DebugContext(ctx, "notification not shown, permission not granted",
			slog.String("tag", payload.Tag),
			slog.String("permission", perm.String()),
		)
		return false, nil
	}

	handle, err := d.port.Show(ctx, payload)
	if err != nil {
		return false, fmt.Errorf("failed to show notification %s: %w", payload.Tag, err)
	}

	if sound && d.audio != nil {
		if err := d.audio.Play(ctx); err != nil {
			slog.WarnContext(ctx, "audio playback failed",
				slog.String("tag", payload.Tag),
				slog.String("error", err.Error()),
			)
		}
	}

	handle.OnClick(d.onClick(handle))

	slog.InfoContext(ctx, "notification shown",
		slog.String("source", payload.Source.String()),
		slog.String("tag", payload.Tag),
		slog.String("notification_id", handle.ID()),
		slog.Bool("silent", payload.Silent),
		slog.Bool("vibrate", len(payload.Vibrate) > 0),
	)

	return true, nil
}

func (d *Dispatcher) onClick(handle domain.NotificationHandle) func(ctx context.Context) {
	return func(ctx context.Context) {
		if d.host != nil {
			if err := d.host.Focus(ctx); err != nil {
				slog.WarnContext(ctx, "failed to focus host window",
					slog.String("notification_id", handle.ID()),
					slog.String("error", err.Error()),
				)
			}
		}
		if err := handle.Close(ctx); err != nil {
			slog.WarnContext(ctx, "failed to close notification",
				slog.String("notification_id", handle.ID()),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (d *Dispatcher) canVibrate() bool {
	if !d.vibration {
		return false
	}
	v, ok := d.port.(domain.VibrationCapable)
	return ok && v.CanVibrate()
}

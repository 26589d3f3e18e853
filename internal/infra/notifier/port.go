package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
)

// Port delivers notifications for one user through a Gateway and tracks the
// open ones by tag so click callbacks can be routed back to them.
type Port struct {
	gateway Gateway
	userID  string

	mu         sync.Mutex
	permission domain.Permission
	// promptAnswer is what a permission request resolves to.
	promptAnswer domain.Permission
	canVibrate   bool
	handles      map[string]*handle

	now func() time.Time
}

var (
	_ domain.NotificationPort = (*Port)(nil)
	_ domain.VibrationCapable = (*Port)(nil)
)

func NewPort(gateway Gateway, userID string, initial, promptAnswer domain.Permission, canVibrate bool) *Port {
	if promptAnswer == domain.PermissionDefault {
		promptAnswer = domain.PermissionGranted
	}
	return &Port{
		gateway:      gateway,
		userID:       userID,
		permission:   initial,
		promptAnswer: promptAnswer,
		canVibrate:   canVibrate,
		handles:      make(map[string]*handle),
		now:          time.Now,
	}
}

func (p *Port) Permission(_ context.Context) domain.Permission {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.permission
}

// RequestPermission settles a default permission. A permission that is
// already granted or denied is returned unchanged.
func (p *Port) RequestPermission(ctx context.Context) (domain.Permission, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.permission != domain.PermissionDefault {
		return p.permission, nil
	}

	p.permission = p.promptAnswer
	slog.InfoContext(ctx, "notification permission resolved",
		slog.String("user_id", p.userID),
		slog.String("permission", p.permission.String()),
	)
	return p.permission, nil
}

func (p *Port) CanVibrate() bool {
	return p.canVibrate
}

func (p *Port) Show(ctx context.Context, payload domain.NotificationPayload) (domain.NotificationHandle, error) {
	msg := &PushMessage{
		ID:      uuid.NewString(),
		UserID:  p.userID,
		Kind:    KindNotification,
		Title:   payload.Title,
		Body:    payload.Body,
		Icon:    payload.Icon,
		Badge:   payload.Badge,
		Tag:     payload.Tag,
		Silent:  payload.Silent,
		Vibrate: vibrationMillis(payload.Vibrate),
		SentAt:  p.now(),
	}

	if _, err := p.gateway.Deliver(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to deliver notification %s: %w", payload.Tag, err)
	}

	h := &handle{port: p, id: msg.ID, tag: payload.Tag}

	p.mu.Lock()
	// A newer notification with the same tag replaces the older one.
	p.handles[payload.Tag] = h
	p.mu.Unlock()

	return h, nil
}

// HandleClick runs the click callback of the open notification with tag.
func (p *Port) HandleClick(ctx context.Context, tag string) error {
	p.mu.Lock()
	h, ok := p.handles[tag]
	p.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNotification, tag)
	}

	h.click(ctx)
	return nil
}

// Open returns the sorted tags of notifications not yet closed.
func (p *Port) Open() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	tags := make([]string, 0, len(p.handles))
	for tag := range p.handles {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

func (p *Port) release(h *handle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cur, ok := p.handles[h.tag]; ok && cur == h {
		delete(p.handles, h.tag)
	}
}

func vibrationMillis(pattern []time.Duration) []int {
	if len(pattern) == 0 {
		return nil
	}
	out := make([]int, len(pattern))
	for i, d := range pattern {
		out[i] = int(d.Milliseconds())
	}
	return out
}

type handle struct {
	port *Port
	id   string
	tag  string

	mu      sync.Mutex
	onClick func(ctx context.Context)
	closed  bool
}

func (h *handle) ID() string {
	return h.id
}

func (h *handle) OnClick(fn func(ctx context.Context)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onClick = fn
}

func (h *handle) click(ctx context.Context) {
	h.mu.Lock()
	fn := h.onClick
	h.mu.Unlock()

	if fn != nil {
		fn(ctx)
	}
}

// Close dismisses the notification on the user's devices. Closing twice is
// a no-op.
func (h *handle) Close(ctx context.Context) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()

	h.port.release(h)

	if err := h.port.gateway.Retract(ctx, h.id); err != nil {
		return fmt.Errorf("failed to retract notification %s: %w", h.tag, err)
	}

	dismiss := &PushMessage{
		ID:     uuid.NewString(),
		UserID: h.port.userID,
		Kind:   KindDismiss,
		Tag:    h.tag,
		SentAt: h.port.now(),
	}
	if _, err := h.port.gateway.Deliver(ctx, dismiss); err != nil {
		return fmt.Errorf("failed to dismiss notification %s: %w", h.tag, err)
	}
	return nil
}

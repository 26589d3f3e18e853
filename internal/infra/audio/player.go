package audio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/infra/notifier"
)

type Sound string

const (
	SoundDefault Sound = "default"
	SoundChime   Sound = "chime"
	SoundBell    Sound = "bell"
	SoundGentle  Sound = "gentle"
)

const DefaultVolume = 0.5

var soundAssets = map[Sound]string{
	SoundDefault: "/assets/sounds/reminder.mp3",
	SoundChime:   "/assets/sounds/chime.mp3",
	SoundBell:    "/assets/sounds/bell.mp3",
	SoundGentle:  "/assets/sounds/gentle.mp3",
}

// ParseSound maps a configured sound name onto a known cue, falling back
// to the default cue.
func ParseSound(s string) Sound {
	sound := Sound(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := soundAssets[sound]; ok {
		return sound
	}
	return SoundDefault
}

func (s Sound) Asset() string {
	return soundAssets[ParseSound(string(s))]
}

// Player sends the reminder cue to the user's devices. One playback is in
// flight at a time; a Play that arrives while the previous cue is still
// playing is dropped.
type Player struct {
	gateway notifier.Gateway
	userID  string
	sound   Sound
	length  time.Duration

	mu      sync.Mutex
	playing time.Time

	now func() time.Time
}

var _ domain.AudioPlayer = (*Player)(nil)

func NewPlayer(gateway notifier.Gateway, userID string, sound Sound, length time.Duration) *Player {
	if length <= 0 {
		length = 2 * time.Second
	}
	return &Player{
		gateway: gateway,
		userID:  userID,
		sound:   ParseSound(string(sound)),
		length:  length,
		now:     time.Now,
	}
}

func (p *Player) Play(ctx context.Context) error {
	if !p.mu.TryLock() {
		slog.DebugContext(ctx, "audio cue already being sent, ignoring")
		return nil
	}
	defer p.mu.Unlock()

	now := p.now()
	if now.Before(p.playing) {
		slog.DebugContext(ctx, "audio cue still playing, ignoring",
			slog.Time("playing_until", p.playing),
		)
		return nil
	}

	msg := &notifier.PushMessage{
		ID:     uuid.NewString(),
		UserID: p.userID,
		Kind:   notifier.KindSound,
		Sound:  p.sound.Asset(),
		Volume: DefaultVolume,
		SentAt: now,
	}
	if _, err := p.gateway.Deliver(ctx, msg); err != nil {
		return fmt.Errorf("failed to play %s cue: %w", p.sound, err)
	}

	p.playing = now.Add(p.length)
	return nil
}

package audio

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/infra/notifier"
)

func TestParseSound(t *testing.T) {
	tests := []struct {
		in   string
		want Sound
	}{
		{"chime", SoundChime},
		{" Bell ", SoundBell},
		{"gentle", SoundGentle},
		{"", SoundDefault},
		{"trumpet", SoundDefault},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseSound(tt.in); got != tt.want {
				t.Errorf("ParseSound(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPlayer_Play(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := notifier.NewMockGateway(ctrl)

	p := NewPlayer(gw, "1", SoundChime, time.Second)
	base := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return base }

	gw.EXPECT().Deliver(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg *notifier.PushMessage) (*notifier.DeliveryReceipt, error) {
			if msg.Kind != notifier.KindSound {
				t.Errorf("Kind = %q, want sound", msg.Kind)
			}
			if msg.Sound != "/assets/sounds/chime.mp3" {
				t.Errorf("Sound = %q", msg.Sound)
			}
			if msg.Volume != DefaultVolume {
				t.Errorf("Volume = %v, want %v", msg.Volume, DefaultVolume)
			}
			return &notifier.DeliveryReceipt{}, nil
		}).Times(2)

	if err := p.Play(context.Background()); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	// overlapping call is dropped
	p.now = func() time.Time { return base.Add(500 * time.Millisecond) }
	if err := p.Play(context.Background()); err != nil {
		t.Fatalf("overlapping Play() error = %v", err)
	}

	// after the cue finished the next call plays again
	p.now = func() time.Time { return base.Add(time.Second) }
	if err := p.Play(context.Background()); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
}

func TestPlayer_PlayError(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := notifier.NewMockGateway(ctrl)
	p := NewPlayer(gw, "1", SoundDefault, time.Second)

	gw.EXPECT().Deliver(gomock.Any(), gomock.Any()).Return(nil, notifier.ErrGatewayUnavailable).Times(2)

	if err := p.Play(context.Background()); !errors.Is(err, notifier.ErrGatewayUnavailable) {
		t.Fatalf("Play() error = %v, want ErrGatewayUnavailable", err)
	}
	// a failed playback does not block the next attempt
	if err := p.Play(context.Background()); err == nil {
		t.Fatal("second Play() expected error")
	}
}

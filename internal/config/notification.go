package config

import (
	"os"
	"time"
)

const (
	notificationPermissionEnv = "NOTIFICATION_PERMISSION"
	notificationPromptEnv     = "NOTIFICATION_PROMPT_RESPONSE"
	notificationIconEnv       = "NOTIFICATION_ICON"
	notificationVibrationEnv  = "NOTIFICATION_VIBRATION"
	notificationFocusEnv      = "NOTIFICATION_FOCUS_VIA_REDIS"
	reminderSoundEnv          = "REMINDER_SOUND"
	reminderSoundLengthEnv    = "REMINDER_SOUND_LENGTH"

	defaultNotificationIcon = "/assets/generated/water-drop-icon.dim_128x128.png"
	defaultSoundLength      = 2 * time.Second
)

type NotificationConfig struct {
	// Permission and PromptResponse are raw permission names
	// (default, granted, denied).
	Permission     string
	PromptResponse string
	Icon           string
	Vibration      bool
	FocusViaRedis  bool
	Sound          string
	SoundLength    time.Duration
}

func LoadNotificationConfig() *NotificationConfig {
	icon := os.Getenv(notificationIconEnv)
	if icon == "" {
		icon = defaultNotificationIcon
	}

	prompt := os.Getenv(notificationPromptEnv)
	if prompt == "" {
		prompt = "granted"
	}

	return &NotificationConfig{
		Permission:     os.Getenv(notificationPermissionEnv),
		PromptResponse: prompt,
		Icon:           icon,
		Vibration:      os.Getenv(notificationVibrationEnv) != "false",
		FocusViaRedis:  os.Getenv(notificationFocusEnv) != "false",
		Sound:          os.Getenv(reminderSoundEnv),
		SoundLength:    durationEnv(reminderSoundLengthEnv, defaultSoundLength),
	}
}

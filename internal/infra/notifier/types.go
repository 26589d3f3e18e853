package notifier

import "time"

type MessageKind string

const (
	KindNotification MessageKind = "notification"
	KindSound        MessageKind = "sound"
	KindDismiss      MessageKind = "dismiss"
)

type PushMessage struct {
	ID     string      `json:"id"`
	UserID string      `json:"user_id"`
	Kind   MessageKind `json:"kind"`

	Title   string `json:"title,omitempty"`
	Body    string `json:"body,omitempty"`
	Icon    string `json:"icon,omitempty"`
	Badge   string `json:"badge,omitempty"`
	Tag     string `json:"tag,omitempty"`
	Silent  bool   `json:"silent"`
	Vibrate []int  `json:"vibrate,omitempty"` // milliseconds, alternating on/off

	Sound  string  `json:"sound,omitempty"`
	Volume float64 `json:"volume,omitempty"`

	SentAt time.Time `json:"sent_at"`
}

type DeliveryReceipt struct {
	Name       string    `json:"name"`
	CreateTime time.Time `json:"create_time"`
}

type PrimindTaskRequest struct {
	Task PrimindTask `json:"task"`
}

type PrimindTask struct {
	Name         string             `json:"name,omitempty"`
	HTTPRequest  PrimindHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type PrimindHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type PrimindTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}

package notifier

import "errors"

var (
	ErrUnknownNotification = errors.New("unknown notification")
	ErrGatewayUnavailable  = errors.New("push gateway unavailable")
)

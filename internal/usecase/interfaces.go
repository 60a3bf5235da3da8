package usecase

import (
	"context"

	"github.com/echtwell/echt-crm/internal/infra/queue"
)

// MessageSender is the outbound side of the messaging gateway.
// SendText must normalize the destination itself.
type MessageSender interface {
	SendText(ctx context.Context, to, body string) error
	FormatPhoneNumber(phone string) string
}

type NotificationPublisherInterface interface {
	PublishNotification(ctx context.Context, payload queue.NotificationPayload) error
}

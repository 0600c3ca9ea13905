package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-payops/internal/events"
	"go-payops/internal/messaging/kafka"
	"go-payops/internal/shared/contextutil"

	"github.com/google/uuid"
)

//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock
type Notifier interface {
	WithTx(tx *sql.Tx) Notifier
	Notify(ctx context.Context, organizationID, recipientID, message string) error
}

// outboxNotifier queues notifications through the transactional outbox.
// Joining the caller's transaction means a rolled-back payroll run leaves
// no stray notifications behind; delivery itself stays best-effort in the
// producer worker.
type outboxNotifier struct {
	outbox kafka.OutboxRepository
}

func NewOutboxNotifier(outbox kafka.OutboxRepository) Notifier {
	return &outboxNotifier{outbox: outbox}
}

func (n *outboxNotifier) WithTx(tx *sql.Tx) Notifier {
	return &outboxNotifier{outbox: n.outbox.WithTx(tx)}
}

func (n *outboxNotifier) Notify(ctx context.Context, organizationID, recipientID, message string) error {
	event := events.NotificationRequestedEvent{
		EventType:      "notification.requested",
		OrganizationID: organizationID,
		RecipientID:    recipientID,
		Message:        message,
		OccurredAt:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return n.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "notification",
		AggregateID:   recipientID,
		EventType:     event.EventType,
		Topic:         events.NotificationRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

package consumer

import (
	"context"
	"encoding/json"

	"go-payops/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeNotificationRequested delivers queued notification events.
// The actual transport (email/push) sits outside this service; delivery here
// means handing the message to the transport stub, which logs it.
func ConsumeNotificationRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification")
	log.Info("notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		var event events.NotificationRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode notification event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		// transport stub
		log.Info("notification delivered",
			zap.String("organization_id", event.OrganizationID),
			zap.String("recipient_id", event.RecipientID),
			zap.String("message", event.Message),
		)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification message failed", zap.Error(err))
			continue
		}
	}
}

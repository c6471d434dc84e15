package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"food-preorder/internal/logger"
	"food-preorder/internal/messaging"
)

// Subscriber consumes order status updates and surfaces them as
// human-readable notifications. It stands in for the push channels
// (email, SMS) a deployment would attach here.
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
	}
}

// Start consumes status updates until the context is cancelled.
func (s *Subscriber) Start(ctx context.Context) error {
	s.logger.Info("service_started", "Notification subscriber started", "", nil)
	return s.consumer.StartConsuming(ctx, s.handleStatusUpdate)
}

func (s *Subscriber) handleStatusUpdate(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var update messaging.StatusUpdateMessage
	if err := json.Unmarshal(body, &update); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse status update", requestID, err, nil)
		return fmt.Errorf("failed to parse status update: %w", err)
	}

	fmt.Println(formatNotification(&update))

	s.logger.Info("notification_displayed", "Status notification displayed", requestID, map[string]interface{}{
		"order_id":   update.OrderID,
		"old_status": update.OldStatus,
		"new_status": update.NewStatus,
		"changed_by": update.ChangedBy,
	})

	return nil
}

func formatNotification(update *messaging.StatusUpdateMessage) string {
	timestamp := update.Timestamp.Format("2006-01-02 15:04:05")

	switch update.NewStatus {
	case "pending":
		return fmt.Sprintf("[%s] Order %s has been placed and is awaiting confirmation.",
			timestamp, update.OrderID)
	case "confirmed":
		return fmt.Sprintf("[%s] Order %s has been confirmed by the restaurant.",
			timestamp, update.OrderID)
	case "preparing":
		return fmt.Sprintf("[%s] Order %s is now being prepared.",
			timestamp, update.OrderID)
	case "ready":
		return fmt.Sprintf("[%s] Order %s is ready for pickup!",
			timestamp, update.OrderID)
	case "completed":
		return fmt.Sprintf("[%s] Order %s has been picked up. Thank you!",
			timestamp, update.OrderID)
	case "cancelled":
		return fmt.Sprintf("[%s] Order %s has been cancelled.",
			timestamp, update.OrderID)
	default:
		return fmt.Sprintf("[%s] Order %s status changed from '%s' to '%s'.",
			timestamp, update.OrderID, update.OldStatus, update.NewStatus)
	}
}

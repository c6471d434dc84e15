package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"food-preorder/internal/messaging"
)

func TestFormatNotification(t *testing.T) {
	base := messaging.StatusUpdateMessage{
		OrderID:   "6a1f8f9e-4c2b-4b0e-9a3d-2f1e8c7d6b5a",
		Timestamp: time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC),
	}

	tests := []struct {
		status string
		want   string
	}{
		{"ready", "ready for pickup"},
		{"completed", "has been picked up"},
		{"cancelled", "has been cancelled"},
		{"confirmed", "confirmed by the restaurant"},
		{"somethingelse", "status changed from"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			msg := base
			msg.NewStatus = tt.status
			got := formatNotification(&msg)
			assert.Contains(t, got, tt.want)
			assert.Contains(t, got, base.OrderID)
			assert.Contains(t, got, "2026-03-10 12:30:00")
		})
	}
}

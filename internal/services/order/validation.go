package order

import (
	"fmt"
	"time"
)

// Pickup window bounds, relative to submission time. Both are inclusive.
const (
	MinPickupLead = 30 * time.Minute
	MaxPickupLead = 7 * 24 * time.Hour
)

// PickupReason tags why a pickup time was rejected
type PickupReason string

const (
	PickupTooSoon       PickupReason = "TOO_SOON"
	PickupTooFar        PickupReason = "TOO_FAR"
	PickupInvalidFormat PickupReason = "INVALID_FORMAT"
)

// PickupTimeError reports an out-of-window or unparsable pickup time
type PickupTimeError struct {
	Reason PickupReason
}

func (e *PickupTimeError) Error() string {
	switch e.Reason {
	case PickupTooSoon:
		return fmt.Sprintf("pickup time must be at least %v from now", MinPickupLead)
	case PickupTooFar:
		return fmt.Sprintf("pickup time must be within %v from now", MaxPickupLead)
	default:
		return "pickup time is not a valid timestamp"
	}
}

// ParsePickupTime parses an ISO-8601 pickup timestamp.
func ParsePickupTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, &PickupTimeError{Reason: PickupInvalidFormat}
	}
	return t, nil
}

// ValidatePickupWindow checks that pickup lies within
// [now + MinPickupLead, now + MaxPickupLead]. All comparisons are between
// absolute instants; display timezones play no part. Invoked once per
// restaurant group at checkout.
func ValidatePickupWindow(pickup, now time.Time) error {
	if pickup.Before(now.Add(MinPickupLead)) {
		return &PickupTimeError{Reason: PickupTooSoon}
	}
	if pickup.After(now.Add(MaxPickupLead)) {
		return &PickupTimeError{Reason: PickupTooFar}
	}
	return nil
}

package order

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePickupWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		pickup     time.Time
		wantReason PickupReason
	}{
		{
			name:   "exactly at minimum lead is accepted",
			pickup: now.Add(MinPickupLead),
		},
		{
			name:   "exactly at maximum lead is accepted",
			pickup: now.Add(MaxPickupLead),
		},
		{
			name:   "well inside the window",
			pickup: now.Add(48 * time.Hour),
		},
		{
			name:       "one second under the minimum lead",
			pickup:     now.Add(MinPickupLead - time.Second),
			wantReason: PickupTooSoon,
		},
		{
			name:       "in the past",
			pickup:     now.Add(-time.Hour),
			wantReason: PickupTooSoon,
		},
		{
			name:       "one second past the maximum lead",
			pickup:     now.Add(MaxPickupLead + time.Second),
			wantReason: PickupTooFar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePickupWindow(tt.pickup, now)
			if tt.wantReason == "" {
				assert.NoError(t, err)
				return
			}

			var pickupErr *PickupTimeError
			require.ErrorAs(t, err, &pickupErr)
			assert.Equal(t, tt.wantReason, pickupErr.Reason)
		})
	}
}

func TestValidatePickupWindowIgnoresDisplayTimezone(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// The same instant expressed with a different offset must validate
	// identically.
	utc := now.Add(2 * time.Hour)
	offset := utc.In(time.FixedZone("UTC+5", 5*3600))
	require.True(t, utc.Equal(offset))

	assert.NoError(t, ValidatePickupWindow(utc, now))
	assert.NoError(t, ValidatePickupWindow(offset, now))
}

func TestParsePickupTime(t *testing.T) {
	t.Run("valid RFC3339", func(t *testing.T) {
		parsed, err := ParsePickupTime("2026-03-10T18:30:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC), parsed)
	})

	t.Run("valid with offset", func(t *testing.T) {
		parsed, err := ParsePickupTime("2026-03-10T18:30:00+05:00")
		require.NoError(t, err)
		assert.True(t, parsed.Equal(time.Date(2026, 3, 10, 13, 30, 0, 0, time.UTC)))
	})

	for _, raw := range []string{"", "not-a-time", "2026-03-10", "2026-13-40T99:00:00Z"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			_, err := ParsePickupTime(raw)
			var pickupErr *PickupTimeError
			require.True(t, errors.As(err, &pickupErr))
			assert.Equal(t, PickupInvalidFormat, pickupErr.Reason)
		})
	}
}

package alert

import (
	"context"

	"github.com/Domenick1991/inflight/internal/kafka"
	"github.com/rs/zerolog"
)

// Notifier raises a low-fill alert for bottle events at or below the threshold.
type Notifier struct {
	thresholdPct float64
}

func NewNotifier(thresholdPct float64) *Notifier {
	return &Notifier{thresholdPct: thresholdPct}
}

// Notify reports whether an alert was raised.
func (n *Notifier) Notify(ctx context.Context, event kafka.BottleEventMessage) bool {
	logger := zerolog.Ctx(ctx).With().
		Int64("bottle_id", event.BottleID).
		Int64("flight_id", event.FlightID).
		Str("event_type", event.EventType).
		Float64("pct_after", event.PctAfter).
		Logger()

	if event.PctAfter > n.thresholdPct {
		logger.Debug().Msg("bottle event received")
		return false
	}

	logger.Warn().
		Str("item", event.ItemName).
		Str("airline", event.AirlineName).
		Float64("threshold_pct", n.thresholdPct).
		Msg("low fill level")
	return true
}

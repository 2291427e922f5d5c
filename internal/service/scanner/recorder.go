package scanner

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/Domenick1991/inflight/internal/domain"
	"github.com/Domenick1991/inflight/internal/kafka"
	"github.com/Domenick1991/inflight/internal/repository"
)

const (
	StageValidate = "validate"
	StageInsert   = "insert"
	StagePublish  = "publish"
)

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// FlightContext is the optional service context attached to a single scan.
type FlightContext struct {
	FlightID  int64
	EventType domain.EventType
	AmountML  *float64
	UserID    *int64
}

// RecorderError describes a bottle event that was not (fully) recorded.
// It never changes the outcome of the verification that triggered it.
type RecorderError struct {
	Stage    string
	BottleID int64
	Err      error
}

func (e *RecorderError) Error() string {
	return fmt.Sprintf("record event for bottle %d (%s): %v", e.BottleID, e.Stage, e.Err)
}

func (e *RecorderError) Unwrap() error {
	return e.Err
}

type EventRecorder struct {
	events   repository.BottleEventRepository
	producer Producer
	topic    string
	timeout  time.Duration
}

type EventRecorderOption func(*EventRecorder)

// WithPublisher publishes every stored event to topic.
func WithPublisher(producer Producer, topic string) EventRecorderOption {
	return func(r *EventRecorder) {
		r.producer = producer
		r.topic = topic
	}
}

// NewEventRecorder creates a recorder. A zero timeout leaves the caller's deadline in place.
func NewEventRecorder(events repository.BottleEventRepository, timeout time.Duration, opts ...EventRecorderOption) *EventRecorder {
	r := &EventRecorder{events: events, timeout: timeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record appends one bottle event for a verified bottle and publishes it.
// bottle_instances.current_pct is left untouched; pct_after lives only on the event.
func (r *EventRecorder) Record(ctx context.Context, bottle domain.BottleSnapshot, fc FlightContext) *RecorderError {
	eventType := fc.EventType
	if eventType == "" {
		eventType = domain.EventTypeScan
	}
	if !eventType.Valid() {
		return &RecorderError{
			Stage:    StageValidate,
			BottleID: bottle.BottleID,
			Err:      fmt.Errorf("%w: unknown event type %q", domain.ErrValidation, eventType),
		}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	amount := fc.AmountML
	if amount != nil && *amount == 0 {
		amount = nil
	}

	event := &domain.BottleEvent{
		BottleID:  bottle.BottleID,
		FlightID:  fc.FlightID,
		UserID:    fc.UserID,
		EventType: eventType,
		AmountML:  amount,
		PctAfter:  PctAfter(bottle.CurrentPct, eventType, amount),
	}
	if err := r.events.Create(ctx, event); err != nil {
		return &RecorderError{Stage: StageInsert, BottleID: bottle.BottleID, Err: err}
	}

	if r.producer == nil || r.topic == "" {
		return nil
	}

	msg := kafka.BottleEventMessage{
		EventID:     event.ID,
		BottleID:    event.BottleID,
		FlightID:    event.FlightID,
		UserID:      event.UserID,
		EventType:   string(event.EventType),
		AmountML:    event.AmountML,
		PctAfter:    event.PctAfter,
		QRURL:       bottle.QRURL,
		ItemName:    bottle.ItemName,
		AirlineName: bottle.AirlineName,
		CreatedAt:   event.CreatedAt,
	}
	if err := r.producer.Publish(ctx, r.topic, strconv.FormatInt(bottle.BottleID, 10), msg); err != nil {
		return &RecorderError{Stage: StagePublish, BottleID: bottle.BottleID, Err: err}
	}
	return nil
}

// PctAfter returns the fill percentage recorded on an event.
// PartialUse subtracts amountML as if it were already a percentage; the bottle's
// initial volume is not consulted.
func PctAfter(currentPct float64, eventType domain.EventType, amountML *float64) float64 {
	if eventType != domain.EventTypePartialUse || amountML == nil || *amountML == 0 {
		return currentPct
	}
	return math.Max(0, currentPct-(*amountML/100)*100)
}

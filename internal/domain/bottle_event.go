package domain

import "time"

type EventType string

const (
	EventTypeScan       EventType = "Scan"
	EventTypePlace      EventType = "Place"
	EventTypePartialUse EventType = "PartialUse"
	EventTypeDiscard    EventType = "Discard"
	EventTypeReturn     EventType = "Return"
	EventTypeCombine    EventType = "Combine"
)

func (t EventType) Valid() bool {
	switch t {
	case EventTypeScan, EventTypePlace, EventTypePartialUse, EventTypeDiscard, EventTypeReturn, EventTypeCombine:
		return true
	default:
		return false
	}
}

// BottleEvent is an append-only audit record; rows are never updated.
type BottleEvent struct {
	ID        int64
	BottleID  int64
	FlightID  int64
	UserID    *int64
	EventType EventType
	AmountML  *float64
	PctAfter  float64
	CreatedAt time.Time
}

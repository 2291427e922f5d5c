package domain

type BottleStatus string

const (
	BottleStatusInFlight  BottleStatus = "InFlight"
	BottleStatusReturned  BottleStatus = "Returned"
	BottleStatusKept      BottleStatus = "Kept"
	BottleStatusCombined  BottleStatus = "Combined"
	BottleStatusDiscarded BottleStatus = "Discarded"
)

func (s BottleStatus) Valid() bool {
	switch s {
	case BottleStatusInFlight, BottleStatusReturned, BottleStatusKept, BottleStatusCombined, BottleStatusDiscarded:
		return true
	default:
		return false
	}
}

// BottleSnapshot is a bottle instance joined with its item and airline names.
type BottleSnapshot struct {
	BottleID    int64
	QRURL       string
	ItemName    string
	AirlineName string
	CurrentPct  float64
	Status      BottleStatus
	BatchCode   string
}

type QRCodeReference struct {
	BottleID    int64        `db:"bottle_id" json:"bottle_id"`
	QRURL       string       `db:"qr_url" json:"qr_url"`
	QRCode      *string      `db:"qr_code" json:"qr_code,omitempty"`
	BatchCode   string       `db:"batch_code" json:"batch_code"`
	Status      BottleStatus `db:"status" json:"status"`
	CurrentPct  float64      `db:"current_pct" json:"current_pct"`
	ItemName    string       `db:"item_name" json:"item_name"`
	ItemID      int64        `db:"item_id" json:"item_id"`
	AirlineName string       `db:"airline_name" json:"airline_name"`
	AirlineID   int64        `db:"airline_id" json:"airline_id"`
}

// QRReferenceFilter holds optional equality filters; nil fields are ignored.
type QRReferenceFilter struct {
	AirlineID  *int64
	Status     *BottleStatus
	BeverageID *int64
}

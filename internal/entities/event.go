package entities

import "time"

type EventField string

const (
	EventFieldPayment  EventField = "payment"
	EventFieldDelivery EventField = "delivery"
	EventFieldCashout  EventField = "cashout"
)

func (f EventField) String() string {
	return string(f)
}

// ParcelEvent is one status change in the parcel history.
type ParcelEvent struct {
	ID         int64
	ParcelID   int64
	Field      EventField
	FromStatus string
	ToStatus   string
	Actor      string
	CreatedAt  time.Time
}

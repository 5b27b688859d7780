package entities

import "time"

type Rider struct {
	ID               int64
	Name             string
	Email            string
	Phone            string
	Region           string
	District         string
	BikeRegistration string
	Status           RiderStatus
	WorkStatus       RiderWorkStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type RiderStatus string

const (
	RiderPending  RiderStatus = "pending"
	RiderActive   RiderStatus = "active"
	RiderInactive RiderStatus = "inactive"
)

func (s RiderStatus) String() string {
	return string(s)
}

type RiderWorkStatus string

const (
	RiderIdle       RiderWorkStatus = "idle"
	RiderInDelivery RiderWorkStatus = "in_delivery"
)

func (s RiderWorkStatus) String() string {
	return string(s)
}

type RiderModify struct {
	ID               *int64
	Name             *string
	Email            *string
	Phone            *string
	Region           *string
	District         *string
	BikeRegistration *string
	Status           *RiderStatus
	WorkStatus       *RiderWorkStatus
}

type RiderFilter struct {
	Status       *RiderStatus
	NameContains *string
	District     *string
}

// RiderTransitionResult tells which writes an approve/deactivate applied.
type RiderTransitionResult struct {
	Rider        Rider
	RiderUpdated bool
	RoleUpdated  bool
}

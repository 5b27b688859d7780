package rider

import "time"

type RiderDB struct {
	ID               int64
	Name             string
	Email            string
	Phone            string
	Region           string
	District         string
	BikeRegistration string
	Status           string
	WorkStatus       string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type RiderModifyDB struct {
	ID               *int64
	Name             *string
	Email            *string
	Phone            *string
	Region           *string
	District         *string
	BikeRegistration *string
	Status           *string
	WorkStatus       *string
}

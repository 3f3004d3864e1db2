package domain

import "time"

// Rider is a delivery agent.
type Rider struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	District   string
	Status     RiderStatus
	WorkStatus WorkStatus // empty until the application is reviewed
	CreatedAt  time.Time
}

// RiderFilter narrows rider listings. Empty fields do not filter.
type RiderFilter struct {
	Status     RiderStatus
	District   string
	WorkStatus WorkStatus
	Limit      *int
	Offset     *int
}

// RiderUpdate is a targeted field update. A nil field means "do not change".
type RiderUpdate struct {
	ID         string
	Status     *RiderStatus
	WorkStatus *WorkStatus
}

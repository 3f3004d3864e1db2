package domain

type (
	// DeliveryStatus is the position of a parcel in the delivery lifecycle.
	DeliveryStatus string
	// PaymentStatus tells whether a parcel has been paid for.
	PaymentStatus string
	// RiderStatus is the approval state of a rider application.
	RiderStatus string
	// WorkStatus is the busy/available flag of an approved rider.
	WorkStatus string
	// Role is the role of a user account.
	Role string
)

// Delivery lifecycle: pending-payment -> pending-pickup -> delivery_assigned.
const (
	DeliveryPendingPayment DeliveryStatus = "pending-payment"
	DeliveryPendingPickup  DeliveryStatus = "pending-pickup"
	DeliveryAssigned       DeliveryStatus = "delivery_assigned"
)

// List of possible payment statuses
const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// List of possible rider approval statuses
const (
	RiderPending  RiderStatus = "pending"
	RiderApproved RiderStatus = "approved"
	RiderRejected RiderStatus = "rejected"
)

// List of possible rider work statuses
const (
	WorkAvailable  WorkStatus = "available"
	WorkInDelivery WorkStatus = "in_delivery"
)

// List of possible user roles
const (
	RoleUser  Role = "user"
	RoleRider Role = "rider"
	RoleAdmin Role = "admin"
)

var deliveryOrder = map[DeliveryStatus]int{
	DeliveryPendingPayment: 0,
	DeliveryPendingPickup:  1,
	DeliveryAssigned:       2,
}

// Valid checks if the DeliveryStatus is known.
func (s DeliveryStatus) Valid() bool {
	_, ok := deliveryOrder[s]
	return ok
}

// AtLeast reports whether s is at or past other in the lifecycle.
func (s DeliveryStatus) AtLeast(other DeliveryStatus) bool {
	a, okA := deliveryOrder[s]
	b, okB := deliveryOrder[other]
	return okA && okB && a >= b
}

// Valid checks if the PaymentStatus is known.
func (s PaymentStatus) Valid() bool {
	return s == PaymentUnpaid || s == PaymentPaid
}

// Valid checks if the RiderStatus is known.
func (s RiderStatus) Valid() bool {
	switch s {
	case RiderPending, RiderApproved, RiderRejected:
		return true
	}
	return false
}

// Valid checks if the WorkStatus is known.
func (s WorkStatus) Valid() bool {
	return s == WorkAvailable || s == WorkInDelivery
}

// Valid checks if the Role is known.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleRider, RoleAdmin:
		return true
	}
	return false
}

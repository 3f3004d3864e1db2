package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Parcel is one shipment request tracked through payment and delivery.
type Parcel struct {
	ID               string
	SenderName       string
	SenderEmail      string
	ParcelName       string
	ReceiverName     string
	ReceiverDistrict string
	Cost             decimal.Decimal
	DeliveryStatus   DeliveryStatus
	PaymentStatus    PaymentStatus
	TrackingID       string
	RiderID          string
	RiderName        string
	RiderEmail       string
	CreatedAt        time.Time
}

// IsPaid reports whether the parcel payment has been confirmed.
func (p *Parcel) IsPaid() bool {
	return p != nil && p.PaymentStatus == PaymentPaid
}

// ParcelFilter narrows parcel listings. Empty fields do not filter.
type ParcelFilter struct {
	SenderEmail    string
	DeliveryStatus DeliveryStatus
	Limit          *int
	Offset         *int
}

// ParcelUpdate is a targeted field update. A nil field means "do not change".
type ParcelUpdate struct {
	ID             string
	DeliveryStatus *DeliveryStatus
	PaymentStatus  *PaymentStatus
	TrackingID     *string
	RiderID        *string
	RiderName      *string
	RiderEmail     *string
}

// ParcelPrecondition is checked by the store atomically with the update.
// A nil field means "no condition".
type ParcelPrecondition struct {
	PaymentStatusNot *PaymentStatus
	DeliveryStatus   *DeliveryStatus
}

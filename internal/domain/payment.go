package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is an immutable ledger entry for a confirmed payment.
type PaymentRecord struct {
	ID                   string
	Amount               decimal.Decimal
	Currency             string
	PayerEmail           string
	ParcelID             string
	ParcelName           string
	TransactionReference string
	PaymentStatus        PaymentStatus
	PaidAt               time.Time
	TrackingID           string
}

// SessionStatus is the gateway's view of a checkout session.
type SessionStatus struct {
	SessionID            string
	Paid                 bool
	AmountTotal          int64 // minor units
	Currency             string
	PayerEmail           string
	ParcelID             string
	ParcelName           string
	TransactionReference string
}

// Amount converts AmountTotal from minor units.
func (s SessionStatus) Amount() decimal.Decimal {
	return decimal.NewFromInt(s.AmountTotal).Shift(-2)
}

// CheckoutRequest describes the checkout session to open for a parcel.
type CheckoutRequest struct {
	Cost       decimal.Decimal
	ParcelName string
	ParcelID   string
	PayerEmail string
}

// CheckoutSession is the result of opening a checkout session.
type CheckoutSession struct {
	SessionID   string
	RedirectURL string
}

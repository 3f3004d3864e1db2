package domain

import "time"

// Result codes reported by ConfirmationResult.Code.
const (
	CodeNotPaid          = "not_paid"
	CodeAlreadyConfirmed = "already_confirmed"
)

// ParcelUpdateOutcome reports what the parcel transition did.
type ParcelUpdateOutcome struct {
	Matched  int64
	Modified int64
}

// LedgerInsertOutcome reports the ledger row backing the confirmation.
type LedgerInsertOutcome struct {
	PaymentID string
	Inserted  bool // false when an existing row was reused
}

// ConfirmationResult is the outcome of confirming a checkout session.
// TrackingID and TransactionReference are empty unless Success is true.
type ConfirmationResult struct {
	Success              bool
	Code                 string
	AlreadyConfirmed     bool
	ParcelID             string
	TrackingID           string
	TransactionReference string
	ParcelUpdate         *ParcelUpdateOutcome
	LedgerInsert         *LedgerInsertOutcome
}

// AssignmentResult is the outcome of assigning a rider to a parcel.
type AssignmentResult struct {
	ParcelID       string
	RiderID        string
	RiderName      string
	RiderEmail     string
	DeliveryStatus DeliveryStatus
	WorkStatus     WorkStatus
	AssignedAt     time.Time
}

// AssignCommand carries the input of the assignment workflow.
type AssignCommand struct {
	ParcelID   string
	RiderID    string
	RiderName  string
	RiderEmail string
}

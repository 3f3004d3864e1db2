package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"parcel-service/internal/domain"
)

type createParcelRequest struct {
	SenderName       string          `json:"senderName" validate:"max=200"`
	SenderEmail      string          `json:"senderEmail" validate:"required,email"`
	ParcelName       string          `json:"parcelName" validate:"required,max=200"`
	ReceiverName     string          `json:"receiverName" validate:"max=200"`
	ReceiverDistrict string          `json:"receiverDistrict" validate:"max=100"`
	Cost             decimal.Decimal `json:"cost"`
}

type parcelDTO struct {
	ID               string                `json:"id"`
	SenderName       string                `json:"senderName,omitempty"`
	SenderEmail      string                `json:"senderEmail"`
	ParcelName       string                `json:"parcelName"`
	ReceiverName     string                `json:"receiverName,omitempty"`
	ReceiverDistrict string                `json:"receiverDistrict,omitempty"`
	Cost             decimal.Decimal       `json:"cost"`
	DeliveryStatus   domain.DeliveryStatus `json:"deliveryStatus"`
	PaymentStatus    domain.PaymentStatus  `json:"paymentStatus"`
	TrackingID       string                `json:"trackingId,omitempty"`
	RiderID          string                `json:"riderId,omitempty"`
	RiderName        string                `json:"riderName,omitempty"`
	RiderEmail       string                `json:"riderEmail,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
}

type assignParcelRequest struct {
	RiderID    string `json:"riderId" validate:"required"`
	RiderName  string `json:"riderName" validate:"max=200"`
	RiderEmail string `json:"riderEmail" validate:"omitempty,email"`
}

type assignmentDTO struct {
	ParcelID       string                `json:"parcelId"`
	RiderID        string                `json:"riderId"`
	RiderName      string                `json:"riderName"`
	RiderEmail     string                `json:"riderEmail"`
	DeliveryStatus domain.DeliveryStatus `json:"deliveryStatus"`
	WorkStatus     domain.WorkStatus     `json:"workStatus"`
	AssignedAt     time.Time             `json:"assignedAt"`
}

type checkoutRequest struct {
	ParcelID string `json:"parcelId" validate:"required"`
}

type checkoutDTO struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type parcelUpdateDTO struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}

type ledgerInsertDTO struct {
	PaymentID string `json:"paymentId"`
	Inserted  bool   `json:"inserted"`
}

type confirmationDTO struct {
	Success              bool             `json:"success"`
	Code                 string           `json:"code,omitempty"`
	Error                string           `json:"error,omitempty"`
	AlreadyConfirmed     bool             `json:"alreadyConfirmed,omitempty"`
	ParcelID             string           `json:"parcelId,omitempty"`
	TrackingID           string           `json:"trackingId,omitempty"`
	TransactionReference string           `json:"transactionReference,omitempty"`
	ParcelUpdate         *parcelUpdateDTO `json:"parcelUpdate,omitempty"`
	LedgerInsert         *ledgerInsertDTO `json:"ledgerInsert,omitempty"`
}

type paymentDTO struct {
	ID                   string               `json:"id"`
	Amount               decimal.Decimal      `json:"amount"`
	Currency             string               `json:"currency"`
	PayerEmail           string               `json:"payerEmail"`
	ParcelID             string               `json:"parcelId"`
	ParcelName           string               `json:"parcelName"`
	TransactionReference string               `json:"transactionReference"`
	PaymentStatus        domain.PaymentStatus `json:"paymentStatus"`
	PaidAt               time.Time            `json:"paidAt"`
	TrackingID           string               `json:"trackingId"`
}

type createRiderRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"max=32"`
	District string `json:"district" validate:"max=100"`
}

type riderDTO struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone,omitempty"`
	District   string             `json:"district,omitempty"`
	Status     domain.RiderStatus `json:"status"`
	WorkStatus domain.WorkStatus  `json:"workStatus,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
}

type updateRiderStatusRequest struct {
	Status domain.RiderStatus `json:"status" validate:"required,oneof=pending approved rejected"`
	Email  string             `json:"email" validate:"omitempty,email"`
}

type createUserRequest struct {
	DisplayName string `json:"displayName" validate:"max=200"`
	Email       string `json:"email" validate:"required,email"`
	PhotoURL    string `json:"photoURL" validate:"omitempty,url"`
}

type userDTO struct {
	ID          string      `json:"id"`
	DisplayName string      `json:"displayName,omitempty"`
	Email       string      `json:"email"`
	PhotoURL    string      `json:"photoURL,omitempty"`
	Role        domain.Role `json:"role"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type updateRoleRequest struct {
	Role domain.Role `json:"role" validate:"required,oneof=user rider admin"`
}

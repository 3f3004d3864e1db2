package handlers

import (
	"parcel-service/internal/apperr"
	"parcel-service/internal/domain"
)

func (req createParcelRequest) toModel() *domain.Parcel {
	return &domain.Parcel{
		SenderName:       req.SenderName,
		SenderEmail:      req.SenderEmail,
		ParcelName:       req.ParcelName,
		ReceiverName:     req.ReceiverName,
		ReceiverDistrict: req.ReceiverDistrict,
		Cost:             req.Cost,
	}
}

func parcelToResponse(p domain.Parcel) parcelDTO {
	return parcelDTO{
		ID:               p.ID,
		SenderName:       p.SenderName,
		SenderEmail:      p.SenderEmail,
		ParcelName:       p.ParcelName,
		ReceiverName:     p.ReceiverName,
		ReceiverDistrict: p.ReceiverDistrict,
		Cost:             p.Cost,
		DeliveryStatus:   p.DeliveryStatus,
		PaymentStatus:    p.PaymentStatus,
		TrackingID:       p.TrackingID,
		RiderID:          p.RiderID,
		RiderName:        p.RiderName,
		RiderEmail:       p.RiderEmail,
		CreatedAt:        p.CreatedAt,
	}
}

func assignmentToResponse(res domain.AssignmentResult) assignmentDTO {
	return assignmentDTO{
		ParcelID:       res.ParcelID,
		RiderID:        res.RiderID,
		RiderName:      res.RiderName,
		RiderEmail:     res.RiderEmail,
		DeliveryStatus: res.DeliveryStatus,
		WorkStatus:     res.WorkStatus,
		AssignedAt:     res.AssignedAt,
	}
}

func confirmationToResponse(res domain.ConfirmationResult) confirmationDTO {
	out := confirmationDTO{
		Success:          res.Success,
		Code:             res.Code,
		AlreadyConfirmed: res.AlreadyConfirmed,
		ParcelID:         res.ParcelID,
	}
	if res.Success {
		out.TrackingID = res.TrackingID
		out.TransactionReference = res.TransactionReference
	}
	if res.ParcelUpdate != nil {
		out.ParcelUpdate = &parcelUpdateDTO{Matched: res.ParcelUpdate.Matched, Modified: res.ParcelUpdate.Modified}
	}
	if res.LedgerInsert != nil {
		out.LedgerInsert = &ledgerInsertDTO{PaymentID: res.LedgerInsert.PaymentID, Inserted: res.LedgerInsert.Inserted}
	}
	return out
}

func confirmationFailure(err error) confirmationDTO {
	return confirmationDTO{Success: false, Code: apperr.Code(err), Error: err.Error()}
}

func paymentToResponse(p domain.PaymentRecord) paymentDTO {
	return paymentDTO{
		ID:                   p.ID,
		Amount:               p.Amount,
		Currency:             p.Currency,
		PayerEmail:           p.PayerEmail,
		ParcelID:             p.ParcelID,
		ParcelName:           p.ParcelName,
		TransactionReference: p.TransactionReference,
		PaymentStatus:        p.PaymentStatus,
		PaidAt:               p.PaidAt,
		TrackingID:           p.TrackingID,
	}
}

func (req createRiderRequest) toModel() *domain.Rider {
	return &domain.Rider{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		District: req.District,
	}
}

func riderToResponse(r domain.Rider) riderDTO {
	return riderDTO{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		District:   r.District,
		Status:     r.Status,
		WorkStatus: r.WorkStatus,
		CreatedAt:  r.CreatedAt,
	}
}

func (req createUserRequest) toModel() *domain.User {
	return &domain.User{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		PhotoURL:    req.PhotoURL,
	}
}

func userToResponse(u domain.User) userDTO {
	return userDTO{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		PhotoURL:    u.PhotoURL,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}

func mapSlice[T, D any](list []T, fn func(T) D) []D {
	out := make([]D, 0, len(list))
	for _, v := range list {
		out = append(out, fn(v))
	}
	return out
}

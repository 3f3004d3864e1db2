package kafka

import (
	"strings"
	"time"

	"parcel-service/internal/service/notifications"
)

// EventDTO is the wire form of a payment gateway notification.
type EventDTO struct {
	SessionID string    `json:"session_id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDomain converts EventDTO to notifications.Event.
func ToDomain(dto EventDTO) notifications.Event {
	return notifications.Event{
		SessionID: strings.TrimSpace(dto.SessionID),
		Type:      strings.TrimSpace(dto.Type),
		CreatedAt: dto.CreatedAt,
	}
}

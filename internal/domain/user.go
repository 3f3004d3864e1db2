package domain

import "time"

// User is a customer/staff account.
type User struct {
	ID          string
	DisplayName string
	Email       string
	PhotoURL    string
	Role        Role
	CreatedAt   time.Time
}

// UserFilter narrows user listings. Search matches display name or email.
type UserFilter struct {
	Search string
	Limit  *int
	Offset *int
}

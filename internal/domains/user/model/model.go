package model

import (
	"time"

	"checkin/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldHotelID   = "hotel_id"
	FieldFullName  = "full_name"
	FieldLastLogin = "last_login"
	FieldActive    = "active"
)

type User struct {
	ID        string     `db:"id"`
	Username  string     `db:"username"`
	Password  string     `db:"password"`
	Role      string     `db:"role"`
	HotelID   *string    `db:"hotel_id"`
	FullName  *string    `db:"full_name"`
	LastLogin *time.Time `db:"last_login"`
	Active    bool       `db:"active"`
	model.Metadata
}

// ScopeHotelID flattens the nullable hotel reference for claims and
// authorization checks.
func (u User) ScopeHotelID() string {
	if u.HotelID == nil {
		return ""
	}

	return *u.HotelID
}

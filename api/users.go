package api

import (
	"time"

	"github.com/gofrs/uuid"
)

// swagger:model
type Users []User

// app user
// swagger:model
type User struct {
	// unique ID
	//
	// swagger:strfmt uuid4
	ID uuid.UUID `json:"id"`

	// email address
	Email string `json:"email"`

	// first name
	FirstName string `json:"first_name"`

	// last name
	LastName string `json:"last_name"`

	// full name
	Name string `json:"name"`

	// role in the application ('customer', 'underwriter', 'manager')
	UserType string `json:"user_type"`

	// last login date and time (UTC)
	LastLoginUTC time.Time `json:"last_login_utc"`

	// customer profile, present only for customer users
	Customer *Customer `json:"customer,omitempty"`
}

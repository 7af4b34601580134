package api

import (
	"time"

	"github.com/gofrs/uuid"
)

type Customers []Customer

// Customer is the insured-party profile tied to a customer user
type Customer struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	NationalID     string    `json:"national_id"`
	PhoneNumber    string    `json:"phone_number"`
	Address        string    `json:"address,omitempty"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	LicenseNumber  string    `json:"license_number,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Vehicles       Vehicles  `json:"vehicles,omitempty"`
	ActivePolicies int       `json:"active_policies,omitempty"`
}

type CustomerUpdateInput struct {
	PhoneNumber   string `json:"phone_number,omitempty"`
	Address       string `json:"address,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
}

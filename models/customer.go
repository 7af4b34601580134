package models

import (
	"net/http"
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/motorsure/motorsure-api/api"
)

type Customers []Customer

// Customer is the insured-party profile tied to a customer user
type Customer struct {
	ID            uuid.UUID `db:"id"`
	UserID        uuid.UUID `db:"user_id" validate:"required"`
	NationalID    string    `db:"national_id" validate:"required"`
	PhoneNumber   string    `db:"phone_number"`
	Address       string    `db:"address"`
	DateOfBirth   time.Time `db:"date_of_birth"`
	LicenseNumber string    `db:"license_number"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`

	User     User     `belongs_to:"users" validate:"-"`
	Vehicles Vehicles `has_many:"vehicles" validate:"-"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (c *Customer) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(c), nil
}

func (c *Customer) GetID() uuid.UUID {
	return c.ID
}

func (c *Customer) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, c, id)
}

func (c *Customer) IsActorAllowedTo(tx *pop.Connection, actor User, p Permission, sub SubResource, r *http.Request) bool {
	if actor.IsStaff() {
		return true
	}

	switch p {
	case PermissionView, PermissionUpdate:
		return actor.ID == c.UserID
	default:
		return false
	}
}

func (c *Customer) Create(tx *pop.Connection) error {
	return create(tx, c)
}

func (c *Customer) Update(tx *pop.Connection) error {
	return update(tx, c)
}

func (c *Customer) LoadUser(tx *pop.Connection, reload bool) {
	if c.User.ID == uuid.Nil || reload {
		if err := tx.Load(c, "User"); err != nil {
			panic("database error loading Customer.User, " + err.Error())
		}
	}
}

func (c *Customer) LoadVehicles(tx *pop.Connection, reload bool) {
	if len(c.Vehicles) == 0 || reload {
		if err := tx.Load(c, "Vehicles"); err != nil {
			panic("database error loading Customer.Vehicles, " + err.Error())
		}
	}
}

func ConvertCustomer(tx *pop.Connection, c Customer) api.Customer {
	c.LoadVehicles(tx, true)

	return api.Customer{
		ID:            c.ID,
		UserID:        c.UserID,
		NationalID:    c.NationalID,
		PhoneNumber:   c.PhoneNumber,
		Address:       c.Address,
		DateOfBirth:   c.DateOfBirth,
		LicenseNumber: c.LicenseNumber,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		Vehicles:      ConvertVehicles(tx, c.Vehicles),
	}
}

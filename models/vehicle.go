package models

import (
	"net/http"
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/motorsure/motorsure-api/api"
)

type Vehicles []Vehicle

// Vehicle model. Registration, engine and chassis numbers are each globally
// unique, enforced by database constraints.
type Vehicle struct {
	ID                 uuid.UUID    `db:"id"`
	CustomerID         uuid.UUID    `db:"customer_id" validate:"required"`
	CategoryID         uuid.UUID    `db:"category_id" validate:"required"`
	RegistrationNumber string       `db:"registration_number" validate:"required"`
	EngineNumber       string       `db:"engine_number" validate:"required"`
	ChassisNumber      string       `db:"chassis_number" validate:"required"`
	Make               string       `db:"make"`
	Model              string       `db:"model"`
	Year               int          `db:"year"`
	MarketValue        api.Currency `db:"market_value" validate:"min=0"`
	CreatedAt          time.Time    `db:"created_at"`
	UpdatedAt          time.Time    `db:"updated_at"`

	Customer Customer        `belongs_to:"customers" validate:"-"`
	Category VehicleCategory `belongs_to:"vehicle_categories" validate:"-"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (v *Vehicle) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(v), nil
}

func (v *Vehicle) GetID() uuid.UUID {
	return v.ID
}

func (v *Vehicle) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, v, id)
}

// IsActorAllowedTo limits vehicle changes to the owning customer and staff
func (v *Vehicle) IsActorAllowedTo(tx *pop.Connection, actor User, p Permission, sub SubResource, r *http.Request) bool {
	if actor.IsStaff() {
		return true
	}

	if p == PermissionList || p == PermissionCreate {
		return true
	}

	v.LoadCustomer(tx, false)
	return v.Customer.UserID == actor.ID
}

func (v *Vehicle) Create(tx *pop.Connection) error {
	return create(tx, v)
}

func (v *Vehicle) Update(tx *pop.Connection) error {
	return update(tx, v)
}

// IsOwnedBy reports whether the vehicle belongs to the customer profile of
// the given user
func (v *Vehicle) IsOwnedBy(tx *pop.Connection, user User) bool {
	v.LoadCustomer(tx, false)
	return v.Customer.UserID == user.ID
}

func (v *Vehicle) LoadCustomer(tx *pop.Connection, reload bool) {
	if v.Customer.ID == uuid.Nil || reload {
		if err := tx.Load(v, "Customer"); err != nil {
			panic("database error loading Vehicle.Customer, " + err.Error())
		}
	}
}

func (v *Vehicle) LoadCategory(tx *pop.Connection, reload bool) {
	if v.Category.ID == uuid.Nil || reload {
		if err := tx.Load(v, "Category"); err != nil {
			panic("database error loading Vehicle.Category, " + err.Error())
		}
	}
}

func (vs *Vehicles) AllForCustomer(tx *pop.Connection, customerID uuid.UUID) error {
	err := tx.Where("customer_id = ?", customerID).Order("created_at asc").All(vs)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// AllForUser loads the user's own vehicles, or every vehicle for staff.
func (vs *Vehicles) AllForUser(tx *pop.Connection, user User) error {
	if user.IsStaff() {
		return appErrorFromDB(tx.Order("created_at asc").All(vs), api.ErrorQueryFailure)
	}

	customer, err := user.Customer(tx)
	if err != nil {
		return err
	}
	return vs.AllForCustomer(tx, customer.ID)
}

func ConvertVehicle(tx *pop.Connection, v Vehicle) api.Vehicle {
	v.LoadCategory(tx, false)

	return api.Vehicle{
		ID:                 v.ID,
		CustomerID:         v.CustomerID,
		CategoryID:         v.CategoryID,
		Category:           v.Category.Name,
		RegistrationNumber: v.RegistrationNumber,
		EngineNumber:       v.EngineNumber,
		ChassisNumber:      v.ChassisNumber,
		Make:               v.Make,
		Model:              v.Model,
		Year:               v.Year,
		MarketValue:        v.MarketValue,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func ConvertVehicles(tx *pop.Connection, vs Vehicles) api.Vehicles {
	vehicles := make(api.Vehicles, len(vs))
	for i, v := range vs {
		vehicles[i] = ConvertVehicle(tx, v)
	}
	return vehicles
}

func ConvertVehicleCreateInput(input api.VehicleCreateInput) Vehicle {
	return Vehicle{
		CategoryID:         input.CategoryID,
		RegistrationNumber: input.RegistrationNumber,
		EngineNumber:       input.EngineNumber,
		ChassisNumber:      input.ChassisNumber,
		Make:               input.Make,
		Model:              input.Model,
		Year:               input.Year,
		MarketValue:        input.MarketValue,
	}
}

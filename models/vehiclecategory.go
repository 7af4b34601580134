package models

import (
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gofrs/uuid"

	"github.com/motorsure/motorsure-api/api"
)

type VehicleCategories []VehicleCategory

// VehicleCategory is seeded reference data, a rating class of vehicle
type VehicleCategory struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name" validate:"required"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (vc *VehicleCategory) Create(tx *pop.Connection) error {
	return create(tx, vc)
}

func (vc *VehicleCategory) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, vc, id)
}

func (vc *VehicleCategory) FindByName(tx *pop.Connection, name string) error {
	return appErrorFromDB(tx.Where("name = ?", name).First(vc), api.ErrorQueryFailure)
}

func (vcs *VehicleCategories) All(tx *pop.Connection) error {
	return appErrorFromDB(tx.Order("name asc").All(vcs), api.ErrorQueryFailure)
}

func ConvertVehicleCategories(cats VehicleCategories) api.VehicleCategories {
	out := make(api.VehicleCategories, len(cats))
	for i, c := range cats {
		out[i] = api.VehicleCategory{ID: c.ID, Name: c.Name}
	}
	return out
}

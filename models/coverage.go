package models

import (
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/motorsure/motorsure-api/api"
)

var ValidCoverageTypes = map[api.CoverageType]struct{}{
	api.CoverageTypeThirdParty:    {},
	api.CoverageTypeComprehensive: {},
}

type Coverages []Coverage

// Coverage is a product a policy is written against, seeded reference data
type Coverage struct {
	ID          uuid.UUID        `db:"id"`
	Name        string           `db:"name" validate:"required"`
	Type        api.CoverageType `db:"type" validate:"coverageType"`
	Description string           `db:"description"`
	CreatedAt   time.Time        `db:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (c *Coverage) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(c), nil
}

func (c *Coverage) Create(tx *pop.Connection) error {
	return create(tx, c)
}

func (c *Coverage) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, c, id)
}

func (c *Coverage) FindByType(tx *pop.Connection, coverageType api.CoverageType) error {
	return appErrorFromDB(tx.Where("type = ?", coverageType).First(c), api.ErrorQueryFailure)
}

func (cs *Coverages) All(tx *pop.Connection) error {
	return appErrorFromDB(tx.Order("name asc").All(cs), api.ErrorQueryFailure)
}

func ConvertCoverage(c Coverage) api.Coverage {
	return api.Coverage{
		ID:          c.ID,
		Name:        c.Name,
		Type:        c.Type,
		Description: c.Description,
	}
}

func ConvertCoverages(cs Coverages) api.Coverages {
	out := make(api.Coverages, len(cs))
	for i, c := range cs {
		out[i] = ConvertCoverage(c)
	}
	return out
}

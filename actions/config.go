package actions

import (
	"github.com/gobuffalo/buffalo"

	"github.com/motorsure/motorsure-api/models"
)

// swagger:operation GET /config/coverages Config ConfigCoverages
//
// ConfigCoverages
//
// list the coverage products a policy can be written against
//
// ---
// responses:
//   '200':
//     description: list of coverage products
//     schema:
//       type: array
//       items:
//         "$ref": "#/definitions/Coverage"
func configCoverages(c buffalo.Context) error {
	var coverages models.Coverages
	if err := coverages.All(models.Tx(c)); err != nil {
		return reportError(c, err)
	}
	return renderOk(c, models.ConvertCoverages(coverages))
}

// swagger:operation GET /config/vehicle-categories Config ConfigVehicleCategories
//
// ConfigVehicleCategories
//
// list the vehicle rating categories
//
// ---
// responses:
//   '200':
//     description: list of vehicle categories
//     schema:
//       type: array
//       items:
//         "$ref": "#/definitions/VehicleCategory"
func configVehicleCategories(c buffalo.Context) error {
	var categories models.VehicleCategories
	if err := categories.All(models.Tx(c)); err != nil {
		return reportError(c, err)
	}
	return renderOk(c, models.ConvertVehicleCategories(categories))
}

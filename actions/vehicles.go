package actions

import (
	"errors"

	"github.com/gobuffalo/buffalo"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/models"
)

// swagger:operation GET /vehicles Vehicles VehiclesList
//
// VehiclesList
//
// list the current user's vehicles, or all vehicles if called as staff
//
// ---
// responses:
//   '200':
//     description: a list of Vehicles
//     schema:
//       type: array
//       items:
//         "$ref": "#/definitions/Vehicle"
func vehiclesList(c buffalo.Context) error {
	tx := models.Tx(c)

	var vehicles models.Vehicles
	if err := vehicles.AllForUser(tx, models.CurrentUser(c)); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertVehicles(tx, vehicles))
}

// swagger:operation POST /vehicles Vehicles VehiclesCreate
//
// VehiclesCreate
//
// register a vehicle on the caller's customer profile
//
// ---
// parameters:
// - name: vehicle create input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/VehicleCreateInput"
// responses:
//   '200':
//     description: the new Vehicle
//     schema:
//       "$ref": "#/definitions/Vehicle"
func vehiclesCreate(c buffalo.Context) error {
	var input api.VehicleCreateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	tx := models.Tx(c)
	user := models.CurrentUser(c)
	customer, err := user.Customer(tx)
	if err != nil {
		return reportError(c, err)
	}

	vehicle := models.ConvertVehicleCreateInput(input)
	vehicle.CustomerID = customer.ID

	if err := vehicle.Create(tx); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertVehicle(tx, vehicle))
}

// swagger:operation PUT /vehicles/{id} Vehicles VehiclesUpdate
//
// VehiclesUpdate
//
// update a vehicle's details
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: vehicle ID
// - name: vehicle update input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/VehicleCreateInput"
// responses:
//   '200':
//     description: the updated Vehicle
//     schema:
//       "$ref": "#/definitions/Vehicle"
func vehiclesUpdate(c buffalo.Context) error {
	vehicle := getReferencedVehicleFromCtx(c)
	if vehicle == nil {
		err := errors.New("vehicle not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	var input api.VehicleCreateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	vehicle.CategoryID = input.CategoryID
	vehicle.RegistrationNumber = input.RegistrationNumber
	vehicle.EngineNumber = input.EngineNumber
	vehicle.ChassisNumber = input.ChassisNumber
	vehicle.Make = input.Make
	vehicle.Model = input.Model
	vehicle.Year = input.Year
	vehicle.MarketValue = input.MarketValue

	tx := models.Tx(c)
	if err := vehicle.Update(tx); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertVehicle(tx, *vehicle))
}

// getReferencedVehicleFromCtx pulls the models.Vehicle resource from context that was put there
// by the AuthZ middleware
func getReferencedVehicleFromCtx(c buffalo.Context) *models.Vehicle {
	vehicle, ok := c.Value(domain.TypeVehicle).(*models.Vehicle)
	if !ok {
		return nil
	}
	return vehicle
}

package models

import (
	"github.com/motorsure/motorsure-api/api"
)

func (ms *ModelSuite) TestVehicle_IsOwnedBy() {
	f := CreateCustomerFixtures(ms.DB, 2)
	vehicle := CreateVehicleFixtures(ms.DB, f.Customers[0], 1).Vehicles[0]

	ms.True(vehicle.IsOwnedBy(ms.DB, f.Users[0]))
	ms.False(vehicle.IsOwnedBy(ms.DB, f.Users[1]))
}

func (ms *ModelSuite) TestVehicles_AllForCustomer() {
	f := CreateCustomerFixtures(ms.DB, 2)
	mine := CreateVehicleFixtures(ms.DB, f.Customers[0], 2).Vehicles
	CreateVehicleFixtures(ms.DB, f.Customers[1], 1)

	var vehicles Vehicles
	ms.NoError(vehicles.AllForCustomer(ms.DB, f.Customers[0].ID))
	ms.Len(vehicles, 2)
	for i := range vehicles {
		ms.Equal(mine[i].CustomerID, vehicles[i].CustomerID)
	}
}

func (ms *ModelSuite) TestVehicle_validation() {
	f := CreateCustomerFixtures(ms.DB, 1)
	category := createVehicleCategory(ms.DB)

	v := Vehicle{
		CustomerID:  f.Customers[0].ID,
		CategoryID:  category.ID,
		Make:        "Toyota",
		Model:       "Hilux",
		Year:        2020,
		MarketValue: api.Currency(5_000_000),
	}
	ms.Error(v.Create(ms.DB), "registration, engine and chassis numbers are required")

	v.RegistrationNumber = "AEC4217"
	v.EngineNumber = "1GD8814532"
	v.ChassisNumber = "AHTEB52G506015327"
	ms.NoError(v.Create(ms.DB))
}

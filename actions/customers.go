package actions

import (
	"errors"

	"github.com/gobuffalo/buffalo"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/models"
)

// swagger:operation GET /customers/{id} Customers CustomersView
//
// CustomersView
//
// view a customer profile with its vehicles
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: customer ID
// responses:
//   '200':
//     description: a Customer
//     schema:
//       "$ref": "#/definitions/Customer"
func customersView(c buffalo.Context) error {
	customer := getReferencedCustomerFromCtx(c)
	if customer == nil {
		err := errors.New("customer not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	return renderOk(c, models.ConvertCustomer(models.Tx(c), *customer))
}

// swagger:operation PUT /customers/{id} Customers CustomersUpdate
//
// CustomersUpdate
//
// update the contact details on a customer profile
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: customer ID
// - name: customer update input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/CustomerUpdateInput"
// responses:
//   '200':
//     description: the updated Customer
//     schema:
//       "$ref": "#/definitions/Customer"
func customersUpdate(c buffalo.Context) error {
	customer := getReferencedCustomerFromCtx(c)
	if customer == nil {
		err := errors.New("customer not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	var input api.CustomerUpdateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	if input.PhoneNumber != "" {
		customer.PhoneNumber = input.PhoneNumber
	}
	if input.Address != "" {
		customer.Address = input.Address
	}
	if input.LicenseNumber != "" {
		customer.LicenseNumber = input.LicenseNumber
	}

	tx := models.Tx(c)
	if err := customer.Update(tx); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertCustomer(tx, *customer))
}

// getReferencedCustomerFromCtx pulls the models.Customer resource from context that was put
// there by the AuthZ middleware
func getReferencedCustomerFromCtx(c buffalo.Context) *models.Customer {
	customer, ok := c.Value(domain.TypeCustomer).(*models.Customer)
	if !ok {
		return nil
	}
	return customer
}

package actions

import (
	"errors"

	"github.com/gobuffalo/buffalo"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/models"
)

// swagger:operation GET /quotations Quotations QuotationsList
//
// QuotationsList
//
// list the quotations on the current user's policies, or all quotations if called as staff
//
// ---
// responses:
//   '200':
//     description: a list of Quotations
//     schema:
//       type: array
//       items:
//         "$ref": "#/definitions/Quotation"
func quotationsList(c buffalo.Context) error {
	var quotations models.Quotations
	if err := quotations.AllForUser(models.Tx(c), models.CurrentUser(c)); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertQuotations(quotations))
}

// swagger:operation GET /quotations/{id} Quotations QuotationsView
//
// QuotationsView
//
// view a specific quotation
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: quotation ID
// responses:
//   '200':
//     description: a Quotation
//     schema:
//       "$ref": "#/definitions/Quotation"
func quotationsView(c buffalo.Context) error {
	quotation := getReferencedQuotationFromCtx(c)
	if quotation == nil {
		err := errors.New("quotation not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	return renderOk(c, models.ConvertQuotation(*quotation))
}

// swagger:operation POST /quotations/{id}/accept Quotations QuotationsAccept
//
// QuotationsAccept
//
// accept a quotation, returning the payment instructions
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: quotation ID
// responses:
//   '200':
//     description: the accepted Quotation with payment instructions
//     schema:
//       "$ref": "#/definitions/QuotationAccepted"
func quotationsAccept(c buffalo.Context) error {
	quotation := getReferencedQuotationFromCtx(c)
	if quotation == nil {
		err := errors.New("quotation not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	paymentURL, err := quotation.Accept(models.Tx(c), models.CurrentUser(c))
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, api.QuotationAccepted{
		Quotation:  models.ConvertQuotation(*quotation),
		PaymentURL: paymentURL,
	})
}

// swagger:operation POST /quotations/{id}/decline Quotations QuotationsDecline
//
// QuotationsDecline
//
// decline a quotation, cancelling its pending policy
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: quotation ID
// responses:
//   '200':
//     description: the declined Quotation
//     schema:
//       "$ref": "#/definitions/Quotation"
func quotationsDecline(c buffalo.Context) error {
	quotation := getReferencedQuotationFromCtx(c)
	if quotation == nil {
		err := errors.New("quotation not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	if err := quotation.Decline(models.Tx(c), models.CurrentUser(c)); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertQuotation(*quotation))
}

// getReferencedQuotationFromCtx pulls the models.Quotation resource from context that was put
// there by the AuthZ middleware
func getReferencedQuotationFromCtx(c buffalo.Context) *models.Quotation {
	quotation, ok := c.Value(domain.TypeQuotation).(*models.Quotation)
	if !ok {
		return nil
	}
	return quotation
}

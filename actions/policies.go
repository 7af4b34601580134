package actions

import (
	"errors"
	"net/http"

	"github.com/gobuffalo/buffalo"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/models"
)

// swagger:operation GET /policies Policies PoliciesList
//
// PoliciesList
//
// list the current user's policies, or all policies if called as staff
//
// ---
// responses:
//   '200':
//     description: a list of Policies
//     schema:
//       type: array
//       items:
//         "$ref": "#/definitions/Policy"
func policiesList(c buffalo.Context) error {
	tx := models.Tx(c)

	var policies models.Policies
	if err := policies.AllForUser(tx, models.CurrentUser(c)); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertPolicies(tx, policies))
}

// swagger:operation GET /policies/{id} Policies PoliciesView
//
// PoliciesView
//
// view a specific policy with its quotations and claims
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: policy ID
// responses:
//   '200':
//     description: a Policy
//     schema:
//       "$ref": "#/definitions/Policy"
func policiesView(c buffalo.Context) error {
	policy := getReferencedPolicyFromCtx(c)
	if policy == nil {
		err := errors.New("policy not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	return renderOk(c, models.ConvertPolicyDetail(models.Tx(c), *policy))
}

// swagger:operation POST /policies Policies PoliciesApply
//
// PoliciesApply
//
// apply for a new policy on one of the caller's vehicles
//
// ---
// parameters:
// - name: policy apply input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/PolicyApplyInput"
// responses:
//   '200':
//     description: the new Policy
//     schema:
//       "$ref": "#/definitions/Policy"
func policiesApply(c buffalo.Context) error {
	var input api.PolicyApplyInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	tx := models.Tx(c)

	var policy models.Policy
	if err := policy.Apply(tx, models.CurrentUser(c), input); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertPolicy(tx, policy))
}

// swagger:operation POST /policies/{id}/quote Policies PoliciesQuote
//
// PoliciesQuote
//
// issue a quotation on a pending policy with staff-entered amounts
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: policy ID
// - name: quotation create input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/QuotationCreateInput"
// responses:
//   '200':
//     description: the new Quotation
//     schema:
//       "$ref": "#/definitions/Quotation"
func policiesQuote(c buffalo.Context) error {
	policy := getReferencedPolicyFromCtx(c)
	if policy == nil {
		err := errors.New("policy not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	var input api.QuotationCreateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	quotation, err := policy.CreateQuotation(models.Tx(c), models.CurrentUser(c), input)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertQuotation(quotation))
}

// swagger:operation POST /policies/{id}/auto-quote Policies PoliciesAutoQuote
//
// PoliciesAutoQuote
//
// compute a premium from the rate tables and issue a quotation for it. With
// `?preview=true` only the premium breakdown is returned and nothing is saved.
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: policy ID
// - name: preview
//   in: query
//   required: false
//   description: compute the breakdown without issuing a quotation
// responses:
//   '200':
//     description: premium breakdown plus the issued quotation
//     schema:
//       "$ref": "#/definitions/AutoQuoteResult"
func policiesAutoQuote(c buffalo.Context) error {
	policy := getReferencedPolicyFromCtx(c)
	if policy == nil {
		err := errors.New("policy not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	preview := c.Param("preview") == "true"

	breakdown, quotation, err := policy.AutoQuote(models.Tx(c), models.CurrentUser(c), preview)
	if err != nil {
		return reportError(c, err)
	}

	result := api.AutoQuoteResult{Breakdown: breakdown}
	if quotation != nil {
		q := models.ConvertQuotation(*quotation)
		result.Quotation = &q
	}

	return renderOk(c, result)
}

// swagger:operation POST /policies/{id}/approve Policies PoliciesApprove
//
// PoliciesApprove
//
// activate a pending policy whose quotation has been accepted
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: policy ID
// responses:
//   '200':
//     description: the approved Policy
//     schema:
//       "$ref": "#/definitions/Policy"
func policiesApprove(c buffalo.Context) error {
	policy := getReferencedPolicyFromCtx(c)
	if policy == nil {
		err := errors.New("policy not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	tx := models.Tx(c)
	if err := policy.Approve(tx, models.CurrentUser(c)); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertPolicy(tx, *policy))
}

// swagger:operation POST /policies/{id}/reject Policies PoliciesReject
//
// PoliciesReject
//
// cancel a pending policy
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: policy ID
// responses:
//   '200':
//     description: the cancelled Policy
//     schema:
//       "$ref": "#/definitions/Policy"
func policiesReject(c buffalo.Context) error {
	policy := getReferencedPolicyFromCtx(c)
	if policy == nil {
		err := errors.New("policy not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	tx := models.Tx(c)
	if err := policy.Reject(tx, models.CurrentUser(c)); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertPolicy(tx, *policy))
}

// swagger:operation POST /policies/{id}/message Policies PoliciesMessage
//
// PoliciesMessage
//
// send an ad-hoc staff message to the policy holder
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: policy ID
// - name: message input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/PolicyMessageInput"
// responses:
//   '204':
//     description: message sent
func policiesMessage(c buffalo.Context) error {
	policy := getReferencedPolicyFromCtx(c)
	if policy == nil {
		err := errors.New("policy not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	var input api.PolicyMessageInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	if err := policy.MessageCustomer(models.Tx(c), models.CurrentUser(c), input.Message); err != nil {
		return reportError(c, err)
	}

	return c.Render(http.StatusNoContent, nil)
}

// getReferencedPolicyFromCtx pulls the models.Policy resource from context that was put there
// by the AuthZ middleware
func getReferencedPolicyFromCtx(c buffalo.Context) *models.Policy {
	policy, ok := c.Value(domain.TypePolicy).(*models.Policy)
	if !ok {
		return nil
	}
	return policy
}

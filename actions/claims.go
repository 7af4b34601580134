package actions

import (
	"errors"
	"net/http"

	"github.com/gobuffalo/buffalo"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/models"
)

// swagger:operation GET /claims Claims ClaimsList
//
// ClaimsList
//
// list the claims on the current user's policies, or all claims if called as staff
//
// ---
// responses:
//   '200':
//     description: a list of Claims
//     schema:
//       type: array
//       items:
//         "$ref": "#/definitions/Claim"
func claimsList(c buffalo.Context) error {
	tx := models.Tx(c)

	var claims models.Claims
	if err := claims.AllForUser(tx, models.CurrentUser(c)); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertClaims(tx, claims))
}

// swagger:operation GET /claims/{id} Claims ClaimsView
//
// ClaimsView
//
// view a specific claim with its documents
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: claim ID
// responses:
//   '200':
//     description: a Claim
//     schema:
//       "$ref": "#/definitions/Claim"
func claimsView(c buffalo.Context) error {
	claim := getReferencedClaimFromCtx(c)
	if claim == nil {
		err := errors.New("claim not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	return renderOk(c, models.ConvertClaim(models.Tx(c), *claim))
}

// swagger:operation POST /policies/{id}/claims Claims ClaimsSubmit
//
// ClaimsSubmit
//
// lodge a claim against an active comprehensive policy
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: policy ID
// - name: claim create input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/ClaimCreateInput"
// responses:
//   '200':
//     description: the new Claim
//     schema:
//       "$ref": "#/definitions/Claim"
func claimsSubmit(c buffalo.Context) error {
	policy := getReferencedPolicyFromCtx(c)
	if policy == nil {
		err := errors.New("policy not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	var input api.ClaimCreateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	tx := models.Tx(c)
	claim, err := policy.SubmitClaim(tx, models.CurrentUser(c), input)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertClaim(tx, claim))
}

// swagger:operation POST /claims/{id}/process Claims ClaimsProcess
//
// ClaimsProcess
//
// move a claim through review with one of the actions "review", "approve" or "reject"
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: claim ID
// - name: claim process input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/ClaimProcessInput"
// responses:
//   '200':
//     description: the processed Claim
//     schema:
//       "$ref": "#/definitions/Claim"
func claimsProcess(c buffalo.Context) error {
	claim := getReferencedClaimFromCtx(c)
	if claim == nil {
		err := errors.New("claim not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	var input api.ClaimProcessInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	tx := models.Tx(c)
	if err := claim.Process(tx, models.CurrentUser(c), input); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertClaim(tx, *claim))
}

// swagger:operation POST /claims/{id}/assessor-visit Claims ClaimsAssessorVisit
//
// ClaimsAssessorVisit
//
// notify the claimant of a scheduled assessor visit
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: claim ID
// - name: assessor visit input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/AssessorVisitInput"
// responses:
//   '204':
//     description: claimant notified
func claimsAssessorVisit(c buffalo.Context) error {
	claim := getReferencedClaimFromCtx(c)
	if claim == nil {
		err := errors.New("claim not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	var input api.AssessorVisitInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	if err := claim.NotifyAssessorVisit(models.Tx(c), models.CurrentUser(c), input); err != nil {
		return reportError(c, err)
	}

	return c.Render(http.StatusNoContent, nil)
}

// swagger:operation POST /claims/{id}/settle Claims ClaimsSettle
//
// ClaimsSettle
//
// mark an approved claim as paid out
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: claim ID
// responses:
//   '200':
//     description: the settled Claim
//     schema:
//       "$ref": "#/definitions/Claim"
func claimsSettle(c buffalo.Context) error {
	claim := getReferencedClaimFromCtx(c)
	if claim == nil {
		err := errors.New("claim not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	tx := models.Tx(c)
	if err := claim.Settle(tx, models.CurrentUser(c)); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertClaim(tx, *claim))
}

// getReferencedClaimFromCtx pulls the models.Claim resource from context that was put there
// by the AuthZ middleware
func getReferencedClaimFromCtx(c buffalo.Context) *models.Claim {
	claim, ok := c.Value(domain.TypeClaim).(*models.Claim)
	if !ok {
		return nil
	}
	return claim
}

package actions

import (
	"errors"

	"github.com/gobuffalo/buffalo"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/models"
)

// swagger:operation GET /claims/{id}/documents ClaimDocuments ClaimDocumentsList
//
// ClaimDocumentsList
//
// list the documents attached to a claim, with time-limited download URLs
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: claim ID
// responses:
//   '200':
//     description: a list of ClaimDocuments
//     schema:
//       type: array
//       items:
//         "$ref": "#/definitions/ClaimDocument"
func claimDocumentsList(c buffalo.Context) error {
	claim := getReferencedClaimFromCtx(c)
	if claim == nil {
		err := errors.New("claim not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	tx := models.Tx(c)
	claim.LoadDocuments(tx, true)

	return renderOk(c, models.ConvertClaimDocuments(tx, claim.Documents))
}

// swagger:operation POST /claims/{id}/documents ClaimDocuments ClaimDocumentsAttach
//
// ClaimDocumentsAttach
//
// attach a supporting document to a claim. The content is base64-encoded in
// the request body.
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: claim ID
// - name: claim document attach input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/ClaimDocumentAttachInput"
// responses:
//   '200':
//     description: the new ClaimDocument
//     schema:
//       "$ref": "#/definitions/ClaimDocument"
func claimDocumentsAttach(c buffalo.Context) error {
	claim := getReferencedClaimFromCtx(c)
	if claim == nil {
		err := errors.New("claim not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	var input api.ClaimDocumentAttachInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	tx := models.Tx(c)
	document, err := claim.AttachDocument(tx, models.CurrentUser(c), input)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertClaimDocument(tx, document))
}

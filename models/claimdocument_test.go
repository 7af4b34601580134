package models

import (
	"encoding/base64"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/storage"
)

func attachInput(docType api.ClaimDocumentType) api.ClaimDocumentAttachInput {
	return api.ClaimDocumentAttachInput{
		DocumentType: docType,
		FileName:     string(docType) + ".pdf",
		ContentType:  "application/pdf",
		Content:      base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")),
	}
}

func (ms *ModelSuite) TestClaim_AttachDocument() {
	_ = storage.CreateS3Bucket()

	user, policy := ms.activePolicyFixtures()
	underwriter := ms.underwriter()
	stranger := CreateCustomerFixtures(ms.DB, 1).Users[0]

	claim, err := policy.SubmitClaim(ms.DB, user, claimInput())
	ms.NoError(err)

	// only the claimant or staff may attach
	_, err = claim.AttachDocument(ms.DB, stranger, attachInput(api.ClaimDocumentTypePhoto))
	ms.EqualAppError(api.AppError{Key: api.ErrorNotAuthorized, Category: api.CategoryForbidden}, err)

	// bad inputs
	_, err = claim.AttachDocument(ms.DB, user, attachInput(api.ClaimDocumentType("affidavit")))
	ms.EqualAppError(api.AppError{Key: api.ErrorClaimDocumentType, Category: api.CategoryUser}, err)

	bad := attachInput(api.ClaimDocumentTypePhoto)
	bad.Content = "not base64 !!!"
	_, err = claim.AttachDocument(ms.DB, user, bad)
	ms.EqualAppError(api.AppError{Key: api.ErrorReceivingFile, Category: api.CategoryUser}, err)

	bad = attachInput(api.ClaimDocumentTypePhoto)
	bad.ContentType = "application/zip"
	_, err = claim.AttachDocument(ms.DB, user, bad)
	ms.EqualAppError(api.AppError{Key: api.ErrorStoreFileBadContent, Category: api.CategoryUser}, err)

	doc, err := claim.AttachDocument(ms.DB, user, attachInput(api.ClaimDocumentTypePoliceReport))
	ms.NoError(err)
	ms.Equal(claim.ID, doc.ClaimID)
	ms.Contains(doc.Path, claim.ReferenceNumber)

	// one of two required documents, no completeness broadcast yet
	var notifications Notifications
	ms.NoError(notifications.AllForRecipient(ms.DB, underwriter.ID))
	ms.Len(notifications, 1, "only the submission notification so far")

	_, err = claim.AttachDocument(ms.DB, user, attachInput(api.ClaimDocumentTypeIDDocument))
	ms.NoError(err)

	ms.NoError(notifications.AllForRecipient(ms.DB, underwriter.ID))
	ms.Len(notifications, 2, "required set complete, underwriters notified")
	ms.Contains(notifications[0].Message, claim.ReferenceNumber)

	// further uploads do not repeat the broadcast
	_, err = claim.AttachDocument(ms.DB, user, attachInput(api.ClaimDocumentTypePhoto))
	ms.NoError(err)

	ms.NoError(notifications.AllForRecipient(ms.DB, underwriter.ID))
	ms.Len(notifications, 2)

	claim.LoadDocuments(ms.DB, true)
	ms.Len(claim.Documents, 3)
}

func (ms *ModelSuite) TestClaim_hasRequiredDocuments() {
	_ = storage.CreateS3Bucket()

	user, policy := ms.activePolicyFixtures()
	claim, err := policy.SubmitClaim(ms.DB, user, claimInput())
	ms.NoError(err)

	ms.False(claim.hasRequiredDocuments(ms.DB))

	_, err = claim.AttachDocument(ms.DB, user, attachInput(api.ClaimDocumentTypeIDDocument))
	ms.NoError(err)
	ms.False(claim.hasRequiredDocuments(ms.DB), "police report still missing")

	_, err = claim.AttachDocument(ms.DB, user, attachInput(api.ClaimDocumentTypePoliceReport))
	ms.NoError(err)
	ms.True(claim.hasRequiredDocuments(ms.DB))
}

package models

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/log"
	"github.com/motorsure/motorsure-api/messages"
	"github.com/motorsure/motorsure-api/storage"
)

var ValidClaimDocumentTypes = map[api.ClaimDocumentType]struct{}{
	api.ClaimDocumentTypePoliceReport: {},
	api.ClaimDocumentTypeIDDocument:   {},
	api.ClaimDocumentTypePhoto:        {},
	api.ClaimDocumentTypeOther:        {},
}

// requiredClaimDocumentTypes must all be present before a claim can be
// assessed.
var requiredClaimDocumentTypes = []api.ClaimDocumentType{
	api.ClaimDocumentTypePoliceReport,
	api.ClaimDocumentTypeIDDocument,
}

type ClaimDocuments []ClaimDocument

type ClaimDocument struct {
	ID           uuid.UUID             `db:"id"`
	ClaimID      uuid.UUID             `db:"claim_id" validate:"required"`
	DocumentType api.ClaimDocumentType `db:"document_type" validate:"claimDocumentType"`
	FileName     string                `db:"file_name" validate:"required"`
	ContentType  string                `db:"content_type" validate:"required"`
	Path         string                `db:"path" validate:"required"`
	CreatedAt    time.Time             `db:"created_at"`
	UpdatedAt    time.Time             `db:"updated_at"`

	Claim Claim `belongs_to:"claims" validate:"-"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (c *ClaimDocument) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(c), nil
}

func (c *ClaimDocument) Create(tx *pop.Connection) error {
	return create(tx, c)
}

func (c *ClaimDocument) GetID() uuid.UUID {
	return c.ID
}

func (c *ClaimDocument) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, c, id)
}

func (c *ClaimDocument) IsActorAllowedTo(tx *pop.Connection, actor User, perm Permission, sub SubResource, r *http.Request) bool {
	if actor.IsStaff() {
		return true
	}

	c.LoadClaim(tx, false)
	return c.Claim.isOwnedBy(tx, actor)
}

func (c *ClaimDocument) LoadClaim(tx *pop.Connection, reload bool) {
	if c.Claim.ID == uuid.Nil || reload {
		if err := tx.Load(c, "Claim"); err != nil {
			panic("database error loading ClaimDocument.Claim, " + err.Error())
		}
	}
}

// AttachDocument decodes and stores an uploaded file against the claim. When
// the upload completes the required document set, the underwriters get one
// notification listing download links for everything on file.
func (c *Claim) AttachDocument(tx *pop.Connection, actor User, input api.ClaimDocumentAttachInput) (ClaimDocument, error) {
	if !c.isOwnedBy(tx, actor) && !actor.IsStaff() {
		return ClaimDocument{}, api.NewAppError(
			fmt.Errorf("user %s may not attach documents to claim %s", actor.ID, c.ReferenceNumber),
			api.ErrorNotAuthorized, api.CategoryForbidden)
	}

	if _, ok := ValidClaimDocumentTypes[input.DocumentType]; !ok {
		return ClaimDocument{}, api.NewAppError(
			fmt.Errorf("unknown claim document type %q", input.DocumentType),
			api.ErrorClaimDocumentType, api.CategoryUser)
	}

	content, err := base64.StdEncoding.DecodeString(input.Content)
	if err != nil {
		return ClaimDocument{}, api.NewAppError(err, api.ErrorReceivingFile, api.CategoryUser)
	}
	if len(content) > domain.MaxFileSize {
		return ClaimDocument{}, api.NewAppError(
			fmt.Errorf("file too large, got %d bytes", len(content)),
			api.ErrorStoreFileTooLarge, api.CategoryUser)
	}
	if !domain.IsStringInSlice(input.ContentType, domain.AllowedFileUploadTypes) {
		return ClaimDocument{}, api.NewAppError(
			fmt.Errorf("unsupported content type %q", input.ContentType),
			api.ErrorStoreFileBadContent, api.CategoryUser)
	}

	completeBefore := c.hasRequiredDocuments(tx)

	key := fmt.Sprintf("claims/%s/%s_%s", c.ReferenceNumber, domain.GetUUID(), input.FileName)
	if _, err := storage.StoreFile(key, input.ContentType, content); err != nil {
		return ClaimDocument{}, api.NewAppError(err, api.ErrorUnableToStoreFile, api.CategoryInternal)
	}

	doc := ClaimDocument{
		ClaimID:      c.ID,
		DocumentType: input.DocumentType,
		FileName:     input.FileName,
		ContentType:  input.ContentType,
		Path:         key,
	}
	if err := doc.Create(tx); err != nil {
		return ClaimDocument{}, err
	}

	if !completeBefore && c.hasRequiredDocuments(tx) {
		c.LoadDocuments(tx, true)
		urls := make([]string, len(c.Documents))
		for i, d := range c.Documents {
			urls[i] = d.downloadURL()
		}

		body := messages.ClaimDocumentsCompleteBody(c.ReferenceNumber, urls)

		err := NotifyUsersByType(tx, UserTypeUnderwriter, messages.TitleClaimDocumentsComplete,
			body, api.NotificationTypeStatusUpdate, c.eventPayload())
		if err != nil {
			return ClaimDocument{}, err
		}

		emitEvent(events.Event{
			Kind:    domain.EventApiClaimDocumentsComplete,
			Message: "claim documents complete " + c.ReferenceNumber,
			Payload: events.Payload{
				domain.EventPayloadID:   c.ID,
				domain.EventPayloadBody: body,
			},
		})
	}

	return doc, nil
}

// hasRequiredDocuments reports whether every required document type has at
// least one upload on the claim.
func (c *Claim) hasRequiredDocuments(tx *pop.Connection) bool {
	var docs ClaimDocuments
	if err := tx.Where("claim_id = ?", c.ID).All(&docs); err != nil {
		panic("database error loading claim documents, " + err.Error())
	}

	for _, required := range requiredClaimDocumentTypes {
		found := false
		for _, d := range docs {
			if d.DocumentType == required {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (c *ClaimDocument) downloadURL() string {
	objectUrl, err := storage.GetFileURL(c.Path)
	if err != nil {
		log.Errorf("error getting download URL for claim document %s: %s", c.ID, err)
		return ""
	}
	return objectUrl.Url
}

func ConvertClaimDocument(tx *pop.Connection, d ClaimDocument) api.ClaimDocument {
	return api.ClaimDocument{
		ID:           d.ID,
		ClaimID:      d.ClaimID,
		DocumentType: d.DocumentType,
		FileName:     d.FileName,
		ContentType:  d.ContentType,
		URL:          d.downloadURL(),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func ConvertClaimDocuments(tx *pop.Connection, ds ClaimDocuments) api.ClaimDocuments {
	docs := make(api.ClaimDocuments, len(ds))
	for i, d := range ds {
		docs[i] = ConvertClaimDocument(tx, d)
	}
	return docs
}

package api

import (
	"time"

	"github.com/gofrs/uuid"
)

type ClaimDocumentType string

const (
	ClaimDocumentTypePoliceReport = ClaimDocumentType("police_report")
	ClaimDocumentTypeIDDocument   = ClaimDocumentType("id_document")
	ClaimDocumentTypePhoto        = ClaimDocumentType("photo")
	ClaimDocumentTypeOther        = ClaimDocumentType("other")
)

type ClaimDocuments []ClaimDocument

type ClaimDocument struct {
	ID           uuid.UUID         `json:"id"`
	ClaimID      uuid.UUID         `json:"claim_id"`
	DocumentType ClaimDocumentType `json:"document_type"`
	FileName     string            `json:"file_name"`
	ContentType  string            `json:"content_type"`

	// time-limited download URL, set when the document is fetched
	URL string `json:"url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ClaimDocumentAttachInput struct {
	DocumentType ClaimDocumentType `json:"document_type"`
	FileName     string            `json:"file_name"`
	ContentType  string            `json:"content_type"`

	// base64-encoded file content
	Content string `json:"content"`
}

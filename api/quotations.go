package api

import (
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gofrs/uuid"
)

type QuotationStatus string

const (
	QuotationStatusSent     = QuotationStatus("sent")
	QuotationStatusAccepted = QuotationStatus("accepted")
	QuotationStatusDeclined = QuotationStatus("declined")
)

type Quotations []Quotation

type Quotation struct {
	ID              uuid.UUID       `json:"id"`
	ReferenceNumber string          `json:"reference_number"`
	PolicyID        uuid.UUID       `json:"policy_id"`
	Premium         Currency        `json:"premium"`
	CoverageAmount  Currency        `json:"coverage_amount"`
	CurrencyCode    string          `json:"currency_code"`
	Terms           string          `json:"terms"`
	BankDetails     string          `json:"bank_details"`
	PaymentURL      string          `json:"payment_url"`
	Status          QuotationStatus `json:"status"`
	CreatorID       uuid.UUID       `json:"creator_id"`
	DeciderID       nulls.UUID      `json:"decider_id,omitempty"`
	DecisionDate    nulls.Time      `json:"decision_date,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// QuotationCreateInput is the manual quoting path. Amounts are entered by
// staff directly instead of being computed from the rate tables.
type QuotationCreateInput struct {
	Premium        Currency `json:"premium"`
	CoverageAmount Currency `json:"coverage_amount"`
	CurrencyCode   string   `json:"currency_code,omitempty"`
	Terms          string   `json:"terms,omitempty"`
}

// QuotationAccepted is returned when a customer accepts a quotation. The
// payment URL points at the insurer's bank transfer instructions.
type QuotationAccepted struct {
	Quotation  Quotation `json:"quotation"`
	PaymentURL string    `json:"payment_url"`
}

package api

import (
	"time"

	"github.com/gofrs/uuid"
)

// PolicyStatus
//
// may be one of: pending, active, expired, cancelled
//
// swagger:model
type PolicyStatus string

const (
	PolicyStatusPending   = PolicyStatus("pending")
	PolicyStatusActive    = PolicyStatus("active")
	PolicyStatusExpired   = PolicyStatus("expired")
	PolicyStatusCancelled = PolicyStatus("cancelled")
)

// CoverageType
//
// may be one of: third_party, comprehensive
//
// swagger:model
type CoverageType string

const (
	CoverageTypeThirdParty    = CoverageType("third_party")
	CoverageTypeComprehensive = CoverageType("comprehensive")
)

// PaymentTerm
//
// may be one of: annual, termly
//
// swagger:model
type PaymentTerm string

const (
	PaymentTermAnnual = PaymentTerm("annual")
	PaymentTermTermly = PaymentTerm("termly")
)

// swagger:model
type Policies []Policy

// Policy represents a single motor cover policy held by a customer
// swagger:model
type Policy struct {
	// unique ID
	//
	// swagger:strfmt uuid4
	ID uuid.UUID `json:"id"`

	// human-readable reference, e.g. "POL3F8A2C1B"
	ReferenceNumber string `json:"reference_number"`

	// customer that holds the policy
	//
	// swagger:strfmt uuid4
	CustomerID uuid.UUID `json:"customer_id"`

	// insured vehicle
	//
	// swagger:strfmt uuid4
	VehicleID uuid.UUID `json:"vehicle_id"`

	// insured vehicle detail
	Vehicle *Vehicle `json:"vehicle,omitempty"`

	// coverage product taken
	//
	// swagger:strfmt uuid4
	CoverageID uuid.UUID `json:"coverage_id"`

	// coverage type of the attached coverage product
	CoverageType CoverageType `json:"coverage_type"`

	// lifecycle status
	Status PolicyStatus `json:"status"`

	// first day of cover (inclusive)
	//
	// swagger:strfmt date-time
	StartDate time.Time `json:"start_date"`

	// last day of cover (inclusive)
	//
	// swagger:strfmt date-time
	EndDate time.Time `json:"end_date"`

	// annual premium, zero until the policy is quoted, in cents
	Premium Currency `json:"premium"`

	// insured amount, zero until the policy is quoted, in cents
	CoverageAmount Currency `json:"coverage_amount"`

	// how the premium is paid
	PaymentTerm PaymentTerm `json:"payment_term"`

	// The time the policy was created
	//
	// swagger:strfmt date-time
	CreatedAt time.Time `json:"created_at"`

	// The time the policy was last updated
	//
	// swagger:strfmt date-time
	UpdatedAt time.Time `json:"updated_at"`

	// quotations issued for this policy
	Quotations Quotations `json:"quotations,omitempty"`

	// claims lodged against this policy
	Claims Claims `json:"claims,omitempty"`
}

// PolicyApplyInput represents payload for applying for a new policy
// swagger:model
type PolicyApplyInput struct {
	// insured vehicle
	//
	// swagger:strfmt uuid4
	VehicleID uuid.UUID `json:"vehicle_id"`

	// coverage product to apply for
	//
	// swagger:strfmt uuid4
	CoverageID uuid.UUID `json:"coverage_id"`

	// first day of cover (inclusive)
	//
	// swagger:strfmt date-time
	StartDate time.Time `json:"start_date"`

	// last day of cover (inclusive)
	//
	// swagger:strfmt date-time
	EndDate time.Time `json:"end_date"`

	// how the premium is to be paid
	PaymentTerm PaymentTerm `json:"payment_term"`
}

// PolicyMessageInput represents payload for a staff message to the policy holder
// swagger:model
type PolicyMessageInput struct {
	// message body
	Message string `json:"message"`
}

// AutoQuoteResult is the outcome of rate-table quoting. Quotation is nil
// when only a preview was requested.
// swagger:model
type AutoQuoteResult struct {
	Breakdown PremiumBreakdown `json:"breakdown"`

	Quotation *Quotation `json:"quotation,omitempty"`
}

// PremiumBreakdown itemizes the charges that make up a premium
// swagger:model
type PremiumBreakdown struct {
	// base premium before charges, in cents
	BasePremium Currency `json:"base_premium"`

	// stamp duty, in cents
	StampDuty Currency `json:"stamp_duty"`

	// government levy, in cents
	GovernmentLevy Currency `json:"government_levy"`

	// total annual premium, in cents
	AnnualPremium Currency `json:"annual_premium"`

	// premium per four-month term, in cents
	TermlyPremium Currency `json:"termly_premium"`
}

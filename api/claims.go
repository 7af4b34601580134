package api

import (
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gofrs/uuid"
)

type (
	ClaimStatus         string
	ClaimApprovalStatus string
	ClaimProcessAction  string
)

const (
	ClaimStatusSubmitted   = ClaimStatus("submitted")
	ClaimStatusUnderReview = ClaimStatus("under_review")
	ClaimStatusApproved    = ClaimStatus("approved")
	ClaimStatusRejected    = ClaimStatus("rejected")
	ClaimStatusSettled     = ClaimStatus("settled")

	ClaimApprovalStatusPending = ClaimApprovalStatus("pending")
	ClaimApprovalStatusApprove = ClaimApprovalStatus("approve")
	ClaimApprovalStatusReject  = ClaimApprovalStatus("reject")

	ClaimActionReview  = ClaimProcessAction("review")
	ClaimActionApprove = ClaimProcessAction("approve")
	ClaimActionReject  = ClaimProcessAction("reject")
)

type Claims []Claim

type Claim struct {
	ID              uuid.UUID           `json:"id"`
	ReferenceNumber string              `json:"reference_number"`
	PolicyID        uuid.UUID           `json:"policy_id"`
	IncidentDate    time.Time           `json:"incident_date"`
	Description     string              `json:"description"`
	EstimatedAmount Currency            `json:"estimated_amount"`
	ApprovedAmount  Currency            `json:"approved_amount,omitempty"`
	RejectionReason string              `json:"rejection_reason,omitempty"`
	Status          ClaimStatus         `json:"status"`
	ApprovalStatus  ClaimApprovalStatus `json:"approval_status"`
	ProcessedByID   nulls.UUID          `json:"processed_by_id,omitempty"`
	ProcessedAt     nulls.Time          `json:"processed_at,omitempty"`
	SettledAt       nulls.Time          `json:"settled_at,omitempty"`
	Documents       ClaimDocuments      `json:"documents,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type ClaimCreateInput struct {
	IncidentDate    time.Time `json:"incident_date"`
	Description     string    `json:"description"`
	EstimatedAmount Currency  `json:"estimated_amount"`
}

// ClaimProcessInput moves a claim through review. ApprovedAmount is
// optional when the action is "approve", RejectionReason is required
// when it is "reject".
type ClaimProcessInput struct {
	Action          ClaimProcessAction `json:"action"`
	ApprovedAmount  *Currency          `json:"approved_amount,omitempty"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
}

type AssessorVisitInput struct {
	AssessorName string    `json:"assessor_name"`
	VisitDate    time.Time `json:"visit_date"`
	Message      string    `json:"message,omitempty"`
}

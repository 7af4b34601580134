package models

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/messages"
)

const claimReferenceDigits = 6

var ValidClaimStatus = map[api.ClaimStatus]struct{}{
	api.ClaimStatusSubmitted:   {},
	api.ClaimStatusUnderReview: {},
	api.ClaimStatusApproved:    {},
	api.ClaimStatusRejected:    {},
	api.ClaimStatusSettled:     {},
}

type Claims []Claim

// Claim is a damage/loss event reported against an active comprehensive
// policy. Status tracks the review pipeline; ApprovalStatus mirrors the
// approve/reject decision and may leave pending exactly once.
type Claim struct {
	ID              uuid.UUID               `db:"id"`
	ReferenceNumber string                  `db:"reference_number" validate:"required"`
	PolicyID        uuid.UUID               `db:"policy_id" validate:"required"`
	IncidentDate    time.Time               `db:"incident_date" validate:"required"`
	Description     string                  `db:"description" validate:"required"`
	EstimatedAmount api.Currency            `db:"estimated_amount" validate:"min=0"`
	ApprovedAmount  api.Currency            `db:"approved_amount"`
	RejectionReason string                  `db:"rejection_reason"`
	Status          api.ClaimStatus         `db:"status" validate:"claimStatus"`
	ApprovalStatus  api.ClaimApprovalStatus `db:"approval_status"`
	ProcessedByID   nulls.UUID              `db:"processed_by_id"`
	ProcessedAt     nulls.Time              `db:"processed_at"`
	SettledAt       nulls.Time              `db:"settled_at"`
	CreatedAt       time.Time               `db:"created_at"`
	UpdatedAt       time.Time               `db:"updated_at"`

	Policy    Policy         `belongs_to:"policies" validate:"-"`
	Documents ClaimDocuments `has_many:"claim_documents" validate:"-"`
	Processor User           `belongs_to:"users" validate:"-"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (c *Claim) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(c), nil
}

func (c *Claim) Create(tx *pop.Connection) error {
	c.ReferenceNumber = uniqueClaimReferenceNumber(tx)
	if _, ok := ValidClaimStatus[c.Status]; !ok {
		c.Status = api.ClaimStatusSubmitted
	}
	if c.ApprovalStatus == "" {
		c.ApprovalStatus = api.ClaimApprovalStatusPending
	}
	return create(tx, c)
}

// Update writes the Claim to the database, rejecting any status change the
// state machine does not allow.
func (c *Claim) Update(tx *pop.Connection, oldStatus api.ClaimStatus) error {
	validTrans, err := isClaimTransitionValid(oldStatus, c.Status)
	if err != nil {
		panic(err)
	}
	if !validTrans {
		err := fmt.Errorf("invalid claim status transition from %s to %s", oldStatus, c.Status)
		return api.NewAppError(err, api.ErrorClaimStatus, api.CategoryUser)
	}
	return update(tx, c)
}

func (c *Claim) GetID() uuid.UUID {
	return c.ID
}

func (c *Claim) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, c, id)
}

func (c *Claim) FindByReferenceNumber(tx *pop.Connection, ref string) error {
	return appErrorFromDB(tx.Where("reference_number = ?", ref).First(c), api.ErrorQueryFailure)
}

// IsActorAllowedTo gates processing sub-resources on the claim-processing
// capability, everything else on policy ownership.
func (c *Claim) IsActorAllowedTo(tx *pop.Connection, actor User, perm Permission, sub SubResource, r *http.Request) bool {
	if actor.IsStaff() {
		switch sub {
		case api.ResourceProcess, api.ResourceAssessor, api.ResourceSettle:
			return actor.CanProcessClaims()
		}
		return true
	}

	staffSubs := []string{api.ResourceProcess, api.ResourceAssessor, api.ResourceSettle}
	if domain.IsStringInSlice(string(sub), staffSubs) {
		return false
	}

	if perm == PermissionList || (perm == PermissionCreate && sub == "") {
		return true
	}

	return c.isOwnedBy(tx, actor)
}

func (c *Claim) isOwnedBy(tx *pop.Connection, user User) bool {
	c.LoadPolicy(tx, false)
	c.Policy.LoadCustomer(tx, false)
	return c.Policy.Customer.UserID == user.ID
}

func claimStatusTransitions() map[api.ClaimStatus][]api.ClaimStatus {
	return map[api.ClaimStatus][]api.ClaimStatus{
		api.ClaimStatusSubmitted: {
			api.ClaimStatusUnderReview,
			api.ClaimStatusApproved,
			api.ClaimStatusRejected,
		},
		api.ClaimStatusUnderReview: {
			api.ClaimStatusApproved,
			api.ClaimStatusRejected,
		},
		api.ClaimStatusApproved: {
			api.ClaimStatusSettled,
		},
		api.ClaimStatusRejected: {},
		api.ClaimStatusSettled:  {},
	}
}

func isClaimTransitionValid(status1, status2 api.ClaimStatus) (bool, error) {
	if status1 == status2 {
		return true, nil
	}
	targets, ok := claimStatusTransitions()[status1]
	if !ok {
		return false, errors.New("unexpected initial status - " + string(status1))
	}

	for _, target := range targets {
		if status2 == target {
			return true, nil
		}
	}

	return false, nil
}

// SubmitClaim files a new claim on the policy. Only the owning customer may
// file, and only comprehensive cover is claimable.
func (p *Policy) SubmitClaim(tx *pop.Connection, actor User, input api.ClaimCreateInput) (Claim, error) {
	p.LoadCustomer(tx, false)
	if p.Customer.UserID != actor.ID {
		return Claim{}, api.NewAppError(
			fmt.Errorf("user %s does not own policy %s", actor.ID, p.ReferenceNumber),
			api.ErrorNotAuthorized, api.CategoryForbidden)
	}

	if p.CoverageType != api.CoverageTypeComprehensive {
		return Claim{}, api.NewAppError(
			fmt.Errorf("claims are only payable on comprehensive cover, policy %s is %s",
				p.ReferenceNumber, p.CoverageType),
			api.ErrorClaimNotEligible, api.CategoryUser)
	}

	if p.Status != api.PolicyStatusActive {
		return Claim{}, api.NewAppError(
			fmt.Errorf("claims can only be filed on active policies, policy %s is %s",
				p.ReferenceNumber, p.Status),
			api.ErrorPolicyStatus, api.CategoryUser)
	}

	c := Claim{
		PolicyID:        p.ID,
		IncidentDate:    input.IncidentDate,
		Description:     input.Description,
		EstimatedAmount: input.EstimatedAmount,
		Status:          api.ClaimStatusSubmitted,
		ApprovalStatus:  api.ClaimApprovalStatusPending,
	}
	if err := c.Create(tx); err != nil {
		return Claim{}, err
	}

	err := NotifyUsersByType(tx, UserTypeUnderwriter, messages.TitleClaimSubmitted,
		messages.ClaimSubmittedBody(actor.Name(), c.ReferenceNumber, p.ReferenceNumber,
			c.IncidentDate, c.EstimatedAmount),
		api.NotificationTypeStatusUpdate, c.eventPayload())
	if err != nil {
		return Claim{}, err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiClaimSubmitted,
		Message: "claim submitted " + c.ReferenceNumber,
		Payload: events.Payload{domain.EventPayloadID: c.ID},
	})

	return c, nil
}

// Process moves the claim through review. The "review" action only marks
// the claim under review; "approve" and "reject" decide the claim, and a
// decision may be made exactly once.
func (c *Claim) Process(tx *pop.Connection, actor User, input api.ClaimProcessInput) error {
	if !actor.CanProcessClaims() {
		return api.NewAppError(
			fmt.Errorf("user %s may not process claims", actor.ID),
			api.ErrorNotAuthorized, api.CategoryForbidden)
	}

	// decide against committed state, not whatever the caller loaded earlier
	if err := c.FindByID(tx, c.ID); err != nil {
		return err
	}

	oldStatus := c.Status

	switch input.Action {
	case api.ClaimActionReview:
		if c.Status != api.ClaimStatusSubmitted {
			return api.NewAppError(
				fmt.Errorf("claim %s is %s and cannot be moved to review", c.ReferenceNumber, c.Status),
				api.ErrorClaimStatus, api.CategoryUser)
		}
		c.Status = api.ClaimStatusUnderReview

	case api.ClaimActionApprove, api.ClaimActionReject:
		if c.ApprovalStatus != api.ClaimApprovalStatusPending {
			return api.NewAppError(
				fmt.Errorf("claim %s has already been decided: %s", c.ReferenceNumber, c.ApprovalStatus),
				api.ErrorClaimStatus, api.CategoryUser)
		}

		if input.Action == api.ClaimActionApprove {
			if input.ApprovedAmount != nil {
				if *input.ApprovedAmount <= 0 {
					return api.NewAppError(
						fmt.Errorf("approved amount must be positive, got %s", *input.ApprovedAmount),
						api.ErrorValidation, api.CategoryUser)
				}
				c.ApprovedAmount = *input.ApprovedAmount
			}
			c.ApprovalStatus = api.ClaimApprovalStatusApprove
			c.Status = api.ClaimStatusApproved
		} else {
			c.ApprovalStatus = api.ClaimApprovalStatusReject
			c.Status = api.ClaimStatusRejected
			c.RejectionReason = input.RejectionReason
		}

		c.ProcessedByID = nulls.NewUUID(actor.ID)
		c.ProcessedAt = nulls.NewTime(time.Now().UTC())

	default:
		return api.NewAppError(
			fmt.Errorf("unknown claim process action %q", input.Action),
			api.ErrorClaimInvalidAction, api.CategoryUser)
	}

	if err := c.Update(tx, oldStatus); err != nil {
		return err
	}

	c.LoadPolicy(tx, false)
	c.Policy.LoadCustomer(tx, false)
	err := Notify(tx, c.Policy.Customer.UserID, messages.TitleClaimStatusUpdated,
		messages.ClaimStatusBody(c.ReferenceNumber, c.Status, c.ApprovedAmount, c.RejectionReason),
		api.NotificationTypeStatusUpdate, c.eventPayload())
	if err != nil {
		return err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiClaimStatusChanged,
		Message: "claim processed " + c.ReferenceNumber,
		Payload: events.Payload{domain.EventPayloadID: c.ID},
	})

	return nil
}

// NotifyAssessorVisit tells the claimant when an assessor will visit. No
// state change.
func (c *Claim) NotifyAssessorVisit(tx *pop.Connection, actor User, input api.AssessorVisitInput) error {
	if !actor.CanProcessClaims() {
		return api.NewAppError(
			fmt.Errorf("user %s may not schedule assessor visits", actor.ID),
			api.ErrorNotAuthorized, api.CategoryForbidden)
	}

	if input.AssessorName == "" || input.VisitDate.IsZero() {
		return api.NewAppError(
			errors.New("assessor name and visit date are required"),
			api.ErrorClaimAssessorInput, api.CategoryUser)
	}

	body := messages.AssessorVisitBody(c.ReferenceNumber, input.AssessorName, input.VisitDate, input.Message)

	c.LoadPolicy(tx, false)
	c.Policy.LoadCustomer(tx, false)
	err := Notify(tx, c.Policy.Customer.UserID, messages.TitleAssessorVisit, body,
		api.NotificationTypeMessage, c.eventPayload())
	if err != nil {
		return err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiClaimAssessorVisit,
		Message: "assessor visit scheduled for claim " + c.ReferenceNumber,
		Payload: events.Payload{
			domain.EventPayloadID:   c.ID,
			domain.EventPayloadBody: body,
		},
	})

	return nil
}

// Settle closes an approved claim once payment has gone out.
func (c *Claim) Settle(tx *pop.Connection, actor User) error {
	if !actor.CanProcessClaims() {
		return api.NewAppError(
			fmt.Errorf("user %s may not settle claims", actor.ID),
			api.ErrorNotAuthorized, api.CategoryForbidden)
	}

	if err := c.FindByID(tx, c.ID); err != nil {
		return err
	}

	if c.Status != api.ClaimStatusApproved {
		return api.NewAppError(
			fmt.Errorf("only approved claims can be settled, claim %s is %s", c.ReferenceNumber, c.Status),
			api.ErrorClaimStatus, api.CategoryUser)
	}

	oldStatus := c.Status
	c.Status = api.ClaimStatusSettled
	c.SettledAt = nulls.NewTime(time.Now().UTC())
	if err := c.Update(tx, oldStatus); err != nil {
		return err
	}

	c.LoadPolicy(tx, false)
	c.Policy.LoadCustomer(tx, false)
	err := Notify(tx, c.Policy.Customer.UserID, messages.TitleClaimSettled,
		messages.ClaimSettledBody(c.ReferenceNumber, c.ApprovedAmount),
		api.NotificationTypeStatusUpdate, c.eventPayload())
	if err != nil {
		return err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiClaimSettled,
		Message: "claim settled " + c.ReferenceNumber,
		Payload: events.Payload{domain.EventPayloadID: c.ID},
	})

	return nil
}

func (c *Claim) eventPayload() map[string]interface{} {
	return map[string]interface{}{
		"claim_id":         c.ID.String(),
		"reference_number": c.ReferenceNumber,
		"policy_id":        c.PolicyID.String(),
		"status":           string(c.Status),
		"approval_status":  string(c.ApprovalStatus),
	}
}

func (c *Claim) LoadPolicy(tx *pop.Connection, reload bool) {
	if c.Policy.ID == uuid.Nil || reload {
		if err := tx.Load(c, "Policy"); err != nil {
			panic("database error loading Claim.Policy, " + err.Error())
		}
	}
}

func (c *Claim) LoadDocuments(tx *pop.Connection, reload bool) {
	if len(c.Documents) == 0 || reload {
		if err := tx.Load(c, "Documents"); err != nil {
			panic("database error loading Claim.Documents, " + err.Error())
		}
	}
}

// AllForUser returns the claims visible to the user: all of them for staff,
// those on the customer's own policies otherwise.
func (cs *Claims) AllForUser(tx *pop.Connection, user User) error {
	if user.IsStaff() {
		err := tx.Order("created_at desc").All(cs)
		return appErrorFromDB(err, api.ErrorQueryFailure)
	}

	customer, err := user.Customer(tx)
	if err != nil {
		return err
	}

	dbErr := tx.Where("policy_id IN (SELECT id FROM policies WHERE customer_id = ?)", customer.ID).
		Order("created_at desc").All(cs)
	return appErrorFromDB(dbErr, api.ErrorQueryFailure)
}

func uniqueClaimReferenceNumber(tx *pop.Connection) string {
	attempts := 0
	for {
		ref := "CLM" + domain.RandomString(claimReferenceDigits, "1234567890")

		count, err := tx.Where("reference_number = ?", ref).Count(Claim{})
		if count == 0 && err == nil {
			return ref
		}

		attempts++
		if attempts > 100 {
			panic(fmt.Errorf("failed to find unique claim reference number after 100 attempts"))
		}
	}
}

func ConvertClaim(tx *pop.Connection, c Claim) api.Claim {
	c.LoadDocuments(tx, true)

	return api.Claim{
		ID:              c.ID,
		ReferenceNumber: c.ReferenceNumber,
		PolicyID:        c.PolicyID,
		IncidentDate:    c.IncidentDate,
		Description:     c.Description,
		EstimatedAmount: c.EstimatedAmount,
		ApprovedAmount:  c.ApprovedAmount,
		RejectionReason: c.RejectionReason,
		Status:          c.Status,
		ApprovalStatus:  c.ApprovalStatus,
		ProcessedByID:   c.ProcessedByID,
		ProcessedAt:     c.ProcessedAt,
		SettledAt:       c.SettledAt,
		Documents:       ConvertClaimDocuments(tx, c.Documents),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func ConvertClaims(tx *pop.Connection, cs Claims) api.Claims {
	claims := make(api.Claims, len(cs))
	for i, c := range cs {
		claims[i] = ConvertClaim(tx, c)
	}
	return claims
}

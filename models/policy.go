package models

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/messages"
)

const policyReferenceDigits = 8

var ValidPolicyStatus = map[api.PolicyStatus]struct{}{
	api.PolicyStatusPending:   {},
	api.PolicyStatusActive:    {},
	api.PolicyStatusExpired:   {},
	api.PolicyStatusCancelled: {},
}

var ValidPaymentTerms = map[api.PaymentTerm]struct{}{
	api.PaymentTermAnnual: {},
	api.PaymentTermTermly: {},
}

type Policies []Policy

type Policy struct {
	ID              uuid.UUID        `db:"id"`
	ReferenceNumber string           `db:"reference_number" validate:"required"`
	CustomerID      uuid.UUID        `db:"customer_id" validate:"required"`
	VehicleID       uuid.UUID        `db:"vehicle_id" validate:"required"`
	CoverageID      uuid.UUID        `db:"coverage_id" validate:"required"`
	CoverageType    api.CoverageType `db:"coverage_type" validate:"coverageType"`
	Status          api.PolicyStatus `db:"status" validate:"policyStatus"`
	StartDate       time.Time        `db:"start_date" validate:"required"`
	EndDate         time.Time        `db:"end_date" validate:"required"`
	Premium         api.Currency     `db:"premium"`
	CoverageAmount  api.Currency     `db:"coverage_amount"`
	PaymentTerm     api.PaymentTerm  `db:"payment_term" validate:"paymentTerm"`
	CreatedAt       time.Time        `db:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at"`

	Customer   Customer   `belongs_to:"customers" validate:"-"`
	Vehicle    Vehicle    `belongs_to:"vehicles" validate:"-"`
	Coverage   Coverage   `belongs_to:"coverages" validate:"-"`
	Quotations Quotations `has_many:"quotations" validate:"-"`
	Claims     Claims     `has_many:"claims" validate:"-"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (p *Policy) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(p), nil
}

func (p *Policy) Create(tx *pop.Connection) error {
	return create(tx, p)
}

// Update writes the Policy to the database, rejecting any status change the
// state machine does not allow.
func (p *Policy) Update(tx *pop.Connection, oldStatus api.PolicyStatus) error {
	validTrans, err := isPolicyTransitionValid(oldStatus, p.Status)
	if err != nil {
		panic(err)
	}
	if !validTrans {
		err := fmt.Errorf("invalid policy status transition from %s to %s", oldStatus, p.Status)
		return api.NewAppError(err, api.ErrorPolicyStatus, api.CategoryUser)
	}
	return update(tx, p)
}

func (p *Policy) GetID() uuid.UUID {
	return p.ID
}

func (p *Policy) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, p, id)
}

func (p *Policy) FindByReferenceNumber(tx *pop.Connection, ref string) error {
	return appErrorFromDB(tx.Where("reference_number = ?", ref).First(p), api.ErrorQueryFailure)
}

// IsActorAllowedTo gates policy sub-resources on staff capabilities and
// everything else on policy ownership.
func (p *Policy) IsActorAllowedTo(tx *pop.Connection, actor User, perm Permission, sub SubResource, r *http.Request) bool {
	if actor.IsStaff() {
		switch sub {
		case api.ResourceQuote:
			return actor.CanQuotePolicy()
		case api.ResourceAutoQuote:
			return actor.CanAutoQuotePolicy()
		case api.ResourceApprove, api.ResourceReject:
			return actor.CanApprovePolicy()
		case api.ResourceMessage:
			return actor.CanMessageCustomers()
		}
		return true
	}

	// staff-only sub-resources
	staffSubs := []string{
		api.ResourceQuote, api.ResourceAutoQuote,
		api.ResourceApprove, api.ResourceReject, api.ResourceMessage,
	}
	if domain.IsStringInSlice(string(sub), staffSubs) {
		return false
	}

	if perm == PermissionList || (perm == PermissionCreate && sub == "") {
		return true
	}

	p.LoadCustomer(tx, false)
	return p.Customer.UserID == actor.ID
}

func policyStatusTransitions() map[api.PolicyStatus][]api.PolicyStatus {
	return map[api.PolicyStatus][]api.PolicyStatus{
		api.PolicyStatusPending: {
			api.PolicyStatusActive,
			api.PolicyStatusCancelled,
		},
		api.PolicyStatusActive: {
			api.PolicyStatusExpired,
			api.PolicyStatusCancelled,
		},
		api.PolicyStatusExpired:   {},
		api.PolicyStatusCancelled: {},
	}
}

func isPolicyTransitionValid(status1, status2 api.PolicyStatus) (bool, error) {
	if status1 == status2 {
		return true, nil
	}
	targets, ok := policyStatusTransitions()[status1]
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

// Apply creates a pending policy application for the acting customer. The
// overlap check and the insert run under an advisory lock on the vehicle and
// coverage type, with the schema's exclusion constraint as the second line of
// defense, so a losing concurrent applicant gets a conflict instead of a
// silently overlapping policy.
func (p *Policy) Apply(tx *pop.Connection, actor User, input api.PolicyApplyInput) error {
	customer, err := actor.Customer(tx)
	if err != nil {
		return err
	}

	var vehicle Vehicle
	if err := vehicle.FindByID(tx, input.VehicleID); err != nil {
		return err
	}
	if vehicle.CustomerID != customer.ID {
		return api.NewAppError(
			fmt.Errorf("vehicle %s does not belong to customer %s", vehicle.ID, customer.ID),
			api.ErrorVehicleNotOwned, api.CategoryForbidden)
	}

	var coverage Coverage
	if err := coverage.FindByID(tx, input.CoverageID); err != nil {
		return err
	}

	if input.EndDate.Before(input.StartDate) {
		return api.NewAppError(
			fmt.Errorf("policy end date %s is before start date %s",
				input.EndDate.Format(domain.DateFormat), input.StartDate.Format(domain.DateFormat)),
			api.ErrorPolicyDateOrder, api.CategoryUser)
	}

	p.ReferenceNumber = uniquePolicyReferenceNumber(tx)
	p.CustomerID = customer.ID
	p.VehicleID = vehicle.ID
	p.CoverageID = coverage.ID
	p.CoverageType = coverage.Type
	p.Status = api.PolicyStatusPending
	p.StartDate = input.StartDate
	p.EndDate = input.EndDate
	p.Premium = 0
	p.CoverageAmount = 0
	p.PaymentTerm = input.PaymentTerm
	if p.PaymentTerm == "" {
		p.PaymentTerm = api.PaymentTermAnnual
	}

	if err := lockVehicleCoverage(tx, p.VehicleID, p.CoverageType); err != nil {
		return err
	}

	overlap, err := p.hasOverlap(tx)
	if err != nil {
		return err
	}
	if overlap {
		return api.NewAppError(
			fmt.Errorf("an active or pending %s policy already exists for vehicle %s in %s..%s",
				p.CoverageType, vehicle.RegistrationNumber,
				p.StartDate.Format(domain.DateFormat), p.EndDate.Format(domain.DateFormat)),
			api.ErrorPolicyOverlap, api.CategoryConflict)
	}

	if err := p.Create(tx); err != nil {
		return err
	}

	err = NotifyUsersByType(tx, UserTypeUnderwriter, messages.TitlePolicyApplied,
		messages.PolicyAppliedBody(actor.Name(), p.ReferenceNumber, p.CoverageType, p.StartDate, p.EndDate),
		api.NotificationTypeStatusUpdate, p.eventPayload())
	if err != nil {
		return err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiPolicyApplied,
		Message: "policy applied " + p.ReferenceNumber,
		Payload: events.Payload{domain.EventPayloadID: p.ID},
	})

	return nil
}

// lockVehicleCoverage takes a transaction-scoped advisory lock keyed on the
// vehicle and coverage type, serializing concurrent policy writes for that
// pair. The lock is released when the surrounding transaction ends, so the
// overlap check and the insert it guards cannot interleave with a concurrent
// applicant's.
func lockVehicleCoverage(tx *pop.Connection, vehicleID uuid.UUID, coverageType api.CoverageType) error {
	err := tx.RawQuery("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))",
		vehicleID.String()+":"+string(coverageType)).Exec()
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// hasOverlap runs the closed-interval intersection test against the other
// active or pending policies of the same vehicle and coverage type. It must
// run inside the same transaction as the policy write it guards.
func (p *Policy) hasOverlap(tx *pop.Connection) (bool, error) {
	q := tx.Where("vehicle_id = ?", p.VehicleID).
		Where("coverage_type = ?", p.CoverageType).
		Where("status in (?)", api.PolicyStatusActive, api.PolicyStatusPending).
		Where("start_date <= ? AND end_date >= ?", p.EndDate, p.StartDate)
	if p.ID != uuid.Nil {
		q = q.Where("id != ?", p.ID)
	}

	count, err := q.Count(Policy{})
	if err != nil {
		return false, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return count > 0, nil
}

// CreateQuotation is the manual quoting path: a staff actor supplies the
// amounts directly. The auto-quote path converges here after computing its
// amounts from the rate tables.
func (p *Policy) CreateQuotation(tx *pop.Connection, actor User, input api.QuotationCreateInput) (Quotation, error) {
	if !actor.IsStaff() {
		return Quotation{}, api.NewAppError(
			fmt.Errorf("user %s may not quote policies", actor.ID),
			api.ErrorNotAuthorized, api.CategoryForbidden)
	}

	if p.Status != api.PolicyStatusPending {
		return Quotation{}, api.NewAppError(
			fmt.Errorf("quotations can only be created for pending policies, policy %s is %s",
				p.ReferenceNumber, p.Status),
			api.ErrorPolicyStatus, api.CategoryUser)
	}

	if input.Premium <= 0 || input.CoverageAmount <= 0 {
		return Quotation{}, api.NewAppError(
			fmt.Errorf("quotation amounts must be positive, got premium %s and coverage %s",
				input.Premium, input.CoverageAmount),
			api.ErrorQuotationAmount, api.CategoryUser)
	}

	ref := uniqueQuotationReferenceNumber(tx)

	q := Quotation{
		ReferenceNumber: ref,
		PolicyID:        p.ID,
		Premium:         input.Premium,
		CoverageAmount:  input.CoverageAmount,
		CurrencyCode:    input.CurrencyCode,
		Terms:           input.Terms,
		BankDetails:     domain.PaymentInstructions(ref),
		PaymentURL:      fmt.Sprintf("%s/quotations/%s/payment", domain.Env.UIURL, ref),
		Status:          api.QuotationStatusSent,
		CreatorID:       actor.ID,
	}
	if q.CurrencyCode == "" {
		q.CurrencyCode = "USD"
	}
	if q.Terms == "" {
		q.Terms = fmt.Sprintf("Premium payable %s. Valid for 30 days.", p.PaymentTerm)
	}

	if err := q.Create(tx); err != nil {
		return Quotation{}, err
	}

	// surface the quoted amounts on the policy itself
	oldStatus := p.Status
	p.Premium = input.Premium
	p.CoverageAmount = input.CoverageAmount
	if err := p.Update(tx, oldStatus); err != nil {
		return Quotation{}, err
	}

	p.LoadCustomer(tx, false)
	err := Notify(tx, p.Customer.UserID, messages.TitlePolicyQuoted,
		messages.PolicyQuotedBody(p.ReferenceNumber, q.ReferenceNumber, q.Premium, q.CoverageAmount,
			q.CurrencyCode, q.Terms, q.BankDetails, q.PaymentURL),
		api.NotificationTypeQuotation, q.eventPayload())
	if err != nil {
		return Quotation{}, err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiPolicyQuoted,
		Message: "policy quoted " + p.ReferenceNumber,
		Payload: events.Payload{domain.EventPayloadID: q.ID},
	})

	return q, nil
}

// AutoQuote computes the premium from the underwriting rate tables. With
// preview set it returns the breakdown without persisting or notifying;
// otherwise it creates a quotation exactly like the manual path.
func (p *Policy) AutoQuote(tx *pop.Connection, actor User, preview bool) (api.PremiumBreakdown, *Quotation, error) {
	if !actor.CanAutoQuotePolicy() {
		return api.PremiumBreakdown{}, nil, api.NewAppError(
			fmt.Errorf("user %s may not auto-quote policies", actor.ID),
			api.ErrorNotAuthorized, api.CategoryForbidden)
	}

	p.LoadVehicle(tx, false)

	breakdown, err := CalculatePremium(p.CoverageType, p.Vehicle.MarketValue)
	if err != nil {
		return api.PremiumBreakdown{}, nil, err
	}

	if preview {
		return breakdown, nil, nil
	}

	q, err := p.CreateQuotation(tx, actor, api.QuotationCreateInput{
		Premium:        breakdown.AnnualPremium,
		CoverageAmount: p.Vehicle.MarketValue,
		Terms:          messages.DefaultQuotationTerms(breakdown),
	})
	if err != nil {
		return api.PremiumBreakdown{}, nil, err
	}

	return breakdown, &q, nil
}

// Approve activates a pending policy. The policy must already carry a
// positive premium and coverage amount from a quote.
func (p *Policy) Approve(tx *pop.Connection, actor User) error {
	if !actor.CanApprovePolicy() {
		return api.NewAppError(
			fmt.Errorf("user %s may not approve policies", actor.ID),
			api.ErrorNotAuthorized, api.CategoryForbidden)
	}

	if p.Status != api.PolicyStatusPending {
		return api.NewAppError(
			errors.New("Only pending policies can be approved"),
			api.ErrorPolicyStatus, api.CategoryUser)
	}

	if p.Premium <= 0 || p.CoverageAmount <= 0 {
		return api.NewAppError(
			fmt.Errorf("policy %s has no quoted premium to approve", p.ReferenceNumber),
			api.ErrorPolicyMissingQuote, api.CategoryUser)
	}

	oldStatus := p.Status
	p.Status = api.PolicyStatusActive
	if err := p.Update(tx, oldStatus); err != nil {
		return err
	}

	p.LoadCustomer(tx, false)
	err := Notify(tx, p.Customer.UserID, messages.TitlePolicyApproved,
		messages.PolicyApprovedBody(p.ReferenceNumber, p.StartDate, p.EndDate),
		api.NotificationTypeStatusUpdate, p.eventPayload())
	if err != nil {
		return err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiPolicyApproved,
		Message: "policy approved " + p.ReferenceNumber,
		Payload: events.Payload{domain.EventPayloadID: p.ID},
	})

	return nil
}

// Reject cancels a pending policy application.
func (p *Policy) Reject(tx *pop.Connection, actor User) error {
	if !actor.CanApprovePolicy() {
		return api.NewAppError(
			fmt.Errorf("user %s may not reject policies", actor.ID),
			api.ErrorNotAuthorized, api.CategoryForbidden)
	}

	if p.Status != api.PolicyStatusPending {
		return api.NewAppError(
			errors.New("Only pending policies can be rejected"),
			api.ErrorPolicyStatus, api.CategoryUser)
	}

	oldStatus := p.Status
	p.Status = api.PolicyStatusCancelled
	if err := p.Update(tx, oldStatus); err != nil {
		return err
	}

	p.LoadCustomer(tx, false)
	err := Notify(tx, p.Customer.UserID, messages.TitlePolicyRejected,
		messages.PolicyRejectedBody(p.ReferenceNumber),
		api.NotificationTypeStatusUpdate, p.eventPayload())
	if err != nil {
		return err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiPolicyRejected,
		Message: "policy rejected " + p.ReferenceNumber,
		Payload: events.Payload{domain.EventPayloadID: p.ID},
	})

	return nil
}

// MessageCustomer sends a freeform staff message to the policy holder. No
// state change.
func (p *Policy) MessageCustomer(tx *pop.Connection, actor User, text string) error {
	if !actor.CanMessageCustomers() {
		return api.NewAppError(
			fmt.Errorf("user %s may not message customers", actor.ID),
			api.ErrorNotAuthorized, api.CategoryForbidden)
	}

	if text == "" {
		return api.NewAppError(
			errors.New("message text is required"),
			api.ErrorValidation, api.CategoryUser)
	}

	body := messages.PolicyMessageBody(p.ReferenceNumber, text)

	p.LoadCustomer(tx, false)
	err := Notify(tx, p.Customer.UserID, messages.TitlePolicyMessage, body,
		api.NotificationTypeMessage, p.eventPayload())
	if err != nil {
		return err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiPolicyMessage,
		Message: "message to customer on policy " + p.ReferenceNumber,
		Payload: events.Payload{
			domain.EventPayloadID:   p.ID,
			domain.EventPayloadBody: body,
		},
	})

	return nil
}

// ExpireEnded moves every active policy whose cover has ended to expired
// and notifies the holders. Used by the scheduled expiry job. Returns the
// number of policies expired.
func (ps *Policies) ExpireEnded(tx *pop.Connection, asOf time.Time) (int, error) {
	err := tx.Where("status = ? AND end_date < ?", api.PolicyStatusActive, asOf).All(ps)
	if err != nil {
		return 0, appErrorFromDB(err, api.ErrorQueryFailure)
	}

	for i := range *ps {
		p := &(*ps)[i]

		oldStatus := p.Status
		p.Status = api.PolicyStatusExpired
		if err := p.Update(tx, oldStatus); err != nil {
			return 0, err
		}

		p.LoadCustomer(tx, false)
		err := Notify(tx, p.Customer.UserID, messages.TitlePolicyExpired,
			messages.PolicyExpiredBody(p.ReferenceNumber, p.EndDate),
			api.NotificationTypeStatusUpdate, p.eventPayload())
		if err != nil {
			return 0, err
		}

		emitEvent(events.Event{
			Kind:    domain.EventApiPolicyExpired,
			Message: "policy expired " + p.ReferenceNumber,
			Payload: events.Payload{domain.EventPayloadID: p.ID},
		})
	}

	return len(*ps), nil
}

func (p *Policy) eventPayload() map[string]interface{} {
	return map[string]interface{}{
		"policy_id":        p.ID.String(),
		"reference_number": p.ReferenceNumber,
		"status":           string(p.Status),
	}
}

func (p *Policy) LoadCustomer(tx *pop.Connection, reload bool) {
	if p.Customer.ID == uuid.Nil || reload {
		if err := tx.Load(p, "Customer"); err != nil {
			panic("database error loading Policy.Customer, " + err.Error())
		}
	}
}

func (p *Policy) LoadVehicle(tx *pop.Connection, reload bool) {
	if p.Vehicle.ID == uuid.Nil || reload {
		if err := tx.Load(p, "Vehicle"); err != nil {
			panic("database error loading Policy.Vehicle, " + err.Error())
		}
	}
}

func (p *Policy) LoadCoverage(tx *pop.Connection, reload bool) {
	if p.Coverage.ID == uuid.Nil || reload {
		if err := tx.Load(p, "Coverage"); err != nil {
			panic("database error loading Policy.Coverage, " + err.Error())
		}
	}
}

func (p *Policy) LoadQuotations(tx *pop.Connection, reload bool) {
	if len(p.Quotations) == 0 || reload {
		if err := tx.Load(p, "Quotations"); err != nil {
			panic("database error loading Policy.Quotations, " + err.Error())
		}
	}
}

func (p *Policy) LoadClaims(tx *pop.Connection, reload bool) {
	if len(p.Claims) == 0 || reload {
		if err := tx.Load(p, "Claims"); err != nil {
			panic("database error loading Policy.Claims, " + err.Error())
		}
	}
}

// AllForUser returns the policies visible to the user: all of them for
// staff, their own for customers.
func (ps *Policies) AllForUser(tx *pop.Connection, user User) error {
	if user.IsStaff() {
		err := tx.Order("created_at desc").All(ps)
		return appErrorFromDB(err, api.ErrorQueryFailure)
	}

	customer, err := user.Customer(tx)
	if err != nil {
		return err
	}

	dbErr := tx.Where("customer_id = ?", customer.ID).Order("created_at desc").All(ps)
	return appErrorFromDB(dbErr, api.ErrorQueryFailure)
}

func uniquePolicyReferenceNumber(tx *pop.Connection) string {
	attempts := 0
	for {
		ref := "POL" + domain.RandomString(policyReferenceDigits, "")

		count, err := tx.Where("reference_number = ?", ref).Count(Policy{})
		if count == 0 && err == nil {
			return ref
		}

		attempts++
		if attempts > 100 {
			panic(fmt.Errorf("failed to find unique policy reference number after 100 attempts"))
		}
	}
}

func ConvertPolicy(tx *pop.Connection, p Policy) api.Policy {
	return api.Policy{
		ID:              p.ID,
		ReferenceNumber: p.ReferenceNumber,
		CustomerID:      p.CustomerID,
		VehicleID:       p.VehicleID,
		CoverageID:      p.CoverageID,
		CoverageType:    p.CoverageType,
		Status:          p.Status,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		Premium:         p.Premium,
		CoverageAmount:  p.CoverageAmount,
		PaymentTerm:     p.PaymentTerm,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func ConvertPolicies(tx *pop.Connection, ps Policies) api.Policies {
	policies := make(api.Policies, len(ps))
	for i, p := range ps {
		policies[i] = ConvertPolicy(tx, p)
	}
	return policies
}

// ConvertPolicyDetail includes the vehicle, quotations and claims
func ConvertPolicyDetail(tx *pop.Connection, p Policy) api.Policy {
	out := ConvertPolicy(tx, p)

	p.LoadVehicle(tx, false)
	p.LoadQuotations(tx, true)
	p.LoadClaims(tx, true)

	vehicle := ConvertVehicle(tx, p.Vehicle)
	out.Vehicle = &vehicle
	out.Quotations = ConvertQuotations(p.Quotations)
	out.Claims = ConvertClaims(tx, p.Claims)
	return out
}

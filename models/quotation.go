package models

import (
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

const quotationReferenceDigits = 8

var ValidQuotationStatus = map[api.QuotationStatus]struct{}{
	api.QuotationStatusSent:     {},
	api.QuotationStatusAccepted: {},
	api.QuotationStatusDeclined: {},
}

type Quotations []Quotation

// Quotation is one priced offer against an in-flight policy application. A
// policy may accumulate several over time; only the latest sent one is
// actionable.
type Quotation struct {
	ID              uuid.UUID           `db:"id"`
	ReferenceNumber string              `db:"reference_number" validate:"required"`
	PolicyID        uuid.UUID           `db:"policy_id" validate:"required"`
	Premium         api.Currency        `db:"premium"`
	CoverageAmount  api.Currency        `db:"coverage_amount"`
	CurrencyCode    string              `db:"currency_code" validate:"required"`
	Terms           string              `db:"terms"`
	BankDetails     string              `db:"bank_details"`
	PaymentURL      string              `db:"payment_url"`
	Status          api.QuotationStatus `db:"status" validate:"quotationStatus"`
	CreatorID       uuid.UUID           `db:"creator_id" validate:"required"`
	DeciderID       nulls.UUID          `db:"decider_id"`
	DecisionDate    nulls.Time          `db:"decision_date"`
	CreatedAt       time.Time           `db:"created_at"`
	UpdatedAt       time.Time           `db:"updated_at"`

	Policy  Policy `belongs_to:"policies" validate:"-"`
	Creator User   `belongs_to:"users" validate:"-"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (q *Quotation) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(q), nil
}

func (q *Quotation) Create(tx *pop.Connection) error {
	return create(tx, q)
}

func (q *Quotation) Update(tx *pop.Connection) error {
	return update(tx, q)
}

func (q *Quotation) GetID() uuid.UUID {
	return q.ID
}

func (q *Quotation) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, q, id)
}

// IsActorAllowedTo allows staff everything, and the policy's owning
// customer viewing and deciding.
func (q *Quotation) IsActorAllowedTo(tx *pop.Connection, actor User, perm Permission, sub SubResource, r *http.Request) bool {
	if actor.IsStaff() {
		return true
	}

	if perm == PermissionList {
		return true
	}

	return q.isOwnedBy(tx, actor)
}

func (q *Quotation) isOwnedBy(tx *pop.Connection, user User) bool {
	q.LoadPolicy(tx, false)
	q.Policy.LoadCustomer(tx, false)
	return q.Policy.Customer.UserID == user.ID
}

// Accept records the customer's acceptance of a sent quotation and returns
// the payment URL for the caller to proceed with payment. Underwriters are
// notified inside the same transaction.
func (q *Quotation) Accept(tx *pop.Connection, actor User) (string, error) {
	if !q.isOwnedBy(tx, actor) {
		return "", api.NewAppError(
			fmt.Errorf("user %s does not own the policy of quotation %s", actor.ID, q.ReferenceNumber),
			api.ErrorNotAuthorized, api.CategoryForbidden)
	}

	if err := q.decide(tx, actor, api.QuotationStatusAccepted); err != nil {
		return "", err
	}

	q.LoadPolicy(tx, false)
	err := NotifyUsersByType(tx, UserTypeUnderwriter, messages.TitleQuotationAccepted,
		messages.QuotationAcceptedBody(actor.Name(), q.Policy.ReferenceNumber, q.ReferenceNumber, q.Premium),
		api.NotificationTypeStatusUpdate, q.eventPayload())
	if err != nil {
		return "", err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiQuotationAccepted,
		Message: "quotation accepted " + q.ReferenceNumber,
		Payload: events.Payload{domain.EventPayloadID: q.ID},
	})

	return q.PaymentURL, nil
}

// Decline records the customer's refusal of a sent quotation.
func (q *Quotation) Decline(tx *pop.Connection, actor User) error {
	if !q.isOwnedBy(tx, actor) {
		return api.NewAppError(
			fmt.Errorf("user %s does not own the policy of quotation %s", actor.ID, q.ReferenceNumber),
			api.ErrorNotAuthorized, api.CategoryForbidden)
	}

	if err := q.decide(tx, actor, api.QuotationStatusDeclined); err != nil {
		return err
	}

	q.LoadPolicy(tx, false)

	// declining the offer withdraws the application itself
	if q.Policy.Status == api.PolicyStatusPending {
		oldStatus := q.Policy.Status
		q.Policy.Status = api.PolicyStatusCancelled
		if err := q.Policy.Update(tx, oldStatus); err != nil {
			return err
		}
	}

	err := NotifyUsersByType(tx, UserTypeUnderwriter, messages.TitleQuotationDeclined,
		messages.QuotationDeclinedBody(actor.Name(), q.Policy.ReferenceNumber, q.ReferenceNumber),
		api.NotificationTypeStatusUpdate, q.eventPayload())
	if err != nil {
		return err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiQuotationDeclined,
		Message: "quotation declined " + q.ReferenceNumber,
		Payload: events.Payload{domain.EventPayloadID: q.ID},
	})

	return nil
}

// decide re-reads the quotation inside the transaction before stamping the
// decision, so a stale in-memory status can never decide twice.
func (q *Quotation) decide(tx *pop.Connection, actor User, decision api.QuotationStatus) error {
	if err := q.FindByID(tx, q.ID); err != nil {
		return err
	}

	if q.Status != api.QuotationStatusSent {
		return api.NewAppError(
			fmt.Errorf("quotation %s has already been %s", q.ReferenceNumber, q.Status),
			api.ErrorQuotationStatus, api.CategoryUser)
	}

	q.Status = decision
	q.DeciderID = nulls.NewUUID(actor.ID)
	q.DecisionDate = nulls.NewTime(time.Now().UTC())
	return q.Update(tx)
}

func (q *Quotation) eventPayload() map[string]interface{} {
	return map[string]interface{}{
		"quotation_id":     q.ID.String(),
		"reference_number": q.ReferenceNumber,
		"policy_id":        q.PolicyID.String(),
		"status":           string(q.Status),
		"payment_url":      q.PaymentURL,
	}
}

func (q *Quotation) LoadPolicy(tx *pop.Connection, reload bool) {
	if q.Policy.ID == uuid.Nil || reload {
		if err := tx.Load(q, "Policy"); err != nil {
			panic("database error loading Quotation.Policy, " + err.Error())
		}
	}
}

// AllForUser returns the quotations visible to the user: all of them for
// staff, those on the customer's own policies otherwise.
func (qs *Quotations) AllForUser(tx *pop.Connection, user User) error {
	if user.IsStaff() {
		err := tx.Order("created_at desc").All(qs)
		return appErrorFromDB(err, api.ErrorQueryFailure)
	}

	customer, err := user.Customer(tx)
	if err != nil {
		return err
	}

	dbErr := tx.Where("policy_id IN (SELECT id FROM policies WHERE customer_id = ?)", customer.ID).
		Order("created_at desc").All(qs)
	return appErrorFromDB(dbErr, api.ErrorQueryFailure)
}

func uniqueQuotationReferenceNumber(tx *pop.Connection) string {
	attempts := 0
	for {
		ref := "QTE" + domain.RandomString(quotationReferenceDigits, "")

		count, err := tx.Where("reference_number = ?", ref).Count(Quotation{})
		if count == 0 && err == nil {
			return ref
		}

		attempts++
		if attempts > 100 {
			panic(fmt.Errorf("failed to find unique quotation reference number after 100 attempts"))
		}
	}
}

func ConvertQuotation(q Quotation) api.Quotation {
	return api.Quotation{
		ID:              q.ID,
		ReferenceNumber: q.ReferenceNumber,
		PolicyID:        q.PolicyID,
		Premium:         q.Premium,
		CoverageAmount:  q.CoverageAmount,
		CurrencyCode:    q.CurrencyCode,
		Terms:           q.Terms,
		BankDetails:     q.BankDetails,
		PaymentURL:      q.PaymentURL,
		Status:          q.Status,
		CreatorID:       q.CreatorID,
		DeciderID:       q.DeciderID,
		DecisionDate:    q.DecisionDate,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

func ConvertQuotations(qs Quotations) api.Quotations {
	quotations := make(api.Quotations, len(qs))
	for i, q := range qs {
		quotations[i] = ConvertQuotation(q)
	}
	return quotations
}

package models

import (
	"time"

	"github.com/motorsure/motorsure-api/api"
)

// quotedPolicyFixtures builds a customer with a pending, quoted policy.
func (ms *ModelSuite) quotedPolicyFixtures() (User, Policy, Quotation) {
	user, _, vehicle, coverages := ms.policyApplyFixtures()
	underwriter := ms.underwriter()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var policy Policy
	ms.NoError(policy.Apply(ms.DB, user, api.PolicyApplyInput{
		VehicleID:  vehicle.ID,
		CoverageID: coverages[0].ID,
		StartDate:  start,
		EndDate:    start.AddDate(1, 0, -1),
	}))

	_, quotation, err := policy.AutoQuote(ms.DB, underwriter, false)
	ms.NoError(err)
	ms.NotNil(quotation)

	return user, policy, *quotation
}

func (ms *ModelSuite) TestQuotation_Accept() {
	user, _, quotation := ms.quotedPolicyFixtures()
	stranger := CreateCustomerFixtures(ms.DB, 1).Users[0]

	// only the policy holder may accept
	_, err := quotation.Accept(ms.DB, stranger)
	ms.EqualAppError(api.AppError{Key: api.ErrorNotAuthorized, Category: api.CategoryForbidden}, err)

	paymentURL, err := quotation.Accept(ms.DB, user)
	ms.NoError(err)
	ms.Equal(quotation.PaymentURL, paymentURL)
	ms.Equal(api.QuotationStatusAccepted, quotation.Status)
	ms.Equal(user.ID, quotation.DeciderID.UUID)
	ms.True(quotation.DecisionDate.Valid)

	// acceptance does not activate the policy, approval does
	var policy Policy
	ms.NoError(policy.FindByID(ms.DB, quotation.PolicyID))
	ms.Equal(api.PolicyStatusPending, policy.Status)

	// accepted is terminal
	_, err = quotation.Accept(ms.DB, user)
	ms.EqualAppError(api.AppError{Key: api.ErrorQuotationStatus, Category: api.CategoryUser}, err)
	err = quotation.Decline(ms.DB, user)
	ms.EqualAppError(api.AppError{Key: api.ErrorQuotationStatus, Category: api.CategoryUser}, err)
}

func (ms *ModelSuite) TestQuotation_Accept_staleStatus() {
	user, _, quotation := ms.quotedPolicyFixtures()

	// decide through a separate in-memory copy
	var other Quotation
	ms.NoError(other.FindByID(ms.DB, quotation.ID))
	ms.NoError(other.Decline(ms.DB, user))

	// the stale copy still thinks it is sent; the decision must not repeat
	ms.Equal(api.QuotationStatusSent, quotation.Status)
	_, err := quotation.Accept(ms.DB, user)
	ms.EqualAppError(api.AppError{Key: api.ErrorQuotationStatus, Category: api.CategoryUser}, err)
}

func (ms *ModelSuite) TestQuotation_Decline() {
	user, policy, quotation := ms.quotedPolicyFixtures()

	ms.NoError(quotation.Decline(ms.DB, user))
	ms.Equal(api.QuotationStatusDeclined, quotation.Status)
	ms.Equal(user.ID, quotation.DeciderID.UUID)

	// declining the offer withdraws the application
	var fromDB Policy
	ms.NoError(fromDB.FindByID(ms.DB, policy.ID))
	ms.Equal(api.PolicyStatusCancelled, fromDB.Status)

	// declined is terminal
	err := quotation.Decline(ms.DB, user)
	ms.EqualAppError(api.AppError{Key: api.ErrorQuotationStatus, Category: api.CategoryUser}, err)
}

func (ms *ModelSuite) TestQuotations_AllForUser() {
	user, _, quotation := ms.quotedPolicyFixtures()
	otherUser, _, otherQuotation := ms.quotedPolicyFixtures()
	underwriter := ms.underwriter()

	var mine Quotations
	ms.NoError(mine.AllForUser(ms.DB, user))
	ms.Len(mine, 1)
	ms.Equal(quotation.ID, mine[0].ID)

	var theirs Quotations
	ms.NoError(theirs.AllForUser(ms.DB, otherUser))
	ms.Len(theirs, 1)
	ms.Equal(otherQuotation.ID, theirs[0].ID)

	var all Quotations
	ms.NoError(all.AllForUser(ms.DB, underwriter))
	ms.Len(all, 2)
}

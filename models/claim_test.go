package models

import (
	"strings"
	"time"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/domain"
)

// activePolicyFixtures builds one customer with an active comprehensive
// policy and one underwriter.
func (ms *ModelSuite) activePolicyFixtures() (User, Policy) {
	f := CreatePolicyFixtures(ms.DB, FixturesConfig{NumberOfCustomers: 1, PoliciesPerCustomer: 1})
	CreateUserFixturesOfType(ms.DB, UserTypeUnderwriter, 1)
	return f.Users[0], f.Policies[0]
}

func claimInput() api.ClaimCreateInput {
	return api.ClaimCreateInput{
		IncidentDate:    time.Now().UTC().Add(-domain.DurationDay),
		Description:     "rear-ended at an intersection",
		EstimatedAmount: 250_000,
	}
}

func (ms *ModelSuite) TestPolicy_SubmitClaim() {
	user, policy := ms.activePolicyFixtures()
	stranger := CreateCustomerFixtures(ms.DB, 1).Users[0]

	// only the policy holder may file
	_, err := policy.SubmitClaim(ms.DB, stranger, claimInput())
	ms.EqualAppError(api.AppError{Key: api.ErrorNotAuthorized, Category: api.CategoryForbidden}, err)

	claim, err := policy.SubmitClaim(ms.DB, user, claimInput())
	ms.NoError(err)

	ms.True(strings.HasPrefix(claim.ReferenceNumber, "CLM"))
	ms.Equal(api.ClaimStatusSubmitted, claim.Status)
	ms.Equal(api.ClaimApprovalStatusPending, claim.ApprovalStatus)
	ms.Equal(policy.ID, claim.PolicyID)

	uw := ms.underwriter()
	var notifications Notifications
	ms.NoError(notifications.AllForRecipient(ms.DB, uw.ID))
	ms.Len(notifications, 1)
	ms.Contains(notifications[0].Message, claim.ReferenceNumber)
}

func (ms *ModelSuite) TestPolicy_SubmitClaim_eligibility() {
	user, policy := ms.activePolicyFixtures()

	// third party cover pays no own-damage claims
	thirdParty := CreateCoverageFixtures(ms.DB)[1]
	policy.CoverageID = thirdParty.ID
	policy.CoverageType = thirdParty.Type
	ms.NoError(ms.DB.Update(&policy))

	_, err := policy.SubmitClaim(ms.DB, user, claimInput())
	ms.EqualAppError(api.AppError{Key: api.ErrorClaimNotEligible, Category: api.CategoryUser}, err)

	// comprehensive again, but the cover has lapsed
	comprehensive := CreateCoverageFixtures(ms.DB)[0]
	policy.CoverageID = comprehensive.ID
	policy.CoverageType = comprehensive.Type
	policy.Status = api.PolicyStatusExpired
	ms.NoError(ms.DB.Update(&policy))

	_, err = policy.SubmitClaim(ms.DB, user, claimInput())
	ms.EqualAppError(api.AppError{Key: api.ErrorPolicyStatus, Category: api.CategoryUser}, err)
}

func (ms *ModelSuite) TestClaim_Process() {
	user, policy := ms.activePolicyFixtures()
	underwriter := ms.underwriter()

	claim, err := policy.SubmitClaim(ms.DB, user, claimInput())
	ms.NoError(err)

	// customers cannot process
	err = claim.Process(ms.DB, user, api.ClaimProcessInput{Action: api.ClaimActionReview})
	ms.EqualAppError(api.AppError{Key: api.ErrorNotAuthorized, Category: api.CategoryForbidden}, err)

	// unknown actions are rejected
	err = claim.Process(ms.DB, underwriter, api.ClaimProcessInput{Action: api.ClaimProcessAction("escalate")})
	ms.EqualAppError(api.AppError{Key: api.ErrorClaimInvalidAction, Category: api.CategoryUser}, err)

	ms.NoError(claim.Process(ms.DB, underwriter, api.ClaimProcessInput{Action: api.ClaimActionReview}))
	ms.Equal(api.ClaimStatusUnderReview, claim.Status)
	ms.Equal(api.ClaimApprovalStatusPending, claim.ApprovalStatus, "review is not a decision")

	// review twice is a status error
	err = claim.Process(ms.DB, underwriter, api.ClaimProcessInput{Action: api.ClaimActionReview})
	ms.EqualAppError(api.AppError{Key: api.ErrorClaimStatus, Category: api.CategoryUser}, err)

	amount := api.Currency(200_000)
	ms.NoError(claim.Process(ms.DB, underwriter, api.ClaimProcessInput{
		Action:         api.ClaimActionApprove,
		ApprovedAmount: &amount,
	}))
	ms.Equal(api.ClaimStatusApproved, claim.Status)
	ms.Equal(api.ClaimApprovalStatusApprove, claim.ApprovalStatus)
	ms.Equal(amount, claim.ApprovedAmount)
	ms.Equal(underwriter.ID, claim.ProcessedByID.UUID)
	ms.True(claim.ProcessedAt.Valid)

	// a decided claim cannot be decided again
	err = claim.Process(ms.DB, underwriter, api.ClaimProcessInput{Action: api.ClaimActionReject})
	ms.EqualAppError(api.AppError{Key: api.ErrorClaimStatus, Category: api.CategoryUser}, err)

	// the customer got a status notification for each transition
	var notifications Notifications
	ms.NoError(notifications.AllForRecipient(ms.DB, user.ID))
	ms.Len(notifications, 2)
}

func (ms *ModelSuite) TestClaim_Process_reject() {
	user, policy := ms.activePolicyFixtures()
	underwriter := ms.underwriter()

	claim, err := policy.SubmitClaim(ms.DB, user, claimInput())
	ms.NoError(err)

	// a submitted claim may be rejected without going through review
	ms.NoError(claim.Process(ms.DB, underwriter, api.ClaimProcessInput{
		Action:          api.ClaimActionReject,
		RejectionReason: "incident predates the cover",
	}))
	ms.Equal(api.ClaimStatusRejected, claim.Status)
	ms.Equal(api.ClaimApprovalStatusReject, claim.ApprovalStatus)
	ms.Equal("incident predates the cover", claim.RejectionReason)

	// rejected is terminal
	err = claim.Settle(ms.DB, underwriter)
	ms.EqualAppError(api.AppError{Key: api.ErrorClaimStatus, Category: api.CategoryUser}, err)
}

func (ms *ModelSuite) TestClaim_Process_staleStatus() {
	user, policy := ms.activePolicyFixtures()
	underwriter := ms.underwriter()

	claim, err := policy.SubmitClaim(ms.DB, user, claimInput())
	ms.NoError(err)

	// decide through a separate in-memory copy
	var other Claim
	ms.NoError(other.FindByID(ms.DB, claim.ID))
	ms.NoError(other.Process(ms.DB, underwriter, api.ClaimProcessInput{Action: api.ClaimActionApprove}))

	// the stale copy must not produce a second decision
	err = claim.Process(ms.DB, underwriter, api.ClaimProcessInput{Action: api.ClaimActionReject})
	ms.EqualAppError(api.AppError{Key: api.ErrorClaimStatus, Category: api.CategoryUser}, err)
}

func (ms *ModelSuite) TestClaim_Settle() {
	user, policy := ms.activePolicyFixtures()
	underwriter := ms.underwriter()

	claim, err := policy.SubmitClaim(ms.DB, user, claimInput())
	ms.NoError(err)

	// only approved claims can be settled
	err = claim.Settle(ms.DB, underwriter)
	ms.EqualAppError(api.AppError{Key: api.ErrorClaimStatus, Category: api.CategoryUser}, err)

	amount := api.Currency(180_000)
	ms.NoError(claim.Process(ms.DB, underwriter, api.ClaimProcessInput{
		Action:         api.ClaimActionApprove,
		ApprovedAmount: &amount,
	}))

	ms.NoError(claim.Settle(ms.DB, underwriter))
	ms.Equal(api.ClaimStatusSettled, claim.Status)
	ms.True(claim.SettledAt.Valid)

	// settled is terminal
	err = claim.Settle(ms.DB, underwriter)
	ms.EqualAppError(api.AppError{Key: api.ErrorClaimStatus, Category: api.CategoryUser}, err)
}

func (ms *ModelSuite) TestClaim_NotifyAssessorVisit() {
	user, policy := ms.activePolicyFixtures()
	underwriter := ms.underwriter()

	claim, err := policy.SubmitClaim(ms.DB, user, claimInput())
	ms.NoError(err)

	err = claim.NotifyAssessorVisit(ms.DB, underwriter, api.AssessorVisitInput{})
	ms.EqualAppError(api.AppError{Key: api.ErrorClaimAssessorInput, Category: api.CategoryUser}, err)

	visit := api.AssessorVisitInput{
		AssessorName: "T. Moyo",
		VisitDate:    time.Now().UTC().Add(3 * domain.DurationDay),
		Message:      "please have the vehicle available",
	}
	ms.NoError(claim.NotifyAssessorVisit(ms.DB, underwriter, visit))

	// no state change
	var fromDB Claim
	ms.NoError(fromDB.FindByID(ms.DB, claim.ID))
	ms.Equal(api.ClaimStatusSubmitted, fromDB.Status)

	var notifications Notifications
	ms.NoError(notifications.AllForRecipient(ms.DB, user.ID))
	ms.Len(notifications, 1)
	ms.Contains(notifications[0].Message, "T. Moyo")
}

func (ms *ModelSuite) Test_isClaimTransitionValid() {
	tests := []struct {
		from, to api.ClaimStatus
		want     bool
	}{
		{api.ClaimStatusSubmitted, api.ClaimStatusUnderReview, true},
		{api.ClaimStatusSubmitted, api.ClaimStatusApproved, true},
		{api.ClaimStatusSubmitted, api.ClaimStatusRejected, true},
		{api.ClaimStatusSubmitted, api.ClaimStatusSettled, false},
		{api.ClaimStatusUnderReview, api.ClaimStatusApproved, true},
		{api.ClaimStatusUnderReview, api.ClaimStatusRejected, true},
		{api.ClaimStatusUnderReview, api.ClaimStatusSubmitted, false},
		{api.ClaimStatusApproved, api.ClaimStatusSettled, true},
		{api.ClaimStatusApproved, api.ClaimStatusRejected, false},
		{api.ClaimStatusRejected, api.ClaimStatusSettled, false},
		{api.ClaimStatusSettled, api.ClaimStatusSettled, true},
	}

	for _, tt := range tests {
		got, err := isClaimTransitionValid(tt.from, tt.to)
		ms.NoError(err)
		ms.Equal(tt.want, got, "%s -> %s", tt.from, tt.to)
	}
}

func (ms *ModelSuite) TestClaims_AllForUser() {
	f := CreatePolicyFixtures(ms.DB, FixturesConfig{
		NumberOfCustomers:   2,
		PoliciesPerCustomer: 1,
		ClaimsPerPolicy:     2,
	})
	manager := CreateUserFixturesOfType(ms.DB, UserTypeManager, 1).Users[0]

	var mine Claims
	ms.NoError(mine.AllForUser(ms.DB, f.Users[0]))
	ms.Len(mine, 2)
	for _, c := range mine {
		ms.Equal(f.Policies[0].ID, c.PolicyID)
	}

	var all Claims
	ms.NoError(all.AllForUser(ms.DB, manager))
	ms.Len(all, 4)
}

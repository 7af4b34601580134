package actions

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/models"
)

func (as *ActionSuite) Test_ClaimsList() {
	fixtures := models.CreatePolicyFixtures(as.DB, models.FixturesConfig{
		NumberOfCustomers:   2,
		PoliciesPerCustomer: 1,
		ClaimsPerPolicy:     2,
	})
	staff := models.CreateUserFixturesOfType(as.DB, models.UserTypeUnderwriter, 1)

	tests := []struct {
		name       string
		actor      models.User
		wantClaims int
		wantInBody string
	}{
		{
			name:       "customer sees only their own",
			actor:      fixtures.Users[0],
			wantClaims: 2,
			wantInBody: fixtures.Claims[0].ReferenceNumber,
		},
		{
			name:       "underwriter sees all",
			actor:      staff.Users[0],
			wantClaims: 4,
			wantInBody: fixtures.Claims[3].ReferenceNumber,
		},
	}

	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.request(tt.actor, "/claims").Get()

			body := res.Body.String()
			as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)
			as.Contains(body, tt.wantInBody)

			var claims api.Claims
			as.NoError(json.Unmarshal([]byte(body), &claims))
			as.Len(claims, tt.wantClaims)
		})
	}
}

func (as *ActionSuite) Test_ClaimsSubmit() {
	fixtures := models.CreatePolicyFixtures(as.DB, models.FixturesConfig{
		NumberOfCustomers:   1,
		PoliciesPerCustomer: 1,
	})
	customer := fixtures.Users[0]
	policy := fixtures.Policies[0]

	input := api.ClaimCreateInput{
		IncidentDate:    time.Now().UTC().Add(-48 * time.Hour),
		Description:     "Collision at the corner of Samora Machel and Second",
		EstimatedAmount: 250_000,
	}

	res := as.request(customer, fmt.Sprintf("/policies/%s/claims", policy.ID)).Post(input)

	body := res.Body.String()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)

	var claim api.Claim
	as.NoError(json.Unmarshal([]byte(body), &claim))
	as.Contains(claim.ReferenceNumber, "CLM")
	as.Equal(api.ClaimStatusSubmitted, claim.Status)
	as.Equal(api.ClaimApprovalStatusPending, claim.ApprovalStatus)
}

func (as *ActionSuite) Test_ClaimsProcess() {
	fixtures := models.CreatePolicyFixtures(as.DB, models.FixturesConfig{
		NumberOfCustomers:   1,
		PoliciesPerCustomer: 1,
		ClaimsPerPolicy:     1,
	})
	staff := models.CreateUserFixturesOfType(as.DB, models.UserTypeUnderwriter, 1)
	customer := fixtures.Users[0]
	underwriter := staff.Users[0]
	claim := fixtures.Claims[0]

	reviewInput := api.ClaimProcessInput{Action: api.ClaimActionReview}

	// customers cannot process claims
	res := as.request(customer, fmt.Sprintf("/claims/%s/process", claim.ID)).Post(reviewInput)
	as.Equal(http.StatusNotFound, res.Code, "body: %s", res.Body.String())

	res = as.request(underwriter, fmt.Sprintf("/claims/%s/process", claim.ID)).Post(reviewInput)
	body := res.Body.String()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)

	var reviewed api.Claim
	as.NoError(json.Unmarshal([]byte(body), &reviewed))
	as.Equal(api.ClaimStatusUnderReview, reviewed.Status)

	amount := api.Currency(200_000)
	approveInput := api.ClaimProcessInput{Action: api.ClaimActionApprove, ApprovedAmount: &amount}
	res = as.request(underwriter, fmt.Sprintf("/claims/%s/process", claim.ID)).Post(approveInput)
	body = res.Body.String()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)

	var approved api.Claim
	as.NoError(json.Unmarshal([]byte(body), &approved))
	as.Equal(api.ClaimStatusApproved, approved.Status)
	as.Equal(amount, approved.ApprovedAmount)

	// the decision is made exactly once
	res = as.request(underwriter, fmt.Sprintf("/claims/%s/process", claim.ID)).Post(approveInput)
	as.Equal(http.StatusBadRequest, res.Code, "body: %s", res.Body.String())
	as.Contains(res.Body.String(), string(api.ErrorClaimStatus))
}

func (as *ActionSuite) Test_ClaimsSettle() {
	fixtures := models.CreatePolicyFixtures(as.DB, models.FixturesConfig{
		NumberOfCustomers:   1,
		PoliciesPerCustomer: 1,
		ClaimsPerPolicy:     1,
	})
	underwriter := models.CreateUserFixturesOfType(as.DB, models.UserTypeUnderwriter, 1).Users[0]
	claim := fixtures.Claims[0]

	// settling a submitted claim must fail
	res := as.request(underwriter, fmt.Sprintf("/claims/%s/settle", claim.ID)).Post(nil)
	as.Equal(http.StatusBadRequest, res.Code, "body: %s", res.Body.String())

	amount := api.Currency(150_000)
	approveInput := api.ClaimProcessInput{Action: api.ClaimActionApprove, ApprovedAmount: &amount}
	res = as.request(underwriter, fmt.Sprintf("/claims/%s/process", claim.ID)).Post(approveInput)
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	res = as.request(underwriter, fmt.Sprintf("/claims/%s/settle", claim.ID)).Post(nil)
	body := res.Body.String()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)

	var settled api.Claim
	as.NoError(json.Unmarshal([]byte(body), &settled))
	as.Equal(api.ClaimStatusSettled, settled.Status)
	as.True(settled.SettledAt.Valid)
}

func (as *ActionSuite) Test_ClaimsAssessorVisit() {
	fixtures := models.CreatePolicyFixtures(as.DB, models.FixturesConfig{
		NumberOfCustomers:   1,
		PoliciesPerCustomer: 1,
		ClaimsPerPolicy:     1,
	})
	underwriter := models.CreateUserFixturesOfType(as.DB, models.UserTypeUnderwriter, 1).Users[0]
	customer := fixtures.Users[0]
	claim := fixtures.Claims[0]

	input := api.AssessorVisitInput{
		AssessorName: "T. Moyo",
		VisitDate:    time.Now().UTC().Add(72 * time.Hour),
	}

	res := as.request(underwriter, fmt.Sprintf("/claims/%s/assessor-visit", claim.ID)).Post(input)
	as.Equal(http.StatusNoContent, res.Code, "body: %s", res.Body.String())

	var notifications models.Notifications
	as.NoError(notifications.AllForRecipient(as.DB, customer.ID))
	as.Len(notifications, 1)
	as.Contains(notifications[0].Message, "T. Moyo")
}

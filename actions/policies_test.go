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

func (as *ActionSuite) Test_PoliciesList() {
	fixtures := models.CreatePolicyFixtures(as.DB, models.FixturesConfig{
		NumberOfCustomers:   2,
		PoliciesPerCustomer: 1,
	})
	staff := models.CreateUserFixturesOfType(as.DB, models.UserTypeUnderwriter, 1)

	tests := []struct {
		name          string
		actor         models.User
		wantPolicies  int
		wantInBody    string
		notWantInBody string
	}{
		{
			name:          "customer sees only their own",
			actor:         fixtures.Users[0],
			wantPolicies:  1,
			wantInBody:    fixtures.Policies[0].ReferenceNumber,
			notWantInBody: fixtures.Policies[1].ReferenceNumber,
		},
		{
			name:         "underwriter sees all",
			actor:        staff.Users[0],
			wantPolicies: 2,
			wantInBody:   fixtures.Policies[1].ReferenceNumber,
		},
	}

	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.request(tt.actor, "/policies").Get()

			body := res.Body.String()
			as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)
			as.Contains(body, tt.wantInBody)
			if tt.notWantInBody != "" {
				as.NotContains(body, tt.notWantInBody)
			}

			var policies api.Policies
			as.NoError(json.Unmarshal([]byte(body), &policies))
			as.Len(policies, tt.wantPolicies)
		})
	}
}

func (as *ActionSuite) Test_PoliciesApply() {
	fixtures := models.CreatePolicyFixtures(as.DB, models.FixturesConfig{
		NumberOfCustomers:   1,
		VehiclesPerCustomer: 2,
		PoliciesPerCustomer: 1,
	})
	customer := fixtures.Users[0]
	spareVehicle := fixtures.Vehicles[1]
	thirdParty := fixtures.Coverages[1]

	startDate := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 1, 0)
	input := api.PolicyApplyInput{
		VehicleID:   spareVehicle.ID,
		CoverageID:  thirdParty.ID,
		StartDate:   startDate,
		EndDate:     startDate.AddDate(1, 0, -1),
		PaymentTerm: api.PaymentTermTermly,
	}

	res := as.request(customer, "/policies").Post(input)

	body := res.Body.String()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)

	var policy api.Policy
	as.NoError(json.Unmarshal([]byte(body), &policy))
	as.Contains(policy.ReferenceNumber, "POL")
	as.Equal(api.PolicyStatusPending, policy.Status)
	as.Equal(api.CoverageTypeThirdParty, policy.CoverageType)
	as.Equal(api.PaymentTermTermly, policy.PaymentTerm)
}

func (as *ActionSuite) Test_PoliciesApply_noToken() {
	res := as.JSON("/policies").Post(api.PolicyApplyInput{})
	as.Equal(http.StatusUnauthorized, res.Code)
}

func (as *ActionSuite) Test_PoliciesQuoteAndApprove() {
	fixtures := models.CreatePendingPolicyFixtures(as.DB, models.FixturesConfig{
		NumberOfCustomers:   1,
		PoliciesPerCustomer: 1,
	})
	customer := fixtures.Users[0]
	underwriter := fixtures.Users[len(fixtures.Users)-1]
	policy := fixtures.Policies[0]

	// a customer may not quote their own policy
	input := api.QuotationCreateInput{Premium: 120_000, CoverageAmount: 4_000_000}
	res := as.request(customer, fmt.Sprintf("/policies/%s/quote", policy.ID)).Post(input)
	as.Equal(http.StatusNotFound, res.Code, "body: %s", res.Body.String())

	// approving before any quotation sets the premium must fail
	res = as.request(underwriter, fmt.Sprintf("/policies/%s/approve", policy.ID)).Post(nil)
	as.Equal(http.StatusBadRequest, res.Code, "body: %s", res.Body.String())
	as.Contains(res.Body.String(), string(api.ErrorPolicyMissingQuote))

	res = as.request(underwriter, fmt.Sprintf("/policies/%s/quote", policy.ID)).Post(input)
	body := res.Body.String()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)

	var quotation api.Quotation
	as.NoError(json.Unmarshal([]byte(body), &quotation))
	as.Contains(quotation.ReferenceNumber, "QTE")
	as.Equal(api.Currency(120_000), quotation.Premium)

	res = as.request(underwriter, fmt.Sprintf("/policies/%s/approve", policy.ID)).Post(nil)
	body = res.Body.String()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)

	var approved api.Policy
	as.NoError(json.Unmarshal([]byte(body), &approved))
	as.Equal(api.PolicyStatusActive, approved.Status)
}

func (as *ActionSuite) Test_PoliciesQuote_manager() {
	fixtures := models.CreatePendingPolicyFixtures(as.DB, models.FixturesConfig{
		NumberOfCustomers:   1,
		PoliciesPerCustomer: 1,
	})
	manager := models.CreateUserFixturesOfType(as.DB, models.UserTypeManager, 1).Users[0]
	policy := fixtures.Policies[0]

	input := api.QuotationCreateInput{Premium: 90_000, CoverageAmount: 3_000_000}
	res := as.request(manager, fmt.Sprintf("/policies/%s/quote", policy.ID)).Post(input)
	body := res.Body.String()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)

	var quotation api.Quotation
	as.NoError(json.Unmarshal([]byte(body), &quotation))
	as.Equal(api.Currency(90_000), quotation.Premium)
	as.Equal(api.QuotationStatusSent, quotation.Status)
}

func (as *ActionSuite) Test_PoliciesAutoQuote() {
	fixtures := models.CreatePendingPolicyFixtures(as.DB, models.FixturesConfig{
		NumberOfCustomers:   1,
		PoliciesPerCustomer: 1,
	})
	underwriter := fixtures.Users[len(fixtures.Users)-1]
	policy := fixtures.Policies[0]

	res := as.request(underwriter, fmt.Sprintf("/policies/%s/auto-quote?preview=true", policy.ID)).Post(nil)
	body := res.Body.String()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)

	var preview api.AutoQuoteResult
	as.NoError(as.decodeBody([]byte(body), &preview))
	as.True(preview.Breakdown.AnnualPremium > 0)
	as.Nil(preview.Quotation)

	res = as.request(underwriter, fmt.Sprintf("/policies/%s/auto-quote", policy.ID)).Post(nil)
	body = res.Body.String()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)

	var result api.AutoQuoteResult
	as.NoError(as.decodeBody([]byte(body), &result))
	as.NotNil(result.Quotation)
	as.Equal(result.Breakdown.AnnualPremium, result.Quotation.Premium)
}

func (as *ActionSuite) Test_PoliciesMessage() {
	fixtures := models.CreatePolicyFixtures(as.DB, models.FixturesConfig{
		NumberOfCustomers:   1,
		PoliciesPerCustomer: 1,
	})
	manager := models.CreateUserFixturesOfType(as.DB, models.UserTypeManager, 1).Users[0]
	customer := fixtures.Users[0]
	policy := fixtures.Policies[0]

	input := api.PolicyMessageInput{Message: "Please bring your service book on renewal."}

	// customers cannot send staff messages
	res := as.request(customer, fmt.Sprintf("/policies/%s/message", policy.ID)).Post(input)
	as.Equal(http.StatusNotFound, res.Code, "body: %s", res.Body.String())

	res = as.request(manager, fmt.Sprintf("/policies/%s/message", policy.ID)).Post(input)
	as.Equal(http.StatusNoContent, res.Code, "body: %s", res.Body.String())

	var notifications models.Notifications
	as.NoError(notifications.AllForRecipient(as.DB, customer.ID))
	as.Len(notifications, 1)
	as.Contains(notifications[0].Message, "service book")
}

package actions

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/models"
)

func (as *ActionSuite) Test_QuotationsList() {
	fixtures := models.CreatePendingPolicyFixtures(as.DB, models.FixturesConfig{
		NumberOfCustomers:   2,
		PoliciesPerCustomer: 1,
	})
	customer := fixtures.Users[0]

	res := as.request(customer, "/quotations").Get()

	body := res.Body.String()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)

	var quotations api.Quotations
	as.NoError(json.Unmarshal([]byte(body), &quotations))
	as.Len(quotations, 1)
	as.Equal(fixtures.Quotations[0].ReferenceNumber, quotations[0].ReferenceNumber)
}

func (as *ActionSuite) Test_QuotationsAccept() {
	fixtures := models.CreatePendingPolicyFixtures(as.DB, models.FixturesConfig{
		NumberOfCustomers:   2,
		PoliciesPerCustomer: 1,
	})
	owner := fixtures.Users[0]
	stranger := fixtures.Users[1]
	quotation := fixtures.Quotations[0]

	// another customer may not accept it
	res := as.request(stranger, fmt.Sprintf("/quotations/%s/accept", quotation.ID)).Post(nil)
	as.Equal(http.StatusNotFound, res.Code, "body: %s", res.Body.String())

	res = as.request(owner, fmt.Sprintf("/quotations/%s/accept", quotation.ID)).Post(nil)
	body := res.Body.String()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)

	var accepted api.QuotationAccepted
	as.NoError(as.decodeBody([]byte(body), &accepted))
	as.Equal(api.QuotationStatusAccepted, accepted.Quotation.Status)
	as.NotEmpty(accepted.PaymentURL)

	// a decided quotation cannot be accepted twice
	res = as.request(owner, fmt.Sprintf("/quotations/%s/accept", quotation.ID)).Post(nil)
	as.Equal(http.StatusBadRequest, res.Code, "body: %s", res.Body.String())
	as.Contains(res.Body.String(), string(api.ErrorQuotationStatus))
}

func (as *ActionSuite) Test_QuotationsDecline() {
	fixtures := models.CreatePendingPolicyFixtures(as.DB, models.FixturesConfig{
		NumberOfCustomers:   1,
		PoliciesPerCustomer: 1,
	})
	owner := fixtures.Users[0]
	quotation := fixtures.Quotations[0]

	res := as.request(owner, fmt.Sprintf("/quotations/%s/decline", quotation.ID)).Post(nil)
	body := res.Body.String()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)

	var declined api.Quotation
	as.NoError(json.Unmarshal([]byte(body), &declined))
	as.Equal(api.QuotationStatusDeclined, declined.Status)

	// declining cancels the pending policy
	var policy models.Policy
	as.NoError(policy.FindByID(as.DB, fixtures.Policies[0].ID))
	as.Equal(api.PolicyStatusCancelled, policy.Status)
}

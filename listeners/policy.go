package listeners

import (
	"github.com/gobuffalo/events"

	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/log"
	"github.com/motorsure/motorsure-api/messages"
	"github.com/motorsure/motorsure-api/models"
)

func policyApplied(e events.Event) {
	if e.Kind != domain.EventApiPolicyApplied {
		return
	}

	defer panicRecover(e.Kind)

	var policy models.Policy
	if err := findObject(e.Payload, &policy, e.Kind); err != nil {
		return
	}

	holder := policyHolder(&policy)
	emailUnderwriters(messages.TitlePolicyApplied,
		messages.PolicyAppliedBody(holder.Name(), policy.ReferenceNumber,
			policy.CoverageType, policy.StartDate, policy.EndDate))
}

func policyQuoted(e events.Event) {
	if e.Kind != domain.EventApiPolicyQuoted {
		return
	}

	defer panicRecover(e.Kind)

	// the payload ID is the quotation's, so the email matches the offer sent
	var quotation models.Quotation
	if err := findObject(e.Payload, &quotation, e.Kind); err != nil {
		return
	}

	quotation.LoadPolicy(models.DB, false)
	holder := policyHolder(&quotation.Policy)

	emailUser(holder, messages.TitlePolicyQuoted,
		messages.PolicyQuotedBody(quotation.Policy.ReferenceNumber, quotation.ReferenceNumber,
			quotation.Premium, quotation.CoverageAmount, quotation.CurrencyCode,
			quotation.Terms, quotation.BankDetails, quotation.PaymentURL))
}

func policyApproved(e events.Event) {
	if e.Kind != domain.EventApiPolicyApproved {
		return
	}

	defer panicRecover(e.Kind)

	var policy models.Policy
	if err := findObject(e.Payload, &policy, e.Kind); err != nil {
		return
	}

	emailUser(policyHolder(&policy), messages.TitlePolicyApproved,
		messages.PolicyApprovedBody(policy.ReferenceNumber, policy.StartDate, policy.EndDate))
}

func policyRejected(e events.Event) {
	if e.Kind != domain.EventApiPolicyRejected {
		return
	}

	defer panicRecover(e.Kind)

	var policy models.Policy
	if err := findObject(e.Payload, &policy, e.Kind); err != nil {
		return
	}

	emailUser(policyHolder(&policy), messages.TitlePolicyRejected,
		messages.PolicyRejectedBody(policy.ReferenceNumber))
}

func policyMessage(e events.Event) {
	if e.Kind != domain.EventApiPolicyMessage {
		return
	}

	defer panicRecover(e.Kind)

	body, err := getBody(e.Payload)
	if err != nil {
		log.Errorf("%s listener: %s", e.Kind, err)
		return
	}

	var policy models.Policy
	if err := findObject(e.Payload, &policy, e.Kind); err != nil {
		return
	}

	emailUser(policyHolder(&policy), messages.TitlePolicyMessage, body)
}

func policyExpired(e events.Event) {
	if e.Kind != domain.EventApiPolicyExpired {
		return
	}

	defer panicRecover(e.Kind)

	var policy models.Policy
	if err := findObject(e.Payload, &policy, e.Kind); err != nil {
		return
	}

	emailUser(policyHolder(&policy), messages.TitlePolicyExpired,
		messages.PolicyExpiredBody(policy.ReferenceNumber, policy.EndDate))
}

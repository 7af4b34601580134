package messages

import (
	"fmt"
	"time"

	"github.com/motorsure/motorsure-api/api"
)

// PolicyAppliedBody is sent to every underwriter when a customer applies
// for a new policy.
func PolicyAppliedBody(customerName, policyRef string, coverageType api.CoverageType, start, end time.Time) string {
	return fmt.Sprintf("%s applied for a %s policy %s covering %s. It is pending review.",
		customerName, coverageType, policyRef, formatDateRange(start, end))
}

// PolicyQuotedBody is sent to the policy's customer when a quotation is
// issued. It carries the full quote payload so the customer can decide
// without another lookup.
func PolicyQuotedBody(policyRef, quotationRef string, premium, coverageAmount api.Currency, currencyCode, terms, bankDetails, paymentURL string) string {
	return fmt.Sprintf(
		"A quotation %s is available for your policy %s: premium %s %s for cover of %s %s. %s %s Pay at %s.",
		quotationRef, policyRef, currencyCode, premium, currencyCode, coverageAmount, terms, bankDetails, paymentURL)
}

func PolicyApprovedBody(policyRef string, start, end time.Time) string {
	return fmt.Sprintf("Your policy %s has been approved and is now active for %s.",
		policyRef, formatDateRange(start, end))
}

func PolicyRejectedBody(policyRef string) string {
	return fmt.Sprintf("Your application for policy %s has been rejected. Contact support for details.", policyRef)
}

func PolicyExpiredBody(policyRef string, end time.Time) string {
	return fmt.Sprintf("Your policy %s expired on %s. Apply again to stay covered.", policyRef, formatDate(end))
}

func PolicyMessageBody(policyRef, text string) string {
	return fmt.Sprintf("Regarding your policy %s: %s", policyRef, text)
}

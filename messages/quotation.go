package messages

import (
	"fmt"

	"github.com/motorsure/motorsure-api/api"
)

// DefaultQuotationTerms is used when the quoting underwriter does not
// supply terms of their own. The auto-quote path always appends the
// breakdown so the customer can see how the premium was computed.
func DefaultQuotationTerms(breakdown api.PremiumBreakdown) string {
	return fmt.Sprintf(
		"Annual premium %s = base %s + stamp duty %s + government levy %s. Termly instalment %s. Valid for 30 days.",
		breakdown.AnnualPremium, breakdown.BasePremium, breakdown.StampDuty,
		breakdown.GovernmentLevy, breakdown.TermlyPremium)
}

// QuotationAcceptedBody is sent to every underwriter when a customer
// accepts a quotation.
func QuotationAcceptedBody(customerName, policyRef, quotationRef string, premium api.Currency) string {
	return fmt.Sprintf("%s accepted quotation %s on policy %s for %s. Awaiting payment and approval.",
		customerName, quotationRef, policyRef, premium)
}

// QuotationDeclinedBody is sent to every underwriter when a customer
// declines a quotation.
func QuotationDeclinedBody(customerName, policyRef, quotationRef string) string {
	return fmt.Sprintf("%s declined quotation %s on policy %s.", customerName, quotationRef, policyRef)
}

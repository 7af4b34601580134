package messages

import (
	"fmt"
	"strings"
	"time"

	"github.com/motorsure/motorsure-api/api"
)

// ClaimSubmittedBody is sent to every underwriter when a customer files
// a new claim.
func ClaimSubmittedBody(customerName, claimRef, policyRef string, incidentDate time.Time, estimated api.Currency) string {
	return fmt.Sprintf("%s submitted claim %s on policy %s for an incident on %s, estimated at %s.",
		customerName, claimRef, policyRef, formatDate(incidentDate), estimated)
}

// ClaimStatusBody is sent to the claimant whenever their claim moves to a
// new status.
func ClaimStatusBody(claimRef string, status api.ClaimStatus, approvedAmount api.Currency, rejectionReason string) string {
	switch status {
	case api.ClaimStatusApproved:
		if approvedAmount > 0 {
			return fmt.Sprintf("Your claim %s has been approved for %s.", claimRef, approvedAmount)
		}
		return fmt.Sprintf("Your claim %s has been approved.", claimRef)
	case api.ClaimStatusRejected:
		if rejectionReason != "" {
			return fmt.Sprintf("Your claim %s has been rejected: %s", claimRef, rejectionReason)
		}
		return fmt.Sprintf("Your claim %s has been rejected.", claimRef)
	default:
		return fmt.Sprintf("Your claim %s is now %s.", claimRef, status)
	}
}

func ClaimSettledBody(claimRef string, amount api.Currency) string {
	return fmt.Sprintf("Your claim %s has been settled for %s.", claimRef, amount)
}

// ClaimDocumentsCompleteBody is sent to every underwriter exactly once,
// when the required document set for a claim is first fully covered.
func ClaimDocumentsCompleteBody(claimRef string, documentURLs []string) string {
	return fmt.Sprintf("All required documents for claim %s have been submitted: %s",
		claimRef, strings.Join(documentURLs, ", "))
}

// AssessorVisitBody is sent to the claimant when an assessor visit is
// scheduled.
func AssessorVisitBody(claimRef, assessorName string, visitDate time.Time, message string) string {
	body := fmt.Sprintf("%s will visit on %s to assess claim %s.",
		assessorName, formatDate(visitDate), claimRef)
	if message != "" {
		body += " " + message
	}
	return body
}

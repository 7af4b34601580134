// Package messages holds the titles and body text of every lifecycle
// notification. It is deliberately free of database types so the models
// package can persist notification rows built from these inside the same
// transaction as the state change that produced them.
package messages

import (
	"fmt"
	"time"

	"github.com/motorsure/motorsure-api/domain"
)

// Notification titles, one per lifecycle event
const (
	TitlePolicyApplied  = "New policy application"
	TitlePolicyQuoted   = "Policy quotation available"
	TitlePolicyApproved = "Policy approved"
	TitlePolicyRejected = "Policy rejected"
	TitlePolicyExpired  = "Policy expired"
	TitlePolicyMessage  = "Message from your insurer"

	TitleQuotationAccepted = "Quotation accepted"
	TitleQuotationDeclined = "Quotation declined"

	TitleClaimSubmitted         = "New claim submitted"
	TitleClaimStatusUpdated     = "Claim status updated"
	TitleClaimSettled           = "Claim settled"
	TitleClaimDocumentsComplete = "Claim documents submitted"
	TitleAssessorVisit          = "Assessor Visit Scheduled"
)

func formatDate(t time.Time) string {
	return t.Format(domain.DateFormat)
}

func formatDateRange(start, end time.Time) string {
	return fmt.Sprintf("%s..%s", formatDate(start), formatDate(end))
}

package listeners

import (
	"github.com/gobuffalo/events"

	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/log"
	"github.com/motorsure/motorsure-api/messages"
	"github.com/motorsure/motorsure-api/models"
)

func claimSubmitted(e events.Event) {
	if e.Kind != domain.EventApiClaimSubmitted {
		return
	}

	defer panicRecover(e.Kind)

	var claim models.Claim
	if err := findObject(e.Payload, &claim, e.Kind); err != nil {
		return
	}

	claim.LoadPolicy(models.DB, false)
	holder := policyHolder(&claim.Policy)

	emailUnderwriters(messages.TitleClaimSubmitted,
		messages.ClaimSubmittedBody(holder.Name(), claim.ReferenceNumber,
			claim.Policy.ReferenceNumber, claim.IncidentDate, claim.EstimatedAmount))
}

func claimStatusChanged(e events.Event) {
	if e.Kind != domain.EventApiClaimStatusChanged {
		return
	}

	defer panicRecover(e.Kind)

	var claim models.Claim
	if err := findObject(e.Payload, &claim, e.Kind); err != nil {
		return
	}

	claim.LoadPolicy(models.DB, false)

	emailUser(policyHolder(&claim.Policy), messages.TitleClaimStatusUpdated,
		messages.ClaimStatusBody(claim.ReferenceNumber, claim.Status,
			claim.ApprovedAmount, claim.RejectionReason))
}

func claimAssessorVisit(e events.Event) {
	if e.Kind != domain.EventApiClaimAssessorVisit {
		return
	}

	defer panicRecover(e.Kind)

	body, err := getBody(e.Payload)
	if err != nil {
		log.Errorf("%s listener: %s", e.Kind, err)
		return
	}

	var claim models.Claim
	if err := findObject(e.Payload, &claim, e.Kind); err != nil {
		return
	}

	claim.LoadPolicy(models.DB, false)

	emailUser(policyHolder(&claim.Policy), messages.TitleAssessorVisit, body)
}

func claimDocumentsComplete(e events.Event) {
	if e.Kind != domain.EventApiClaimDocumentsComplete {
		return
	}

	defer panicRecover(e.Kind)

	body, err := getBody(e.Payload)
	if err != nil {
		log.Errorf("%s listener: %s", e.Kind, err)
		return
	}

	emailUnderwriters(messages.TitleClaimDocumentsComplete, body)
}

func claimSettled(e events.Event) {
	if e.Kind != domain.EventApiClaimSettled {
		return
	}

	defer panicRecover(e.Kind)

	var claim models.Claim
	if err := findObject(e.Payload, &claim, e.Kind); err != nil {
		return
	}

	claim.LoadPolicy(models.DB, false)

	emailUser(policyHolder(&claim.Policy), messages.TitleClaimSettled,
		messages.ClaimSettledBody(claim.ReferenceNumber, claim.ApprovedAmount))
}

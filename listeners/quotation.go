package listeners

import (
	"github.com/gobuffalo/events"

	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/messages"
	"github.com/motorsure/motorsure-api/models"
)

func quotationAccepted(e events.Event) {
	if e.Kind != domain.EventApiQuotationAccepted {
		return
	}

	defer panicRecover(e.Kind)

	var quotation models.Quotation
	if err := findObject(e.Payload, &quotation, e.Kind); err != nil {
		return
	}

	quotation.LoadPolicy(models.DB, false)
	holder := policyHolder(&quotation.Policy)

	emailUnderwriters(messages.TitleQuotationAccepted,
		messages.QuotationAcceptedBody(holder.Name(), quotation.Policy.ReferenceNumber,
			quotation.ReferenceNumber, quotation.Premium))
}

func quotationDeclined(e events.Event) {
	if e.Kind != domain.EventApiQuotationDeclined {
		return
	}

	defer panicRecover(e.Kind)

	var quotation models.Quotation
	if err := findObject(e.Payload, &quotation, e.Kind); err != nil {
		return
	}

	quotation.LoadPolicy(models.DB, false)
	holder := policyHolder(&quotation.Policy)

	emailUnderwriters(messages.TitleQuotationDeclined,
		messages.QuotationDeclinedBody(holder.Name(), quotation.Policy.ReferenceNumber,
			quotation.ReferenceNumber))
}

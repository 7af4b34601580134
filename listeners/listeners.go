package listeners

import (
	"errors"
	"fmt"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/nulls"
	"github.com/gofrs/uuid"

	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/log"
	"github.com/motorsure/motorsure-api/models"
	"github.com/motorsure/motorsure-api/notifications"
)

type apiListener struct {
	name     string
	listener func(events.Event)
}

//
// Register new listener functions here.  Remember, though, that these groupings just
// describe what we want.  They don't make it happen this way. The listeners
// themselves still need to verify the event kind
//
var apiListeners = map[string][]apiListener{
	domain.EventApiPolicyApplied: {
		{
			name:     "policy-applied",
			listener: policyApplied,
		},
	},
	domain.EventApiPolicyQuoted: {
		{
			name:     "policy-quoted",
			listener: policyQuoted,
		},
	},
	domain.EventApiPolicyApproved: {
		{
			name:     "policy-approved",
			listener: policyApproved,
		},
	},
	domain.EventApiPolicyRejected: {
		{
			name:     "policy-rejected",
			listener: policyRejected,
		},
	},
	domain.EventApiPolicyExpired: {
		{
			name:     "policy-expired",
			listener: policyExpired,
		},
	},
	domain.EventApiPolicyMessage: {
		{
			name:     "policy-message",
			listener: policyMessage,
		},
	},
	domain.EventApiQuotationAccepted: {
		{
			name:     "quotation-accepted",
			listener: quotationAccepted,
		},
	},
	domain.EventApiQuotationDeclined: {
		{
			name:     "quotation-declined",
			listener: quotationDeclined,
		},
	},
	domain.EventApiClaimSubmitted: {
		{
			name:     "claim-submitted",
			listener: claimSubmitted,
		},
	},
	domain.EventApiClaimStatusChanged: {
		{
			name:     "claim-status-changed",
			listener: claimStatusChanged,
		},
	},
	domain.EventApiClaimSettled: {
		{
			name:     "claim-settled",
			listener: claimSettled,
		},
	},
	domain.EventApiClaimAssessorVisit: {
		{
			name:     "claim-assessor-visit",
			listener: claimAssessorVisit,
		},
	},
	domain.EventApiClaimDocumentsComplete: {
		{
			name:     "claim-documents-complete",
			listener: claimDocumentsComplete,
		},
	},
}

// RegisterListeners registers all the listeners to be used by the app
func RegisterListeners() {
	for _, listeners := range apiListeners {
		for _, l := range listeners {
			_, err := events.NamedListen(l.name, l.listener)
			if err != nil {
				log.Errorf("Failed registering listener: %s, err: %s", l.name, err.Error())
			}
		}
	}
}

func getID(p events.Payload) (uuid.UUID, error) {
	i, ok := p[domain.EventPayloadID]
	if !ok {
		return uuid.UUID{}, fmt.Errorf("id not in event payload")
	}

	switch id := i.(type) {
	case string:
		return uuid.FromStringOrNil(id), nil
	case uuid.UUID:
		return id, nil
	case nulls.UUID:
		return id.UUID, nil
	default:
		return uuid.UUID{}, fmt.Errorf("id not a valid type: %T", id)
	}
}

// getBody returns the pre-rendered message body some events carry so the
// email matches the in-app notification written by the emitting transaction.
func getBody(p events.Payload) (string, error) {
	body, ok := p[domain.EventPayloadBody].(string)
	if !ok || body == "" {
		return "", fmt.Errorf("body not in event payload")
	}
	return body, nil
}

// findObject loads the event's object by the ID in the payload, retrying with
// a backoff because the emitting transaction may not have committed yet.
func findObject(payload events.Payload, object interface{}, listenerName string) error {
	id, err := getID(payload)
	if err != nil {
		err := errors.New("Failed to get object ID from event payload: " + err.Error())
		log.Error(err.Error())
		return err
	}

	var findErr error
	for i := 1; i <= domain.Env.ListenerMaxRetries; i++ {
		findErr = models.DB.Find(object, id)
		if findErr == nil {
			return nil
		}
		time.Sleep(getDelayDuration(i * i))
		if i > 3 {
			break
		}
	}

	err = fmt.Errorf("Failed to find object in %s, %s", listenerName, findErr)
	log.Error(err.Error())
	return err
}

func panicRecover(name string) {
	if err := recover(); err != nil {
		log.Errorf("panic occurred in %s: %s", name, err)
	}
}

// getDelayDuration is a helper function to calculate delay in milliseconds before processing event
func getDelayDuration(multiplier int) time.Duration {
	return time.Duration(domain.Env.ListenerDelayMilliseconds) * time.Millisecond * time.Duration(multiplier)
}

// emailUser sends one email to the user. Email here is best effort; the
// durable in-app notification was already written by the emitting
// transaction.
func emailUser(user models.User, subject, body string) {
	msg := notifications.NewEmailMessage()
	msg.ToName = user.Name()
	msg.ToEmail = user.Email
	msg.Subject = subject
	msg.Body = body

	if err := notifications.Send(msg); err != nil {
		log.Errorf("error sending '%s' email to %s: %s", subject, user.Email, err)
	}
}

// emailUnderwriters sends one email to every unblocked underwriter.
func emailUnderwriters(subject, body string) {
	var underwriters models.Users
	if err := underwriters.FindByUserType(models.DB, models.UserTypeUnderwriter); err != nil {
		log.Errorf("error finding underwriters for '%s' email: %s", subject, err)
		return
	}

	for _, u := range underwriters {
		emailUser(u, subject, body)
	}
}

// policyHolder resolves the user behind the policy's customer profile.
func policyHolder(policy *models.Policy) models.User {
	policy.LoadCustomer(models.DB, false)
	policy.Customer.LoadUser(models.DB, false)
	return policy.Customer.User
}

package models

import (
	"net/http"
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/pop/v6/slices"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/motorsure/motorsure-api/api"
)

var ValidNotificationTypes = map[api.NotificationType]struct{}{
	api.NotificationTypeQuotation:    {},
	api.NotificationTypeStatusUpdate: {},
	api.NotificationTypeMessage:      {},
}

type Notifications []Notification

// Notification is an append-only, recipient-scoped record of a lifecycle
// event. Rows are created inside the transaction of the state change that
// produced them, so a rolled-back transition leaves no notification behind.
type Notification struct {
	ID          uuid.UUID            `db:"id"`
	RecipientID uuid.UUID            `db:"recipient_id" validate:"required"`
	Title       string               `db:"title" validate:"required"`
	Message     string               `db:"message" validate:"required"`
	Type        api.NotificationType `db:"type" validate:"notificationType"`
	Payload     slices.Map           `db:"payload"`
	IsRead      bool                 `db:"is_read"`
	CreatedAt   time.Time            `db:"created_at"`
	UpdatedAt   time.Time            `db:"updated_at"`

	Recipient User `belongs_to:"users" validate:"-"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (n *Notification) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(n), nil
}

func (n *Notification) Create(tx *pop.Connection) error {
	return create(tx, n)
}

func (n *Notification) Update(tx *pop.Connection) error {
	return update(tx, n)
}

func (n *Notification) GetID() uuid.UUID {
	return n.ID
}

func (n *Notification) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, n, id)
}

// IsActorAllowedTo scopes notifications strictly to their recipient
func (n *Notification) IsActorAllowedTo(tx *pop.Connection, actor User, p Permission, sub SubResource, r *http.Request) bool {
	switch p {
	case PermissionList:
		return true
	case PermissionView, PermissionUpdate:
		return n.RecipientID == actor.ID
	default:
		return false
	}
}

// MarkRead flags the notification as read by its recipient
func (n *Notification) MarkRead(tx *pop.Connection) error {
	if n.IsRead {
		return nil
	}
	n.IsRead = true
	return n.Update(tx)
}

func (n *Notification) LoadRecipient(tx *pop.Connection, reload bool) {
	if n.Recipient.ID == uuid.Nil || reload {
		if err := tx.Load(n, "Recipient"); err != nil {
			panic("database error loading Notification.Recipient, " + err.Error())
		}
	}
}

// AllForRecipient returns the recipient's notifications, newest first
func (ns *Notifications) AllForRecipient(tx *pop.Connection, userID uuid.UUID) error {
	err := tx.Where("recipient_id = ?", userID).Order("created_at desc").All(ns)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// UnreadCountForUser counts the recipient's unread notifications
func UnreadCountForUser(tx *pop.Connection, userID uuid.UUID) (int, error) {
	count, err := tx.Where("recipient_id = ? AND is_read = false", userID).Count(Notification{})
	if err != nil {
		return 0, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return count, nil
}

// Notify creates one notification row in the caller's transaction. A failed
// insert fails the whole transaction, which is what keeps notifications
// all-or-nothing with the state change that produced them.
func Notify(tx *pop.Connection, recipientID uuid.UUID, title, message string, nType api.NotificationType, payload map[string]interface{}) error {
	n := Notification{
		RecipientID: recipientID,
		Title:       title,
		Message:     message,
		Type:        nType,
		Payload:     slices.Map(payload),
	}
	return n.Create(tx)
}

// NotifyMany is the staff-broadcast variant of Notify
func NotifyMany(tx *pop.Connection, recipients Users, title, message string, nType api.NotificationType, payload map[string]interface{}) error {
	for _, r := range recipients {
		if err := Notify(tx, r.ID, title, message, nType, payload); err != nil {
			return err
		}
	}
	return nil
}

// NotifyUsersByType resolves the recipient set by role at event time,
// never from a cached subscriber list
func NotifyUsersByType(tx *pop.Connection, userType UserType, title, message string, nType api.NotificationType, payload map[string]interface{}) error {
	var recipients Users
	if err := recipients.FindByUserType(tx, userType); err != nil {
		return err
	}
	return NotifyMany(tx, recipients, title, message, nType, payload)
}

func ConvertNotification(n Notification) api.Notification {
	return api.Notification{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Payload:   map[string]interface{}(n.Payload),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func ConvertNotifications(ns Notifications) api.Notifications {
	out := make(api.Notifications, len(ns))
	for i, n := range ns {
		out[i] = ConvertNotification(n)
	}
	return out
}

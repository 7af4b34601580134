package api

import (
	"time"

	"github.com/gofrs/uuid"
)

type NotificationType string

const (
	NotificationTypeQuotation    = NotificationType("quotation")
	NotificationTypeStatusUpdate = NotificationType("status_update")
	NotificationTypeMessage      = NotificationType("message")
)

type Notifications []Notification

type Notification struct {
	ID        uuid.UUID              `json:"id"`
	Type      NotificationType       `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	IsRead    bool                   `json:"is_read"`
	CreatedAt time.Time              `json:"created_at"`
}

type NotificationUnreadCount struct {
	Count int `json:"count"`
}

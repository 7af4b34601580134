package actions

import (
	"errors"

	"github.com/gobuffalo/buffalo"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/models"
)

// swagger:operation GET /notifications Notifications NotificationsList
//
// NotificationsList
//
// list the current user's notifications, newest first
//
// ---
// responses:
//   '200':
//     description: a list of Notifications
//     schema:
//       type: array
//       items:
//         "$ref": "#/definitions/Notification"
func notificationsList(c buffalo.Context) error {
	var notifications models.Notifications
	if err := notifications.AllForRecipient(models.Tx(c), models.CurrentUser(c).ID); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertNotifications(notifications))
}

// swagger:operation GET /notifications/unread-count Notifications NotificationsUnreadCount
//
// NotificationsUnreadCount
//
// count the current user's unread notifications
//
// ---
// responses:
//   '200':
//     description: the unread count
//     schema:
//       "$ref": "#/definitions/NotificationUnreadCount"
func notificationsUnreadCount(c buffalo.Context) error {
	count, err := models.UnreadCountForUser(models.Tx(c), models.CurrentUser(c).ID)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, api.NotificationUnreadCount{Count: count})
}

// swagger:operation PUT /notifications/{id}/read Notifications NotificationsMarkRead
//
// NotificationsMarkRead
//
// mark a notification as read
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: notification ID
// responses:
//   '200':
//     description: the updated Notification
//     schema:
//       "$ref": "#/definitions/Notification"
func notificationsMarkRead(c buffalo.Context) error {
	notification := getReferencedNotificationFromCtx(c)
	if notification == nil {
		err := errors.New("notification not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	if err := notification.MarkRead(models.Tx(c)); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertNotification(*notification))
}

// getReferencedNotificationFromCtx pulls the models.Notification resource from context that was
// put there by the AuthZ middleware
func getReferencedNotificationFromCtx(c buffalo.Context) *models.Notification {
	notification, ok := c.Value(domain.TypeNotification).(*models.Notification)
	if !ok {
		return nil
	}
	return notification
}

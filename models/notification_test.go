package models

import (
	"github.com/motorsure/motorsure-api/api"
)

func (ms *ModelSuite) TestNotify() {
	users := CreateUserFixtures(ms.DB, 2).Users

	err := Notify(ms.DB, users[0].ID, "Test title", "test message", api.NotificationTypeMessage,
		map[string]interface{}{"reference_number": "POL12345678"})
	ms.NoError(err)

	var notifications Notifications
	ms.NoError(notifications.AllForRecipient(ms.DB, users[0].ID))
	ms.Len(notifications, 1)
	ms.Equal("Test title", notifications[0].Title)
	ms.False(notifications[0].IsRead)
	ms.Equal("POL12345678", notifications[0].Payload["reference_number"])

	// nothing lands on the other user
	ms.NoError(notifications.AllForRecipient(ms.DB, users[1].ID))
	ms.Len(notifications, 0)
}

func (ms *ModelSuite) TestNotifyUsersByType() {
	underwriters := CreateUserFixturesOfType(ms.DB, UserTypeUnderwriter, 2).Users
	customer := CreateUserFixtures(ms.DB, 1).Users[0]

	// blocked staff are excluded from broadcasts
	blocked := underwriters[1]
	blocked.IsBlocked = true
	ms.NoError(blocked.Update(ms.DB))

	err := NotifyUsersByType(ms.DB, UserTypeUnderwriter, "Broadcast", "new application", api.NotificationTypeStatusUpdate, nil)
	ms.NoError(err)

	var notifications Notifications
	ms.NoError(notifications.AllForRecipient(ms.DB, underwriters[0].ID))
	ms.Len(notifications, 1)

	ms.NoError(notifications.AllForRecipient(ms.DB, blocked.ID))
	ms.Len(notifications, 0)

	ms.NoError(notifications.AllForRecipient(ms.DB, customer.ID))
	ms.Len(notifications, 0)
}

func (ms *ModelSuite) TestNotification_MarkRead() {
	user := CreateUserFixtures(ms.DB, 1).Users[0]

	ms.NoError(Notify(ms.DB, user.ID, "One", "first", api.NotificationTypeMessage, nil))
	ms.NoError(Notify(ms.DB, user.ID, "Two", "second", api.NotificationTypeMessage, nil))

	count, err := UnreadCountForUser(ms.DB, user.ID)
	ms.NoError(err)
	ms.Equal(2, count)

	var notifications Notifications
	ms.NoError(notifications.AllForRecipient(ms.DB, user.ID))
	ms.NoError(notifications[0].MarkRead(ms.DB))

	count, err = UnreadCountForUser(ms.DB, user.ID)
	ms.NoError(err)
	ms.Equal(1, count)
}

func (ms *ModelSuite) TestNotification_validation() {
	n := Notification{
		Title:   "missing recipient",
		Message: "body",
		Type:    api.NotificationTypeMessage,
	}
	err := n.Create(ms.DB)
	ms.Error(err, "a notification must have a recipient")
}

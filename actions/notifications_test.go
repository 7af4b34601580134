package actions

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/models"
)

func (as *ActionSuite) Test_NotificationsListAndMarkRead() {
	fixtures := models.CreateUserFixtures(as.DB, 2)
	recipient := fixtures.Users[0]
	other := fixtures.Users[1]

	as.NoError(models.Notify(as.DB, recipient.ID, "Quotation ready", "Your quotation is ready.",
		api.NotificationTypeQuotation, nil))
	as.NoError(models.Notify(as.DB, recipient.ID, "Policy active", "Your policy is now active.",
		api.NotificationTypeStatusUpdate, nil))

	res := as.request(other, "/notifications").Get()
	as.Equal(http.StatusOK, res.Code)
	var empty api.Notifications
	as.NoError(json.Unmarshal([]byte(res.Body.String()), &empty))
	as.Len(empty, 0, "notifications must be scoped to their recipient")

	res = as.request(recipient, "/notifications").Get()
	body := res.Body.String()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)

	var notifications api.Notifications
	as.NoError(json.Unmarshal([]byte(body), &notifications))
	as.Len(notifications, 2)

	res = as.request(recipient, "/notifications/unread-count").Get()
	as.Equal(http.StatusOK, res.Code)
	var count api.NotificationUnreadCount
	as.NoError(as.decodeBody([]byte(res.Body.String()), &count))
	as.Equal(2, count.Count)

	// another user may not mark it read
	res = as.request(other, fmt.Sprintf("/notifications/%s/read", notifications[0].ID)).Put(nil)
	as.Equal(http.StatusNotFound, res.Code, "body: %s", res.Body.String())

	res = as.request(recipient, fmt.Sprintf("/notifications/%s/read", notifications[0].ID)).Put(nil)
	body = res.Body.String()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)

	var read api.Notification
	as.NoError(json.Unmarshal([]byte(body), &read))
	as.True(read.IsRead)

	res = as.request(recipient, "/notifications/unread-count").Get()
	as.NoError(as.decodeBody([]byte(res.Body.String()), &count))
	as.Equal(1, count.Count)
}

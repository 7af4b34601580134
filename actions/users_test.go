package actions

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/models"
)

func (as *ActionSuite) Test_UsersMe() {
	fixtures := models.CreateCustomerFixtures(as.DB, 1)
	customer := fixtures.Users[0]

	res := as.request(customer, "/users/me").Get()

	body := res.Body.String()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)

	var user api.User
	as.NoError(json.Unmarshal([]byte(body), &user))
	as.Equal(customer.Email, user.Email)
	as.NotNil(user.Customer, "customer users include their profile")
}

func (as *ActionSuite) Test_UsersList() {
	fixtures := models.CreateUserFixtures(as.DB, 2)
	manager := models.CreateUserFixturesOfType(as.DB, models.UserTypeManager, 1).Users[0]
	underwriter := models.CreateUserFixturesOfType(as.DB, models.UserTypeUnderwriter, 1).Users[0]

	tests := []struct {
		name       string
		actor      models.User
		wantStatus int
	}{
		{name: "customer denied", actor: fixtures.Users[0], wantStatus: http.StatusNotFound},
		{name: "underwriter denied", actor: underwriter, wantStatus: http.StatusNotFound},
		{name: "manager allowed", actor: manager, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.request(tt.actor, "/users").Get()
			as.Equal(tt.wantStatus, res.Code, "body: %s", res.Body.String())

			if res.Code != http.StatusOK {
				return
			}
			var users api.Users
			as.NoError(json.Unmarshal([]byte(res.Body.String()), &users))
			as.Len(users, 4)
		})
	}
}

func (as *ActionSuite) Test_AuthLogout() {
	fixtures := models.CreateUserFixtures(as.DB, 1)
	user := fixtures.Users[0]

	res := as.request(user, "/auth/logout").Delete()
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	// the token no longer authenticates
	res = as.request(user, "/users/me").Get()
	as.Equal(http.StatusUnauthorized, res.Code)
}

package actions

import (
	"errors"

	"github.com/gobuffalo/buffalo"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/models"
)

// swagger:operation GET /users Users UsersList
//
// UsersList
//
// list all users, managers only
//
// ---
// responses:
//   '200':
//     description: a list of Users
//     schema:
//       type: array
//       items:
//         "$ref": "#/definitions/User"
func usersList(c buffalo.Context) error {
	tx := models.Tx(c)

	var users models.Users
	if err := users.All(tx); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertUsers(tx, users))
}

// swagger:operation GET /users/{id} Users UsersView
//
// UsersView
//
// view a specific user
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: user ID
// responses:
//   '200':
//     description: a User
//     schema:
//       "$ref": "#/definitions/User"
func usersView(c buffalo.Context) error {
	user := getReferencedUserFromCtx(c)
	if user == nil {
		err := errors.New("user not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}

	return renderOk(c, models.ConvertUser(models.Tx(c), *user))
}

// swagger:operation GET /users/me Users UsersMe
//
// UsersMe
//
// view the authenticated user, including their customer profile
//
// ---
// responses:
//   '200':
//     description: the authenticated User
//     schema:
//       "$ref": "#/definitions/User"
func usersMe(c buffalo.Context) error {
	return renderOk(c, models.ConvertUser(models.Tx(c), models.CurrentUser(c)))
}

// getReferencedUserFromCtx pulls the models.User resource from context that was put there
// by the AuthZ middleware based on a url pattern of /users/{id}. This is NOT the authenticated
// API caller
func getReferencedUserFromCtx(c buffalo.Context) *models.User {
	user, ok := c.Value(domain.TypeUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

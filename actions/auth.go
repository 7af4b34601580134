package actions

import (
	"github.com/gobuffalo/buffalo"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/models"
)

// swagger:operation DELETE /auth/logout Auth AuthLogout
//
// AuthLogout
//
// delete the access token presented with this request
//
// ---
// responses:
//   '200':
//     description: logged out
func authLogout(c buffalo.Context) error {
	bearerToken := domain.GetBearerTokenFromRequest(c.Request())

	var userAccessToken models.UserAccessToken
	if err := userAccessToken.DeleteByAccessToken(models.Tx(c), bearerToken); err != nil {
		return reportError(c, api.NewAppError(err, api.ErrorDeletingAccessToken, api.CategoryInternal))
	}

	c.Session().Clear()
	return renderOk(c, map[string]string{"status": "logged out"})
}

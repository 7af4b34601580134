package actions

import (
	"errors"
	"fmt"

	"github.com/gobuffalo/buffalo"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/log"
	"github.com/motorsure/motorsure-api/models"
)

// AuthN resolves the Authorization bearer token to a user and puts that user
// in the request context. Expired tokens are deleted on sight.
func AuthN(next buffalo.Handler) buffalo.Handler {
	return func(c buffalo.Context) error {
		bearerToken := domain.GetBearerTokenFromRequest(c.Request())
		if bearerToken == "" {
			err := errors.New("no bearer token provided")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
		}

		var userAccessToken models.UserAccessToken
		tx := models.Tx(c)
		if err := userAccessToken.FindByAccessToken(tx, bearerToken); err != nil {
			var appErr *api.AppError
			if errors.As(err, &appErr) && appErr.Category == api.CategoryDatabase {
				return reportError(c, appErr)
			}
			err = errors.New("invalid bearer token")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
		}

		isExpired, err := userAccessToken.DeleteIfExpired(tx)
		if err != nil {
			return reportError(c, err)
		}

		if isExpired {
			err = errors.New("expired bearer token")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
		}

		user, err := userAccessToken.GetUser(tx)
		if err != nil {
			err = fmt.Errorf("error finding user by access token, %s", err.Error())
			return reportError(c, err)
		}

		if user.IsBlocked {
			err = errors.New("user is blocked")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
		}

		c.Set(domain.ContextKeyCurrentUser, user)

		log.SetUser(user.ID.String(), user.Name(), user.Email)
		domain.NewExtra(c, "user_id", user.ID)
		domain.NewExtra(c, "email", user.Email)
		domain.NewExtra(c, "ip", c.Request().RemoteAddr)

		return next(c)
	}
}

// Motorsure API
//
// Terms Of Service:
//
// there are no TOS at this moment, use at your own risk we take no responsibility
//
//     Schemes: https
//     Host: localhost
//     BasePath: /
//     Version: 0.0.1
//     License: MIT http://opensource.org/licenses/MIT
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     SecurityDefinitions:
//     bearerAuth:
//         type: apiKey
//         name: Authorization
//         in: header
//
// swagger:meta
package actions

import (
	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/buffalo-pop/v3/pop/popmw"
	contenttype "github.com/gobuffalo/mw-contenttype"
	i18n "github.com/gobuffalo/mw-i18n/v2"
	paramlogger "github.com/gobuffalo/mw-paramlogger"
	"github.com/gorilla/sessions"
	"github.com/rs/cors"

	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/locales"
	"github.com/motorsure/motorsure-api/log"
	"github.com/motorsure/motorsure-api/models"
)

var app *buffalo.App

// App is where all routes and middleware for buffalo
// should be defined. This is the nerve center of your
// application.
//
// Routing, middleware, groups, etc... are declared TOP -> DOWN.
// This means if you add a middleware to `app` *after* declaring a
// group, that group will NOT have that new middleware. The same
// is true of resource declarations as well.
//
// It also means that routes are checked in the order they are declared.
func App() *buffalo.App {
	if app == nil {
		app = buffalo.New(buffalo.Options{
			Env: domain.Env.GoEnv,
			PreWares: []buffalo.PreWare{
				cors.New(cors.Options{
					AllowCredentials: true,
					AllowedOrigins:   []string{domain.Env.UIURL},
					AllowedMethods:   []string{"HEAD", "GET", "POST", "PUT", "PATCH", "DELETE"},
					AllowedHeaders:   []string{"*"},
				}).Handler,
			},
			SessionName:  "_motorsure_api_session",
			SessionStore: sessions.NewCookieStore([]byte(domain.Env.SessionSecret)),
		})

		var err error
		domain.T, err = i18n.New(locales.FS(), "en")
		if err != nil {
			_ = app.Stop(err)
		}
		app.Use(domain.T.Middleware())

		// Report panics and request errors to Sentry
		app.Use(log.SentryMiddleware)

		// Log request parameters (filters apply).
		app.Use(paramlogger.ParameterLogger)

		// Set the request content type to JSON
		app.Use(contenttype.Set("application/json"))

		// Wraps each request in a transaction.
		app.Use(popmw.Transaction(models.DB))

		registerCustomErrorHandler(app)

		app.GET("/", HomeHandler)

		// reference data, no authentication needed
		configGroup := app.Group("/config")
		configGroup.GET("/coverages", configCoverages)
		configGroup.GET("/vehicle-categories", configVehicleCategories)

		authGroup := app.Group("/auth")
		authGroup.Use(AuthN)
		authGroup.DELETE("/logout", authLogout)

		// routes without a {resource}/{id} shape are declared before the
		// AuthZ groups for the same prefixes
		meGroup := app.Group("/" + domain.TypeUser)
		meGroup.Use(AuthN)
		meGroup.GET("/me", usersMe)

		countGroup := app.Group("/" + domain.TypeNotification)
		countGroup.Use(AuthN)
		countGroup.GET("/unread-count", notificationsUnreadCount)

		policiesGroup := app.Group("/" + domain.TypePolicy)
		policiesGroup.Use(AuthN, AuthZ)
		policiesGroup.GET("/", policiesList)
		policiesGroup.POST("/", policiesApply)
		policiesGroup.GET("/{id}", policiesView)
		policiesGroup.POST("/{id}/quote", policiesQuote)
		policiesGroup.POST("/{id}/auto-quote", policiesAutoQuote)
		policiesGroup.POST("/{id}/approve", policiesApprove)
		policiesGroup.POST("/{id}/reject", policiesReject)
		policiesGroup.POST("/{id}/message", policiesMessage)
		policiesGroup.POST("/{id}/claims", claimsSubmit)

		quotationsGroup := app.Group("/" + domain.TypeQuotation)
		quotationsGroup.Use(AuthN, AuthZ)
		quotationsGroup.GET("/", quotationsList)
		quotationsGroup.GET("/{id}", quotationsView)
		quotationsGroup.POST("/{id}/accept", quotationsAccept)
		quotationsGroup.POST("/{id}/decline", quotationsDecline)

		claimsGroup := app.Group("/" + domain.TypeClaim)
		claimsGroup.Use(AuthN, AuthZ)
		claimsGroup.GET("/", claimsList)
		claimsGroup.GET("/{id}", claimsView)
		claimsGroup.POST("/{id}/process", claimsProcess)
		claimsGroup.POST("/{id}/assessor-visit", claimsAssessorVisit)
		claimsGroup.POST("/{id}/settle", claimsSettle)
		claimsGroup.GET("/{id}/documents", claimDocumentsList)
		claimsGroup.POST("/{id}/documents", claimDocumentsAttach)

		vehiclesGroup := app.Group("/" + domain.TypeVehicle)
		vehiclesGroup.Use(AuthN, AuthZ)
		vehiclesGroup.GET("/", vehiclesList)
		vehiclesGroup.POST("/", vehiclesCreate)
		vehiclesGroup.PUT("/{id}", vehiclesUpdate)

		customersGroup := app.Group("/" + domain.TypeCustomer)
		customersGroup.Use(AuthN, AuthZ)
		customersGroup.GET("/{id}", customersView)
		customersGroup.PUT("/{id}", customersUpdate)

		notificationsGroup := app.Group("/" + domain.TypeNotification)
		notificationsGroup.Use(AuthN, AuthZ)
		notificationsGroup.GET("/", notificationsList)
		notificationsGroup.PUT("/{id}/read", notificationsMarkRead)

		usersGroup := app.Group("/" + domain.TypeUser)
		usersGroup.Use(AuthN, AuthZ)
		usersGroup.GET("/", usersList)
		usersGroup.GET("/{id}", usersView)
	}

	return app
}

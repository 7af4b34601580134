package models

import (
	"testing"

	"github.com/motorsure/motorsure-api/api"
)

func (ms *ModelSuite) TestUser_capabilities() {
	tests := []struct {
		userType                            UserType
		isStaff, canQuote, canApprove       bool
		canAutoQuote, canProcess, canNotify bool
	}{
		{
			userType: UserTypeCustomer,
		},
		{
			userType:     UserTypeUnderwriter,
			isStaff:      true,
			canQuote:     true,
			canApprove:   true,
			canAutoQuote: true,
			canProcess:   true,
			canNotify:    true,
		},
		{
			userType:     UserTypeManager,
			isStaff:      true,
			canQuote:     true,
			canAutoQuote: true,
			canProcess:   true,
			canNotify:    true,
		},
	}

	for _, tt := range tests {
		ms.T().Run(string(tt.userType), func(t *testing.T) {
			u := User{UserType: tt.userType}
			ms.Equal(tt.isStaff, u.IsStaff())
			ms.Equal(tt.canQuote, u.CanQuotePolicy())
			ms.Equal(tt.canApprove, u.CanApprovePolicy())
			ms.Equal(tt.canAutoQuote, u.CanAutoQuotePolicy())
			ms.Equal(tt.canProcess, u.CanProcessClaims())
			ms.Equal(tt.canNotify, u.CanMessageCustomers())
		})
	}
}

func (ms *ModelSuite) TestUser_Customer() {
	f := CreateCustomerFixtures(ms.DB, 1)
	user := f.Users[0]
	bare := CreateUserFixturesOfType(ms.DB, UserTypeUnderwriter, 1).Users[0]

	customer, err := user.Customer(ms.DB)
	ms.NoError(err)
	ms.Equal(f.Customers[0].ID, customer.ID)

	_, err = bare.Customer(ms.DB)
	ms.EqualAppError(api.AppError{Key: api.ErrorCustomerProfileNotFound, Category: api.CategoryNotFound}, err)
}

func (ms *ModelSuite) TestUsers_FindByUserType() {
	CreateUserFixtures(ms.DB, 2)
	underwriters := CreateUserFixturesOfType(ms.DB, UserTypeUnderwriter, 2).Users

	blocked := underwriters[0]
	blocked.IsBlocked = true
	ms.NoError(blocked.Update(ms.DB))

	var found Users
	ms.NoError(found.FindByUserType(ms.DB, UserTypeUnderwriter))
	ms.Len(found, 1)
	ms.Equal(underwriters[1].ID, found[0].ID)
}

func (ms *ModelSuite) TestUser_CreateAccessToken() {
	user := CreateUserFixtures(ms.DB, 1).Users[0]

	uat, err := user.CreateAccessToken(ms.DB)
	ms.NoError(err)
	ms.NotEmpty(uat.AccessToken, "clear-text token must be returned to the caller")
	ms.Equal(HashAccessToken(uat.AccessToken), uat.TokenHash)

	var fromDB UserAccessToken
	ms.NoError(fromDB.FindByAccessToken(ms.DB, uat.AccessToken))
	ms.Equal(user.ID, fromDB.UserID)

	var missing User
	_, err = missing.CreateAccessToken(ms.DB)
	ms.Error(err)
}

package models

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/domain"
)

// UserType is the application role of a user
type UserType string

const (
	UserTypeCustomer    = UserType("customer")
	UserTypeUnderwriter = UserType("underwriter")
	UserTypeManager     = UserType("manager")
)

var validUserTypes = map[UserType]struct{}{
	UserTypeCustomer:    {},
	UserTypeUnderwriter: {},
	UserTypeManager:     {},
}

// Users is a slice of User objects
type Users []User

// User model
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email" validate:"required,email"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	UserType     UserType  `db:"user_type" validate:"userType"`
	PhoneNumber  string    `db:"phone_number"`
	IsBlocked    bool      `db:"is_blocked"`
	LastLoginUTC time.Time `db:"last_login_utc"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (u *User) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(u), nil
}

// HashAccessToken returns a sha256.Sum256 of the input value
func HashAccessToken(accessToken string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(accessToken)))
}

func (u *User) GetID() uuid.UUID {
	return u.ID
}

func (u *User) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, u, id)
}

func (u *User) FindByEmail(tx *pop.Connection, email string) error {
	return appErrorFromDB(tx.Where("email = ?", email).First(u), api.ErrorQueryFailure)
}

func (u *User) IsActorAllowedTo(tx *pop.Connection, actor User, p Permission, sub SubResource, req *http.Request) bool {
	switch p {
	case PermissionView:
		return actor.IsStaff() || actor.ID == u.ID
	case PermissionList, PermissionCreate, PermissionDelete:
		return actor.UserType == UserTypeManager
	case PermissionUpdate:
		return actor.IsStaff() || actor.ID == u.ID
	default:
		return false
	}
}

// IsStaff is true for underwriters and managers
func (u *User) IsStaff() bool {
	return u.UserType == UserTypeUnderwriter || u.UserType == UserTypeManager
}

// Capability checks. Each lifecycle operation asks one of these before any
// state mutation so the authorization rules stay auditable in one place.

func (u *User) CanQuotePolicy() bool {
	return u.IsStaff()
}

func (u *User) CanAutoQuotePolicy() bool {
	return u.IsStaff()
}

func (u *User) CanApprovePolicy() bool {
	return u.UserType == UserTypeUnderwriter
}

func (u *User) CanProcessClaims() bool {
	return u.IsStaff()
}

func (u *User) CanMessageCustomers() bool {
	return u.IsStaff()
}

func (u *User) Name() string {
	return Name{First: u.FirstName, Last: u.LastName}.String()
}

func (u *User) Create(tx *pop.Connection) error {
	return create(tx, u)
}

func (u *User) Save(tx *pop.Connection) error {
	return save(tx, u)
}

func (u *User) Update(tx *pop.Connection) error {
	return update(tx, u)
}

// CreateAccessToken creates a new UserAccessToken for the user and returns
// the clear-text token with its expiry time
func (u *User) CreateAccessToken(tx *pop.Connection) (UserAccessToken, error) {
	if u.ID == uuid.Nil {
		return UserAccessToken{}, api.NewAppError(
			fmt.Errorf("no user ID provided to CreateAccessToken"),
			api.ErrorCreatingAccessToken, api.CategoryInternal)
	}

	uat := InitAccessToken()
	uat.UserID = u.ID
	if err := uat.Create(tx); err != nil {
		return UserAccessToken{}, err
	}

	return uat, nil
}

// Customer returns the customer profile belonging to the user. A missing
// profile is an explicit not-found error, not an empty result.
func (u *User) Customer(tx *pop.Connection) (Customer, error) {
	var customer Customer
	err := tx.Where("user_id = ?", u.ID).First(&customer)
	if err != nil {
		if domain.IsOtherThanNoRows(err) {
			return Customer{}, appErrorFromDB(err, api.ErrorQueryFailure)
		}
		return Customer{}, api.NewAppError(
			fmt.Errorf("no customer profile for user %s: %w", u.ID, err),
			api.ErrorCustomerProfileNotFound, api.CategoryNotFound)
	}
	return customer, nil
}

func (us *Users) All(tx *pop.Connection) error {
	return appErrorFromDB(tx.Order("created_at asc").All(us), api.ErrorQueryFailure)
}

// FindByUserType returns all unblocked users holding the given role. This is
// evaluated per event so staff broadcast recipients are never stale.
func (us *Users) FindByUserType(tx *pop.Connection, userType UserType) error {
	err := tx.Where("user_type = ? AND is_blocked = false", userType).All(us)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

func ConvertUser(tx *pop.Connection, u User) api.User {
	return api.User{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Name:         u.Name(),
		UserType:     string(u.UserType),
		LastLoginUTC: u.LastLoginUTC,
	}
}

func ConvertUsers(tx *pop.Connection, us Users) api.Users {
	users := make(api.Users, len(us))
	for i, u := range us {
		users[i] = ConvertUser(tx, u)
	}
	return users
}

// +build development

// This build tag ensures that this file will not be included unless
//  the `development` tag is explicitly requested (which should be never)

package models

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/domain"
)

type FixturesConfig struct {
	NumberOfCustomers   int
	VehiclesPerCustomer int
	PoliciesPerCustomer int
	ClaimsPerPolicy     int
}

// Fixtures hold slices of model objects created for test fixtures
type Fixtures struct {
	Claims
	Coverages
	Customers
	Policies
	Quotations
	UserAccessTokens
	Users
	Vehicles
	VehicleCategories
}

// TestBuffaloContext is a buffalo context user in tests
type TestBuffaloContext struct {
	buffalo.DefaultContext
	params map[interface{}]interface{}
}

// Value returns the value associated with the given key in the test context
func (b *TestBuffaloContext) Value(key interface{}) interface{} {
	return b.params[key]
}

// Set sets the value to be associated with the given key in the test context
func (b *TestBuffaloContext) Set(key string, val interface{}) {
	b.params[key] = val
}

// CreateTestContext sets the domain.ContextKeyCurrentUser to the user param in the TestBuffaloContext
func CreateTestContext(user User) buffalo.Context {
	ctx := &TestBuffaloContext{
		params: map[interface{}]interface{}{},
	}
	ctx.Set(domain.ContextKeyCurrentUser, user)
	return ctx
}

// CreateUserFixtures generates any number of customer-type user records for
// testing. The access token for each user is the same as the user's Email.
func CreateUserFixtures(tx *pop.Connection, n int) Fixtures {
	return CreateUserFixturesOfType(tx, UserTypeCustomer, n)
}

// CreateUserFixturesOfType generates any number of user records of the given
// type. The access token for each user is the same as the user's Email.
func CreateUserFixturesOfType(tx *pop.Connection, userType UserType, n int) Fixtures {
	unique := domain.GetUUID().String()

	users := make(Users, n)
	accessTokenFixtures := make(UserAccessTokens, n)
	for i := range users {
		users[i].Email = fmt.Sprintf("user%d_%s@example.com", i, unique)
		iStr := strconv.Itoa(i)
		users[i].FirstName = "first" + iStr
		users[i].LastName = "last" + iStr
		users[i].UserType = userType
		users[i].LastLoginUTC = time.Now()
		MustCreate(tx, &users[i])

		accessTokenFixtures[i].UserID = users[i].ID
		accessTokenFixtures[i].TokenHash = HashAccessToken(users[i].Email)
		accessTokenFixtures[i].ExpiresAt = time.Now().UTC().Add(time.Minute * 60)
		accessTokenFixtures[i].LastUsedAt = nulls.NewTime(time.Now())
		MustCreate(tx, &accessTokenFixtures[i])
	}

	return Fixtures{
		Users:            users,
		UserAccessTokens: accessTokenFixtures,
	}
}

// CreateCustomerFixtures generates any number of customer profiles, each with
// its own user record.
func CreateCustomerFixtures(tx *pop.Connection, n int) Fixtures {
	fixtures := CreateUserFixtures(tx, n)

	customers := make(Customers, n)
	for i := range customers {
		customers[i].UserID = fixtures.Users[i].ID
		customers[i].NationalID = randStr(12)
		customers[i].PhoneNumber = "+26377" + randDigits(7)
		customers[i].Address = randStr(20)
		customers[i].DateOfBirth = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
		customers[i].LicenseNumber = randStr(8)
		MustCreate(tx, &customers[i])
	}

	fixtures.Customers = customers
	return fixtures
}

// CreateVehicleFixtures generates any number of vehicle records owned by the
// given customer.
func CreateVehicleFixtures(tx *pop.Connection, customer Customer, n int) Fixtures {
	category := createVehicleCategory(tx)

	vehicles := make(Vehicles, n)
	for i := range vehicles {
		vehicles[i].CustomerID = customer.ID
		vehicles[i].CategoryID = category.ID
		vehicles[i].RegistrationNumber = "AE" + randDigits(5)
		vehicles[i].EngineNumber = randStr(10)
		vehicles[i].ChassisNumber = randStr(17)
		vehicles[i].Make = "Toyota"
		vehicles[i].Model = randStr(6)
		vehicles[i].Year = 2018
		vehicles[i].MarketValue = api.Currency(rand.Int31n(5_000_000) + 5_000_000)
		MustCreate(tx, &vehicles[i])
	}

	return Fixtures{
		Vehicles:          vehicles,
		VehicleCategories: VehicleCategories{category},
	}
}

func createVehicleCategory(tx *pop.Connection) VehicleCategory {
	var category VehicleCategory
	if err := category.FindByName(tx, "light_vehicles"); err == nil {
		return category
	}

	category = VehicleCategory{Name: "light_vehicles"}
	MustCreate(tx, &category)
	return category
}

// CreateCoverageFixtures ensures one coverage product of each type exists.
func CreateCoverageFixtures(tx *pop.Connection) Coverages {
	// ordering by name keeps comprehensive first
	var coverages Coverages
	if err := tx.Order("name").All(&coverages); err != nil {
		panic("failed to load coverages, " + err.Error())
	}
	if len(coverages) > 0 {
		return coverages
	}

	coverages = Coverages{
		{
			Name:        "Comprehensive Cover",
			Type:        api.CoverageTypeComprehensive,
			Description: "Covers damage to your own vehicle as well as third parties",
		},
		{
			Name:        "Third Party Cover",
			Type:        api.CoverageTypeThirdParty,
			Description: "Covers liability to third parties only",
		},
	}
	for i := range coverages {
		MustCreate(tx, &coverages[i])
	}
	return coverages
}

// CreatePolicyFixtures generates customer, vehicle, coverage and policy
// records. Policies are created active with comprehensive cover and a one
// year term starting today.
// Uses FixturesConfig fields: NumberOfCustomers, VehiclesPerCustomer,
// PoliciesPerCustomer, ClaimsPerPolicy
func CreatePolicyFixtures(tx *pop.Connection, config FixturesConfig) Fixtures {
	if config.NumberOfCustomers < 1 {
		config.NumberOfCustomers = 1
	}
	if config.VehiclesPerCustomer < config.PoliciesPerCustomer {
		config.VehiclesPerCustomer = config.PoliciesPerCustomer
	}

	fixtures := CreateCustomerFixtures(tx, config.NumberOfCustomers)
	coverages := CreateCoverageFixtures(tx)
	comprehensive := coverages[0]

	var vehicles Vehicles
	var policies Policies
	var claims Claims

	startDate := time.Now().UTC().Truncate(domain.DurationDay)

	for _, customer := range fixtures.Customers {
		vf := CreateVehicleFixtures(tx, customer, config.VehiclesPerCustomer)
		vehicles = append(vehicles, vf.Vehicles...)
		fixtures.VehicleCategories = vf.VehicleCategories

		for j := 0; j < config.PoliciesPerCustomer; j++ {
			vehicle := vf.Vehicles[j]
			policy := Policy{
				ReferenceNumber: uniquePolicyReferenceNumber(tx),
				CustomerID:      customer.ID,
				VehicleID:       vehicle.ID,
				CoverageID:      comprehensive.ID,
				CoverageType:    comprehensive.Type,
				Status:          api.PolicyStatusActive,
				StartDate:       startDate,
				EndDate:         startDate.AddDate(1, 0, -1),
				PaymentTerm:     api.PaymentTermAnnual,
			}
			MustCreate(tx, &policy)
			policies = append(policies, policy)

			for k := 0; k < config.ClaimsPerPolicy; k++ {
				claims = append(claims, createClaimFixture(tx, policy))
			}
		}
	}

	fixtures.Coverages = coverages
	fixtures.Vehicles = vehicles
	fixtures.Policies = policies
	fixtures.Claims = claims
	return fixtures
}

// CreatePendingPolicyFixtures generates pending policies, each with one sent
// quotation, for exercising the quote/accept/approve flow. The last user in
// the returned fixtures is the underwriter that issued the quotations.
func CreatePendingPolicyFixtures(tx *pop.Connection, config FixturesConfig) Fixtures {
	fixtures := CreatePolicyFixtures(tx, config)

	staff := CreateUserFixturesOfType(tx, UserTypeUnderwriter, 1)
	underwriter := staff.Users[0]

	for i := range fixtures.Policies {
		fixtures.Policies[i].Status = api.PolicyStatusPending
		if err := tx.UpdateColumns(&fixtures.Policies[i], "status"); err != nil {
			panic("error updating policy fixture status, " + err.Error())
		}
		fixtures.Quotations = append(fixtures.Quotations,
			createQuotationFixture(tx, fixtures.Policies[i], underwriter))
	}

	fixtures.Users = append(fixtures.Users, staff.Users...)
	fixtures.UserAccessTokens = append(fixtures.UserAccessTokens, staff.UserAccessTokens...)
	return fixtures
}

func createClaimFixture(tx *pop.Connection, policy Policy) Claim {
	claim := Claim{
		PolicyID:        policy.ID,
		IncidentDate:    time.Now().UTC().Add(-domain.DurationDay),
		Description:     randStr(25),
		EstimatedAmount: api.Currency(rand.Int31n(100_000) + 10_000),
		Status:          api.ClaimStatusSubmitted,
		ApprovalStatus:  api.ClaimApprovalStatusPending,
	}
	if err := claim.Create(tx); err != nil {
		panic(fmt.Sprintf("error creating claim fixture, %s", err))
	}
	return claim
}

// createQuotationFixture generates a sent quotation on the policy, priced by
// the premium calculator.
func createQuotationFixture(tx *pop.Connection, policy Policy, creator User) Quotation {
	policy.LoadVehicle(tx, false)
	breakdown, err := CalculatePremium(policy.CoverageType, policy.Vehicle.MarketValue)
	if err != nil {
		panic("error pricing quotation fixture, " + err.Error())
	}

	quotation := Quotation{
		ReferenceNumber: uniqueQuotationReferenceNumber(tx),
		PolicyID:        policy.ID,
		Premium:         breakdown.AnnualPremium,
		CoverageAmount:  policy.Vehicle.MarketValue,
		CurrencyCode:    "USD",
		Terms:           randStr(30),
		BankDetails:     domain.PaymentInstructions(policy.ReferenceNumber),
		PaymentURL:      domain.Env.UIURL + "/quotations/pending/payment",
		Status:          api.QuotationStatusSent,
		CreatorID:       creator.ID,
	}
	MustCreate(tx, &quotation)
	return quotation
}

// MustCreate saves a record to the database with validation. Panics if any error occurs.
func MustCreate(tx *pop.Connection, f interface{}) {
	// Use `create` instead of `tx.Create` to check validation rules
	err := create(tx, f)
	if err != nil {
		panic(fmt.Sprintf("error creating %T fixture, %s", f, err))
	}
}

func randStr(n int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = chars[rand.Int63()%int64(len(chars))]
	}
	return string(b)
}

func randDigits(n int) string {
	return domain.RandomString(n, "1234567890")
}

func DestroyAll() {
	// delete all Users, UserAccessTokens, Customers, Vehicles and Notifications
	var users Users
	destroyTable(&users)

	// delete all Claims and ClaimDocuments
	var claims Claims
	destroyTable(&claims)

	// delete all Policies and Quotations
	var policies Policies
	destroyTable(&policies)

	// delete all Coverages
	var coverages Coverages
	destroyTable(&coverages)

	// delete all VehicleCategories
	var categories VehicleCategories
	destroyTable(&categories)
}

func destroyTable(i interface{}) {
	if err := DB.All(i); err != nil {
		panic(err.Error())
	}
	if err := DB.Destroy(i); err != nil {
		panic(err.Error())
	}
}

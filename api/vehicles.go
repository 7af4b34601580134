package api

import (
	"time"

	"github.com/gofrs/uuid"
)

type VehicleCategories []VehicleCategory

// VehicleCategory is a rating class of vehicle, e.g. "light_vehicles"
type VehicleCategory struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type Vehicles []Vehicle

type Vehicle struct {
	ID                 uuid.UUID `json:"id"`
	CustomerID         uuid.UUID `json:"customer_id"`
	CategoryID         uuid.UUID `json:"category_id"`
	Category           string    `json:"category,omitempty"`
	RegistrationNumber string    `json:"registration_number"`
	EngineNumber       string    `json:"engine_number"`
	ChassisNumber      string    `json:"chassis_number"`
	Make               string    `json:"make"`
	Model              string    `json:"model"`
	Year               int       `json:"year"`
	MarketValue        Currency  `json:"market_value"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type VehicleCreateInput struct {
	CategoryID         uuid.UUID `json:"category_id"`
	RegistrationNumber string    `json:"registration_number"`
	EngineNumber       string    `json:"engine_number"`
	ChassisNumber      string    `json:"chassis_number"`
	Make               string    `json:"make"`
	Model              string    `json:"model"`
	Year               int       `json:"year"`
	MarketValue        Currency  `json:"market_value"`
}

type Coverages []Coverage

// Coverage is a product a policy can be written against
type Coverage struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Type        CoverageType `json:"type"`
	Description string       `json:"description,omitempty"`
}

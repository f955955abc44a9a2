package dto

import (
	"time"

	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
)

// CreateTripRequest defines the data needed to open a new trip ledger.
type CreateTripRequest struct {
	Name            string `json:"name" binding:"required,max=200"`
	Description     string `json:"description" binding:"max=1000"`
	DefaultCurrency string `json:"defaultCurrency" binding:"omitempty,currency"`
}

// TripResponse defines the data returned for a trip.
type TripResponse struct {
	TripID          string    `json:"tripID"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DefaultCurrency string    `json:"defaultCurrency"`
	CreatedAt       time.Time `json:"createdAt"`
	CreatedBy       string    `json:"createdBy"`
	LastUpdatedAt   time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy   string    `json:"lastUpdatedBy"`
}

// ToTripResponse converts a domain.Trip to TripResponse DTO
func ToTripResponse(t *domain.Trip) TripResponse {
	return TripResponse{
		TripID:          t.TripID,
		Name:            t.Name,
		Description:     t.Description,
		DefaultCurrency: string(t.DefaultCurrency),
		CreatedAt:       t.CreatedAt,
		CreatedBy:       t.CreatedBy,
		LastUpdatedAt:   t.LastUpdatedAt,
		LastUpdatedBy:   t.LastUpdatedBy,
	}
}

// ToListTripResponse converts a slice of domain.Trip to DTOs
func ToListTripResponse(trips []domain.Trip) []TripResponse {
	res := make([]TripResponse, len(trips))
	for i, t := range trips {
		res[i] = ToTripResponse(&t)
	}
	return res
}

package dto

import "github.com/clicktorwanda/backend/internal/models"

// DestinationListResponse envelope
type DestinationListResponse struct {
	Destinations []models.Destination `json:"destinations"`
}

// HotelListResponse envelope
type HotelListResponse struct {
	Hotels []models.Hotel `json:"hotels"`
}

// ActivityListResponse envelope
type ActivityListResponse struct {
	Activities []models.Activity `json:"activities"`
}

// CarListResponse envelope
type CarListResponse struct {
	Cars []models.Car `json:"cars"`
}

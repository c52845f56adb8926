package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clicktorwanda/backend/internal/dto"
	"github.com/clicktorwanda/backend/internal/models"
	"github.com/clicktorwanda/backend/internal/utils"
)

// CatalogHandler serves the public destination/hotel/activity/car listings
type CatalogHandler struct {
	db *pgxpool.Pool
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(db *pgxpool.Pool) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// loadDestinations fetches the full destination catalog.
func (h *CatalogHandler) loadDestinations(ctx context.Context) ([]models.Destination, error) {
	rows, err := h.db.Query(ctx,
		`SELECT id, name, description, region, latitude, longitude FROM destinations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.Destination, 0)
	for rows.Next() {
		var d models.Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Region, &d.Latitude, &d.Longitude); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// loadHotels fetches hotels, optionally filtered by destination.
func (h *CatalogHandler) loadHotels(ctx context.Context, destinationID string) ([]models.Hotel, error) {
	rows, err := h.db.Query(ctx,
		`SELECT id, name, destination_id, price_band, latitude, longitude, booking_url
		   FROM hotels
		  WHERE ($1 = '' OR destination_id = $1)
		  ORDER BY name`, destinationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.Hotel, 0)
	for rows.Next() {
		var m models.Hotel
		if err := rows.Scan(&m.ID, &m.Name, &m.DestinationID, &m.PriceBand, &m.Latitude, &m.Longitude, &m.BookingURL); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// loadActivities fetches activities, optionally filtered by destination.
func (h *CatalogHandler) loadActivities(ctx context.Context, destinationID string) ([]models.Activity, error) {
	rows, err := h.db.Query(ctx,
		`SELECT id, name, destination_id, duration_hours, booking_url
		   FROM activities
		  WHERE ($1 = '' OR destination_id = $1)
		  ORDER BY name`, destinationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.Activity, 0)
	for rows.Next() {
		var m models.Activity
		if err := rows.Scan(&m.ID, &m.Name, &m.DestinationID, &m.DurationHours, &m.BookingURL); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// Destinations handles GET /api/destinations and /api/destinations/{id}
// @Summary List destinations
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.DestinationListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/destinations [get]
func (h *CatalogHandler) Destinations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if strings.HasPrefix(r.URL.Path, "/api/destinations/") && len(r.URL.Path) > len("/api/destinations/") {
		h.destinationDetail(w, r)
		return
	}

	items, err := h.loadDestinations(context.Background())
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.DestinationListResponse{Destinations: items})
}

func (h *CatalogHandler) destinationDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/destinations/")

	var d models.Destination
	err := h.db.QueryRow(context.Background(),
		`SELECT id, name, description, region, latitude, longitude FROM destinations WHERE id = $1`, id).Scan(
		&d.ID, &d.Name, &d.Description, &d.Region, &d.Latitude, &d.Longitude)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Destination not found")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, d)
}

// Hotels handles GET /api/hotels?destination=
// @Summary List hotels
// @Tags catalog
// @Produce json
// @Param destination query string false "destination id filter"
// @Success 200 {object} dto.HotelListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/hotels [get]
func (h *CatalogHandler) Hotels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	items, err := h.loadHotels(context.Background(), strings.TrimSpace(r.URL.Query().Get("destination")))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.HotelListResponse{Hotels: items})
}

// Activities handles GET /api/activities?destination=
// @Summary List activities
// @Tags catalog
// @Produce json
// @Param destination query string false "destination id filter"
// @Success 200 {object} dto.ActivityListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/activities [get]
func (h *CatalogHandler) Activities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	items, err := h.loadActivities(context.Background(), strings.TrimSpace(r.URL.Query().Get("destination")))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ActivityListResponse{Activities: items})
}

// Cars handles GET /api/cars
// @Summary List rental cars
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.CarListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/cars [get]
func (h *CatalogHandler) Cars(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rows, err := h.db.Query(context.Background(),
		`SELECT id, name, operator, seats, daily_rate, booking_url FROM cars ORDER BY name`)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer rows.Close()

	items := make([]models.Car, 0)
	for rows.Next() {
		var m models.Car
		if err := rows.Scan(&m.ID, &m.Name, &m.Operator, &m.Seats, &m.DailyRate, &m.BookingURL); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.CarListResponse{Cars: items})
}

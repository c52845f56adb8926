package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/clicktorwanda/backend/internal/config"
	"github.com/clicktorwanda/backend/internal/dto"
	"github.com/clicktorwanda/backend/internal/models"
	"github.com/clicktorwanda/backend/internal/planner"
	"github.com/clicktorwanda/backend/internal/utils"
)

// ItineraryHandler manages the day-by-day trip plan endpoints
type ItineraryHandler struct {
	db     *pgxpool.Pool
	config *config.Config
	logger zerolog.Logger
}

// NewItineraryHandler creates a new ItineraryHandler
func NewItineraryHandler(db *pgxpool.Pool, cfg *config.Config, logger zerolog.Logger) *ItineraryHandler {
	return &ItineraryHandler{db: db, config: cfg, logger: logger.With().Str("component", "itinerary").Logger()}
}

const dayColumns = `id, user_id, date, day_type, destination_id, origin_id, hotel_id, activity_id, car_id,
	hotel_booked, activity_booked, hotel_cost, activity_cost, car_cost, transport_cost, other_cost,
	notes, wake_time, breakfast_time, lunch_time, dinner_time, hotel_confirmed, activity_confirmed,
	created_at, updated_at`

func scanDay(row pgx.Row) (models.ItineraryDay, error) {
	var d models.ItineraryDay
	err := row.Scan(&d.ID, &d.UserID, &d.Date, &d.DayType, &d.DestinationID, &d.OriginID,
		&d.HotelID, &d.ActivityID, &d.CarID, &d.HotelBooked, &d.ActivityBooked,
		&d.HotelCost, &d.ActivityCost, &d.CarCost, &d.TransportCost, &d.OtherCost,
		&d.Notes, &d.WakeTime, &d.BreakfastTime, &d.LunchTime, &d.DinnerTime,
		&d.HotelConfirmed, &d.ActivityConfirmed, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func dayToResponse(d *models.ItineraryDay) dto.DayResponse {
	return dto.DayResponse{
		ID:                d.ID.String(),
		Date:              utils.FormatDate(d.Date),
		DayType:           d.DayType,
		DestinationID:     d.DestinationID,
		OriginID:          d.OriginID,
		HotelID:           d.HotelID,
		ActivityID:        d.ActivityID,
		CarID:             d.CarID,
		HotelBooked:       d.HotelBooked,
		ActivityBooked:    d.ActivityBooked,
		HotelCost:         d.HotelCost,
		ActivityCost:      d.ActivityCost,
		CarCost:           d.CarCost,
		TransportCost:     d.TransportCost,
		OtherCost:         d.OtherCost,
		Notes:             d.Notes,
		WakeTime:          d.WakeTime,
		BreakfastTime:     d.BreakfastTime,
		LunchTime:         d.LunchTime,
		DinnerTime:        d.DinnerTime,
		HotelConfirmed:    d.HotelConfirmed,
		ActivityConfirmed: d.ActivityConfirmed,
		CreatedAt:         utils.FormatTimestamp(d.CreatedAt),
		UpdatedAt:         utils.FormatTimestamp(d.UpdatedAt),
	}
}

func (h *ItineraryHandler) loadDays(ctx context.Context, userID uuid.UUID) ([]models.ItineraryDay, error) {
	rows, err := h.db.Query(ctx,
		`SELECT `+dayColumns+` FROM itinerary_days WHERE user_id = $1 ORDER BY date`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]models.ItineraryDay, 0)
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// Itinerary dispatches by HTTP method for /api/itinerary and /api/itinerary/{id}
func (h *ItineraryHandler) Itinerary(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if strings.HasSuffix(r.URL.Path, "/transfer") {
			h.TransferInfo(w, r)
			return
		}
		h.List(w, r)
	case http.MethodPost:
		h.CreateDay(w, r)
	case http.MethodPatch, http.MethodPut:
		h.UpdateDay(w, r)
	case http.MethodDelete:
		h.DeleteDay(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// List handles GET /api/itinerary
// @Summary Get the user's itinerary with cost/progress summary
// @Tags itinerary
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ItineraryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/itinerary [get]
func (h *ItineraryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	days, err := h.loadDays(context.Background(), userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	items := make([]dto.DayResponse, 0, len(days))
	for i := range days {
		items = append(items, dayToResponse(&days[i]))
	}

	s := planner.Summarize(days)
	utils.WriteJSONResponse(w, http.StatusOK, dto.ItineraryResponse{
		Days: items,
		Summary: dto.ItinerarySummary{
			HotelTotal:        s.HotelTotal,
			ActivityTotal:     s.ActivityTotal,
			CarTotal:          s.CarTotal,
			TransportTotal:    s.TransportTotal,
			OtherTotal:        s.OtherTotal,
			GrandTotal:        s.GrandTotal,
			HotelBookedPct:    s.HotelBookedPct,
			ActivityBookedPct: s.ActivityBookedPct,
			CostEnteredPct:    s.CostEnteredPct,
		},
	})
}

// CreateDay handles POST /api/itinerary
// @Summary Add an itinerary day
// @Tags itinerary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateDayRequest true "Day payload"
// @Success 201 {object} dto.CreateDayResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/itinerary [post]
func (h *ItineraryHandler) CreateDay(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateDayRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.DayType = strings.ToLower(strings.TrimSpace(req.DayType))
	if req.DayType == "" {
		req.DayType = models.DayTypeRegular
	}
	if req.DayType != models.DayTypeRegular && req.DayType != models.DayTypeTransfer {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "day_type must be regular or transfer")
		return
	}
	if req.DayType == models.DayTypeTransfer && (req.OriginID == nil || *req.OriginID == "") {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "origin_id is required for transfer days")
		return
	}
	req.DestinationID = strings.TrimSpace(req.DestinationID)
	if req.DestinationID == "" || req.Date == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "date and destination_id are required")
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "date must be ISO 8601 format (YYYY-MM-DD or RFC3339)")
		return
	}

	// Destination must exist in the catalog
	var exists bool
	if err := h.db.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM destinations WHERE id = $1)`, req.DestinationID).Scan(&exists); err != nil || !exists {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "unknown destination_id")
		return
	}

	// One row per (user, date)
	var clash uuid.UUID
	err = h.db.QueryRow(context.Background(),
		`SELECT id FROM itinerary_days WHERE user_id = $1 AND date = $2`, userID, date).Scan(&clash)
	if err == nil {
		utils.WriteErrorResponse(w, http.StatusConflict, "Conflict", "A day already exists on this date")
		return
	}

	now := time.Now()
	day := models.ItineraryDay{
		ID:            uuid.New(),
		UserID:        userID,
		Date:          date,
		DayType:       req.DayType,
		DestinationID: req.DestinationID,
		OriginID:      req.OriginID,
		HotelID:       req.HotelID,
		ActivityID:    req.ActivityID,
		CarID:         req.CarID,
		HotelCost:     req.HotelCost,
		ActivityCost:  req.ActivityCost,
		CarCost:       req.CarCost,
		TransportCost: req.TransportCost,
		OtherCost:     req.OtherCost,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err = h.db.Exec(context.Background(),
		`INSERT INTO itinerary_days (id, user_id, date, day_type, destination_id, origin_id, hotel_id,
		     activity_id, car_id, hotel_booked, activity_booked, hotel_cost, activity_cost, car_cost,
		     transport_cost, other_cost, notes, hotel_confirmed, activity_confirmed, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, FALSE, $10, $11, $12, $13, $14, $15, FALSE, FALSE, $16, $17)`,
		day.ID, day.UserID, day.Date, day.DayType, day.DestinationID, day.OriginID, day.HotelID,
		day.ActivityID, day.CarID, day.HotelCost, day.ActivityCost, day.CarCost,
		day.TransportCost, day.OtherCost, day.Notes, day.CreatedAt, day.UpdatedAt)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.CreateDayResponse{Day: dayToResponse(&day)})
}

// UpdateDay handles PATCH /api/itinerary/{id}
// @Summary Update fields of an itinerary day
// @Tags itinerary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param day_id path string true "Day ID"
// @Param payload body dto.UpdateDayRequest true "Fields to update"
// @Success 200 {object} dto.CreateDayResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/itinerary/{day_id} [patch]
func (h *ItineraryHandler) UpdateDay(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	dayID, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/itinerary/"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid day id", "day_id must be UUID")
		return
	}

	cur, err := scanDay(h.db.QueryRow(context.Background(),
		`SELECT `+dayColumns+` FROM itinerary_days WHERE id = $1 AND user_id = $2`, dayID, userID))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Itinerary day not found")
		return
	}

	var req dto.UpdateDayRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.DayType != nil {
		dt := strings.ToLower(strings.TrimSpace(*req.DayType))
		if dt != models.DayTypeRegular && dt != models.DayTypeTransfer {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "day_type must be regular or transfer")
			return
		}
		cur.DayType = dt
	}
	if req.DestinationID != nil {
		cur.DestinationID = strings.TrimSpace(*req.DestinationID)
	}
	if req.OriginID != nil {
		cur.OriginID = req.OriginID
	}
	if req.HotelID != nil {
		cur.HotelID = req.HotelID
	}
	if req.ActivityID != nil {
		cur.ActivityID = req.ActivityID
	}
	if req.CarID != nil {
		cur.CarID = req.CarID
	}
	if req.HotelBooked != nil {
		cur.HotelBooked = *req.HotelBooked
	}
	if req.ActivityBooked != nil {
		cur.ActivityBooked = *req.ActivityBooked
	}
	if req.HotelCost != nil {
		cur.HotelCost = req.HotelCost
	}
	if req.ActivityCost != nil {
		cur.ActivityCost = req.ActivityCost
	}
	if req.CarCost != nil {
		cur.CarCost = req.CarCost
	}
	if req.TransportCost != nil {
		cur.TransportCost = req.TransportCost
	}
	if req.OtherCost != nil {
		cur.OtherCost = req.OtherCost
	}
	if req.Notes != nil {
		cur.Notes = *req.Notes
	}
	for _, p := range []struct {
		src *string
		dst **string
	}{
		{req.WakeTime, &cur.WakeTime},
		{req.BreakfastTime, &cur.BreakfastTime},
		{req.LunchTime, &cur.LunchTime},
		{req.DinnerTime, &cur.DinnerTime},
	} {
		if p.src == nil {
			continue
		}
		if *p.src != "" && !utils.ValidClockTime(*p.src) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "times must be HH:MM (24h)")
			return
		}
		*p.dst = p.src
	}
	if req.HotelConfirmed != nil {
		cur.HotelConfirmed = *req.HotelConfirmed
	}
	if req.ActivityConfirmed != nil {
		cur.ActivityConfirmed = *req.ActivityConfirmed
	}

	cur.UpdatedAt = time.Now()
	_, err = h.db.Exec(context.Background(),
		`UPDATE itinerary_days
		    SET day_type = $1, destination_id = $2, origin_id = $3, hotel_id = $4, activity_id = $5,
		        car_id = $6, hotel_booked = $7, activity_booked = $8, hotel_cost = $9, activity_cost = $10,
		        car_cost = $11, transport_cost = $12, other_cost = $13, notes = $14, wake_time = $15,
		        breakfast_time = $16, lunch_time = $17, dinner_time = $18, hotel_confirmed = $19,
		        activity_confirmed = $20, updated_at = $21
		  WHERE id = $22`,
		cur.DayType, cur.DestinationID, cur.OriginID, cur.HotelID, cur.ActivityID,
		cur.CarID, cur.HotelBooked, cur.ActivityBooked, cur.HotelCost, cur.ActivityCost,
		cur.CarCost, cur.TransportCost, cur.OtherCost, cur.Notes, cur.WakeTime,
		cur.BreakfastTime, cur.LunchTime, cur.DinnerTime, cur.HotelConfirmed,
		cur.ActivityConfirmed, cur.UpdatedAt, cur.ID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.CreateDayResponse{Day: dayToResponse(&cur)})
}

// DeleteDay handles DELETE /api/itinerary/{id}
// @Summary Delete an itinerary day
// @Tags itinerary
// @Produce json
// @Security BearerAuth
// @Param day_id path string true "Day ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/itinerary/{day_id} [delete]
func (h *ItineraryHandler) DeleteDay(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	dayID, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/itinerary/"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid day id", "day_id must be UUID")
		return
	}

	tag, err := h.db.Exec(context.Background(),
		`DELETE FROM itinerary_days WHERE id = $1 AND user_id = $2`, dayID, userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	if tag.RowsAffected() == 0 {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Itinerary day not found")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Day deleted successfully"})
}

// Reorder handles POST /api/itinerary/reorder
// @Summary Reorder itinerary days
// @Description Reassigns calendar dates so the given day order becomes chronological. Dates are permuted across rows; the set of dates never changes.
// @Tags itinerary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ReorderRequest true "Day IDs in desired order"
// @Success 200 {object} dto.ReorderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/itinerary/reorder [post]
func (h *ItineraryHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.ReorderRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	orderedIDs := make([]uuid.UUID, 0, len(req.DayIDs))
	for _, s := range req.DayIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "day_ids must be UUIDs")
			return
		}
		orderedIDs = append(orderedIDs, id)
	}

	days, err := h.loadDays(context.Background(), userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	changes, err := planner.PermuteDates(orderedIDs, days)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", err.Error())
		return
	}
	if len(changes) == 0 {
		utils.WriteJSONResponse(w, http.StatusOK, dto.ReorderResponse{Updated: 0})
		return
	}

	// All date moves commit together or not at all.
	tx, err := h.db.Begin(context.Background())
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer tx.Rollback(context.Background())

	now := time.Now()
	for _, c := range changes {
		if _, err := tx.Exec(context.Background(),
			`UPDATE itinerary_days SET date = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`,
			c.NewDate, now, c.DayID, userID); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
	}
	if err := tx.Commit(context.Background()); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ReorderResponse{Updated: len(changes)})
}

// Import handles POST /api/itinerary/import
// @Summary Import extracted day guesses into the itinerary
// @Description Matches free-text destination/hotel/activity guesses against the catalogs and inserts dated rows. Unmatched destinations are skipped and reported.
// @Tags itinerary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ImportRequest true "Extracted day guesses"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/itinerary/import [post]
func (h *ItineraryHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.ImportRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if len(req.Days) == 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "days is required")
		return
	}

	catalog, err := h.loadCatalog(context.Background())
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	// Start one day after the itinerary's current maximum date
	var maxDate *time.Time
	var max time.Time
	err = h.db.QueryRow(context.Background(),
		`SELECT MAX(date) FROM itinerary_days WHERE user_id = $1`, userID).Scan(&max)
	if err == nil && !max.IsZero() {
		maxDate = &max
	}
	start := planner.NextStartDate(maxDate, time.Now())

	guesses := make([]planner.DayGuess, 0, len(req.Days))
	for _, g := range req.Days {
		guesses = append(guesses, planner.DayGuess{
			Destination: g.Destination,
			Hotel:       g.Hotel,
			Activity:    g.Activity,
			Notes:       g.Notes,
		})
	}

	result := planner.Match(guesses, catalog, start)
	for _, skipped := range result.Skipped {
		h.logger.Warn().Str("destination", skipped).Msg("import: no catalog match, day skipped")
	}

	inserted := make([]dto.DayResponse, 0, len(result.Days))
	now := time.Now()
	for _, m := range result.Days {
		day := models.ItineraryDay{
			ID:            uuid.New(),
			UserID:        userID,
			Date:          m.Date,
			DayType:       models.DayTypeRegular,
			DestinationID: m.DestinationID,
			HotelID:       m.HotelID,
			ActivityID:    m.ActivityID,
			Notes:         m.Notes,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		_, err := h.db.Exec(context.Background(),
			`INSERT INTO itinerary_days (id, user_id, date, day_type, destination_id, hotel_id, activity_id,
			     notes, hotel_booked, activity_booked, hotel_confirmed, activity_confirmed, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, FALSE, FALSE, FALSE, $9, $10)`,
			day.ID, day.UserID, day.Date, day.DayType, day.DestinationID, day.HotelID, day.ActivityID,
			day.Notes, day.CreatedAt, day.UpdatedAt)
		if err != nil {
			// No rollback of earlier inserts; report what landed so far.
			h.logger.Error().Err(err).Str("destination", day.DestinationID).Msg("import: insert failed")
			continue
		}
		inserted = append(inserted, dayToResponse(&day))
	}

	skipped := result.Skipped
	if skipped == nil {
		skipped = []string{}
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ImportResponse{Inserted: inserted, Skipped: skipped})
}

func (h *ItineraryHandler) loadCatalog(ctx context.Context) (planner.Catalog, error) {
	var catalog planner.Catalog

	rows, err := h.db.Query(ctx, `SELECT id, name FROM destinations`)
	if err != nil {
		return catalog, err
	}
	for rows.Next() {
		var d models.Destination
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			rows.Close()
			return catalog, err
		}
		catalog.Destinations = append(catalog.Destinations, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return catalog, err
	}

	rows, err = h.db.Query(ctx, `SELECT id, name, destination_id FROM hotels`)
	if err != nil {
		return catalog, err
	}
	for rows.Next() {
		var m models.Hotel
		if err := rows.Scan(&m.ID, &m.Name, &m.DestinationID); err != nil {
			rows.Close()
			return catalog, err
		}
		catalog.Hotels = append(catalog.Hotels, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return catalog, err
	}

	rows, err = h.db.Query(ctx, `SELECT id, name, destination_id FROM activities`)
	if err != nil {
		return catalog, err
	}
	for rows.Next() {
		var m models.Activity
		if err := rows.Scan(&m.ID, &m.Name, &m.DestinationID); err != nil {
			rows.Close()
			return catalog, err
		}
		catalog.Activities = append(catalog.Activities, m)
	}
	rows.Close()
	return catalog, rows.Err()
}

// TransferInfo handles GET /api/itinerary/{id}/transfer
// @Summary Distance and travel-time estimate for a transfer day
// @Tags itinerary
// @Produce json
// @Security BearerAuth
// @Param day_id path string true "Day ID"
// @Success 200 {object} dto.TransferInfoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/itinerary/{day_id}/transfer [get]
func (h *ItineraryHandler) TransferInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/itinerary/"), "/transfer")
	dayID, err := uuid.Parse(idStr)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid day id", "day_id must be UUID")
		return
	}

	var dayType, destinationID string
	var originID *string
	err = h.db.QueryRow(context.Background(),
		`SELECT day_type, destination_id, origin_id FROM itinerary_days WHERE id = $1 AND user_id = $2`,
		dayID, userID).Scan(&dayType, &destinationID, &originID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Itinerary day not found")
		return
	}
	if dayType != models.DayTypeTransfer || originID == nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "not a transfer day")
		return
	}

	var oLat, oLon, dLat, dLon *float64
	if err := h.db.QueryRow(context.Background(),
		`SELECT latitude, longitude FROM destinations WHERE id = $1`, *originID).Scan(&oLat, &oLon); err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Origin destination not found")
		return
	}
	if err := h.db.QueryRow(context.Background(),
		`SELECT latitude, longitude FROM destinations WHERE id = $1`, destinationID).Scan(&dLat, &dLon); err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Destination not found")
		return
	}
	if oLat == nil || oLon == nil || dLat == nil || dLon == nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "coordinates unavailable for this route")
		return
	}

	distance := planner.HaversineKM(*oLat, *oLon, *dLat, *dLon)
	utils.WriteJSONResponse(w, http.StatusOK, dto.TransferInfoResponse{
		OriginID:        *originID,
		DestinationID:   destinationID,
		DistanceKM:      distance,
		TravelTimeHours: planner.TravelTimeHours(distance),
	})
}

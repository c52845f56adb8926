package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/clicktorwanda/backend/internal/dto"
	"github.com/clicktorwanda/backend/internal/models"
	"github.com/clicktorwanda/backend/internal/utils"
)

// StaffHandler is the back-office dispatcher, keyed by {entity, action}
type StaffHandler struct {
	db     *pgxpool.Pool
	logger zerolog.Logger
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(db *pgxpool.Pool, logger zerolog.Logger) *StaffHandler {
	return &StaffHandler{db: db, logger: logger.With().Str("component", "staff").Logger()}
}

// Dispatch handles POST /api/staff
// @Summary Back-office entity dispatcher
// @Description Routes {entity, action} requests to the matching catalog or account operation. Entities: destinations, hotels, activities, cars, subscriptions, sos_alerts, users. Actions: list, create, update, delete (users support list and role update only).
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.StaffRequest true "Dispatcher payload"
// @Success 200 {object} dto.StaffResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/staff [post]
func (h *StaffHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.StaffRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	var (
		result any
		err    error
	)
	switch req.Entity {
	case "destinations":
		result, err = h.destinations(req)
	case "hotels":
		result, err = h.hotels(req)
	case "activities":
		result, err = h.activities(req)
	case "cars":
		result, err = h.cars(req)
	case "subscriptions":
		result, err = h.subscriptions(req)
	case "sos_alerts":
		result, err = h.sosAlerts(req)
	case "users":
		result, err = h.users(req)
	default:
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Unknown entity: "+req.Entity)
		return
	}
	if err != nil {
		var de *dispatchError
		if errors.As(err, &de) {
			utils.WriteErrorResponse(w, de.status, de.title, de.detail)
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	h.logger.Info().Str("entity", req.Entity).Str("action", req.Action).Str("id", req.ID).Msg("staff operation")
	utils.WriteJSONResponse(w, http.StatusOK, dto.StaffResponse{Entity: req.Entity, Action: req.Action, Result: result})
}

// dispatchError carries an HTTP status through the entity helpers.
type dispatchError struct {
	status int
	title  string
	detail string
}

func (e *dispatchError) Error() string { return e.detail }

func badRequest(detail string) error {
	return &dispatchError{status: http.StatusBadRequest, title: "Validation error", detail: detail}
}

func notFound(detail string) error {
	return &dispatchError{status: http.StatusNotFound, title: "Not Found", detail: detail}
}

func decodeFields(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return badRequest("fields is required for this action")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return badRequest("invalid fields payload: " + err.Error())
	}
	return nil
}

// slugify derives a catalog ID from a display name.
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	return strings.Trim(strings.Join(strings.FieldsFunc(slug, func(r rune) bool { return r == '-' }), "-"), "-")
}

func (h *StaffHandler) destinations(req dto.StaffRequest) (any, error) {
	ctx := context.Background()
	switch req.Action {
	case "list":
		rows, err := h.db.Query(ctx, `SELECT id, name, description, region, latitude, longitude FROM destinations ORDER BY name`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		out := make([]models.Destination, 0)
		for rows.Next() {
			var d models.Destination
			if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Region, &d.Latitude, &d.Longitude); err != nil {
				return nil, err
			}
			out = append(out, d)
		}
		return out, rows.Err()

	case "create":
		var d models.Destination
		if err := decodeFields(req.Fields, &d); err != nil {
			return nil, err
		}
		if d.Name == "" {
			return nil, badRequest("name is required")
		}
		if d.ID == "" {
			d.ID = slugify(d.Name)
		}
		_, err := h.db.Exec(ctx,
			`INSERT INTO destinations (id, name, description, region, latitude, longitude) VALUES ($1, $2, $3, $4, $5, $6)`,
			d.ID, d.Name, d.Description, d.Region, d.Latitude, d.Longitude)
		return d, err

	case "update":
		if req.ID == "" {
			return nil, badRequest("id is required")
		}
		var fields struct {
			Name        *string  `json:"name"`
			Description *string  `json:"description"`
			Region      *string  `json:"region"`
			Latitude    *float64 `json:"latitude"`
			Longitude   *float64 `json:"longitude"`
		}
		if err := decodeFields(req.Fields, &fields); err != nil {
			return nil, err
		}
		set, args := buildUpdate(map[string]any{
			"name": fields.Name, "description": fields.Description, "region": fields.Region,
			"latitude": fields.Latitude, "longitude": fields.Longitude,
		})
		if len(set) == 0 {
			return nil, badRequest("no fields to update")
		}
		args = append(args, req.ID)
		tag, err := h.db.Exec(ctx,
			fmt.Sprintf(`UPDATE destinations SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args)), args...)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, notFound("No destination with this id")
		}
		return map[string]string{"id": req.ID}, nil

	case "delete":
		return h.deleteByID(ctx, "destinations", req.ID, "No destination with this id")

	default:
		return nil, badRequest("Unknown action: " + req.Action)
	}
}

func (h *StaffHandler) hotels(req dto.StaffRequest) (any, error) {
	ctx := context.Background()
	switch req.Action {
	case "list":
		rows, err := h.db.Query(ctx,
			`SELECT id, name, destination_id, price_band, latitude, longitude, booking_url FROM hotels ORDER BY name`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		out := make([]models.Hotel, 0)
		for rows.Next() {
			var m models.Hotel
			if err := rows.Scan(&m.ID, &m.Name, &m.DestinationID, &m.PriceBand, &m.Latitude, &m.Longitude, &m.BookingURL); err != nil {
				return nil, err
			}
			out = append(out, m)
		}
		return out, rows.Err()

	case "create":
		var m models.Hotel
		if err := decodeFields(req.Fields, &m); err != nil {
			return nil, err
		}
		if m.Name == "" || m.DestinationID == "" {
			return nil, badRequest("name and destination_id are required")
		}
		if m.ID == "" {
			m.ID = slugify(m.Name)
		}
		_, err := h.db.Exec(ctx,
			`INSERT INTO hotels (id, name, destination_id, price_band, latitude, longitude, booking_url) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			m.ID, m.Name, m.DestinationID, m.PriceBand, m.Latitude, m.Longitude, m.BookingURL)
		return m, err

	case "update":
		if req.ID == "" {
			return nil, badRequest("id is required")
		}
		var fields struct {
			Name          *string  `json:"name"`
			DestinationID *string  `json:"destination_id"`
			PriceBand     *string  `json:"price_band"`
			Latitude      *float64 `json:"latitude"`
			Longitude     *float64 `json:"longitude"`
			BookingURL    *string  `json:"booking_url"`
		}
		if err := decodeFields(req.Fields, &fields); err != nil {
			return nil, err
		}
		set, args := buildUpdate(map[string]any{
			"name": fields.Name, "destination_id": fields.DestinationID, "price_band": fields.PriceBand,
			"latitude": fields.Latitude, "longitude": fields.Longitude, "booking_url": fields.BookingURL,
		})
		if len(set) == 0 {
			return nil, badRequest("no fields to update")
		}
		args = append(args, req.ID)
		tag, err := h.db.Exec(ctx,
			fmt.Sprintf(`UPDATE hotels SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args)), args...)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, notFound("No hotel with this id")
		}
		return map[string]string{"id": req.ID}, nil

	case "delete":
		return h.deleteByID(ctx, "hotels", req.ID, "No hotel with this id")

	default:
		return nil, badRequest("Unknown action: " + req.Action)
	}
}

func (h *StaffHandler) activities(req dto.StaffRequest) (any, error) {
	ctx := context.Background()
	switch req.Action {
	case "list":
		rows, err := h.db.Query(ctx,
			`SELECT id, name, destination_id, duration_hours, booking_url FROM activities ORDER BY name`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		out := make([]models.Activity, 0)
		for rows.Next() {
			var m models.Activity
			if err := rows.Scan(&m.ID, &m.Name, &m.DestinationID, &m.DurationHours, &m.BookingURL); err != nil {
				return nil, err
			}
			out = append(out, m)
		}
		return out, rows.Err()

	case "create":
		var m models.Activity
		if err := decodeFields(req.Fields, &m); err != nil {
			return nil, err
		}
		if m.Name == "" || m.DestinationID == "" {
			return nil, badRequest("name and destination_id are required")
		}
		if m.ID == "" {
			m.ID = slugify(m.Name)
		}
		_, err := h.db.Exec(ctx,
			`INSERT INTO activities (id, name, destination_id, duration_hours, booking_url) VALUES ($1, $2, $3, $4, $5)`,
			m.ID, m.Name, m.DestinationID, m.DurationHours, m.BookingURL)
		return m, err

	case "update":
		if req.ID == "" {
			return nil, badRequest("id is required")
		}
		var fields struct {
			Name          *string  `json:"name"`
			DestinationID *string  `json:"destination_id"`
			DurationHours *float64 `json:"duration_hours"`
			BookingURL    *string  `json:"booking_url"`
		}
		if err := decodeFields(req.Fields, &fields); err != nil {
			return nil, err
		}
		set, args := buildUpdate(map[string]any{
			"name": fields.Name, "destination_id": fields.DestinationID,
			"duration_hours": fields.DurationHours, "booking_url": fields.BookingURL,
		})
		if len(set) == 0 {
			return nil, badRequest("no fields to update")
		}
		args = append(args, req.ID)
		tag, err := h.db.Exec(ctx,
			fmt.Sprintf(`UPDATE activities SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args)), args...)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, notFound("No activity with this id")
		}
		return map[string]string{"id": req.ID}, nil

	case "delete":
		return h.deleteByID(ctx, "activities", req.ID, "No activity with this id")

	default:
		return nil, badRequest("Unknown action: " + req.Action)
	}
}

func (h *StaffHandler) cars(req dto.StaffRequest) (any, error) {
	ctx := context.Background()
	switch req.Action {
	case "list":
		rows, err := h.db.Query(ctx,
			`SELECT id, name, operator, seats, daily_rate, booking_url FROM cars ORDER BY name`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		out := make([]models.Car, 0)
		for rows.Next() {
			var m models.Car
			if err := rows.Scan(&m.ID, &m.Name, &m.Operator, &m.Seats, &m.DailyRate, &m.BookingURL); err != nil {
				return nil, err
			}
			out = append(out, m)
		}
		return out, rows.Err()

	case "create":
		var m models.Car
		if err := decodeFields(req.Fields, &m); err != nil {
			return nil, err
		}
		if m.Name == "" {
			return nil, badRequest("name is required")
		}
		if m.ID == "" {
			m.ID = slugify(m.Name)
		}
		_, err := h.db.Exec(ctx,
			`INSERT INTO cars (id, name, operator, seats, daily_rate, booking_url) VALUES ($1, $2, $3, $4, $5, $6)`,
			m.ID, m.Name, m.Operator, m.Seats, m.DailyRate, m.BookingURL)
		return m, err

	case "update":
		if req.ID == "" {
			return nil, badRequest("id is required")
		}
		var fields struct {
			Name       *string  `json:"name"`
			Operator   *string  `json:"operator"`
			Seats      *int     `json:"seats"`
			DailyRate  *float64 `json:"daily_rate"`
			BookingURL *string  `json:"booking_url"`
		}
		if err := decodeFields(req.Fields, &fields); err != nil {
			return nil, err
		}
		set, args := buildUpdate(map[string]any{
			"name": fields.Name, "operator": fields.Operator, "seats": fields.Seats,
			"daily_rate": fields.DailyRate, "booking_url": fields.BookingURL,
		})
		if len(set) == 0 {
			return nil, badRequest("no fields to update")
		}
		args = append(args, req.ID)
		tag, err := h.db.Exec(ctx,
			fmt.Sprintf(`UPDATE cars SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args)), args...)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, notFound("No car with this id")
		}
		return map[string]string{"id": req.ID}, nil

	case "delete":
		return h.deleteByID(ctx, "cars", req.ID, "No car with this id")

	default:
		return nil, badRequest("Unknown action: " + req.Action)
	}
}

func (h *StaffHandler) subscriptions(req dto.StaffRequest) (any, error) {
	ctx := context.Background()
	switch req.Action {
	case "list":
		rows, err := h.db.Query(ctx,
			`SELECT id, user_id, status, amount, payment_reference, created_at, updated_at FROM subscriptions ORDER BY updated_at DESC`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		out := make([]models.Subscription, 0)
		for rows.Next() {
			var s models.Subscription
			if err := rows.Scan(&s.ID, &s.UserID, &s.Status, &s.Amount, &s.PaymentReference, &s.CreatedAt, &s.UpdatedAt); err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, rows.Err()

	case "create", "update":
		var fields struct {
			UserID           string   `json:"user_id"`
			Status           *string  `json:"status"`
			Amount           *float64 `json:"amount"`
			PaymentReference *string  `json:"payment_reference"`
		}
		if err := decodeFields(req.Fields, &fields); err != nil {
			return nil, err
		}
		userID, err := uuid.Parse(fields.UserID)
		if err != nil {
			return nil, badRequest("fields.user_id must be UUID")
		}
		status := models.SubscriptionActive
		if fields.Status != nil {
			if *fields.Status != models.SubscriptionActive && *fields.Status != models.SubscriptionInactive {
				return nil, badRequest("status must be active or inactive")
			}
			status = *fields.Status
		}
		amount := 0.0
		if fields.Amount != nil {
			amount = *fields.Amount
		}
		ref := ""
		if fields.PaymentReference != nil {
			ref = *fields.PaymentReference
		}
		now := time.Now()
		var s models.Subscription
		err = h.db.QueryRow(ctx,
			`INSERT INTO subscriptions (id, user_id, status, amount, payment_reference, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $6)
			 ON CONFLICT (user_id) DO UPDATE
			   SET status = EXCLUDED.status, amount = EXCLUDED.amount,
			       payment_reference = EXCLUDED.payment_reference, updated_at = EXCLUDED.updated_at
			 RETURNING id, user_id, status, amount, payment_reference, created_at, updated_at`,
			uuid.New(), userID, status, amount, ref, now).Scan(
			&s.ID, &s.UserID, &s.Status, &s.Amount, &s.PaymentReference, &s.CreatedAt, &s.UpdatedAt)
		return s, err

	case "delete":
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, badRequest("id must be UUID")
		}
		tag, err := h.db.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, notFound("No subscription with this id")
		}
		return map[string]string{"id": req.ID}, nil

	default:
		return nil, badRequest("Unknown action: " + req.Action)
	}
}

func (h *StaffHandler) sosAlerts(req dto.StaffRequest) (any, error) {
	ctx := context.Background()
	switch req.Action {
	case "list":
		rows, err := h.db.Query(ctx,
			`SELECT id, user_id, full_name, phone, latitude, longitude, message, voice_note_url, status, created_at, resolved_at
			   FROM sos_alerts ORDER BY created_at DESC`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		out := make([]models.SOSAlert, 0)
		for rows.Next() {
			var a models.SOSAlert
			if err := rows.Scan(&a.ID, &a.UserID, &a.FullName, &a.Phone, &a.Latitude, &a.Longitude,
				&a.Message, &a.VoiceNoteURL, &a.Status, &a.CreatedAt, &a.ResolvedAt); err != nil {
				return nil, err
			}
			out = append(out, a)
		}
		return out, rows.Err()

	case "update":
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, badRequest("id must be UUID")
		}
		var fields struct {
			Status *string `json:"status"`
		}
		if err := decodeFields(req.Fields, &fields); err != nil {
			return nil, err
		}
		if fields.Status == nil || (*fields.Status != models.SOSPending && *fields.Status != models.SOSResolved) {
			return nil, badRequest("status must be pending or resolved")
		}
		var resolvedAt *time.Time
		if *fields.Status == models.SOSResolved {
			now := time.Now()
			resolvedAt = &now
		}
		tag, err := h.db.Exec(ctx,
			`UPDATE sos_alerts SET status = $1, resolved_at = $2 WHERE id = $3`, *fields.Status, resolvedAt, id)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, notFound("No alert with this id")
		}
		return map[string]string{"id": req.ID, "status": *fields.Status}, nil

	case "delete":
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, badRequest("id must be UUID")
		}
		tag, err := h.db.Exec(ctx, `DELETE FROM sos_alerts WHERE id = $1`, id)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, notFound("No alert with this id")
		}
		return map[string]string{"id": req.ID}, nil

	default:
		return nil, badRequest("Unknown action: " + req.Action)
	}
}

func (h *StaffHandler) users(req dto.StaffRequest) (any, error) {
	ctx := context.Background()
	switch req.Action {
	case "list":
		rows, err := h.db.Query(ctx,
			`SELECT id, email, full_name, nationality, phone, role, created_at, updated_at FROM users ORDER BY created_at DESC`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		out := make([]models.User, 0)
		for rows.Next() {
			var u models.User
			if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Nationality, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
				return nil, err
			}
			out = append(out, u)
		}
		return out, rows.Err()

	case "update":
		// Accounts are self-managed; the back office only changes roles.
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, badRequest("id must be UUID")
		}
		var fields struct {
			Role *string `json:"role"`
		}
		if err := decodeFields(req.Fields, &fields); err != nil {
			return nil, err
		}
		if fields.Role == nil {
			return nil, badRequest("role is required")
		}
		switch *fields.Role {
		case models.RoleUser, models.RoleStaff, models.RoleAdmin:
		default:
			return nil, badRequest("role must be user, staff, or admin")
		}
		tag, err := h.db.Exec(ctx,
			`UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`, *fields.Role, time.Now(), id)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, notFound("No user with this id")
		}
		return map[string]string{"id": req.ID, "role": *fields.Role}, nil

	default:
		return nil, badRequest("users entity supports list and update only")
	}
}

func (h *StaffHandler) deleteByID(ctx context.Context, table, id, missing string) (any, error) {
	if id == "" {
		return nil, badRequest("id is required")
	}
	tag, err := h.db.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, notFound(missing)
	}
	return map[string]string{"id": id}, nil
}

// buildUpdate turns the non-nil pointer fields into SET clauses with
// positional args starting at $1.
func buildUpdate(fields map[string]any) ([]string, []any) {
	// Stable clause order keeps queries deterministic.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	set := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for _, col := range keys {
		v := fields[col]
		switch p := v.(type) {
		case *string:
			if p == nil {
				continue
			}
			args = append(args, *p)
		case *float64:
			if p == nil {
				continue
			}
			args = append(args, *p)
		case *int:
			if p == nil {
				continue
			}
			args = append(args, *p)
		default:
			continue
		}
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	return set, args
}

package handlers

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/clicktorwanda/backend/internal/config"
	"github.com/clicktorwanda/backend/internal/dto"
	"github.com/clicktorwanda/backend/internal/models"
	"github.com/clicktorwanda/backend/internal/utils"
)

// phoneRe accepts international or local formats: +250788123456, 0788123456
var phoneRe = regexp.MustCompile(`^\+?[0-9]{9,15}$`)

const sosMessageMaxLen = 1000

// ValidSOSPhone reports whether the phone number has an acceptable format.
func ValidSOSPhone(phone string) bool {
	return phoneRe.MatchString(strings.ReplaceAll(phone, " ", ""))
}

// ValidSOSCoordinates reports whether the position is on the globe.
func ValidSOSCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// SOSHandler handles emergency alerts
type SOSHandler struct {
	db     *pgxpool.Pool
	email  *utils.EmailService
	config *config.Config
	logger zerolog.Logger
}

// NewSOSHandler creates a new SOSHandler
func NewSOSHandler(db *pgxpool.Pool, email *utils.EmailService, cfg *config.Config, logger zerolog.Logger) *SOSHandler {
	return &SOSHandler{db: db, email: email, config: cfg, logger: logger.With().Str("component", "sos").Logger()}
}

func sosToResponse(a *models.SOSAlert) dto.SOSResponse {
	resp := dto.SOSResponse{
		ID:           a.ID.String(),
		UserID:       a.UserID.String(),
		FullName:     a.FullName,
		Phone:        a.Phone,
		Latitude:     a.Latitude,
		Longitude:    a.Longitude,
		Message:      a.Message,
		VoiceNoteURL: a.VoiceNoteURL,
		Status:       a.Status,
		CreatedAt:    utils.FormatTimestamp(a.CreatedAt),
	}
	if a.ResolvedAt != nil {
		s := utils.FormatTimestamp(*a.ResolvedAt)
		resp.ResolvedAt = &s
	}
	return resp
}

// Create handles POST /api/sos
// @Summary Raise an emergency alert
// @Description Validates contact and position, stores a pending alert, and emails the admin address. Rate limited to 3 alerts per hour per user.
// @Tags sos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SOSRequest true "Alert payload"
// @Success 201 {object} dto.SOSResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/sos [post]
func (h *SOSHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.SOSRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.FullName == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "full_name is required")
		return
	}
	if !ValidSOSPhone(req.Phone) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "phone must be 9-15 digits, optionally prefixed with +")
		return
	}
	if !ValidSOSCoordinates(req.Latitude, req.Longitude) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "latitude must be -90..90 and longitude -180..180")
		return
	}
	if len(req.Message) > sosMessageMaxLen {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "message too long")
		return
	}

	alert := models.SOSAlert{
		ID:           uuid.New(),
		UserID:       userID,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Message:      req.Message,
		VoiceNoteURL: req.VoiceNoteURL,
		Status:       models.SOSPending,
		CreatedAt:    time.Now(),
	}

	_, err := h.db.Exec(context.Background(),
		`INSERT INTO sos_alerts (id, user_id, full_name, phone, latitude, longitude, message, voice_note_url, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		alert.ID, alert.UserID, alert.FullName, alert.Phone, alert.Latitude, alert.Longitude,
		alert.Message, alert.VoiceNoteURL, alert.Status, alert.CreatedAt)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	// The alert row is already stored; a failed email must not undo it.
	if err := h.email.SendSOSAlert(h.config.SOS.AdminEmail, &alert); err != nil {
		h.logger.Error().Err(err).Str("alert_id", alert.ID.String()).Msg("sos admin email failed")
	}

	accountEmail, _ := utils.GetEmailFromContext(r.Context())
	h.logger.Info().
		Str("alert_id", alert.ID.String()).
		Str("account_email", accountEmail).
		Str("phone", alert.Phone).
		Msg("sos alert raised")

	utils.WriteJSONResponse(w, http.StatusCreated, sosToResponse(&alert))
}

// List handles GET /api/sos (staff only)
// @Summary List SOS alerts
// @Tags sos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SOSListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/sos [get]
func (h *SOSHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rows, err := h.db.Query(context.Background(),
		`SELECT id, user_id, full_name, phone, latitude, longitude, message, voice_note_url, status, created_at, resolved_at
		   FROM sos_alerts
		  ORDER BY created_at DESC`)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer rows.Close()

	alerts := make([]dto.SOSResponse, 0)
	for rows.Next() {
		var a models.SOSAlert
		if err := rows.Scan(&a.ID, &a.UserID, &a.FullName, &a.Phone, &a.Latitude, &a.Longitude,
			&a.Message, &a.VoiceNoteURL, &a.Status, &a.CreatedAt, &a.ResolvedAt); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
		alerts = append(alerts, sosToResponse(&a))
	}
	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.SOSListResponse{Alerts: alerts})
}

// Resolve handles POST /api/sos/{id}/resolve (staff only)
// @Summary Resolve an SOS alert
// @Tags sos
// @Produce json
// @Security BearerAuth
// @Param alert_id path string true "Alert ID"
// @Success 200 {object} dto.SOSResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/sos/{alert_id}/resolve [post]
func (h *SOSHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/sos/"), "/resolve")
	alertID, err := uuid.Parse(idStr)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid alert id", "alert_id must be UUID")
		return
	}

	now := time.Now()
	tag, err := h.db.Exec(context.Background(),
		`UPDATE sos_alerts SET status = $1, resolved_at = $2 WHERE id = $3 AND status = $4`,
		models.SOSResolved, now, alertID, models.SOSPending)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	if tag.RowsAffected() == 0 {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "No pending alert with this id")
		return
	}

	var a models.SOSAlert
	err = h.db.QueryRow(context.Background(),
		`SELECT id, user_id, full_name, phone, latitude, longitude, message, voice_note_url, status, created_at, resolved_at
		   FROM sos_alerts WHERE id = $1`, alertID).Scan(
		&a.ID, &a.UserID, &a.FullName, &a.Phone, &a.Latitude, &a.Longitude,
		&a.Message, &a.VoiceNoteURL, &a.Status, &a.CreatedAt, &a.ResolvedAt)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, sosToResponse(&a))
}

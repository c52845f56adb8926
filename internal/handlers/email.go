package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/clicktorwanda/backend/internal/dto"
	"github.com/clicktorwanda/backend/internal/models"
	"github.com/clicktorwanda/backend/internal/utils"
)

// EmailHandler sends itinerary mails on demand
type EmailHandler struct {
	db     *pgxpool.Pool
	email  *utils.EmailService
	logger zerolog.Logger
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(db *pgxpool.Pool, email *utils.EmailService, logger zerolog.Logger) *EmailHandler {
	return &EmailHandler{db: db, email: email, logger: logger.With().Str("component", "email").Logger()}
}

func (h *EmailHandler) loadRecipient(ctx context.Context, r *http.Request) (*models.User, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return nil, false
	}
	var u models.User
	err := h.db.QueryRow(ctx,
		`SELECT id, email, full_name, nationality, phone, role, created_at, updated_at FROM users WHERE id = $1`,
		userID).Scan(&u.ID, &u.Email, &u.FullName, &u.Nationality, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, false
	}
	return &u, true
}

// SendPackage handles POST /api/email/package
// @Summary Email the caller their full itinerary
// @Tags email
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.EmailSendResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/email/package [post]
func (h *EmailHandler) SendPackage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := context.Background()
	user, ok := h.loadRecipient(ctx, r)
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	rows, err := h.db.Query(ctx,
		`SELECT `+dayColumns+` FROM itinerary_days WHERE user_id = $1 ORDER BY date`, user.ID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer rows.Close()

	days := make([]models.ItineraryDay, 0)
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	if len(days) == 0 {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "No itinerary days to send")
		return
	}

	if err := h.email.SendPackageEmail(user.Email, user.FullName, days); err != nil {
		h.logger.Error().Err(err).Str("to", user.Email).Msg("package email failed")
		utils.WriteErrorResponse(w, http.StatusBadGateway, "Email error", "Could not send the package email")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.EmailSendResponse{Sent: true, To: user.Email})
}

// SendDailyReminder handles POST /api/email/daily-reminder
// @Summary Email the caller today's day summary
// @Tags email
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.EmailSendResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/email/daily-reminder [post]
func (h *EmailHandler) SendDailyReminder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := context.Background()
	user, ok := h.loadRecipient(ctx, r)
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	today := time.Now().Format("2006-01-02")
	day, err := scanDay(h.db.QueryRow(ctx,
		`SELECT `+dayColumns+` FROM itinerary_days WHERE user_id = $1 AND date = $2`, user.ID, today))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "No itinerary day planned for today")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	if err := h.email.SendDailyReminder(user.Email, &day); err != nil {
		h.logger.Error().Err(err).Str("to", user.Email).Msg("daily reminder email failed")
		utils.WriteErrorResponse(w, http.StatusBadGateway, "Email error", "Could not send the reminder email")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.EmailSendResponse{Sent: true, To: user.Email})
}

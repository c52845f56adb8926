package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/clicktorwanda/backend/internal/dto"
	"github.com/clicktorwanda/backend/internal/models"
	"github.com/clicktorwanda/backend/internal/utils"
)

// SubscriptionHandler is the paywall action dispatcher
type SubscriptionHandler struct {
	db     *pgxpool.Pool
	logger zerolog.Logger
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(db *pgxpool.Pool, logger zerolog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{db: db, logger: logger.With().Str("component", "subscription").Logger()}
}

func subToResponse(s *models.Subscription) *dto.SubscriptionResponse {
	return &dto.SubscriptionResponse{
		ID:               s.ID.String(),
		UserID:           s.UserID.String(),
		Status:           s.Status,
		Amount:           s.Amount,
		PaymentReference: s.PaymentReference,
		CreatedAt:        utils.FormatTimestamp(s.CreatedAt),
		UpdatedAt:        utils.FormatTimestamp(s.UpdatedAt),
	}
}

// Dispatch handles POST /api/subscription keyed by the action field
// @Summary Subscription actions
// @Description check | activate | staff_update | staff_delete | staff_create
// @Tags subscription
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SubscriptionRequest true "Action payload"
// @Success 200 {object} dto.SubscriptionCheckResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/subscription [post]
func (h *SubscriptionHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.SubscriptionRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "check":
		h.check(w, r, userID)
	case "activate":
		h.activate(w, r, userID, &req)
	case "staff_update", "staff_delete", "staff_create":
		h.staffAction(w, r, &req)
	default:
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "action must be check, activate, staff_update, staff_delete, or staff_create")
	}
}

func (h *SubscriptionHandler) loadSubscription(userID uuid.UUID) *models.Subscription {
	var s models.Subscription
	err := h.db.QueryRow(context.Background(),
		`SELECT id, user_id, status, amount, payment_reference, created_at, updated_at
		   FROM subscriptions WHERE user_id = $1`, userID).Scan(
		&s.ID, &s.UserID, &s.Status, &s.Amount, &s.PaymentReference, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil
	}
	return &s
}

// check answers the paywall gate. Admins always pass; a `rwandan`
// nationality activates on first check without a payment reference.
func (h *SubscriptionHandler) check(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	role, _ := utils.GetRoleFromContext(r.Context())
	isAdmin := role == models.RoleAdmin

	sub := h.loadSubscription(userID)

	if !models.HasActiveSubscription(isAdmin, sub) {
		// Free tier: activate automatically for the local nationality
		var nationality string
		if err := h.db.QueryRow(context.Background(),
			`SELECT nationality FROM users WHERE id = $1`, userID).Scan(&nationality); err == nil &&
			models.ShouldActivateFreeTier(nationality, isAdmin, sub) {
			sub = h.upsert(userID, "free-tier", 0)
		}
	}

	resp := dto.SubscriptionCheckResponse{
		HasActiveSubscription: models.HasActiveSubscription(isAdmin, sub),
	}
	if sub != nil {
		resp.Subscription = subToResponse(sub)
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// activate upserts an active row for any non-empty payment reference. The
// reference is trusted at face value; it is logged for later reconciliation
// against the processor.
func (h *SubscriptionHandler) activate(w http.ResponseWriter, r *http.Request, userID uuid.UUID, req *dto.SubscriptionRequest) {
	ref := strings.TrimSpace(req.PaymentReference)
	if ref == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "payment_reference is required")
		return
	}
	if len(ref) > 128 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "payment_reference too long")
		return
	}
	amount := 0.0
	if req.Amount != nil && *req.Amount > 0 {
		amount = *req.Amount
	}

	sub := h.upsert(userID, ref, amount)
	if sub == nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "failed to activate subscription")
		return
	}
	h.logger.Info().Str("user_id", userID.String()).Str("payment_reference", ref).Msg("subscription activated")

	utils.WriteJSONResponse(w, http.StatusOK, dto.SubscriptionCheckResponse{
		HasActiveSubscription: true,
		Subscription:          subToResponse(sub),
	})
}

func (h *SubscriptionHandler) upsert(userID uuid.UUID, ref string, amount float64) *models.Subscription {
	now := time.Now()
	s := models.Subscription{
		ID:               uuid.New(),
		UserID:           userID,
		Status:           models.SubscriptionActive,
		Amount:           amount,
		PaymentReference: ref,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	_, err := h.db.Exec(context.Background(),
		`INSERT INTO subscriptions (id, user_id, status, amount, payment_reference, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id) DO UPDATE
		    SET status = EXCLUDED.status,
		        amount = EXCLUDED.amount,
		        payment_reference = EXCLUDED.payment_reference,
		        updated_at = EXCLUDED.updated_at`,
		s.ID, s.UserID, s.Status, s.Amount, s.PaymentReference, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID.String()).Msg("subscription upsert failed")
		return nil
	}
	return h.loadSubscription(userID)
}

// staffAction covers staff_create, staff_update, and staff_delete against a
// target user's row.
func (h *SubscriptionHandler) staffAction(w http.ResponseWriter, r *http.Request, req *dto.SubscriptionRequest) {
	role, _ := utils.GetRoleFromContext(r.Context())
	if role != models.RoleStaff && role != models.RoleAdmin {
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "Staff access required")
		return
	}

	targetID, err := uuid.Parse(strings.TrimSpace(req.TargetUserID))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "target_user_id must be UUID")
		return
	}

	action := strings.ToLower(strings.TrimSpace(req.Action))
	switch action {
	case "staff_delete":
		if _, err := h.db.Exec(context.Background(),
			`DELETE FROM subscriptions WHERE user_id = $1`, targetID); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
		utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Subscription deleted"})

	case "staff_create":
		amount := 0.0
		if req.Amount != nil {
			amount = *req.Amount
		}
		sub := h.upsert(targetID, strings.TrimSpace(req.PaymentReference), amount)
		if sub == nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "failed to create subscription")
			return
		}
		utils.WriteJSONResponse(w, http.StatusOK, subToResponse(sub))

	case "staff_update":
		status := strings.ToLower(strings.TrimSpace(req.Status))
		if status != models.SubscriptionActive && status != models.SubscriptionInactive {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "status must be active or inactive")
			return
		}
		tag, err := h.db.Exec(context.Background(),
			`UPDATE subscriptions SET status = $1, updated_at = $2 WHERE user_id = $3`,
			status, time.Now(), targetID)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
		if tag.RowsAffected() == 0 {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "No subscription for this user")
			return
		}
		sub := h.loadSubscription(targetID)
		if sub == nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "failed to reload subscription")
			return
		}
		utils.WriteJSONResponse(w, http.StatusOK, subToResponse(sub))
	}
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clicktorwanda/backend/internal/dto"
	"github.com/clicktorwanda/backend/internal/llm"
	"github.com/clicktorwanda/backend/internal/utils"
)

const extractTextMaxLen = 20000

// ExtractHandler turns uploaded travel documents into itinerary day guesses
type ExtractHandler struct {
	llm    *llm.Client
	logger zerolog.Logger
}

// NewExtractHandler creates a new ExtractHandler
func NewExtractHandler(client *llm.Client, logger zerolog.Logger) *ExtractHandler {
	return &ExtractHandler{llm: client, logger: logger.With().Str("component", "extract").Logger()}
}

// Extract handles POST /api/ai/extract-itinerary
// @Summary Extract itinerary day guesses from a document
// @Description Accepts a data-URL image or plain text and returns a day-guess array suitable for POST /api/itinerary/import.
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ExtractRequest true "Document payload"
// @Success 200 {object} dto.ExtractResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/ai/extract-itinerary [post]
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ExtractRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	hasImage := req.ImageDataURL != ""
	hasText := req.Text != ""
	if hasImage == hasText {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "provide exactly one of image_data_url or text")
		return
	}
	if hasImage && !strings.HasPrefix(req.ImageDataURL, "data:image/") {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "image_data_url must be a data:image/ URL")
		return
	}
	if len(req.Text) > extractTextMaxLen {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "text too long")
		return
	}

	extracted, err := h.llm.ExtractItinerary(r.Context(), req.ImageDataURL, req.Text)
	if err != nil {
		if errors.Is(err, llm.ErrQuotaExhausted) {
			utils.WriteErrorResponse(w, http.StatusPaymentRequired, "Credits exhausted", "The AI planner has run out of credits. Please try again later.")
			return
		}
		utils.WriteErrorResponse(w, http.StatusBadGateway, "AI gateway error", err.Error())
		return
	}

	days := make([]dto.ImportDayGuess, 0, len(extracted))
	for _, d := range extracted {
		if strings.TrimSpace(d.Destination) == "" {
			continue
		}
		days = append(days, dto.ImportDayGuess{
			Destination: d.Destination,
			Hotel:       d.Hotel,
			Activity:    d.Activity,
			Notes:       d.Notes,
		})
	}

	h.logger.Info().Int("days", len(days)).Bool("image", hasImage).Msg("document extracted")
	utils.WriteJSONResponse(w, http.StatusOK, dto.ExtractResponse{Days: days})
}

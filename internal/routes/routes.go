package routes

import (
	"net/http"

	"github.com/clicktorwanda/backend/internal/config"
	"github.com/clicktorwanda/backend/internal/handlers"
	"github.com/clicktorwanda/backend/internal/middleware"
)

// Handlers bundles everything SetupRoutes wires onto the mux.
type Handlers struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	GoogleAuth   *handlers.GoogleAuthHandler
	Catalog      *handlers.CatalogHandler
	Itinerary    *handlers.ItineraryHandler
	Subscription *handlers.SubscriptionHandler
	SOS          *handlers.SOSHandler
	Chat         *handlers.ChatHandler
	Extract      *handlers.ExtractHandler
	Messages     *handlers.MessagesHandler
	Staff        *handlers.StaffHandler
	Email        *handlers.EmailHandler
}

// SetupRoutes configures all application routes
func SetupRoutes(h Handlers, limiter *middleware.RateLimiter, cfg *config.Config) {
	jwtCfg := &cfg.JWT

	// Health check routes
	http.HandleFunc("/healthz", h.Health.HealthCheck)
	http.HandleFunc("/livez", h.Health.LivenessCheck)
	http.HandleFunc("/readyz", h.Health.ReadinessCheck)

	// Authentication routes
	http.HandleFunc("/api/auth/register", h.Auth.Register)
	http.HandleFunc("/api/auth/login", h.Auth.Login)
	http.HandleFunc("/api/auth/profile", middleware.AuthMiddleware(h.Auth.Profile, jwtCfg))
	if cfg.IsGoogleOAuthConfigured() {
		http.HandleFunc("/api/auth/google/login", h.GoogleAuth.GoogleLogin)
		http.HandleFunc("/api/auth/google/callback", h.GoogleAuth.GoogleCallback)
	}

	// Public catalog routes
	http.HandleFunc("/api/destinations", h.Catalog.Destinations)
	http.HandleFunc("/api/destinations/", h.Catalog.Destinations)
	http.HandleFunc("/api/hotels", h.Catalog.Hotels)
	http.HandleFunc("/api/activities", h.Catalog.Activities)
	http.HandleFunc("/api/cars", h.Catalog.Cars)

	// Itinerary routes; exact patterns win over the "/api/itinerary/" prefix
	http.HandleFunc("/api/itinerary", middleware.AuthMiddleware(h.Itinerary.Itinerary, jwtCfg))
	http.HandleFunc("/api/itinerary/reorder", middleware.AuthMiddleware(h.Itinerary.Reorder, jwtCfg))
	http.HandleFunc("/api/itinerary/import", middleware.AuthMiddleware(h.Itinerary.Import, jwtCfg))
	http.HandleFunc("/api/itinerary/", middleware.AuthMiddleware(h.Itinerary.Itinerary, jwtCfg))

	// AI planner routes
	http.HandleFunc("/api/ai/chat", middleware.AuthMiddleware(
		middleware.RateLimitMiddleware(h.Chat.Chat, limiter, "chat",
			middleware.ChatLimit, middleware.ChatWindow, middleware.ChatLimitMsg), jwtCfg))
	http.HandleFunc("/api/ai/extract-itinerary", middleware.AuthMiddleware(h.Extract.Extract, jwtCfg))

	// Subscription action dispatcher
	http.HandleFunc("/api/subscription", middleware.AuthMiddleware(h.Subscription.Dispatch, jwtCfg))

	// SOS routes: travelers raise alerts, staff list and resolve them
	http.HandleFunc("/api/sos", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			middleware.AuthMiddleware(
				middleware.RateLimitMiddleware(h.SOS.Create, limiter, "sos",
					middleware.SOSLimit, middleware.SOSWindow, middleware.SOSLimitMsg), jwtCfg)(w, r)
		case http.MethodGet:
			middleware.StaffMiddleware(h.SOS.List, jwtCfg)(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	http.HandleFunc("/api/sos/", middleware.StaffMiddleware(h.SOS.Resolve, jwtCfg))

	// Messaging routes; the exact events pattern wins over the prefix
	http.HandleFunc("/api/conversations", middleware.AuthMiddleware(h.Messages.Conversations, jwtCfg))
	http.HandleFunc("/api/conversations/events", middleware.AuthMiddleware(h.Messages.Events, jwtCfg))
	http.HandleFunc("/api/conversations/", middleware.AuthMiddleware(h.Messages.Messages, jwtCfg))

	// Email routes
	http.HandleFunc("/api/email/package", middleware.AuthMiddleware(h.Email.SendPackage, jwtCfg))
	http.HandleFunc("/api/email/daily-reminder", middleware.AuthMiddleware(h.Email.SendDailyReminder, jwtCfg))

	// Staff back-office dispatcher
	http.HandleFunc("/api/staff", middleware.StaffMiddleware(h.Staff.Dispatch, jwtCfg))

	// Root route
	http.HandleFunc("/", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Click to Rwanda backend is running."))
}

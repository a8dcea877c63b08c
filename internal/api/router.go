package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/unotown/unotown/internal/api/handler"
	apimiddleware "github.com/unotown/unotown/internal/api/middleware"
	"github.com/unotown/unotown/internal/services/area"
	"github.com/unotown/unotown/internal/services/auth"
	"github.com/unotown/unotown/internal/services/bot"
	"github.com/unotown/unotown/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	AreaController *area.Controller
	BotService     *bot.Service
	HubManager     *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	areaHandler := handler.NewAreaHandler(cfg.AreaController, cfg.BotService, cfg.HubManager)

	// Create middleware
	authMiddleware := apimiddleware.Auth(cfg.AuthService)
	loggingMiddleware := apimiddleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Area routes (all require auth)
	areas := api.PathPrefix("/areas/{area_id}").Subrouter()
	areas.Use(authMiddleware)
	areas.HandleFunc("", areaHandler.Get).Methods(http.MethodGet)
	areas.HandleFunc("/game", areaHandler.GetGame).Methods(http.MethodGet)
	areas.HandleFunc("/commands", areaHandler.Command).Methods(http.MethodPost)
	areas.HandleFunc("/events", areaHandler.Events).Methods(http.MethodGet)
	areas.HandleFunc("/bots", areaHandler.AddBot).Methods(http.MethodPost)
	areas.HandleFunc("/bots/{player_id}", areaHandler.RemoveBot).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

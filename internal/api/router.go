package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/fourinarow/internal/api/handler"
	"github.com/mcoot/fourinarow/internal/api/middleware"
	"github.com/mcoot/fourinarow/internal/api/response"
	"github.com/mcoot/fourinarow/internal/dependencies/clock"
	"github.com/mcoot/fourinarow/internal/services/bot"
	"github.com/mcoot/fourinarow/internal/services/game"
	"github.com/mcoot/fourinarow/internal/services/search"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	BotService     *bot.Service
	Engine         *search.Engine
	Clock          clock.Clock
	// Depths apply to new seats and analysis requests that do not name a depth
	Depths bot.Depths
	// MaxDepth caps requested search depths; zero means no cap
	MaxDepth int
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.BotService, cfg.Depths, cfg.MaxDepth, cfg.Logger)
	analyzeHandler := handler.NewAnalyzeHandler(cfg.Engine, cfg.Depths, cfg.MaxDepth, clk, cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	games := api.PathPrefix("/games").Subrouter()
	games.HandleFunc("", gameHandler.List).Methods(http.MethodGet)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Abandon).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/start", gameHandler.Start).Methods(http.MethodPost)
	games.HandleFunc("/{id}/moves", gameHandler.Move).Methods(http.MethodPost)
	games.HandleFunc("/{id}/engine", gameHandler.Engine).Methods(http.MethodPost)
	games.HandleFunc("/{id}/moves.csv", gameHandler.MoveLog).Methods(http.MethodGet)

	api.HandleFunc("/analyze", analyzeHandler.Analyze).Methods(http.MethodPost)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}

package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/fourinarow/internal/api/request"
	"github.com/mcoot/fourinarow/internal/api/response"
	"github.com/mcoot/fourinarow/internal/model"
	"github.com/mcoot/fourinarow/internal/services/bot"
	"github.com/mcoot/fourinarow/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController *game.Controller
	botService     *bot.Service
	depths         bot.Depths
	maxDepth       int
	logger         *slog.Logger
}

// NewGameHandler creates a new game handler. Seats created without a depth
// get depths; a positive maxDepth caps the search depth a seat may ask for.
func NewGameHandler(gameController *game.Controller, botService *bot.Service, depths bot.Depths, maxDepth int, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		botService:     botService,
		depths:         depths,
		maxDepth:       maxDepth,
		logger:         logger.With(slog.String("component", "game-handler")),
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := decodeOptional(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	opts, err := h.createOptions(req)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.CreateGame(r.Context(), opts)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, actions := h.processBotActions(r.Context(), g)
	response.JSON(w, http.StatusCreated, response.NewGameUpdate(g, actions))
}

func (h *GameHandler) createOptions(req request.CreateGameRequest) (game.CreateOptions, error) {
	xKind, err := model.ParsePlayerKind(req.XPlayer)
	if err != nil {
		return game.CreateOptions{}, err
	}
	oKind, err := model.ParsePlayerKind(req.OPlayer)
	if err != nil {
		return game.CreateOptions{}, err
	}
	xDepth := h.seatDepth(model.MarkX, req.XDepth)
	oDepth := h.seatDepth(model.MarkO, req.ODepth)
	for _, depth := range []int{xDepth, oDepth} {
		if err := checkDepth(depth, h.maxDepth); err != nil {
			return game.CreateOptions{}, err
		}
	}
	return game.CreateOptions{
		X:         model.Seat{Kind: xKind, Depth: xDepth},
		O:         model.Seat{Kind: oKind, Depth: oDepth},
		Adjacency: model.AdjacencyRule(req.Adjacency),
	}, nil
}

func (h *GameHandler) seatDepth(player model.Mark, depth *int) int {
	if depth == nil {
		return h.depths.For(player)
	}
	return *depth
}

// checkDepth rejects negative depths and, when maxDepth is positive, depths above it
func checkDepth(depth, maxDepth int) error {
	switch {
	case depth < 0:
		return fmt.Errorf("%w: %d is negative", model.ErrInvalidDepth, depth)
	case maxDepth > 0 && depth > maxDepth:
		return fmt.Errorf("%w: %d exceeds limit %d", model.ErrInvalidDepth, depth, maxDepth)
	}
	return nil
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameController.ListGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.GameList{Games: make([]response.GameSummary, len(games))}
	for i, g := range games {
		resp.Games[i] = response.GameSummaryFromModel(g)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Abandon handles DELETE /api/v1/games/{id}
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.Abandon(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Start handles POST /api/v1/games/{id}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.place(w, r, h.gameController.PlaceStart)
}

// Move handles POST /api/v1/games/{id}/moves
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	h.place(w, r, h.gameController.PlaceMove)
}

type placeFunc func(ctx context.Context, id model.GameID, player model.Mark, pos model.Position) (*model.Game, error)

func (h *GameHandler) place(w http.ResponseWriter, r *http.Request, fn placeFunc) {
	var req request.PlaceRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	player, err := model.ParsePlayer(req.Player)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := fn(r.Context(), gameID(r), player, req.Position())
	if err != nil {
		WriteError(w, err)
		return
	}

	g, actions := h.processBotActions(r.Context(), g)
	response.JSON(w, http.StatusOK, response.NewGameUpdate(g, actions))
}

// Engine handles POST /api/v1/games/{id}/engine. The side to move plays its
// engine move whatever kind of seat it is, then any bot seats follow.
func (h *GameHandler) Engine(w http.ResponseWriter, r *http.Request) {
	g, action, err := h.botService.PlayTurn(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	g, actions := h.processBotActions(r.Context(), g)
	response.JSON(w, http.StatusOK, response.NewGameUpdate(g, append([]bot.BotAction{action}, actions...)))
}

// MoveLog handles GET /api/v1/games/{id}/moves.csv
func (h *GameHandler) MoveLog(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	data, err := h.gameController.MoveLog(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.CSV(w, string(id)+".csv", data)
}

// processBotActions lets bot seats play after a request changed the game.
// Failures are logged and the last good state is returned.
func (h *GameHandler) processBotActions(ctx context.Context, g *model.Game) (*model.Game, []bot.BotAction) {
	actions, err := h.botService.ProcessBotActions(ctx, g.ID)
	if err != nil {
		h.logger.Warn("bot actions failed",
			slog.String("game_id", string(g.ID)),
			slog.String("error", err.Error()),
		)
	}
	if len(actions) == 0 {
		return g, actions
	}

	updated, err := h.gameController.GetGame(ctx, g.ID)
	if err != nil {
		return g, actions
	}
	return updated, actions
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

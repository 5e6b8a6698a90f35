package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mcoot/fourinarow/internal/api/request"
	"github.com/mcoot/fourinarow/internal/api/response"
	"github.com/mcoot/fourinarow/internal/dependencies/clock"
	"github.com/mcoot/fourinarow/internal/model"
	"github.com/mcoot/fourinarow/internal/services/bot"
	"github.com/mcoot/fourinarow/internal/services/search"
)

// AnalyzeHandler runs the search engine on boards outside any game. Boards
// that are already won or full are rejected.
type AnalyzeHandler struct {
	engine   *search.Engine
	depths   bot.Depths
	maxDepth int
	clock    clock.Clock
	logger   *slog.Logger
}

func NewAnalyzeHandler(engine *search.Engine, depths bot.Depths, maxDepth int, clk clock.Clock, logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		engine:   engine,
		depths:   depths,
		maxDepth: maxDepth,
		clock:    clk,
		logger:   logger.With(slog.String("component", "analyze-handler")),
	}
}

// Analyze handles POST /api/v1/analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req request.AnalyzeRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	player, err := model.ParsePlayer(req.Player)
	if err != nil {
		WriteError(w, err)
		return
	}

	if result := req.Board.Result(); result.IsTerminal() {
		WriteError(w, fmt.Errorf("%w: board result is %q", model.ErrGameFinished, result))
		return
	}

	rule := h.engine.Adjacency()
	if req.Adjacency != "" {
		if rule, err = model.ParseAdjacencyRule(req.Adjacency); err != nil {
			WriteError(w, err)
			return
		}
	}

	depth := h.depths.For(player)
	if req.Depth != nil {
		depth = *req.Depth
	}
	if err := checkDepth(depth, h.maxDepth); err != nil {
		WriteError(w, err)
		return
	}

	board := req.Board
	started := h.clock.Now()
	decision := h.engine.Search(&board, player, depth, rule)
	elapsed := clock.Since(h.clock, started)

	h.logger.Info("analysis complete",
		slog.String("player", player.String()),
		slog.Int("depth", depth),
		slog.Bool("found", decision.Found),
		slog.Int("nodes", decision.Nodes),
		slog.Duration("elapsed", elapsed),
	)

	response.JSON(w, http.StatusOK, response.AnalysisFromDecision(decision, depth, elapsed))
}

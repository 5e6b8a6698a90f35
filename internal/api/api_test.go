package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/fourinarow/internal/api"
	"github.com/mcoot/fourinarow/internal/api/apierr"
	"github.com/mcoot/fourinarow/internal/api/response"
	"github.com/mcoot/fourinarow/internal/factory"
	"github.com/mcoot/fourinarow/internal/services/bot"
	"github.com/mcoot/fourinarow/internal/testutil"
)

type APISuite struct {
	suite.Suite
	app     *factory.TestApp
	handler http.Handler
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.handler = api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: s.app.GameController,
		BotService:     s.app.BotService,
		Engine:         s.app.Engine,
		Clock:          s.app.MockClock,
		Depths:         bot.DefaultDepths(),
		MaxDepth:       6,
	})
}

func (s *APISuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func (s *APISuite) decode(rr *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), v), rr.Body.String())
}

func (s *APISuite) errorCode(rr *httptest.ResponseRecorder) string {
	var resp apierr.ErrorResponse
	s.decode(rr, &resp)
	return resp.Error.Code
}

func (s *APISuite) createGame(id string, body map[string]any) response.GameUpdate {
	s.app.MockRandom.QueueString(id)
	rr := s.request(http.MethodPost, "/api/v1/games", body)
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())

	var resp response.GameUpdate
	s.decode(rr, &resp)
	return resp
}

func (s *APISuite) place(id, kind, player string, col, row int) *httptest.ResponseRecorder {
	return s.request(http.MethodPost, "/api/v1/games/"+id+"/"+kind, map[string]any{
		"player": player, "col": col, "row": row,
	})
}

// startHumanGame creates a two-human game with the default openings placed
func (s *APISuite) startHumanGame(id string) {
	s.createGame(id, nil)
	s.Require().Equal(http.StatusOK, s.place(id, "start", "X", 4, 3).Code)
	s.Require().Equal(http.StatusOK, s.place(id, "start", "O", 3, 3).Code)
}

func (s *APISuite) TestHealthCheck() {
	rr := s.request(http.MethodGet, "/api/v1/health", nil)
	s.Equal(http.StatusOK, rr.Code)
	s.JSONEq(`{"status":"ok"}`, rr.Body.String())
}

func (s *APISuite) TestCreateGameDefaults() {
	resp := s.createGame("GAME01", nil)

	s.Equal("GAME01", resp.Game.ID)
	s.Equal("start", resp.Game.Phase)
	s.Equal("X", resp.Game.Turn)
	s.Equal("human", resp.Game.X.Kind)
	s.Equal("human", resp.Game.O.Kind)
	s.Equal("same-player", resp.Game.Adjacency)
	s.Equal("in_progress", resp.Game.Result.Outcome)
	s.Empty(resp.Game.Moves)
	s.Empty(resp.BotActions)
}

func (s *APISuite) TestCreateGameValidation() {
	rr := s.request(http.MethodPost, "/api/v1/games", map[string]any{"x_player": "alphago"})
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal(apierr.CodeInvalidPlayer, s.errorCode(rr))

	rr = s.request(http.MethodPost, "/api/v1/games", map[string]any{"o_player": "minimax", "o_depth": 7})
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal(apierr.CodeInvalidDepth, s.errorCode(rr))

	rr = s.request(http.MethodPost, "/api/v1/games", map[string]any{"adjacency": "diagonal"})
	s.Equal(http.StatusBadRequest, rr.Code)

	rr = s.request(http.MethodPost, "/api/v1/games", map[string]any{"grid_size": 5})
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal(apierr.CodeInvalidRequest, s.errorCode(rr))
}

func (s *APISuite) TestMinimaxSeatWithoutDepthUsesDefault() {
	resp := s.createGame("GAME01", map[string]any{"x_player": "minimax"})
	s.Equal(2, resp.Game.X.Depth)
	s.Require().Len(resp.BotActions, 1)
	s.Equal("start", resp.BotActions[0].Type)

	rr := s.place("GAME01", "start", "O", 3, 3)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	var update response.GameUpdate
	s.decode(rr, &update)
	s.Require().Len(update.Game.Moves, 3)
	engineMove := update.Game.Moves[2]
	s.True(engineMove.Engine)
	s.Require().NotNil(engineMove.Depth)
	s.Equal(2, *engineMove.Depth)
	// Seven root candidates searched two plies deep visit far more than one node each
	s.Greater(*engineMove.Nodes, 7)

	resp = s.createGame("GAME02", map[string]any{"o_player": "minimax"})
	s.Equal(4, resp.Game.O.Depth)

	resp = s.createGame("GAME03", map[string]any{"o_player": "minimax", "o_depth": 0})
	s.Equal(0, resp.Game.O.Depth)
}

func (s *APISuite) TestBotAnswersHumanStart() {
	s.createGame("GAME01", map[string]any{"o_player": "minimax", "o_depth": 1})

	rr := s.place("GAME01", "start", "X", 4, 3)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	var resp response.GameUpdate
	s.decode(rr, &resp)
	s.Require().Len(resp.BotActions, 1)
	s.Equal("start", resp.BotActions[0].Type)
	s.Equal("O", resp.BotActions[0].Player)
	s.Equal(3, *resp.BotActions[0].Col)
	s.Equal(3, *resp.BotActions[0].Row)

	s.Equal("playing", resp.Game.Phase)
	s.Equal("X", resp.Game.Turn)
	s.Equal("....../....../....../...OX./......", resp.Game.Board.String())
}

func (s *APISuite) TestHumanGameToWin() {
	s.createGame("GAME01", nil)
	s.Require().Equal(http.StatusOK, s.place("GAME01", "start", "X", 0, 0).Code)
	s.Require().Equal(http.StatusOK, s.place("GAME01", "start", "O", 5, 4).Code)

	moves := []struct {
		player   string
		col, row int
	}{
		{"X", 0, 1}, {"O", 5, 3}, {"X", 0, 2}, {"O", 5, 2}, {"X", 0, 3},
	}
	var rr *httptest.ResponseRecorder
	for _, m := range moves {
		rr = s.place("GAME01", "moves", m.player, m.col, m.row)
		s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	}

	var resp response.GameUpdate
	s.decode(rr, &resp)
	s.Equal("finished", resp.Game.Phase)
	s.Equal("win", resp.Game.Result.Outcome)
	s.Equal("X", resp.Game.Result.Winner)
	s.Empty(resp.Game.Turn)
	s.Len(resp.Game.Moves, 7)

	rr = s.place("GAME01", "moves", "O", 5, 1)
	s.Equal(http.StatusConflict, rr.Code)
	s.Equal(apierr.CodeGameFinished, s.errorCode(rr))

	rr = s.request(http.MethodGet, "/api/v1/games/GAME01/moves.csv", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal("text/csv", rr.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	s.Len(lines, 8)
	s.Equal("Player,Turn,Move,Time,Nodes Generated", lines[0])
	s.Equal(`X,Start,"(0, 0)"`, lines[1])
	s.Equal(`X,Move,"(0, 3)",,`, lines[7])
}

func (s *APISuite) TestPlacementErrors() {
	s.startHumanGame("GAME01")

	tests := []struct {
		name     string
		kind     string
		player   string
		col, row int
		status   int
		code     string
	}{
		{"wrong turn", "moves", "O", 2, 2, http.StatusForbidden, apierr.CodeNotYourTurn},
		{"wrong phase", "start", "X", 0, 0, http.StatusConflict, apierr.CodeWrongPhase},
		{"occupied", "moves", "X", 3, 3, http.StatusConflict, apierr.CodeCellOccupied},
		{"not adjacent", "moves", "X", 0, 0, http.StatusUnprocessableEntity, apierr.CodeNotAdjacent},
		{"opponent neighbour only", "moves", "X", 2, 3, http.StatusUnprocessableEntity, apierr.CodeNotAdjacent},
		{"off board", "moves", "X", 6, 0, http.StatusBadRequest, apierr.CodeOutOfBounds},
		{"bad player", "moves", "Z", 5, 3, http.StatusBadRequest, apierr.CodeInvalidPlayer},
	}

	for _, tt := range tests {
		rr := s.place("GAME01", tt.kind, tt.player, tt.col, tt.row)
		s.Equal(tt.status, rr.Code, tt.name)
		s.Equal(tt.code, s.errorCode(rr), tt.name)
	}

	rr := s.place("MISSING", "moves", "X", 5, 3)
	s.Equal(http.StatusNotFound, rr.Code)
	s.Equal(apierr.CodeGameNotFound, s.errorCode(rr))
}

func (s *APISuite) TestEngineMoveForHumanSeat() {
	s.startHumanGame("GAME01")

	rr := s.request(http.MethodPost, "/api/v1/games/GAME01/engine", nil)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	var resp response.GameUpdate
	s.decode(rr, &resp)
	s.Require().Len(resp.BotActions, 1)
	action := resp.BotActions[0]
	s.Equal("move", action.Type)
	s.Equal("X", action.Player)
	s.Equal(2, action.Depth)
	s.Positive(action.Nodes)

	s.Equal("O", resp.Game.Turn)
	last := resp.Game.Moves[len(resp.Game.Moves)-1]
	s.True(last.Engine)
	s.Equal(2, *last.Depth)
	s.Equal(action.Nodes, *last.Nodes)
}

func (s *APISuite) TestEngineMoveOnClosedGame() {
	s.startHumanGame("GAME01")
	s.Require().Equal(http.StatusOK, s.request(http.MethodDelete, "/api/v1/games/GAME01", nil).Code)

	rr := s.request(http.MethodPost, "/api/v1/games/GAME01/engine", nil)
	s.Equal(http.StatusConflict, rr.Code)
	s.Equal(apierr.CodeGameAbandoned, s.errorCode(rr))
}

func (s *APISuite) TestGetListAndAbandon() {
	s.createGame("GAME01", nil)
	s.app.MockClock.Advance(1)
	s.createGame("GAME02", map[string]any{"x_player": "random"})

	rr := s.request(http.MethodGet, "/api/v1/games", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	var list response.GameList
	s.decode(rr, &list)
	s.Require().Len(list.Games, 2)
	s.Equal("GAME01", list.Games[0].ID)
	s.Equal("GAME02", list.Games[1].ID)

	rr = s.request(http.MethodDelete, "/api/v1/games/GAME01", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	var g response.Game
	s.decode(rr, &g)
	s.Equal("abandoned", g.Phase)

	rr = s.request(http.MethodGet, "/api/v1/games/GAME01", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.decode(rr, &g)
	s.Equal("abandoned", g.Phase)

	rr = s.request(http.MethodGet, "/api/v1/games/NOPE", nil)
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *APISuite) TestAnalyzeOpening() {
	rr := s.request(http.MethodPost, "/api/v1/analyze", map[string]any{
		"board":  []string{"......", "......", "......", "...OX.", "......"},
		"player": "O",
		"depth":  0,
	})
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	var a response.Analysis
	s.decode(rr, &a)
	s.True(a.Found)
	s.Equal(2, *a.Col)
	s.Equal(2, *a.Row)
	s.Equal(0, a.Score)
	s.Equal(7, a.Nodes)
	s.Equal(0, a.Depth)
}

func (s *APISuite) TestAnalyzeUsesDefaultDepthAndFindsWin() {
	rr := s.request(http.MethodPost, "/api/v1/analyze", map[string]any{
		"board":  []string{".....X", ".....X", ".....X", "......", "O....."},
		"player": "x",
	})
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	var a response.Analysis
	s.decode(rr, &a)
	s.True(a.Found)
	s.Equal(5, *a.Col)
	s.Equal(3, *a.Row)
	s.Equal(1000, a.Score)
	s.Equal(2, a.Depth)
}

func (s *APISuite) TestAnalyzeNoMove() {
	rr := s.request(http.MethodPost, "/api/v1/analyze", map[string]any{
		"board":  []string{"......", "......", "..X...", "......", "......"},
		"player": "O",
		"depth":  2,
	})
	s.Require().Equal(http.StatusOK, rr.Code)

	var a response.Analysis
	s.decode(rr, &a)
	s.False(a.Found)
	s.Nil(a.Col)
	s.Nil(a.Row)
	s.Zero(a.Nodes)

	rr = s.request(http.MethodPost, "/api/v1/analyze", map[string]any{
		"board":     []string{"......", "......", "..X...", "......", "......"},
		"player":    "O",
		"depth":     0,
		"adjacency": "any-player",
	})
	s.Require().Equal(http.StatusOK, rr.Code)
	s.decode(rr, &a)
	s.True(a.Found)
	s.Equal(8, a.Nodes)
}

func (s *APISuite) TestAnalyzeRejectsFinishedBoards() {
	for _, board := range [][]string{
		{"X.....", "X.....", "X.....", "X.....", "OOO..."},
		{"XXOOXX", "OOXXOO", "XXOOXX", "OOXXOO", "XXOOXX"},
	} {
		rr := s.request(http.MethodPost, "/api/v1/analyze", map[string]any{
			"board":  board,
			"player": "O",
			"depth":  1,
		})
		s.Equal(http.StatusConflict, rr.Code, rr.Body.String())
		s.Equal(apierr.CodeGameFinished, s.errorCode(rr))
	}
}

func (s *APISuite) TestAnalyzeValidation() {
	rr := s.request(http.MethodPost, "/api/v1/analyze", map[string]any{
		"board":  []string{"......", "......"},
		"player": "O",
	})
	s.Equal(http.StatusBadRequest, rr.Code)

	rr = s.request(http.MethodPost, "/api/v1/analyze", map[string]any{
		"board":  []string{"......", "......", "......", "......", "......"},
		"player": ".",
	})
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal(apierr.CodeInvalidPlayer, s.errorCode(rr))

	rr = s.request(http.MethodPost, "/api/v1/analyze", map[string]any{
		"board":  []string{"......", "......", "......", "......", "......"},
		"player": "X",
		"depth":  -1,
	})
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal(apierr.CodeInvalidDepth, s.errorCode(rr))
}

package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/fourinarow/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidPlacement = "INVALID_PLACEMENT"
	CodeOutOfBounds      = "OUT_OF_BOUNDS"
	CodeCellOccupied     = "CELL_OCCUPIED"
	CodeNotAdjacent      = "NOT_ADJACENT"
	CodeInvalidPlayer    = "INVALID_PLAYER"
	CodeInvalidBoard     = "INVALID_BOARD"
	CodeInvalidDepth     = "INVALID_DEPTH"
	CodeNotYourTurn      = "NOT_YOUR_TURN"
	CodeWrongPhase       = "WRONG_PHASE"
	CodeGameNotFound     = "GAME_NOT_FOUND"
	CodeGameFinished     = "GAME_FINISHED"
	CodeGameAbandoned    = "GAME_ABANDONED"
	CodeNoMoveAvailable  = "NO_MOVE_AVAILABLE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status err would be written with
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError. Placement causes are
// checked before ErrInvalidPlacement, which wraps all of them.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameFinished, "Game is already finished"}}
	case errors.Is(err, model.ErrGameAbandoned):
		return &httpError{http.StatusConflict, APIError{CodeGameAbandoned, "Game was abandoned"}}
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrWrongPhase):
		return &httpError{http.StatusConflict, APIError{CodeWrongPhase, err.Error()}}
	case errors.Is(err, model.ErrNoMoveAvailable):
		return &httpError{http.StatusConflict, APIError{CodeNoMoveAvailable, "No valid move"}}

	case errors.Is(err, model.ErrOutOfBounds):
		return &httpError{http.StatusBadRequest, APIError{CodeOutOfBounds, "Position is off the board"}}
	case errors.Is(err, model.ErrCellOccupied):
		return &httpError{http.StatusConflict, APIError{CodeCellOccupied, "Cell is already occupied"}}
	case errors.Is(err, model.ErrNotAdjacent):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeNotAdjacent, "Cell has no qualifying neighbour"}}
	case errors.Is(err, model.ErrInvalidPlacement):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlacement, "Invalid placement"}}

	case errors.Is(err, model.ErrInvalidMark):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayer, "Player must be X or O"}}
	case errors.Is(err, model.ErrInvalidPlayerKind):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayer, "Player kind must be human, minimax or random"}}
	case errors.Is(err, model.ErrInvalidBoard):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidBoard, err.Error()}}
	case errors.Is(err, model.ErrInvalidDepth):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDepth, err.Error()}}
	case errors.Is(err, model.ErrInvalidAdjacencyRule):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Adjacency must be same-player or any-player"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

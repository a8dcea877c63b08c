package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/unotown/unotown/internal/model"
	"github.com/unotown/unotown/internal/services/auth"
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
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidCommand      = "INVALID_COMMAND"
	CodeInvalidMove         = "INVALID_MOVE"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeNotYourTurn         = "NOT_YOUR_TURN"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeAreaNotFound        = "AREA_NOT_FOUND"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeAlreadyInGame       = "ALREADY_IN_GAME"
	CodeNotInGame           = "NOT_IN_GAME"
	CodeGameFull            = "GAME_FULL"
	CodeGameInProgress      = "GAME_IN_PROGRESS"
	CodeNoGameInProgress    = "NO_GAME_IN_PROGRESS"
	CodeGameIDMismatch      = "GAME_ID_MISMATCH"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeNotBot              = "NOT_BOT"
	CodeUsernameExists      = "USERNAME_EXISTS"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
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

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrAreaNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAreaNotFound, "Area not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrPlayerNotInGame):
		return &httpError{http.StatusForbidden, APIError{CodeNotInGame, "Not a player in this game"}}
	case errors.Is(err, model.ErrPlayerAlreadyInGame):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInGame, "Already in this game"}}
	case errors.Is(err, model.ErrGameFull):
		return &httpError{http.StatusConflict, APIError{CodeGameFull, "Game is full"}}
	case errors.Is(err, model.ErrGameInProgress):
		return &httpError{http.StatusConflict, APIError{CodeGameInProgress, "Game is in progress"}}
	case errors.Is(err, model.ErrGameNotInProgress):
		return &httpError{http.StatusNotFound, APIError{CodeNoGameInProgress, "No game in progress"}}
	case errors.Is(err, model.ErrGameIDMismatch):
		return &httpError{http.StatusConflict, APIError{CodeGameIDMismatch, "Command targets a different game"}}
	case errors.Is(err, model.ErrInvalidCommand):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCommand, "Invalid command"}}
	case errors.Is(err, model.ErrInvalidMove):
		return &httpError{http.StatusConflict, APIError{CodeInvalidMove, "Move is not legal"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrNotBot):
		return &httpError{http.StatusBadRequest, APIError{CodeNotBot, "Player is not a bot"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/gorilla/mux"

	"github.com/unotown/unotown/internal/api/middleware"
	"github.com/unotown/unotown/internal/api/request"
	"github.com/unotown/unotown/internal/api/response"
	"github.com/unotown/unotown/internal/model"
	"github.com/unotown/unotown/internal/services/area"
	"github.com/unotown/unotown/internal/services/bot"
	"github.com/unotown/unotown/internal/sse"
)

// AreaHandler handles game-area endpoints: area state, the command channel
// and the event stream
type AreaHandler struct {
	areaController *area.Controller
	botService     *bot.Service
	hubManager     *sse.HubManager
}

// NewAreaHandler creates a new area handler
func NewAreaHandler(areaController *area.Controller, botService *bot.Service, hubManager *sse.HubManager) *AreaHandler {
	return &AreaHandler{
		areaController: areaController,
		botService:     botService,
		hubManager:     hubManager,
	}
}

// Get handles GET /api/v1/areas/{area_id}
func (h *AreaHandler) Get(w http.ResponseWriter, r *http.Request) {
	areaID := model.AreaID(mux.Vars(r)["area_id"])

	ar, err := h.areaController.EnsureArea(r.Context(), areaID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AreaFromModel(ar))
}

// GetGame handles GET /api/v1/areas/{area_id}/game
func (h *AreaHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	areaID := model.AreaID(mux.Vars(r)["area_id"])

	instance, err := h.areaController.GetInstance(r.Context(), areaID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameInstanceFromModel(instance))
}

// Command handles POST /api/v1/areas/{area_id}/commands
func (h *AreaHandler) Command(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	areaID := model.AreaID(mux.Vars(r)["area_id"])

	var req request.CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Type == "" {
		WriteError(w, NewInvalidRequestError("type is required"))
		return
	}

	cmd := model.Command{
		Type:   model.CommandType(req.Type),
		GameID: model.GameInstanceID(req.GameID),
		Color:  model.Color(req.Color),
	}
	if req.Move != nil {
		cmd.Move = &model.Move{
			PlayerID:   player.ID,
			CardPlaced: model.NewCard(model.Color(req.Move.Card.Color), model.CardValue(req.Move.Card.Value)),
		}
	}

	instance, err := h.areaController.HandleCommand(r.Context(), areaID, *player, cmd)
	if err != nil {
		WriteError(w, err)
		return
	}

	// Let seated bots take their turns; each bot action notifies listeners
	// through the dispatcher
	h.processBotActions(r.Context(), areaID)

	response.JSON(w, http.StatusOK, response.GameInstanceFromModel(instance))
}

// Events handles GET /api/v1/areas/{area_id}/events
func (h *AreaHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	areaID := model.AreaID(mux.Vars(r)["area_id"])

	hub := h.hubManager.GetOrCreateHub(areaID)
	sse.ServeSSE(w, r, hub, player.ID)
}

// AddBot handles POST /api/v1/areas/{area_id}/bots
func (h *AreaHandler) AddBot(w http.ResponseWriter, r *http.Request) {
	areaID := model.AreaID(mux.Vars(r)["area_id"])

	var req request.AddBotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req = request.AddBotRequest{}
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = model.BotStrategyRandom
	}
	if !slices.Contains(model.ValidBotStrategies(), strategy) {
		WriteError(w, NewInvalidRequestError(fmt.Sprintf(
			"unknown strategy %q (valid: %s)",
			strategy, strings.Join(model.ValidBotStrategies(), ", "),
		)))
		return
	}

	botPlayer, err := h.botService.AddBotToArea(r.Context(), areaID, strategy)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(botPlayer))
}

// RemoveBot handles DELETE /api/v1/areas/{area_id}/bots/{player_id}
func (h *AreaHandler) RemoveBot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	areaID := model.AreaID(vars["area_id"])
	botPlayerID := model.PlayerID(vars["player_id"])

	if err := h.botService.RemoveBotFromArea(r.Context(), areaID, botPlayerID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// processBotActions runs queued bot turns after a human command
func (h *AreaHandler) processBotActions(ctx context.Context, areaID model.AreaID) {
	if h.botService == nil {
		return
	}
	_, _ = h.botService.ProcessBotActions(ctx, areaID)
}

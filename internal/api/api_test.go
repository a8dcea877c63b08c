package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/unotown/unotown/internal/api"
	"github.com/unotown/unotown/internal/api/request"
	"github.com/unotown/unotown/internal/api/response"
	"github.com/unotown/unotown/internal/factory"
	"github.com/unotown/unotown/internal/model"
	"github.com/unotown/unotown/internal/testutil"
)

// errorBody mirrors the error envelope written by the API
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type APISuite struct {
	suite.Suite
	app    *factory.TestApp
	server *httptest.Server
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.app = factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		AuthService:    s.app.AuthService,
		AreaController: s.app.AreaController,
		BotService:     s.app.BotService,
		HubManager:     s.app.HubManager,
	})
	s.server = httptest.NewServer(router)
}

func (s *APISuite) TearDownTest() {
	s.server.Close()
}

// do issues a request and decodes the response body into out when non-nil
func (s *APISuite) do(method, path, token string, body any, out any) *http.Response {
	var reqBody bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&reqBody).Encode(body))
	}

	req, err := http.NewRequest(method, s.server.URL+path, &reqBody)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	if out != nil {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (s *APISuite) guest(username string) response.AuthResponse {
	var auth response.AuthResponse
	resp := s.do(http.MethodPost, "/api/v1/players/guest", "",
		request.CreateGuestRequest{Username: username}, &auth)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	return auth
}

func (s *APISuite) command(token, areaID string, cmd request.CommandRequest, out any) *http.Response {
	return s.do(http.MethodPost, "/api/v1/areas/"+areaID+"/commands", token, cmd, out)
}

// startedGame joins two guests to the area and readies both
func (s *APISuite) startedGame(areaID string) (alice, bob response.AuthResponse, instance response.GameInstance) {
	alice = s.guest("Alice")
	bob = s.guest("Bob")

	join := request.CommandRequest{Type: string(model.CommandJoinGame)}
	ready := request.CommandRequest{Type: string(model.CommandReadyUp)}

	s.Require().Equal(http.StatusOK, s.command(alice.SessionToken, areaID, join, nil).StatusCode)
	s.Require().Equal(http.StatusOK, s.command(bob.SessionToken, areaID, join, nil).StatusCode)
	s.Require().Equal(http.StatusOK, s.command(alice.SessionToken, areaID, ready, nil).StatusCode)

	resp := s.command(bob.SessionToken, areaID, ready, &instance)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().Equal(string(model.GameInProgress), instance.State.Status)
	return alice, bob, instance
}

// Health and auth endpoint tests

func (s *APISuite) TestHealth() {
	var body map[string]string
	resp := s.do(http.MethodGet, "/api/v1/health", "", nil, &body)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("ok", body["status"])
}

func (s *APISuite) TestCreateGuest() {
	auth := s.guest("Alice")

	s.NotEmpty(auth.Player.ID)
	s.Equal("Alice", auth.Player.Username)
	s.True(auth.Player.IsGuest)
	s.NotEmpty(auth.SessionToken)
}

func (s *APISuite) TestCreateGuestRequiresUsername() {
	var body errorBody
	resp := s.do(http.MethodPost, "/api/v1/players/guest", "",
		request.CreateGuestRequest{}, &body)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("INVALID_REQUEST", body.Error.Code)
}

func (s *APISuite) TestRegisterAndLogin() {
	var registered response.AuthResponse
	resp := s.do(http.MethodPost, "/api/v1/players/register", "",
		request.RegisterRequest{Username: "carol", Password: "hunter22"}, &registered)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.False(registered.Player.IsGuest)

	var loggedIn response.AuthResponse
	resp = s.do(http.MethodPost, "/api/v1/players/login", "",
		request.LoginRequest{Username: "carol", Password: "hunter22"}, &loggedIn)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(registered.Player.ID, loggedIn.Player.ID)
	s.NotEmpty(loggedIn.SessionToken)
}

func (s *APISuite) TestRegisterDuplicateUsername() {
	resp := s.do(http.MethodPost, "/api/v1/players/register", "",
		request.RegisterRequest{Username: "carol", Password: "hunter22"}, nil)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var body errorBody
	resp = s.do(http.MethodPost, "/api/v1/players/register", "",
		request.RegisterRequest{Username: "carol", Password: "other"}, &body)
	s.Equal(http.StatusConflict, resp.StatusCode)
	s.Equal("USERNAME_EXISTS", body.Error.Code)
}

func (s *APISuite) TestLoginWrongPassword() {
	resp := s.do(http.MethodPost, "/api/v1/players/register", "",
		request.RegisterRequest{Username: "carol", Password: "hunter22"}, nil)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var body errorBody
	resp = s.do(http.MethodPost, "/api/v1/players/login", "",
		request.LoginRequest{Username: "carol", Password: "wrong"}, &body)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("INVALID_CREDENTIALS", body.Error.Code)
}

func (s *APISuite) TestGetMe() {
	auth := s.guest("Alice")

	var me response.Player
	resp := s.do(http.MethodGet, "/api/v1/players/me", auth.SessionToken, nil, &me)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(auth.Player.ID, me.ID)
}

func (s *APISuite) TestGetMeWithoutToken() {
	var body errorBody
	resp := s.do(http.MethodGet, "/api/v1/players/me", "", nil, &body)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("UNAUTHORIZED", body.Error.Code)
	s.Equal("Authentication required", body.Error.Message)
}

func (s *APISuite) TestGetMeWithBogusToken() {
	var body errorBody
	resp := s.do(http.MethodGet, "/api/v1/players/me", "not-a-token", nil, &body)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("UNAUTHORIZED", body.Error.Code)
}

// Area endpoint tests

func (s *APISuite) TestGetAreaCreatesOnFirstUse() {
	auth := s.guest("Alice")

	var area response.Area
	resp := s.do(http.MethodGet, "/api/v1/areas/gamesRoom", auth.SessionToken, nil, &area)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("gamesRoom", area.ID)
	s.Nil(area.CurrentGame)
	s.Empty(area.History)
}

func (s *APISuite) TestGetGameWithoutGame() {
	auth := s.guest("Alice")
	s.do(http.MethodGet, "/api/v1/areas/gamesRoom", auth.SessionToken, nil, nil)

	var body errorBody
	resp := s.do(http.MethodGet, "/api/v1/areas/gamesRoom/game", auth.SessionToken, nil, &body)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("NO_GAME_IN_PROGRESS", body.Error.Code)
	s.Equal("No game in progress", body.Error.Message)
}

func (s *APISuite) TestCommandRequiresType() {
	auth := s.guest("Alice")

	var body errorBody
	resp := s.command(auth.SessionToken, "gamesRoom", request.CommandRequest{}, &body)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("INVALID_REQUEST", body.Error.Code)
}

func (s *APISuite) TestJoinReadyStartFlow() {
	_, _, instance := s.startedGame("gamesRoom")

	s.Len(instance.Players, 2)
	s.Require().Len(instance.State.Hands, 2)
	s.Len(instance.State.Hands[0].Cards, 7)
	s.Len(instance.State.Hands[1].Cards, 7)
	s.Require().NotNil(instance.State.CurrentMovePlayer)
	s.Equal(instance.Players[0], *instance.State.CurrentMovePlayer)

	// The snapshot is also readable via GET
	var fetched response.GameInstance
	auth := s.guest("Carol")
	resp := s.do(http.MethodGet, "/api/v1/areas/gamesRoom/game", auth.SessionToken, nil, &fetched)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(instance.ID, fetched.ID)
}

func (s *APISuite) TestMoveOutOfTurn() {
	_, bob, instance := s.startedGame("gamesRoom")

	var body errorBody
	resp := s.command(bob.SessionToken, "gamesRoom", request.CommandRequest{
		Type:   string(model.CommandGameMove),
		GameID: instance.ID,
		Move:   &request.Move{Card: request.Card{Color: "yellow", Value: "skip"}},
	}, &body)
	s.Equal(http.StatusForbidden, resp.StatusCode)
	s.Equal("NOT_YOUR_TURN", body.Error.Code)
	s.Equal("Not your turn", body.Error.Message)
}

func (s *APISuite) TestMoveWithStaleGameID() {
	alice, _, _ := s.startedGame("gamesRoom")

	var body errorBody
	resp := s.command(alice.SessionToken, "gamesRoom", request.CommandRequest{
		Type:   string(model.CommandGameMove),
		GameID: "some-other-game",
		Move:   &request.Move{Card: request.Card{Color: "yellow", Value: "skip"}},
	}, &body)
	s.Equal(http.StatusConflict, resp.StatusCode)
	s.Equal("GAME_ID_MISMATCH", body.Error.Code)
}

func (s *APISuite) TestLeaveEndsGameAndRecordsHistory() {
	alice, bob, instance := s.startedGame("gamesRoom")

	var final response.GameInstance
	resp := s.command(bob.SessionToken, "gamesRoom", request.CommandRequest{
		Type:   string(model.CommandLeaveGame),
		GameID: instance.ID,
	}, &final)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	s.Equal(string(model.GameOver), final.State.Status)
	s.Require().NotNil(final.State.Winner)
	s.Equal(alice.Player.ID, *final.State.Winner)
	s.Require().NotNil(final.Result)
	s.Equal(map[string]int{"Alice": 1}, final.Result.Scores)

	var area response.Area
	resp = s.do(http.MethodGet, "/api/v1/areas/gamesRoom", alice.SessionToken, nil, &area)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().Len(area.History, 1)
	s.Equal(instance.ID, area.History[0].GameID)
}

// Bot endpoint tests

func (s *APISuite) TestAddAndRemoveBot() {
	auth := s.guest("Alice")
	s.Require().Equal(http.StatusOK, s.command(auth.SessionToken, "gamesRoom",
		request.CommandRequest{Type: string(model.CommandJoinGame)}, nil).StatusCode)

	var bot response.Player
	resp := s.do(http.MethodPost, "/api/v1/areas/gamesRoom/bots", auth.SessionToken,
		request.AddBotRequest{}, &bot)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.True(bot.IsBot)
	s.Equal("Bot 1", bot.Username)

	resp = s.do(http.MethodDelete, "/api/v1/areas/gamesRoom/bots/"+bot.ID, auth.SessionToken, nil, nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)
}

func (s *APISuite) TestAddBotRejectsUnknownStrategy() {
	auth := s.guest("Alice")

	var body errorBody
	resp := s.do(http.MethodPost, "/api/v1/areas/gamesRoom/bots", auth.SessionToken,
		request.AddBotRequest{Strategy: "minimax"}, &body)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("INVALID_REQUEST", body.Error.Code)
	s.Contains(body.Error.Message, "minimax")
}

func (s *APISuite) TestRemoveBotRejectsHuman() {
	auth := s.guest("Alice")
	s.Require().Equal(http.StatusOK, s.command(auth.SessionToken, "gamesRoom",
		request.CommandRequest{Type: string(model.CommandJoinGame)}, nil).StatusCode)

	var body errorBody
	resp := s.do(http.MethodDelete,
		fmt.Sprintf("/api/v1/areas/gamesRoom/bots/%s", auth.Player.ID),
		auth.SessionToken, nil, &body)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("NOT_BOT", body.Error.Code)
}

func (s *APISuite) TestCommandRunsBotTurns() {
	auth := s.guest("Alice")
	s.Require().Equal(http.StatusOK, s.command(auth.SessionToken, "gamesRoom",
		request.CommandRequest{Type: string(model.CommandJoinGame)}, nil).StatusCode)

	s.app.MockRandom.QueueString("a1b2c3d4e5f6g7h8")
	resp := s.do(http.MethodPost, "/api/v1/areas/gamesRoom/bots", auth.SessionToken,
		request.AddBotRequest{}, nil)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var instance response.GameInstance
	resp = s.command(auth.SessionToken, "gamesRoom",
		request.CommandRequest{Type: string(model.CommandReadyUp)}, &instance)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().Equal(string(model.GameInProgress), instance.State.Status)

	// Passing the turn lets the server play the bot's whole turn before the
	// next read: the bot plays a wild and declares its majority color
	resp = s.command(auth.SessionToken, "gamesRoom",
		request.CommandRequest{Type: string(model.CommandDrawFromDeck)}, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var after response.GameInstance
	resp = s.do(http.MethodGet, "/api/v1/areas/gamesRoom/game", auth.SessionToken, nil, &after)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().NotNil(after.State.CurrentMovePlayer)
	s.Equal(auth.Player.ID, *after.State.CurrentMovePlayer)
	s.Nil(after.State.PendingColorChoice)
	s.Equal("yellow", after.State.CurrentColor)
}

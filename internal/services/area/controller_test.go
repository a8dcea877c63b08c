package area

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/unotown/unotown/internal/dependencies/mocks"
	"github.com/unotown/unotown/internal/model"
	"github.com/unotown/unotown/internal/services/deck"
	"github.com/unotown/unotown/internal/services/game"
	"github.com/unotown/unotown/internal/storage/memory"
	"github.com/unotown/unotown/internal/testutil"
)

// recordingNotifier captures every emitted event for assertions
type recordingNotifier struct {
	events []model.Event
}

func (n *recordingNotifier) Notify(ctx context.Context, event model.Event) {
	n.events = append(n.events, event)
}

func (n *recordingNotifier) last() model.Event {
	return n.events[len(n.events)-1]
}

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	notifier   *recordingNotifier
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

const testArea = model.AreaID("gamesRoom")

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	rnd := mocks.NewMockRandom()
	logger := testutil.NopLogger()
	deckService := deck.New(rnd, logger)
	gameController := game.NewController(s.storage, deckService, clk, logger)
	s.notifier = &recordingNotifier{}
	s.controller = NewController(s.storage, gameController, s.notifier, clk, logger)
	s.ctx = context.Background()
}

func (s *ControllerSuite) player(id string) model.Player {
	return model.Player{ID: model.PlayerID(id), Username: id, IsGuest: true}
}

func (s *ControllerSuite) command(player string, cmd model.Command) (*model.GameInstance, error) {
	return s.controller.HandleCommand(s.ctx, testArea, s.player(player), cmd)
}

func (s *ControllerSuite) join(player string) *model.GameInstance {
	instance, err := s.command(player, model.Command{Type: model.CommandJoinGame})
	s.Require().NoError(err)
	return instance
}

// startedGame joins both players and readies them up, returning the live
// in-progress instance
func (s *ControllerSuite) startedGame(p1, p2 string) *model.GameInstance {
	s.join(p1)
	s.join(p2)
	_, err := s.command(p1, model.Command{Type: model.CommandReadyUp})
	s.Require().NoError(err)
	instance, err := s.command(p2, model.Command{Type: model.CommandReadyUp})
	s.Require().NoError(err)
	s.Require().Equal(model.GameInProgress, instance.State.Status)
	return instance
}

// EnsureArea tests

func (s *ControllerSuite) TestEnsureAreaCreatesOnFirstUse() {
	area, err := s.controller.EnsureArea(s.ctx, testArea)
	s.Require().NoError(err)
	s.Equal(testArea, area.ID)
	s.Nil(area.CurrentGame)
	s.Empty(area.History)
}

func (s *ControllerSuite) TestEnsureAreaIsIdempotent() {
	first, err := s.controller.EnsureArea(s.ctx, testArea)
	s.Require().NoError(err)

	gameID := model.GameInstanceID("game-1")
	first.CurrentGame = &gameID
	s.Require().NoError(s.storage.SaveArea(s.ctx, first))

	again, err := s.controller.EnsureArea(s.ctx, testArea)
	s.Require().NoError(err)
	s.Require().NotNil(again.CurrentGame)
	s.Equal(gameID, *again.CurrentGame)
}

// JoinGame tests

func (s *ControllerSuite) TestJoinCreatesGameAndNotifies() {
	instance := s.join("alice")

	s.NotEmpty(instance.ID)
	s.Equal(model.GameWaitingToStart, instance.State.Status)
	s.Equal([]model.PlayerID{"alice"}, instance.Players)

	area, err := s.controller.GetArea(s.ctx, testArea)
	s.Require().NoError(err)
	s.Require().NotNil(area.CurrentGame)
	s.Equal(instance.ID, *area.CurrentGame)

	s.Require().Len(s.notifier.events, 1)
	event := s.notifier.last()
	s.Equal(model.EventPlayerJoined, event.Type)
	s.Equal(testArea, event.AreaID)
	s.Equal(instance.ID, event.GameID)
	s.Equal(model.PlayerID("alice"), event.PlayerID)
	s.Equal(instance.ID, event.Instance.ID)
}

func (s *ControllerSuite) TestSecondJoinReusesGame() {
	first := s.join("alice")
	second := s.join("bob")

	s.Equal(first.ID, second.ID)
	s.Equal([]model.PlayerID{"alice", "bob"}, second.Players)
}

// Command validation tests

func (s *ControllerSuite) TestUnknownCommandRejected() {
	s.join("alice")
	before := len(s.notifier.events)

	_, err := s.command("alice", model.Command{Type: "Teleport"})
	s.ErrorIs(err, model.ErrInvalidCommand)
	s.Len(s.notifier.events, before)
}

func (s *ControllerSuite) TestGameMoveWithoutMoveRejected() {
	instance := s.startedGame("alice", "bob")
	before := len(s.notifier.events)

	_, err := s.command("alice", model.Command{
		Type:   model.CommandGameMove,
		GameID: instance.ID,
	})
	s.ErrorIs(err, model.ErrInvalidCommand)
	s.Len(s.notifier.events, before)
}

func (s *ControllerSuite) TestGameMoveWithStaleGameIDRejected() {
	instance := s.startedGame("alice", "bob")
	before := len(s.notifier.events)

	_, err := s.command("alice", model.Command{
		Type:   model.CommandGameMove,
		GameID: "some-other-game",
		Move: &model.Move{
			PlayerID:   "alice",
			CardPlaced: model.NewCard(model.ColorYellow, model.ValueSkip),
		},
	})
	s.ErrorIs(err, model.ErrGameIDMismatch)
	s.Len(s.notifier.events, before)

	// The live game is untouched
	current, err := s.controller.GetInstance(s.ctx, testArea)
	s.Require().NoError(err)
	s.Equal(instance.ID, current.ID)
	s.Equal(0, current.State.MovesSoFar)
}

func (s *ControllerSuite) TestLeaveWithStaleGameIDRejected() {
	s.startedGame("alice", "bob")

	_, err := s.command("bob", model.Command{
		Type:   model.CommandLeaveGame,
		GameID: "some-other-game",
	})
	s.ErrorIs(err, model.ErrGameIDMismatch)
}

func (s *ControllerSuite) TestDealCardsByNonMemberRejected() {
	s.join("alice")
	s.join("bob")
	before := len(s.notifier.events)

	_, err := s.command("carol", model.Command{Type: model.CommandDealCards})
	s.ErrorIs(err, model.ErrPlayerNotInGame)
	s.Len(s.notifier.events, before)

	// The waiting game is untouched
	instance, err := s.controller.GetInstance(s.ctx, testArea)
	s.Require().NoError(err)
	s.Equal(model.GameWaitingToStart, instance.State.Status)
}

func (s *ControllerSuite) TestDealCardsBySeatedPlayerStartsGame() {
	s.join("alice")
	s.join("bob")

	instance, err := s.command("alice", model.Command{Type: model.CommandDealCards})
	s.Require().NoError(err)
	s.Equal(model.GameInProgress, instance.State.Status)
	s.Equal(model.EventCardsDealt, s.notifier.last().Type)
}

func (s *ControllerSuite) TestCommandWithoutGameRejected() {
	_, err := s.command("alice", model.Command{Type: model.CommandReadyUp})
	s.ErrorIs(err, model.ErrGameNotInProgress)
}

// Notification tests

func (s *ControllerSuite) TestOneNotificationPerSuccessfulCommand() {
	instance := s.startedGame("alice", "bob")
	s.Require().Len(s.notifier.events, 4) // two joins, two readies

	_, err := s.command("alice", model.Command{
		Type:   model.CommandGameMove,
		GameID: instance.ID,
		Move: &model.Move{
			PlayerID:   "alice",
			CardPlaced: model.NewCard(model.ColorYellow, model.ValueSkip),
		},
	})
	s.Require().NoError(err)

	s.Require().Len(s.notifier.events, 5)
	s.Equal(model.EventMovePlayed, s.notifier.last().Type)
}

func (s *ControllerSuite) TestFailedCommandDoesNotNotify() {
	instance := s.startedGame("alice", "bob")
	before := len(s.notifier.events)

	// bob is not the mover
	_, err := s.command("bob", model.Command{
		Type:   model.CommandGameMove,
		GameID: instance.ID,
		Move: &model.Move{
			PlayerID:   "bob",
			CardPlaced: model.NewCard(model.ColorYellow, model.ValueSkip),
		},
	})
	s.ErrorIs(err, model.ErrNotYourTurn)
	s.Len(s.notifier.events, before)
}

func (s *ControllerSuite) TestDrawEmitsCardDrawnEvent() {
	s.startedGame("alice", "bob")

	instance, err := s.command("alice", model.Command{Type: model.CommandDrawFromDeck})
	s.Require().NoError(err)

	s.Equal(model.EventCardDrawn, s.notifier.last().Type)
	s.Len(instance.State.Hands[0].Cards, 8)
}

// Game-over and history tests

func (s *ControllerSuite) TestLeaveEndingGameEmitsGameOver() {
	instance := s.startedGame("alice", "bob")

	final, err := s.command("bob", model.Command{
		Type:   model.CommandLeaveGame,
		GameID: instance.ID,
	})
	s.Require().NoError(err)

	s.Equal(model.GameOver, final.State.Status)
	s.Require().NotNil(final.State.Winner)
	s.Equal(model.PlayerID("alice"), *final.State.Winner)

	// The leave that ended the game reports game_over, not player_left
	s.Equal(model.EventGameOver, s.notifier.last().Type)
}

func (s *ControllerSuite) TestFinishedGameRecordsHistoryOnce() {
	instance := s.startedGame("alice", "bob")

	final, err := s.command("bob", model.Command{
		Type:   model.CommandLeaveGame,
		GameID: instance.ID,
	})
	s.Require().NoError(err)

	s.Require().NotNil(final.Result)
	s.Equal(instance.ID, final.Result.GameID)
	s.Equal(map[string]int{"alice": 1}, final.Result.Scores)

	area, err := s.controller.GetArea(s.ctx, testArea)
	s.Require().NoError(err)
	s.Require().Len(area.History, 1)
	s.Equal(instance.ID, area.History[0].GameID)
}

func (s *ControllerSuite) TestRejoinAfterGameOverStartsFreshGame() {
	instance := s.startedGame("alice", "bob")
	_, err := s.command("bob", model.Command{
		Type:   model.CommandLeaveGame,
		GameID: instance.ID,
	})
	s.Require().NoError(err)

	fresh := s.join("alice")
	s.NotEqual(instance.ID, fresh.ID)
	s.Equal(model.GameWaitingToStart, fresh.State.Status)

	// The finished game's result survives in the area history
	area, err := s.controller.GetArea(s.ctx, testArea)
	s.Require().NoError(err)
	s.Require().Len(area.History, 1)
	s.Equal(instance.ID, area.History[0].GameID)
}

// GetInstance tests

func (s *ControllerSuite) TestGetInstanceWithoutGameFails() {
	_, err := s.controller.EnsureArea(s.ctx, testArea)
	s.Require().NoError(err)

	_, err = s.controller.GetInstance(s.ctx, testArea)
	s.ErrorIs(err, model.ErrGameNotInProgress)
}

func (s *ControllerSuite) TestGetInstanceUnknownAreaFails() {
	_, err := s.controller.GetInstance(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrAreaNotFound)
}

func (s *ControllerSuite) TestGetInstanceReturnsLiveSnapshot() {
	started := s.startedGame("alice", "bob")

	instance, err := s.controller.GetInstance(s.ctx, testArea)
	s.Require().NoError(err)
	s.Equal(started.ID, instance.ID)
	s.Equal(model.GameInProgress, instance.State.Status)
	s.Len(instance.State.Hands, 2)
	s.Nil(instance.Result)
}

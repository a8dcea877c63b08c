package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/unotown/unotown/internal/model"
	"github.com/unotown/unotown/internal/services/bot"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

const testArea = model.AreaID("gamesRoom")

func (s *IntegrationSuite) guest(name string) model.Player {
	session, err := s.app.AuthService.CreateGuestPlayer(s.ctx, name)
	s.Require().NoError(err)
	return session.Player
}

func (s *IntegrationSuite) command(player model.Player, cmd model.Command) *model.GameInstance {
	instance, err := s.app.AreaController.HandleCommand(s.ctx, testArea, player, cmd)
	s.Require().NoError(err)
	return instance
}

// startTwoPlayerGame joins two guests and readies both. With the mock
// random's identity shuffle the deck deals deterministically: the first
// joiner holds four Wild Draw Fours plus the yellow Draw Two, Reverse and
// Skip; the second holds four Wilds plus the same yellow specials.
func (s *IntegrationSuite) startTwoPlayerGame() (model.Player, model.Player, *model.GameInstance) {
	p1 := s.guest("alice")
	p2 := s.guest("bob")

	s.command(p1, model.Command{Type: model.CommandJoinGame})
	s.command(p2, model.Command{Type: model.CommandJoinGame})
	s.command(p1, model.Command{Type: model.CommandReadyUp})
	instance := s.command(p2, model.Command{Type: model.CommandReadyUp})

	s.Require().Equal(model.GameInProgress, instance.State.Status)
	return p1, p2, instance
}

func (s *IntegrationSuite) TestJoinReadyStartFlow() {
	p1 := s.guest("alice")
	p2 := s.guest("bob")

	// First join creates the area and a waiting game
	instance := s.command(p1, model.Command{Type: model.CommandJoinGame})
	s.Equal(model.GameWaitingToStart, instance.State.Status)
	s.Len(instance.Players, 1)

	area, err := s.app.AreaController.GetArea(s.ctx, testArea)
	s.Require().NoError(err)
	s.Require().NotNil(area.CurrentGame)
	s.Equal(instance.ID, *area.CurrentGame)

	instance = s.command(p2, model.Command{Type: model.CommandJoinGame})
	s.Len(instance.Players, 2)

	// One ready is not enough
	instance = s.command(p1, model.Command{Type: model.CommandReadyUp})
	s.Equal(model.GameWaitingToStart, instance.State.Status)

	// Both ready starts the game and deals seven cards each
	instance = s.command(p2, model.Command{Type: model.CommandReadyUp})
	s.Equal(model.GameInProgress, instance.State.Status)
	s.Require().Len(instance.State.Hands, 2)
	s.Len(instance.State.Hands[0].Cards, 7)
	s.Len(instance.State.Hands[1].Cards, 7)

	// First joiner moves first; no color constraint before the first play
	s.Require().NotNil(instance.State.CurrentMovePlayer)
	s.Equal(p1.ID, *instance.State.CurrentMovePlayer)
	s.Equal(model.ColorNone, instance.State.CurrentColor)
	s.Equal(model.DirectionCounterClockwise, instance.State.Direction)
}

func (s *IntegrationSuite) TestWildDrawFourPenaltyAndColorChoice() {
	p1, p2, instance := s.startTwoPlayerGame()
	gameID := instance.ID

	// p1 opens with a Wild Draw Four: p2 draws four and p1 keeps the turn
	instance = s.command(p1, model.Command{
		Type:   model.CommandGameMove,
		GameID: gameID,
		Move:   &model.Move{PlayerID: p1.ID, CardPlaced: model.NewCard(model.ColorWild, model.ValueWildDrawFour)},
	})
	s.Len(instance.State.Hands[0].Cards, 6)
	s.Len(instance.State.Hands[1].Cards, 11)
	s.Require().NotNil(instance.State.CurrentMovePlayer)
	s.Equal(p1.ID, *instance.State.CurrentMovePlayer)

	// The color stays open until p1 declares it
	s.Equal(model.ColorNone, instance.State.CurrentColor)
	s.Require().NotNil(instance.State.PendingColorChoice)
	s.Equal(p1.ID, *instance.State.PendingColorChoice)

	// Only the wild's player may declare
	_, err := s.app.AreaController.HandleCommand(s.ctx, testArea, p2, model.Command{
		Type:  model.CommandChangeColor,
		Color: model.ColorRed,
	})
	s.ErrorIs(err, model.ErrNotYourTurn)

	instance = s.command(p1, model.Command{Type: model.CommandChangeColor, Color: model.ColorYellow})
	s.Equal(model.ColorYellow, instance.State.CurrentColor)
	s.Nil(instance.State.PendingColorChoice)

	// Draw Two feeds p2 two more cards and again keeps p1 as mover
	instance = s.command(p1, model.Command{
		Type:   model.CommandGameMove,
		GameID: gameID,
		Move:   &model.Move{PlayerID: p1.ID, CardPlaced: model.NewCard(model.ColorYellow, model.ValueDrawTwo)},
	})
	s.Len(instance.State.Hands[1].Cards, 13)
	s.Equal(p1.ID, *instance.State.CurrentMovePlayer)

	// Reverse hands the turn to the opponent in a two-player game
	instance = s.command(p1, model.Command{
		Type:   model.CommandGameMove,
		GameID: gameID,
		Move:   &model.Move{PlayerID: p1.ID, CardPlaced: model.NewCard(model.ColorYellow, model.ValueReverse)},
	})
	s.Equal(model.DirectionClockwise, instance.State.Direction)
	s.Equal(p2.ID, *instance.State.CurrentMovePlayer)
}

func (s *IntegrationSuite) TestDrawFromDeckConsumesTurn() {
	p1, p2, _ := s.startTwoPlayerGame()

	instance := s.command(p1, model.Command{Type: model.CommandDrawFromDeck})
	s.Len(instance.State.Hands[0].Cards, 8)
	s.Require().NotNil(instance.State.CurrentMovePlayer)
	s.Equal(p2.ID, *instance.State.CurrentMovePlayer)
}

func (s *IntegrationSuite) TestGameIDMismatchRejected() {
	p1, _, instance := s.startTwoPlayerGame()

	_, err := s.app.AreaController.HandleCommand(s.ctx, testArea, p1, model.Command{
		Type:   model.CommandGameMove,
		GameID: "some-other-game",
		Move:   &model.Move{PlayerID: p1.ID, CardPlaced: model.NewCard(model.ColorWild, model.ValueWild)},
	})
	s.ErrorIs(err, model.ErrGameIDMismatch)

	_, err = s.app.AreaController.HandleCommand(s.ctx, testArea, p1, model.Command{
		Type:   model.CommandLeaveGame,
		GameID: "some-other-game",
	})
	s.ErrorIs(err, model.ErrGameIDMismatch)

	// The live game is untouched
	current, err := s.app.AreaController.GetInstance(s.ctx, testArea)
	s.Require().NoError(err)
	s.Equal(instance.ID, current.ID)
	s.Equal(model.GameInProgress, current.State.Status)
}

func (s *IntegrationSuite) TestLeaveAwardsSoleWinnerAndRecordsHistory() {
	p1, p2, instance := s.startTwoPlayerGame()
	firstGameID := instance.ID

	instance = s.command(p2, model.Command{
		Type:   model.CommandLeaveGame,
		GameID: firstGameID,
	})
	s.Equal(model.GameOver, instance.State.Status)
	s.Require().NotNil(instance.State.Winner)
	s.Equal(p1.ID, *instance.State.Winner)

	// The result is in the area history
	area, err := s.app.AreaController.GetArea(s.ctx, testArea)
	s.Require().NoError(err)
	s.Require().Len(area.History, 1)
	s.Equal(firstGameID, area.History[0].GameID)
	s.Equal(1, area.History[0].Scores["alice"])

	// Joining again replaces the finished game with a fresh one
	instance = s.command(p1, model.Command{Type: model.CommandJoinGame})
	s.NotEqual(firstGameID, instance.ID)
	s.Equal(model.GameWaitingToStart, instance.State.Status)
	s.Len(instance.Players, 1)

	// History survives the new game
	area, err = s.app.AreaController.GetArea(s.ctx, testArea)
	s.Require().NoError(err)
	s.Len(area.History, 1)
}

func (s *IntegrationSuite) TestBotFillsSeatAndActs() {
	p1 := s.guest("alice")
	s.command(p1, model.Command{Type: model.CommandJoinGame})

	s.app.MockRandom.QueueString("a1b2c3d4e5f6g7h8")
	botPlayer, err := s.app.BotService.AddBotToArea(s.ctx, testArea, model.BotStrategyRandom)
	s.Require().NoError(err)
	s.True(botPlayer.IsBot)
	s.Equal("Bot 1", botPlayer.Username)

	// The bot joined ready, so the human's ready starts the game
	instance := s.command(p1, model.Command{Type: model.CommandReadyUp})
	s.Require().Equal(model.GameInProgress, instance.State.Status)
	s.Require().NotNil(instance.State.CurrentMovePlayer)
	s.Equal(p1.ID, *instance.State.CurrentMovePlayer)

	// Human plays a wild, declares yellow, then draws to pass the turn
	s.command(p1, model.Command{
		Type:   model.CommandGameMove,
		GameID: instance.ID,
		Move:   &model.Move{PlayerID: p1.ID, CardPlaced: model.NewCard(model.ColorWild, model.ValueWildDrawFour)},
	})
	s.command(p1, model.Command{Type: model.CommandChangeColor, Color: model.ColorYellow})
	s.command(p1, model.Command{Type: model.CommandDrawFromDeck})

	// The bot takes its whole turn: it plays a wild and declares the color
	// it holds most of, then the turn returns to the human
	actions, err := s.app.BotService.ProcessBotActions(s.ctx, testArea)
	s.Require().NoError(err)
	s.Require().Len(actions, 2)
	s.Equal(bot.ActionPlayCard, actions[0].Type)
	s.Equal(botPlayer.ID, actions[0].PlayerID)
	s.Equal(model.ValueWild, actions[0].Card.Value)
	s.Equal(bot.ActionChooseColor, actions[1].Type)
	s.Equal(model.ColorYellow, actions[1].Color)

	instance, err = s.app.AreaController.GetInstance(s.ctx, testArea)
	s.Require().NoError(err)
	s.Equal(model.ColorYellow, instance.State.CurrentColor)
	s.Require().NotNil(instance.State.CurrentMovePlayer)
	s.Equal(p1.ID, *instance.State.CurrentMovePlayer)
	s.Len(instance.State.Hands[1].Cards, 10)
}

func (s *IntegrationSuite) TestAddRemoveBot() {
	p1 := s.guest("alice")
	s.command(p1, model.Command{Type: model.CommandJoinGame})

	s.app.MockRandom.QueueString("a1b2c3d4e5f6g7h8")
	botPlayer, err := s.app.BotService.AddBotToArea(s.ctx, testArea, model.BotStrategyRandom)
	s.Require().NoError(err)

	instance, err := s.app.AreaController.GetInstance(s.ctx, testArea)
	s.Require().NoError(err)
	s.Len(instance.Players, 2)

	// Removing a human through the bot service is refused
	err = s.app.BotService.RemoveBotFromArea(s.ctx, testArea, p1.ID)
	s.ErrorIs(err, model.ErrNotBot)

	err = s.app.BotService.RemoveBotFromArea(s.ctx, testArea, botPlayer.ID)
	s.Require().NoError(err)

	instance, err = s.app.AreaController.GetInstance(s.ctx, testArea)
	s.Require().NoError(err)
	s.Len(instance.Players, 1)
}

func (s *IntegrationSuite) TestBotsCannotJoinRunningGame() {
	_, _, _ = s.startTwoPlayerGame()

	s.app.MockRandom.QueueString("a1b2c3d4e5f6g7h8")
	_, err := s.app.BotService.AddBotToArea(s.ctx, testArea, model.BotStrategyRandom)
	s.ErrorIs(err, model.ErrGameInProgress)
}

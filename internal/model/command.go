package model

// CommandType identifies a dispatcher command
type CommandType string

const (
	CommandJoinGame     CommandType = "JoinGame"
	CommandGameMove     CommandType = "GameMove"
	CommandLeaveGame    CommandType = "LeaveGame"
	CommandReadyUp      CommandType = "ReadyUp"
	CommandDrawFromDeck CommandType = "DrawFromDeck"
	CommandChangeColor  CommandType = "ChangeColor"
	CommandDealCards    CommandType = "DealCards"
)

// Command is the envelope the dispatcher consumes. GameID is required for
// GameMove and LeaveGame, Move for GameMove, Color for ChangeColor.
type Command struct {
	Type   CommandType
	GameID GameInstanceID
	Move   *Move
	Color  Color
}

package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	Username string `json:"username"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Card identifies a card by its face
type Card struct {
	Color string `json:"color"`
	Value string `json:"value"`
}

// Move is the payload of a game_move command
type Move struct {
	Card Card `json:"card"`
}

// CommandRequest is the request body for issuing a game command. GameID is
// required for game_move and leave_game; Move only for game_move; Color only
// for change_color.
type CommandRequest struct {
	Type   string `json:"type"`
	GameID string `json:"game_id,omitempty"`
	Move   *Move  `json:"move,omitempty"`
	Color  string `json:"color,omitempty"`
}

// AddBotRequest is the request body for seating a bot in an area
type AddBotRequest struct {
	Strategy string `json:"strategy,omitempty"`
}

package cli

import (
	"fmt"

	"github.com/unotown/unotown/internal/model"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "In-game commands",
	}

	cmd.AddCommand(newGameStateCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameReadyCmd())
	cmd.AddCommand(newGameDealCmd())
	cmd.AddCommand(newGamePlayCmd())
	cmd.AddCommand(newGameDrawCmd())
	cmd.AddCommand(newGameColorCmd())
	cmd.AddCommand(newGameLeaveCmd())

	return cmd
}

// postCommand sends a command to an area and prints the resulting instance
func postCommand(areaID string, body map[string]any) error {
	var result GameInstance

	if err := client.Post(fmt.Sprintf("/api/v1/areas/%s/commands", areaID), body, &result); err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
	out.Print(result)
	return nil
}

// currentGameID fetches the area's live game ID, needed by commands that
// must name the game they target
func currentGameID(areaID string) (string, error) {
	var result GameInstance
	if err := client.Get(fmt.Sprintf("/api/v1/areas/%s/game", areaID), &result); err != nil {
		return "", err
	}
	return result.ID, nil
}

func newGameStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state <area>",
		Short: "Show the area's current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameInstance

			if err := client.Get(fmt.Sprintf("/api/v1/areas/%s/game", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <area>",
		Short: "Join the area's game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postCommand(args[0], map[string]any{"type": string(model.CommandJoinGame)})
		},
	}
}

func newGameReadyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ready <area>",
		Short: "Toggle your ready state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postCommand(args[0], map[string]any{"type": string(model.CommandReadyUp)})
		},
	}
}

func newGameDealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deal <area>",
		Short: "Deal cards and start the game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postCommand(args[0], map[string]any{"type": string(model.CommandDealCards)})
		},
	}
}

func newGamePlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <area> <color> <value>",
		Short: "Play a card from your hand (e.g. play lobby red 5, play lobby wild wild)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := currentGameID(args[0])
			if err != nil {
				return err
			}

			return postCommand(args[0], map[string]any{
				"type":    string(model.CommandGameMove),
				"game_id": gameID,
				"move": map[string]any{
					"card": map[string]string{
						"color": args[1],
						"value": args[2],
					},
				},
			})
		},
	}
}

func newGameDrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "draw <area>",
		Short: "Draw a card from the deck (forfeits the turn)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postCommand(args[0], map[string]any{"type": string(model.CommandDrawFromDeck)})
		},
	}
}

func newGameColorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "color <area> <color>",
		Short: "Declare the color after playing a wild",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postCommand(args[0], map[string]any{
				"type":  string(model.CommandChangeColor),
				"color": args[1],
			})
		},
	}
}

func newGameLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <area>",
		Short: "Leave the area's game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := currentGameID(args[0])
			if err != nil {
				return err
			}

			return postCommand(args[0], map[string]any{
				"type":    string(model.CommandLeaveGame),
				"game_id": gameID,
			})
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAreaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "area",
		Short: "Game-area commands",
	}

	cmd.AddCommand(newAreaGetCmd())
	cmd.AddCommand(newAreaBotCmd())

	return cmd
}

func newAreaGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <area>",
		Short: "Show an area's current game and match history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Area

			if err := client.Get(fmt.Sprintf("/api/v1/areas/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAreaBotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Manage bot players in an area",
	}

	cmd.AddCommand(newAreaBotAddCmd())
	cmd.AddCommand(newAreaBotRemoveCmd())

	return cmd
}

func newAreaBotAddCmd() *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "add <area>",
		Short: "Seat a bot player in the area's game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{}
			if strategy != "" {
				req["strategy"] = strategy
			}

			var result Player
			if err := client.Post(fmt.Sprintf("/api/v1/areas/%s/bots", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "Bot strategy (default: random)")

	return cmd
}

func newAreaBotRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <area> <player-id>",
		Short: "Remove a bot player from the area's game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/areas/%s/bots/%s", args[0], args[1])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Bot removed")
			return nil
		},
	}
}

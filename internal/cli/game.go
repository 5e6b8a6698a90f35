package cli

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/fourinarow/internal/api/request"
	"github.com/mcoot/fourinarow/internal/api/response"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGamePlaceCmd("start", "Place a player's initial mark"))
	cmd.AddCommand(newGamePlaceCmd("move", "Place a mark next to one of the player's own"))
	cmd.AddCommand(newGameEngineCmd())
	cmd.AddCommand(newGameLogCmd())
	cmd.AddCommand(newGameAbandonCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var (
		req            request.CreateGameRequest
		xDepth, oDepth int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("x-depth") {
				req.XDepth = &xDepth
			}
			if cmd.Flags().Changed("o-depth") {
				req.ODepth = &oDepth
			}

			var result response.GameUpdate
			if err := client.Post(cmd.Context(), "/api/v1/games", req, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.XPlayer, "x", "human", "X player: human, minimax, random")
	cmd.Flags().StringVar(&req.OPlayer, "o", "human", "O player: human, minimax, random")
	cmd.Flags().IntVar(&xDepth, "x-depth", 0, "Search depth for a minimax X (default: server's, 2 unless configured)")
	cmd.Flags().IntVar(&oDepth, "o-depth", 0, "Search depth for a minimax O (default: server's, 4 unless configured)")
	cmd.Flags().StringVar(&req.Adjacency, "adjacency", "", "Successor rule: same-player, any-player")

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameList
			if err := client.Get(cmd.Context(), "/api/v1/games", &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game
			if err := client.Get(cmd.Context(), "/api/v1/games/"+args[0], &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

// newGamePlaceCmd builds the start and move commands, which differ only in
// the endpoint they call
func newGamePlaceCmd(use, short string) *cobra.Command {
	endpoint := "start"
	if use == "move" {
		endpoint = "moves"
	}

	return &cobra.Command{
		Use:   use + " <id> <player> <col> <row>",
		Short: short,
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("column must be a number")
			}
			row, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("row must be a number")
			}

			body := request.PlaceRequest{Player: args[1], Col: col, Row: row}
			var result response.GameUpdate
			if err := client.Post(cmd.Context(), "/api/v1/games/"+args[0]+"/"+endpoint, body, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newGameEngineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "engine <id>",
		Short: "Let the engine play for the side to move",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameUpdate
			if err := client.Post(cmd.Context(), "/api/v1/games/"+args[0]+"/engine", nil, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newGameLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log <id>",
		Short: "Print a game's move log as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client.Raw(cmd.Context(), http.MethodGet, "/api/v1/games/"+args[0]+"/moves.csv", nil)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newGameAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <id>",
		Short: "Abandon a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game
			if err := client.Delete(cmd.Context(), "/api/v1/games/"+args[0], &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/fourinarow/internal/api/request"
	"github.com/mcoot/fourinarow/internal/api/response"
	"github.com/mcoot/fourinarow/internal/model"
	"github.com/mcoot/fourinarow/internal/services/bot"
	"github.com/mcoot/fourinarow/internal/services/search"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		boardStr  string
		player    string
		depth     int
		adjacency string
		local     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Ask the engine for the best move on a board",
		Long: `Ask the engine for the best move on a board.

The board is five rows of six cells, top row first, separated by '/'.
Cells are X, O or '.', for example:

  fourinarow analyze --player O --board "....../....../....../...OX./......"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := model.ParseBoard(boardStr)
			if err != nil {
				return err
			}
			mark, err := model.ParsePlayer(player)
			if err != nil {
				return err
			}

			var depthPtr *int
			if cmd.Flags().Changed("depth") {
				if depth < 0 {
					return errors.New("depth must not be negative")
				}
				depthPtr = &depth
			}

			var result response.Analysis
			if local {
				result, err = analyzeLocal(board, mark, depthPtr, adjacency)
				if err != nil {
					return err
				}
			} else {
				req := request.AnalyzeRequest{Board: *board, Player: mark.String(), Depth: depthPtr, Adjacency: adjacency}
				if err := client.Post(cmd.Context(), "/api/v1/analyze", req, &result); err != nil {
					return err
				}
			}

			out := newOutput(cmd)
			if cfg.Output != "json" {
				out.PrintBoard(board)
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&boardStr, "board", "", "Board rows separated by '/'")
	cmd.Flags().StringVar(&player, "player", "", "Player to move: X or O")
	cmd.Flags().IntVar(&depth, "depth", 0, "Search depth (default: 2 for X, 4 for O)")
	cmd.Flags().StringVar(&adjacency, "adjacency", "", "Successor rule: same-player, any-player")
	cmd.Flags().BoolVar(&local, "local", false, "Search in this process instead of on the server")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}

func analyzeLocal(board *model.Board, player model.Mark, depth *int, adjacency string) (response.Analysis, error) {
	if result := board.Result(); result.IsTerminal() {
		return response.Analysis{}, fmt.Errorf("%w: board result is %q", model.ErrGameFinished, result)
	}
	rule, err := model.ParseAdjacencyRule(adjacency)
	if err != nil {
		return response.Analysis{}, err
	}

	d := bot.DefaultDepths().For(player)
	if depth != nil {
		d = *depth
	}

	engine := search.New(slog.New(slog.NewJSONHandler(io.Discard, nil)), search.WithAdjacency(rule))
	started := time.Now()
	decision := engine.FindBestMove(board, player, d)
	return response.AnalysisFromDecision(decision, d, time.Since(started)), nil
}

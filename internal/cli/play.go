package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/fourinarow/internal/factory"
	"github.com/mcoot/fourinarow/internal/model"
	"github.com/mcoot/fourinarow/internal/movelog"
	"github.com/mcoot/fourinarow/internal/services/bot"
	"github.com/mcoot/fourinarow/internal/services/game"
)

// PlayStep is one engine move of a local game
type PlayStep struct {
	Player string      `json:"player"`
	Col    int         `json:"col"`
	Row    int         `json:"row"`
	Depth  int         `json:"depth"`
	Nodes  int         `json:"nodes"`
	Time   float64     `json:"time"` // seconds
	Board  model.Board `json:"board"`
}

// PlayResult summarises a finished local game
type PlayResult struct {
	GameID  string `json:"game_id"`
	Outcome string `json:"outcome"`
	Winner  string `json:"winner,omitempty"`
	Moves   int    `json:"moves"`
	NoMove  string `json:"no_move,omitempty"`
	LogPath string `json:"log_path,omitempty"`
}

type playOptions struct {
	xDepth    int
	oDepth    int
	xStart    string
	oStart    string
	adjacency string
	logDir    string
	noLog     bool
}

func newPlayCmd() *cobra.Command {
	var opts playOptions

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play an engine-versus-engine game locally",
		Long: `Play an engine-versus-engine game locally.

Both players place their starting marks, then alternate engine moves until
one side has four in a row, the board is full, or the side to move has no
legal cell. The finished game's move log is written as CSV.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), newOutput(cmd), opts)
		},
	}

	cmd.Flags().IntVar(&opts.xDepth, "x-depth", 2, "Search depth for X")
	cmd.Flags().IntVar(&opts.oDepth, "o-depth", 4, "Search depth for O")
	cmd.Flags().StringVar(&opts.xStart, "x-start", "4,3", "X's starting cell as col,row")
	cmd.Flags().StringVar(&opts.oStart, "o-start", "3,3", "O's starting cell as col,row")
	cmd.Flags().StringVar(&opts.adjacency, "adjacency", "", "Successor rule: same-player, any-player")
	cmd.Flags().StringVar(&opts.logDir, "log-dir", "", "Move log directory (default: XDG data dir)")
	cmd.Flags().BoolVar(&opts.noLog, "no-log", false, "Do not write a move log")

	return cmd
}

func runPlay(ctx context.Context, out *Output, opts playOptions) error {
	if opts.xDepth < 0 || opts.oDepth < 0 {
		return errors.New("depths must not be negative")
	}
	rule, err := model.ParseAdjacencyRule(opts.adjacency)
	if err != nil {
		return err
	}
	xStart, err := parseCell(opts.xStart)
	if err != nil {
		return fmt.Errorf("x-start: %w", err)
	}
	oStart, err := parseCell(opts.oStart)
	if err != nil {
		return fmt.Errorf("o-start: %w", err)
	}

	app, err := factory.New(factory.Config{
		Logger:         playLogger(),
		Adjacency:      rule,
		Depths:         bot.Depths{X: opts.xDepth, O: opts.oDepth},
		MoveLogDir:     opts.logDir,
		DisableMoveLog: opts.noLog,
	})
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	g, err := app.GameController.CreateGame(ctx, game.CreateOptions{
		X:         model.Seat{Kind: model.PlayerKindMinimax, Depth: opts.xDepth},
		O:         model.Seat{Kind: model.PlayerKindMinimax, Depth: opts.oDepth},
		Adjacency: rule,
	})
	if err != nil {
		return err
	}

	if _, err := app.GameController.PlaceStart(ctx, g.ID, model.MarkX, xStart); err != nil {
		return fmt.Errorf("x-start: %w", err)
	}
	if g, err = app.GameController.PlaceStart(ctx, g.ID, model.MarkO, oStart); err != nil {
		return fmt.Errorf("o-start: %w", err)
	}
	if out.format != "json" {
		out.PrintBoard(&g.Board)
	}

	result := PlayResult{GameID: string(g.ID)}
	for !g.IsOver() {
		updated, action, err := app.BotService.PlayTurn(ctx, g.ID)
		if errors.Is(err, model.ErrNoMoveAvailable) {
			result.NoMove = action.Player.String()
			break
		}
		if err != nil {
			return err
		}
		g = updated

		step := PlayStep{
			Player: action.Player.String(),
			Col:    action.Position.Col,
			Row:    action.Position.Row,
			Depth:  action.Depth,
			Nodes:  action.Nodes,
			Board:  g.Board,
		}
		if last, ok := g.LastMove(); ok {
			step.Time = last.Elapsed.Seconds()
		}
		out.Print(step)
	}

	result.Outcome = string(g.Result.Outcome)
	if g.Result.Winner.IsPlayer() {
		result.Winner = g.Result.Winner.String()
	}
	result.Moves = len(g.Moves)
	if fw, ok := app.MoveLog.(*movelog.FileWriter); ok && g.Phase == model.GamePhaseFinished {
		result.LogPath = fw.Path(g.ID)
	}
	out.Print(result)
	return nil
}

func (o *Output) printPlayStep(s PlayStep) {
	fmt.Fprintf(o.w, "\n%s moves to (%d, %d)  depth %d  %d nodes  %.3fs\n",
		o.mark(s.Player), s.Col, s.Row, s.Depth, s.Nodes, s.Time)
	o.PrintBoard(&s.Board)
}

func (o *Output) printPlayResult(r PlayResult) {
	fmt.Fprintln(o.w)
	switch {
	case r.NoMove != "":
		fmt.Fprintf(o.w, "%s has no valid move\n", o.mark(r.NoMove))
	case r.Winner != "":
		fmt.Fprintf(o.w, "%s wins after %d moves\n", o.mark(r.Winner), r.Moves)
	default:
		fmt.Fprintf(o.w, "Draw after %d moves\n", r.Moves)
	}
	if r.LogPath != "" {
		fmt.Fprintf(o.w, "Move log: %s\n", r.LogPath)
	}
}

// parseCell reads "col,row"
func parseCell(s string) (model.Position, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return model.Position{}, fmt.Errorf("cell %q must be col,row", s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return model.Position{}, fmt.Errorf("cell %q: bad column", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return model.Position{}, fmt.Errorf("cell %q: bad row", s)
	}
	return model.Position{Col: col, Row: row}, nil
}

func playLogger() *slog.Logger {
	if cfg != nil && cfg.Verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

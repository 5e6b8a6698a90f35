package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/mcoot/fourinarow/internal/api/response"
	"github.com/mcoot/fourinarow/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	term   *termenv.Output
}

// NewOutput creates an Output writing to w. Colors are used only when w is
// a terminal and color is enabled.
func NewOutput(w io.Writer, format string, color bool) *Output {
	var opts []termenv.OutputOption
	if !color {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &Output{
		format: format,
		w:      w,
		term:   termenv.NewOutput(w, opts...),
	}
}

func newOutput(cmd *cobra.Command) *Output {
	return NewOutput(cmd.OutOrStdout(), cfg.Output, !cfg.NoColor)
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Health:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	case response.Game:
		o.printGame(v)
	case response.GameUpdate:
		o.printGameUpdate(v)
	case response.GameList:
		o.printGameList(v)
	case response.Analysis:
		o.printAnalysis(v)
	case PlayStep:
		o.printPlayStep(v)
	case PlayResult:
		o.printPlayResult(v)
	default:
		o.printJSON(data)
	}
}

func (o *Output) printGame(g response.Game) {
	fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	fmt.Fprintf(o.w, "Phase: %s\n", g.Phase)
	fmt.Fprintf(o.w, "X: %s\n", seatLabel(g.X))
	fmt.Fprintf(o.w, "O: %s\n", seatLabel(g.O))
	fmt.Fprintf(o.w, "Adjacency: %s\n", g.Adjacency)
	if g.Turn != "" {
		fmt.Fprintf(o.w, "To move: %s\n", g.Turn)
	}
	fmt.Fprintln(o.w)
	o.PrintBoard(&g.Board)

	switch g.Result.Outcome {
	case string(model.OutcomeWin):
		fmt.Fprintf(o.w, "\nWinner: %s\n", o.mark(g.Result.Winner))
	case string(model.OutcomeDraw):
		fmt.Fprintln(o.w, "\nDraw")
	}
}

func (o *Output) printGameUpdate(u response.GameUpdate) {
	for _, a := range u.BotActions {
		o.printBotAction(a)
	}
	if len(u.BotActions) > 0 {
		fmt.Fprintln(o.w)
	}
	o.printGame(u.Game)
}

func (o *Output) printBotAction(a response.BotAction) {
	switch {
	case a.Type == "no_move":
		fmt.Fprintf(o.w, "%s: no valid move\n", a.Player)
	case a.Col != nil && a.Row != nil:
		fmt.Fprintf(o.w, "%s %s (%d, %d)", a.Player, a.Type, *a.Col, *a.Row)
		if a.Type == "move" {
			fmt.Fprintf(o.w, " depth %d, %d nodes", a.Depth, a.Nodes)
		}
		fmt.Fprintln(o.w)
	}
}

func (o *Output) printGameList(l response.GameList) {
	if len(l.Games) == 0 {
		fmt.Fprintln(o.w, "No games")
		return
	}
	for _, g := range l.Games {
		fmt.Fprintf(o.w, "%s  %-9s  X=%-10s O=%-10s moves=%d  %s\n",
			g.ID, g.Phase, seatLabel(g.X), seatLabel(g.O), g.Moves, g.Result.Outcome)
	}
}

func (o *Output) printAnalysis(a response.Analysis) {
	if !a.Found {
		fmt.Fprintln(o.w, "No valid move")
		return
	}
	fmt.Fprintf(o.w, "Best move: (%d, %d)\n", *a.Col, *a.Row)
	fmt.Fprintf(o.w, "Score: %d\n", a.Score)
	fmt.Fprintf(o.w, "Depth: %d\n", a.Depth)
	fmt.Fprintf(o.w, "Nodes: %d\n", a.Nodes)
	fmt.Fprintf(o.w, "Time: %.3fs\n", a.Time)
}

// PrintBoard draws the grid with column and row indices
func (o *Output) PrintBoard(b *model.Board) {
	var sb strings.Builder

	sb.WriteString("    ")
	for col := 0; col < model.Cols; col++ {
		fmt.Fprintf(&sb, " %d ", col)
	}
	sb.WriteString("\n")

	border := "   +" + strings.Repeat("---", model.Cols) + "+\n"
	sb.WriteString(border)
	for row := 0; row < model.Rows; row++ {
		fmt.Fprintf(&sb, " %d |", row)
		for col := 0; col < model.Cols; col++ {
			m := b.Get(model.Position{Col: col, Row: row})
			sb.WriteString(" " + o.mark(m.String()) + " ")
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)

	fmt.Fprint(o.w, sb.String())
}

// mark colors X red and O blue
func (o *Output) mark(s string) string {
	switch s {
	case "X":
		return o.term.String(s).Foreground(o.term.Color("9")).Bold().String()
	case "O":
		return o.term.String(s).Foreground(o.term.Color("12")).Bold().String()
	default:
		return s
	}
}

func seatLabel(s response.Seat) string {
	if s.Kind == string(model.PlayerKindMinimax) {
		return fmt.Sprintf("%s(%d)", s.Kind, s.Depth)
	}
	return s.Kind
}

// Package movelog writes the per-game move record produced when a game ends.
package movelog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"

	"github.com/mcoot/fourinarow/internal/model"
)

// Header is the first record of every move log
var Header = []string{"Player", "Turn", "Move", "Time", "Nodes Generated"}

// Writer persists the move log of a finished game
type Writer interface {
	Write(ctx context.Context, game *model.Game) error
}

// Encode writes moves as CSV. Start placements carry three fields; successor
// moves carry five, with Time (seconds) and Nodes left blank unless the move
// was chosen by a search.
func Encode(w io.Writer, moves []model.Move) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, m := range moves {
		if err := cw.Write(record(m)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(m model.Move) []string {
	rec := []string{m.Player.String(), string(m.Kind), m.Position.String()}
	if m.Kind == model.MoveKindStart {
		return rec
	}
	if !m.Engine {
		return append(rec, "", "")
	}
	return append(rec,
		strconv.FormatFloat(m.Elapsed.Seconds(), 'f', -1, 64),
		strconv.Itoa(m.Nodes),
	)
}

// DefaultDir is where move logs go when no directory is configured
func DefaultDir() string {
	return filepath.Join(xdg.DataHome, "fourinarow", "games")
}

// FileWriter writes one CSV file per game into a directory
type FileWriter struct {
	dir    string
	logger *slog.Logger
}

// NewFileWriter creates a FileWriter; an empty dir selects DefaultDir
func NewFileWriter(dir string, logger *slog.Logger) *FileWriter {
	if dir == "" {
		dir = DefaultDir()
	}
	return &FileWriter{
		dir:    dir,
		logger: logger.With(slog.String("component", "movelog")),
	}
}

// Dir returns the output directory
func (w *FileWriter) Dir() string {
	return w.dir
}

// Path returns the file a game's log is written to
func (w *FileWriter) Path(id model.GameID) string {
	return filepath.Join(w.dir, string(id)+".csv")
}

// Write replaces the game's log file with its full history
func (w *FileWriter) Write(ctx context.Context, game *model.Game) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create move log dir: %w", err)
	}

	path := w.Path(game.ID)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create move log: %w", err)
	}

	if err := Encode(f, game.Moves); err != nil {
		_ = f.Close()
		return fmt.Errorf("write move log: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	w.logger.Info("move log written",
		slog.String("game_id", string(game.ID)),
		slog.String("path", path),
		slog.Int("moves", len(game.Moves)),
	)
	return nil
}

// NopWriter discards move logs
type NopWriter struct{}

func (NopWriter) Write(ctx context.Context, game *model.Game) error {
	return nil
}

package movelog

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/fourinarow/internal/model"
	"github.com/mcoot/fourinarow/internal/testutil"
)

type MoveLogSuite struct {
	suite.Suite
	moves []model.Move
}

func TestMoveLogSuite(t *testing.T) {
	suite.Run(t, new(MoveLogSuite))
}

func (s *MoveLogSuite) SetupTest() {
	s.moves = []model.Move{
		{Player: model.MarkX, Kind: model.MoveKindStart, Position: model.Position{Col: 4, Row: 3}},
		{Player: model.MarkO, Kind: model.MoveKindStart, Position: model.Position{Col: 3, Row: 3}},
		{
			Player:   model.MarkX,
			Kind:     model.MoveKindMove,
			Position: model.Position{Col: 3, Row: 2},
			Engine:   true,
			Depth:    2,
			Elapsed:  1500 * time.Millisecond,
			Nodes:    812,
		},
		{Player: model.MarkO, Kind: model.MoveKindMove, Position: model.Position{Col: 2, Row: 2}},
	}
}

func (s *MoveLogSuite) readAll(data []byte) [][]string {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	s.Require().NoError(err)
	return records
}

func (s *MoveLogSuite) TestEncode() {
	var buf bytes.Buffer
	s.Require().NoError(Encode(&buf, s.moves))

	records := s.readAll(buf.Bytes())
	s.Equal([][]string{
		Header,
		{"X", "Start", "(4, 3)"},
		{"O", "Start", "(3, 3)"},
		{"X", "Move", "(3, 2)", "1.5", "812"},
		{"O", "Move", "(2, 2)", "", ""},
	}, records)

	// Coordinates contain a comma and must be quoted
	s.Contains(buf.String(), `"(4, 3)"`)
}

func (s *MoveLogSuite) TestEncodeEmpty() {
	var buf bytes.Buffer
	s.Require().NoError(Encode(&buf, nil))
	s.Equal("Player,Turn,Move,Time,Nodes Generated\n", buf.String())
}

func (s *MoveLogSuite) TestFileWriter() {
	dir := filepath.Join(s.T().TempDir(), "logs")
	w := NewFileWriter(dir, testutil.NopLogger())
	s.Equal(dir, w.Dir())

	game := &model.Game{ID: "GAME1", Moves: s.moves}
	s.Require().NoError(w.Write(context.Background(), game))

	data, err := os.ReadFile(filepath.Join(dir, "GAME1.csv"))
	s.Require().NoError(err)
	s.Len(s.readAll(data), len(s.moves)+1)

	// Writing again replaces the file
	game.Moves = s.moves[:2]
	s.Require().NoError(w.Write(context.Background(), game))
	data, err = os.ReadFile(w.Path("GAME1"))
	s.Require().NoError(err)
	s.Len(s.readAll(data), 3)
}

func (s *MoveLogSuite) TestFileWriterDefaultDir() {
	w := NewFileWriter("", testutil.NopLogger())
	s.Equal(DefaultDir(), w.Dir())
	s.True(strings.HasSuffix(w.Dir(), filepath.Join("fourinarow", "games")))
}

func (s *MoveLogSuite) TestFileWriterFailsOnUnwritableDir() {
	file := filepath.Join(s.T().TempDir(), "not-a-dir")
	s.Require().NoError(os.WriteFile(file, []byte("x"), 0o644))

	w := NewFileWriter(filepath.Join(file, "logs"), testutil.NopLogger())
	s.Error(w.Write(context.Background(), &model.Game{ID: "GAME1"}))
}

func (s *MoveLogSuite) TestNopWriter() {
	s.NoError(NopWriter{}.Write(context.Background(), &model.Game{ID: "GAME1"}))
}

package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/fourinarow/internal/dependencies/mocks"
	"github.com/mcoot/fourinarow/internal/model"
	"github.com/mcoot/fourinarow/internal/movelog"
	"github.com/mcoot/fourinarow/internal/services/bot"
	"github.com/mcoot/fourinarow/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// TestOption adjusts a TestApp before it is wired
type TestOption func(*testOptions)

type testOptions struct {
	moveLog   movelog.Writer
	adjacency model.AdjacencyRule
	depths    bot.Depths
}

// WithMoveLog replaces the default no-op move log writer
func WithMoveLog(w movelog.Writer) TestOption {
	return func(o *testOptions) { o.moveLog = w }
}

func WithAdjacency(rule model.AdjacencyRule) TestOption {
	return func(o *testOptions) { o.adjacency = rule }
}

func WithDepths(d bot.Depths) TestOption {
	return func(o *testOptions) { o.depths = d }
}

// NewTestApp creates an App on in-memory storage with mocked clock and randomness
func NewTestApp(opts ...TestOption) *TestApp {
	o := testOptions{
		moveLog:   movelog.NopWriter{},
		adjacency: model.DefaultAdjacencyRule,
		depths:    bot.DefaultDepths(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(memory.New(), o.moveLog, mockClock, mockRandom, o.adjacency, o.depths, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

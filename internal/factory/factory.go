package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/fourinarow/internal/config"
	"github.com/mcoot/fourinarow/internal/dependencies/clock"
	"github.com/mcoot/fourinarow/internal/dependencies/random"
	"github.com/mcoot/fourinarow/internal/model"
	"github.com/mcoot/fourinarow/internal/movelog"
	"github.com/mcoot/fourinarow/internal/services/board"
	"github.com/mcoot/fourinarow/internal/services/bot"
	"github.com/mcoot/fourinarow/internal/services/game"
	"github.com/mcoot/fourinarow/internal/services/search"
	"github.com/mcoot/fourinarow/internal/storage"
	"github.com/mcoot/fourinarow/internal/storage/memory"
	redisstorage "github.com/mcoot/fourinarow/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage

	Clock  clock.Clock
	Random random.Random

	MoveLog        movelog.Writer
	BoardService   *board.Service
	Engine         *search.Engine
	GameController *game.Controller
	BotService     *bot.Service

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger defaults to a no-op logger
	Logger *slog.Logger
	// StorageType selects the storage backend, memory when empty
	StorageType string
	// RedisConfig is required when StorageType is redis
	RedisConfig *redisstorage.Config
	// Adjacency is the engine's default successor rule
	Adjacency model.AdjacencyRule
	// Depths are used when the engine plays for a seat without its own depth
	Depths bot.Depths
	// MoveLogDir defaults to the XDG data directory
	MoveLogDir     string
	DisableMoveLog bool
}

// ConfigFrom maps loaded server settings onto a factory Config
func ConfigFrom(cfg *config.Config, logger *slog.Logger) Config {
	redisCfg := redisstorage.Config{
		URL:          cfg.Redis.URL,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		GameTTL:      cfg.Redis.GameTTL,
	}
	return Config{
		Logger:         logger,
		StorageType:    cfg.Storage.Type,
		RedisConfig:    &redisCfg,
		Adjacency:      cfg.AdjacencyRule(),
		Depths:         bot.Depths{X: cfg.Engine.XDepth, O: cfg.Engine.ODepth},
		MoveLogDir:     cfg.MoveLog.Dir,
		DisableMoveLog: cfg.MoveLog.Disabled,
	}
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	var closers []io.Closer

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageTypeMemory
	}

	switch storageType {
	case config.StorageTypeMemory:
		store = memory.New()
	case config.StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
		closers = append(closers, redisStore)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	var moveLog movelog.Writer = movelog.NopWriter{}
	if !cfg.DisableMoveLog {
		moveLog = movelog.NewFileWriter(cfg.MoveLogDir, logger)
	}

	depths := cfg.Depths
	if depths == (bot.Depths{}) {
		depths = bot.DefaultDepths()
	}

	app := newWithDependencies(store, moveLog, clock.New(), random.New(), cfg.Adjacency, depths, logger)
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	moveLog movelog.Writer,
	clk clock.Clock,
	rnd random.Random,
	rule model.AdjacencyRule,
	depths bot.Depths,
	logger *slog.Logger,
) *App {
	if rule == "" {
		rule = model.DefaultAdjacencyRule
	}

	boardService := board.New(logger)
	engine := search.New(logger, search.WithAdjacency(rule))
	gameController := game.NewController(store, boardService, moveLog, clk, rnd, logger)
	strategies := map[model.PlayerKind]bot.Strategy{
		model.PlayerKindMinimax: bot.NewMinimaxStrategy(engine),
		model.PlayerKindRandom:  bot.NewRandomStrategy(boardService, rnd),
	}
	botService := bot.NewService(gameController, strategies, depths, clk, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		MoveLog:        moveLog,
		BoardService:   boardService,
		Engine:         engine,
		GameController: gameController,
		BotService:     botService,
	}
}

// Close releases storage connections
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

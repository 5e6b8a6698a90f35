package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/fourinarow/internal/model"
	"github.com/mcoot/fourinarow/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL)
	pipe.ZAdd(ctx, gamesIndexKey(), redis.Z{
		Score:  float64(game.CreatedAt.UnixMilli()),
		Member: string(game.ID),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, gameKey(id))
	pipe.ZRem(ctx, gamesIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	ids, err := s.client.ZRange(ctx, gamesIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Game{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = gameKey(model.GameID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, 0, len(values))
	var expired []any
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			// Game key expired, index entry is stale
			expired = append(expired, ids[i])
			continue
		}
		var game model.Game
		if err := json.Unmarshal([]byte(str), &game); err != nil {
			return nil, err
		}
		games = append(games, &game)
	}

	if len(expired) > 0 {
		if err := s.client.ZRem(ctx, gamesIndexKey(), expired...).Err(); err != nil {
			return nil, err
		}
	}

	return games, nil
}

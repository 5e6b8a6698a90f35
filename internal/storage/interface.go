package storage

import (
	"context"

	"github.com/mcoot/fourinarow/internal/model"
)

// Storage defines the interface for game persistence
type Storage interface {
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	// ListGames returns all stored games, oldest first
	ListGames(ctx context.Context) ([]*model.Game, error)
}

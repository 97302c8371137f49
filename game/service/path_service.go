package service

import (
	"context"

	"github.com/wricardo/lonely-knight/game/board"
)

// PathService defines all pathfinding operations exposed to transports
type PathService interface {
	// Session Management
	CreateSession(ctx context.Context, boardID string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Searches
	FindPath(ctx context.Context, sessionID string, req PathRequest) (*PathResult, error)
	ComparePaths(ctx context.Context, sessionID string, req PathRequest) (*CompareResult, error)
	MoveKnight(ctx context.Context, sessionID string, path []board.Coordinate) (*MoveResult, error)
	ValidatePath(ctx context.Context, sessionID string, path []board.Coordinate) (*ValidationResult, error)

	// Terrain
	SetTerrain(ctx context.Context, sessionID string, changes []TerrainChange) (*BoardState, error)
	Reset(ctx context.Context, sessionID string) (*BoardState, error)
	GetBoardState(ctx context.Context, sessionID string) (*BoardState, error)
	GetQueryHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Boards
	ListBoards(ctx context.Context) ([]*BoardInfo, error)
	LoadBoard(ctx context.Context, boardID string) (*board.BoardConfig, error)
	SaveBoard(ctx context.Context, boardID string, config *board.BoardConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, boardID string, config *board.BoardConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id, boardID string, config *board.BoardConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles board layout loading
type ConfigManager interface {
	LoadConfig(name string) (*board.BoardConfig, error)
	ListConfigs() ([]*BoardInfo, error)
	GetDefault() *board.BoardConfig
	DefaultID() string
	SaveConfig(name string, config *board.BoardConfig) error
}

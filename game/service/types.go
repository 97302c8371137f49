package service

import (
	"errors"
	"time"

	"github.com/wricardo/lonely-knight/game/board"
)

var (
	// ErrInvalidRequest marks caller mistakes: unknown algorithm, bad terrain, off-board edits
	ErrInvalidRequest = errors.New("invalid request")
)

// Query kinds recorded in the session log
const (
	QueryPath     = "path"
	QueryCompare  = "compare"
	QueryMove     = "move"
	QueryValidate = "validate"
	QueryTerrain  = "terrain"
	QueryReset    = "reset"
)

// SessionInfo provides information about a board session
type SessionInfo struct {
	ID             string             `json:"id"`
	BoardID        string             `json:"board_id"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	State          *BoardState        `json:"state"`
	Config         *board.BoardConfig `json:"board_config"`
}

// BoardState is a snapshot of a session board
type BoardState struct {
	SessionID      string             `json:"session_id"`
	BoardID        string             `json:"board_id"`
	Name           string             `json:"name"`
	Width          int                `json:"width"`
	Height         int                `json:"height"`
	Rows           []string           `json:"rows"`    // markers over terrain
	Terrain        []string           `json:"terrain"` // terrain only
	Teleports      []board.Coordinate `json:"teleports"`
	TerrainCounts  map[string]int     `json:"terrain_counts"`
	TerrainChanges int                `json:"terrain_changes"`
	QueryCount     int                `json:"query_count"`

	// Suggested endpoints from the layout, if any
	Origin *board.Coordinate `json:"origin,omitempty"`
	Target *board.Coordinate `json:"target,omitempty"`
}

// PathRequest asks for a path between two cells
type PathRequest struct {
	Origin         board.Coordinate `json:"origin"`
	Target         board.Coordinate `json:"target"`
	Algorithm      string           `json:"algorithm,omitempty"` // "any", "wave" or "astar" (default)
	CheckTeleports bool             `json:"check_teleports,omitempty"`
}

// PathResult contains the outcome of one search
type PathResult struct {
	Algorithm  board.Algorithm    `json:"algorithm"`
	Origin     board.Coordinate   `json:"origin"`
	Target     board.Coordinate   `json:"target"`
	Found      bool               `json:"found"`
	Path       []board.Coordinate `json:"path,omitempty"`
	Moves      int                `json:"moves"`
	Cost       int                `json:"cost"`
	Valid      bool               `json:"valid"`      // every step is a legal knight move
	Teleported bool               `json:"teleported"` // the path hops between the teleport pair
	Message    string             `json:"message"`
	ElapsedUS  int64              `json:"elapsed_us"`
}

// CompareResult runs every algorithm on the same endpoints
type CompareResult struct {
	Origin   board.Coordinate `json:"origin"`
	Target   board.Coordinate `json:"target"`
	Results  []*PathResult    `json:"results"`
	Cheapest board.Algorithm  `json:"cheapest,omitempty"`
	Shortest board.Algorithm  `json:"shortest,omitempty"`
}

// MoveResult contains the replay of a path on the board
type MoveResult struct {
	Valid   bool               `json:"valid"`
	Path    []board.Coordinate `json:"path"`
	Steps   int                `json:"steps"`
	Frames  [][]string         `json:"frames,omitempty"`
	Rows    []string           `json:"rows"`
	Message string             `json:"message"`
}

// ValidationResult reports whether a path is a legal knight route
type ValidationResult struct {
	Valid      bool   `json:"valid"`
	RouteValid bool   `json:"route_valid"` // valid when teleport hops are allowed
	FailedStep int    `json:"failed_step"` // index of the first illegal target cell, -1 when none
	Cost       int    `json:"cost"`
	Message    string `json:"message"`
}

// TerrainChange sets one cell to a terrain given by name or layout symbol
type TerrainChange struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Terrain string `json:"terrain"`
}

// QueryRecord is one entry of the session query log
type QueryRecord struct {
	Number    int               `json:"number"`
	Kind      string            `json:"kind"`
	Algorithm board.Algorithm   `json:"algorithm,omitempty"`
	Origin    *board.Coordinate `json:"origin,omitempty"`
	Target    *board.Coordinate `json:"target,omitempty"`
	Found     bool              `json:"found"`
	Moves     int               `json:"moves"`
	Cost      int               `json:"cost"`
	Detail    string            `json:"detail,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// HistoryOptions configures query history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated query history
type HistoryResponse struct {
	Queries      []QueryRecord `json:"queries"`
	TotalQueries int           `json:"total_queries"`
	Page         int           `json:"page"`
	PageSize     int           `json:"page_size"`
	TotalPages   int           `json:"total_pages"`
	HasNext      bool          `json:"has_next"`
	HasPrevious  bool          `json:"has_previous"`
}

// BoardInfo provides information about a stored board layout
type BoardInfo struct {
	Filename    string `json:"filename"`
	BoardID     string `json:"board_id"` // The identifier to use for session creation
	Name        string `json:"name"`     // Display name
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Teleports   int    `json:"teleports"`
}

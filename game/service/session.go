package service

import (
	"fmt"
	"time"

	"github.com/wricardo/lonely-knight/game/board"
)

// MaxQueryHistory bounds the per-session query log; older entries are dropped
const MaxQueryHistory = 1000

// Session represents an active board session. The board is always the
// configured layout with TerrainChanges applied on top, in order.
type Session struct {
	ID             string
	BoardID        string
	Board          *board.Board
	Config         *board.BoardConfig
	TerrainChanges []TerrainChange
	Queries        []QueryRecord
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// NewSession builds the board for config and returns a fresh session
func NewSession(id, boardID string, config *board.BoardConfig) (*Session, error) {
	if err := board.ValidateBoardConfig(config); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Session{
		ID:             id,
		BoardID:        boardID,
		Board:          board.NewFromConfig(config),
		Config:         config,
		CreatedAt:      now,
		LastAccessedAt: now,
	}, nil
}

// ApplyTerrain checks every change and then applies them all. Nothing is
// applied when any change is off the board or names unknown terrain.
func (s *Session) ApplyTerrain(changes []TerrainChange) error {
	kinds := make([]board.TerrainKind, len(changes))
	for i, change := range changes {
		c := board.Coordinate{X: change.X, Y: change.Y}
		if !s.Board.OnBoard(c) {
			return fmt.Errorf("%w: change %d at %v: %w", ErrInvalidRequest, i+1, c, board.ErrOffBoard)
		}
		kind, err := board.ParseTerrain(change.Terrain)
		if err != nil {
			return fmt.Errorf("%w: change %d: %w", ErrInvalidRequest, i+1, err)
		}
		kinds[i] = kind
	}

	for i, change := range changes {
		s.Board.SetTerrain(board.Coordinate{X: change.X, Y: change.Y}, kinds[i])
		s.TerrainChanges = append(s.TerrainChanges, TerrainChange{
			X:       change.X,
			Y:       change.Y,
			Terrain: kinds[i].String(),
		})
	}
	return nil
}

// Rebuild recreates the board from the layout and replays the terrain changes
func (s *Session) Rebuild() error {
	changes := s.TerrainChanges
	s.Board = board.NewFromConfig(s.Config)
	s.TerrainChanges = nil
	return s.ApplyTerrain(changes)
}

// ResetTerrain drops every terrain change and restores the configured layout
func (s *Session) ResetTerrain() {
	s.Board = board.NewFromConfig(s.Config)
	s.TerrainChanges = nil
}

// Record appends a query to the log, numbering it after the last entry
func (s *Session) Record(q QueryRecord) QueryRecord {
	q.Number = 1
	if n := len(s.Queries); n > 0 {
		q.Number = s.Queries[n-1].Number + 1
	}
	if q.Timestamp == 0 {
		q.Timestamp = time.Now().Unix()
	}
	s.Queries = append(s.Queries, q)
	if len(s.Queries) > MaxQueryHistory {
		s.Queries = s.Queries[len(s.Queries)-MaxQueryHistory:]
	}
	return q
}

// State snapshots the board for clients
func (s *Session) State() *BoardState {
	b := s.Board
	counts := make(map[string]int)
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			counts[b.TerrainAt(board.Coordinate{X: x, Y: y}).String()]++
		}
	}
	return &BoardState{
		SessionID:      s.ID,
		BoardID:        s.BoardID,
		Name:           s.Config.Name,
		Width:          b.Width(),
		Height:         b.Height(),
		Rows:           b.Rows(),
		Terrain:        b.TerrainRows(),
		Teleports:      b.Teleports(),
		TerrainCounts:  counts,
		TerrainChanges: len(s.TerrainChanges),
		QueryCount:     len(s.Queries),
		Origin:         s.Config.Origin,
		Target:         s.Config.Target,
	}
}

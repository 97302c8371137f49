package session

import (
	"time"

	"github.com/wricardo/lonely-knight/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData is the JSON form of a session. The board itself is not
// stored; it is rebuilt from the layout and the replayed terrain changes.
type PersistedSessionData struct {
	ID             string                  `json:"id"`
	BoardID        string                  `json:"board_id"`
	CreatedAt      time.Time               `json:"created_at"`
	LastAccessedAt time.Time               `json:"last_accessed_at"`
	TerrainChanges []service.TerrainChange `json:"terrain_changes,omitempty"`
	Queries        []service.QueryRecord   `json:"queries,omitempty"`
}

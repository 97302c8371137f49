package session

import (
	"testing"

	"github.com/wricardo/lonely-knight/game/board"
	"github.com/wricardo/lonely-knight/game/service"
)

func TestManagerWithPersistence(t *testing.T) {
	persistence, configManager, _ := newTestPersistence(t)
	manager := NewManagerWithPersistence(persistence)

	t.Run("Create Session Auto-Saves", func(t *testing.T) {
		session, err := manager.Create("auto1", "classic", configManager.GetDefault())
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if !persistence.Exists(session.ID) {
			t.Error("Session should be auto-saved on creation")
		}
	})

	t.Run("Save Writes Terrain Changes", func(t *testing.T) {
		session, err := manager.Get("auto1")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if err := session.ApplyTerrain([]service.TerrainChange{{X: 2, Y: 1, Terrain: "R"}}); err != nil {
			t.Fatalf("Failed to apply terrain: %v", err)
		}
		if err := manager.Save("auto1"); err != nil {
			t.Fatalf("Failed to save session: %v", err)
		}

		loaded, err := persistence.Load("auto1")
		if err != nil {
			t.Fatalf("Failed to load session: %v", err)
		}
		if len(loaded.TerrainChanges) != 1 {
			t.Errorf("Expected 1 terrain change, got %d", len(loaded.TerrainChanges))
		}
	})

	t.Run("Get Session Loads from Persistence", func(t *testing.T) {
		manager2 := NewManagerWithPersistence(persistence)

		session, err := manager2.Get("AUTO1")
		if err != nil {
			t.Fatalf("Failed to get session from persistence: %v", err)
		}
		if session.ID != "auto1" {
			t.Errorf("Expected ID auto1, got %s", session.ID)
		}

		again, err := manager2.Get("auto1")
		if err != nil {
			t.Fatalf("Failed to get session from memory: %v", err)
		}
		if again != session {
			t.Error("Session should be cached in memory after loading from persistence")
		}
	})

	t.Run("Cleanup Keeps Stored Copy", func(t *testing.T) {
		manager3 := NewManagerWithPersistence(persistence)
		if _, err := manager3.Get("auto1"); err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}

		if removed := manager3.CleanupExpiredSessions(0); removed != 1 {
			t.Errorf("Expected 1 session removed from memory, got %d", removed)
		}
		if manager3.Count() != 0 {
			t.Errorf("Expected empty memory cache, got %d", manager3.Count())
		}
		if _, err := manager3.Get("auto1"); err != nil {
			t.Errorf("Expected session to reload from disk: %v", err)
		}
	})

	t.Run("Load Persisted Sessions", func(t *testing.T) {
		if _, err := manager.Create("auto2", "barriers", mustLoad(t, configManager, "barriers")); err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}

		manager4 := NewManagerWithPersistence(persistence)
		if err := manager4.LoadPersistedSessions(); err != nil {
			t.Fatalf("Failed to load persisted sessions: %v", err)
		}
		if manager4.Count() != 2 {
			t.Errorf("Expected 2 sessions loaded, got %d", manager4.Count())
		}

		session, err := manager4.Get("auto2")
		if err != nil {
			t.Fatalf("Failed to get loaded session: %v", err)
		}
		if session.BoardID != "barriers" || session.Board.Width() != 12 {
			t.Errorf("Expected barriers board, got %s (%d wide)", session.BoardID, session.Board.Width())
		}
	})

	t.Run("Delete Removes Stored Copy", func(t *testing.T) {
		if err := manager.Delete("auto2"); err != nil {
			t.Fatalf("Failed to delete session: %v", err)
		}
		if persistence.Exists("auto2") {
			t.Error("Session file should be removed on delete")
		}
		if _, err := manager.Get("auto2"); err != ErrSessionNotFound {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Save All Sessions", func(t *testing.T) {
		if err := manager.SaveAllSessions(); err != nil {
			t.Errorf("Failed to save all sessions: %v", err)
		}
	})
}

func mustLoad(t *testing.T, m service.ConfigManager, id string) *board.BoardConfig {
	t.Helper()
	config, err := m.LoadConfig(id)
	if err != nil {
		t.Fatalf("Failed to load board %s: %v", id, err)
	}
	return config
}

package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wricardo/lonely-knight/game/board"
)

func createValidConfig() *board.BoardConfig {
	return &board.BoardConfig{
		Name:        "Test Board",
		Description: "Test layout",
		Width:       5,
		Height:      5,
		Layout: []string{
			".....",
			".BB..",
			"..L..",
			"..W.T",
			"T...R",
		},
		Legend: board.DefaultLegend(),
		Origin: &board.Coordinate{X: 0, Y: 0},
		Target: &board.Coordinate{X: 3, Y: 4},
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *board.BoardConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), data, 0644))
}

func TestNewManager(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := NewManager(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("empty directory falls back to built-in board", func(t *testing.T) {
		m, err := NewManager(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, DefaultBoardID, m.DefaultID())
		assert.Equal(t, 8, m.GetDefault().Width)

		// the built-in default can be loaded by ID
		config, err := m.LoadConfig(DefaultBoardID)
		require.NoError(t, err)
		assert.Same(t, m.GetDefault(), config)
	})

	t.Run("classic preferred", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "aaa", createValidConfig())
		classic := createValidConfig()
		classic.Name = "Classic"
		writeConfigFile(t, dir, "classic", classic)

		m, err := NewManager(dir)
		require.NoError(t, err)
		assert.Equal(t, "classic", m.DefaultID())
		assert.Equal(t, "Classic", m.GetDefault().Name)
	})

	t.Run("first valid board when no classic", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "zeta", createValidConfig())

		m, err := NewManager(dir)
		require.NoError(t, err)
		assert.Equal(t, "zeta", m.DefaultID())
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "valid", createValidConfig())

	invalid := createValidConfig()
	invalid.Layout[0] = "..?.."
	writeConfigFile(t, dir, "invalid", invalid)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644))

	m, err := NewManager(dir)
	require.NoError(t, err)

	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{"valid", "valid", nil},
		{"with extension", "valid.json", nil},
		{"missing", "missing", ErrConfigNotFound},
		{"invalid layout", "invalid", ErrInvalidConfig},
		{"path traversal", "../valid", ErrConfigNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := m.LoadConfig(tt.id)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Test Board", config.Name)
		})
	}

	_, err = m.LoadConfig("broken")
	assert.Error(t, err)
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "b-board", createValidConfig())
	writeConfigFile(t, dir, "a-board", createValidConfig())

	invalid := createValidConfig()
	invalid.Width = 99
	writeConfigFile(t, dir, "invalid", invalid)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0755))

	m, err := NewManager(dir)
	require.NoError(t, err)

	infos, err := m.ListConfigs()
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, "a-board", infos[0].BoardID)
	assert.Equal(t, "a-board.json", infos[0].Filename)
	assert.Equal(t, "b-board", infos[1].BoardID)
	assert.Equal(t, 5, infos[0].Width)
	assert.Equal(t, 2, infos[0].Teleports)
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)

	config := createValidConfig()
	config.Legend = nil
	require.NoError(t, m.SaveConfig("saved", config))

	_, err = os.Stat(filepath.Join(dir, "saved.json"))
	require.NoError(t, err)

	loaded, err := m.LoadConfig("saved")
	require.NoError(t, err)
	assert.Equal(t, config.Layout, loaded.Layout)
	assert.Equal(t, "lava", loaded.Legend["L"])

	bad := createValidConfig()
	bad.Height = 4
	assert.True(t, errors.Is(m.SaveConfig("bad", bad), ErrInvalidConfig))
	assert.True(t, errors.Is(m.SaveConfig("../escape", createValidConfig()), ErrInvalidConfig))
}

func TestManager_SetDefaultAndRefresh(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())
	writeConfigFile(t, dir, "other", createValidConfig())

	m, err := NewManager(dir)
	require.NoError(t, err)

	require.NoError(t, m.SetDefault("other"))
	assert.Equal(t, "other", m.DefaultID())
	assert.Error(t, m.SetDefault("missing"))

	// edits on disk are only seen after a refresh
	changed := createValidConfig()
	changed.Name = "Changed"
	writeConfigFile(t, dir, "classic", changed)

	config, err := m.LoadConfig("classic")
	require.NoError(t, err)
	assert.Equal(t, "Test Board", config.Name)

	require.NoError(t, m.RefreshCache())
	config, err = m.LoadConfig("classic")
	require.NoError(t, err)
	assert.Equal(t, "Changed", config.Name)
	assert.Equal(t, "classic", m.DefaultID())
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())

	m, err := NewManager(dir)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.LoadConfig("classic")
			assert.NoError(t, err)
			_, err = m.ListConfigs()
			assert.NoError(t, err)
			assert.NotNil(t, m.GetDefault())
		}()
	}
	wg.Wait()
}

func TestShippedConfigs(t *testing.T) {
	dir := filepath.Join("..", "..", "configs")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Skip("configs directory not found")
	}

	m, err := NewManager(dir)
	require.NoError(t, err)

	infos, err := m.ListConfigs()
	require.NoError(t, err)

	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.BoardID)
	}
	assert.Subset(t, ids, []string{"classic", "barriers", "teleports", "level4"})

	level4, err := m.LoadConfig("level4")
	require.NoError(t, err)
	assert.Equal(t, 32, level4.Width)
	assert.Equal(t, 28, level4.Height)

	b := board.NewFromConfig(level4)
	path, ok := b.CalculateShortestPathAStar(*level4.Origin, *level4.Target, true)
	require.True(t, ok)
	assert.True(t, b.ValidateRoute(path))
}

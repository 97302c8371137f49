package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/wricardo/lonely-knight/game/board"
	"github.com/wricardo/lonely-knight/game/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultBoardID is the layout used when a session names no board
const DefaultBoardID = "classic"

// Manager handles board layout loading and caching
type Manager struct {
	configDir     string
	defaultID     string
	defaultConfig *board.BoardConfig
	configs       map[string]*board.BoardConfig
	mu            sync.RWMutex
}

var _ service.ConfigManager = (*Manager)(nil)

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*board.BoardConfig),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// LoadConfig loads a layout by board ID (its file name without extension)
func (m *Manager) LoadConfig(name string) (*board.BoardConfig, error) {
	name = strings.TrimSuffix(name, ".json")

	m.mu.RLock()
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	if strings.ContainsAny(name, `/\`) || name == "" || name == "." || name == ".." {
		return nil, ErrConfigNotFound
	}

	data, err := os.ReadFile(filepath.Join(m.configDir, name+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config board.BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := board.ValidateBoardConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.configs[name] = &config
	return &config, nil
}

// ListConfigs returns information about all available layouts, sorted by board ID
func (m *Manager) ListConfigs() ([]*service.BoardInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var infos []*service.BoardInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		config, err := m.LoadConfig(id)
		if err != nil {
			log.WithError(err).WithField("board", id).Debug("skipping invalid board config")
			continue
		}

		infos = append(infos, &service.BoardInfo{
			Filename:    entry.Name(),
			BoardID:     id,
			Name:        config.Name,
			Description: config.Description,
			Width:       config.Width,
			Height:      config.Height,
			Teleports:   countTeleports(config.Layout),
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].BoardID < infos[j].BoardID })
	return infos, nil
}

// GetDefault returns the default layout
func (m *Manager) GetDefault() *board.BoardConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// DefaultID returns the board ID of the default layout
func (m *Manager) DefaultID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultID
}

// SetDefault sets the default layout by board ID
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultID = strings.TrimSuffix(name, ".json")
	m.defaultConfig = config
	return nil
}

// RefreshCache drops every cached layout and reloads the default from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*board.BoardConfig)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// SaveConfig validates a layout and writes it to disk
func (m *Manager) SaveConfig(name string, config *board.BoardConfig) error {
	if err := board.ValidateBoardConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	name = strings.TrimSuffix(name, ".json")
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: invalid board ID %q", ErrInvalidConfig, name)
	}

	if config.Legend == nil {
		config.Legend = board.DefaultLegend()
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.configDir, name+".json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[name] = config
	m.mu.Unlock()

	return nil
}

// loadDefaultConfig prefers classic.json, then the first valid layout, then
// the built-in empty chessboard
func (m *Manager) loadDefaultConfig() error {
	id := DefaultBoardID
	config, err := m.LoadConfig(id)
	if err != nil {
		infos, listErr := m.ListConfigs()
		if listErr != nil || len(infos) == 0 {
			m.setDefault(DefaultBoardID, board.DefaultBoardConfig())
			return nil
		}

		id = infos[0].BoardID
		config, err = m.LoadConfig(id)
		if err != nil {
			m.setDefault(DefaultBoardID, board.DefaultBoardConfig())
			return nil
		}
	}

	m.setDefault(id, config)
	return nil
}

func (m *Manager) setDefault(id string, config *board.BoardConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultID = id
	m.defaultConfig = config
	if _, exists := m.configs[id]; !exists {
		m.configs[id] = config
	}
}

func countTeleports(layout []string) int {
	n := 0
	for _, row := range layout {
		n += strings.Count(row, "T")
	}
	return n
}

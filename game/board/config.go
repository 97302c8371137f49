package board

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// BoardConfig is a terrain layout as stored in the configs directory
type BoardConfig struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Layout      []string          `json:"layout"`
	Legend      map[string]string `json:"legend,omitempty"`

	// Default endpoints offered to clients for this layout
	Origin *Coordinate `json:"origin,omitempty"`
	Target *Coordinate `json:"target,omitempty"`
}

// layoutSymbols are the only symbols a stored layout may use
const layoutSymbols = ".BLRWT"

// ValidateBoardConfig checks a layout for size, symbols, teleport count and endpoints
func ValidateBoardConfig(config *BoardConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	if config.Width < MinBoardSize || config.Width > MaxBoardSize {
		return fmt.Errorf("config validation: width must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.Width)
	}
	if config.Height < MinBoardSize || config.Height > MaxBoardSize {
		return fmt.Errorf("config validation: height must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.Height)
	}

	if len(config.Layout) != config.Height {
		return fmt.Errorf("config validation: layout must have %d rows to match height, got %d",
			config.Height, len(config.Layout))
	}

	teleports := 0
	for i, row := range config.Layout {
		if len(row) != config.Width {
			return fmt.Errorf("config validation: row %d must have %d characters to match width, got %d",
				i+1, config.Width, len(row))
		}
		for j := 0; j < len(row); j++ {
			if !strings.ContainsRune(layoutSymbols, rune(row[j])) {
				return fmt.Errorf("config validation: %w '%c' at row %d, col %d", ErrInvalidTerrain, row[j], i+1, j+1)
			}
			if row[j] == 'T' {
				teleports++
			}
		}
	}
	if teleports > MaxTeleports {
		return fmt.Errorf("config validation: at most %d teleports allowed, got %d", MaxTeleports, teleports)
	}

	for key, value := range config.Legend {
		if len(key) != 1 {
			return fmt.Errorf("config validation: legend key '%s' must be a single symbol", key)
		}
		if expected := TerrainFromSymbol(key[0]).String(); key != "." && expected == Free.String() {
			return fmt.Errorf("config validation: legend key '%s' is not a layout symbol", key)
		} else if value != expected {
			return fmt.Errorf("config validation: legend['%s'] must be '%s', got '%s'", key, expected, value)
		}
	}

	inBounds := func(c Coordinate) bool {
		return c.X >= 0 && c.Y >= 0 && c.X < config.Width && c.Y < config.Height
	}
	if config.Origin != nil && !inBounds(*config.Origin) {
		return fmt.Errorf("config validation: origin %v is off the board", *config.Origin)
	}
	if config.Target != nil {
		if !inBounds(*config.Target) {
			return fmt.Errorf("config validation: target %v is off the board", *config.Target)
		}
		if !TerrainFromSymbol(config.Layout[config.Target.Y][config.Target.X]).Passable() {
			return fmt.Errorf("config validation: target %v is not passable", *config.Target)
		}
	}

	return nil
}

// LoadBoardConfig loads and validates a layout from a JSON file
func LoadBoardConfig(filename string) (*BoardConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse board config '%s': %w", filename, err)
	}

	if err := ValidateBoardConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// NewFromConfig builds a board from a layout, or the default layout when config is nil
func NewFromConfig(config *BoardConfig) *Board {
	if config == nil {
		config = DefaultBoardConfig()
	}
	return NewFromLayout(config.Width, config.Height, config.Layout)
}

// DefaultBoardConfig is an empty 8x8 chessboard
func DefaultBoardConfig() *BoardConfig {
	layout := make([]string, 8)
	for i := range layout {
		layout[i] = strings.Repeat(".", 8)
	}
	return &BoardConfig{
		Name:        "classic",
		Description: "Empty 8x8 chessboard",
		Width:       8,
		Height:      8,
		Layout:      layout,
		Origin:      &Coordinate{0, 0},
		Target:      &Coordinate{7, 5},
	}
}

// DefaultLegend maps every layout symbol to its terrain name
func DefaultLegend() map[string]string {
	legend := make(map[string]string, len(layoutSymbols))
	for i := 0; i < len(layoutSymbols); i++ {
		legend[string(layoutSymbols[i])] = TerrainFromSymbol(layoutSymbols[i]).String()
	}
	return legend
}

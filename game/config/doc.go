// Package config provides board layout management for the knight pathfinder.
//
// The config package handles:
//   - Loading board layouts from JSON files
//   - Layout validation through board.ValidateBoardConfig
//   - Default layout management
//   - Layout discovery and listing
//
// Layout Format:
//
// Layouts are stored as JSON files in the configs directory. The file name
// without extension is the board ID used to create sessions. Each layout
// defines width, height and one string per row using the terrain symbols
// '.' free, 'B' barrier, 'L' lava, 'R' rock, 'W' water and 'T' teleport,
// plus optional suggested origin and target cells.
//
// Available Layouts:
//   - classic: empty 8x8 chessboard
//   - barriers: double barrier walls that cut knight approach lines
//   - teleports: a rock wall only the teleport pair crosses
//   - level4: 32x28 mixed terrain course
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	layout, err := manager.LoadConfig("level4")
//	boards, err := manager.ListConfigs()
package config

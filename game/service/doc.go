// Package service provides the business logic layer for the knight pathfinder.
//
// The service package implements:
//   - Multi-session board management
//   - Path queries with any-path, wave and A* searches
//   - Path validation and knight replay
//   - Terrain editing with a replayable change log
//   - Per-session query history
//
// Core Interfaces:
//
// PathService is the main service interface providing high-level operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager loads and stores board layouts.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the board package. Each session owns its own board built from a stored
// layout plus the terrain changes made during the session. Searches mutate
// per-node scratch state, so the service serializes every board access.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	pathService := service.NewPathService(sessionMgr, configMgr)
//
//	info, err := pathService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := pathService.FindPath(ctx, info.ID, service.PathRequest{
//		Origin:    board.Coordinate{X: 0, Y: 0},
//		Target:    board.Coordinate{X: 7, Y: 5},
//		Algorithm: "astar",
//	})
//
// Sessions are identified by 4-character IDs and looked up case-insensitively.
package service

// Package api provides the HTTP REST API for the knight pathfinder.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a session, body {"board_id": "level4"} (optional)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N&board=ID)
//   - GET /api/sessions/{id} - Get session info with board state
//   - DELETE /api/sessions/{id} - Delete a session
//
// Board operations:
//   - GET /api/sessions/{id}/state - Board snapshot (rows, teleports, terrain counts)
//   - POST /api/sessions/{id}/path - Run one search
//   - POST /api/sessions/{id}/compare - Run every search on the same endpoints
//   - POST /api/sessions/{id}/move - Replay a path, marking the board
//   - POST /api/sessions/{id}/validate - Check a path without marking the board
//   - POST /api/sessions/{id}/terrain - Change cells, body {"changes": [{"x":1,"y":2,"terrain":"T"}]}
//   - POST /api/sessions/{id}/reset - Restore the layout
//   - GET /api/sessions/{id}/history - Query log (?page=N&limit=N&order=asc|desc)
//
// Layouts:
//   - GET /api/boards - List layouts
//   - POST /api/boards - Save a layout, body {"board_id": "...", "config": {...}}
//   - GET /api/boards/{name} - Get one layout
//
// Other:
//   - GET /api/health - Liveness and session count
//   - GET /ws?session={id} - WebSocket stream of board updates
//
// Path requests look like:
//
//	{
//	  "origin": {"x": 0, "y": 0},
//	  "target": {"x": 7, "y": 5},
//	  "algorithm": "any|wave|astar",
//	  "check_teleports": true
//	}
//
// Errors are returned as {"error": "message"} with 404 for unknown sessions or
// layouts, 400 for invalid requests and 500 otherwise.
package api

// Package mcp exposes the knight pathfinder to AI agents over the Model
// Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a request to the REST
// API, and the JSON answer is rendered as text.
//
// Tools:
//   - create_session, list_sessions, get_session: session management
//   - board_state: board rows with a coordinate ruler
//   - find_path, compare_paths: run "any", "wave" or "astar" searches
//   - move_knight, validate_path: replay or check a path given as "x,y; x,y"
//   - set_terrain, reset_board: edit a cell or restore the layout
//   - query_history: paginated query log
//   - list_boards: stored layouts
//   - describe_cell: terrain, cost and legal knight moves of one cell
//   - knight_rules: movement and terrain reference
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp

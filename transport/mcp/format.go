package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/lonely-knight/game/board"
	"github.com/wricardo/lonely-knight/game/service"
)

// formatRows prints board rows under a column ruler with row numbers
func formatRows(rows []string) string {
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("    ")
	for x := 0; x < len(rows[0]); x++ {
		sb.WriteByte(byte('0' + x%10))
	}
	sb.WriteByte('\n')
	for y, row := range rows {
		sb.WriteString(fmt.Sprintf("%3d %s\n", y, row))
	}
	return sb.String()
}

func formatBoardState(state *service.BoardState) string {
	if state == nil {
		return "No board state"
	}

	result := fmt.Sprintf("Board: %s (%s) %dx%d\n", state.Name, state.BoardID, state.Width, state.Height)
	result += formatRows(state.Rows)

	if len(state.Teleports) > 0 {
		parts := make([]string, len(state.Teleports))
		for i, t := range state.Teleports {
			parts[i] = t.String()
		}
		result += fmt.Sprintf("Teleports: %s\n", strings.Join(parts, " <-> "))
	}
	if state.Origin != nil && state.Target != nil {
		result += fmt.Sprintf("Suggested: %s -> %s\n", state.Origin, state.Target)
	}
	result += fmt.Sprintf("Terrain changes: %d, Queries: %d\n", state.TerrainChanges, state.QueryCount)
	result += "Legend: . free, W water, L lava, R rock, B barrier, T teleport, S/E/K/* markers"
	return result
}

func formatSessionInfo(info *service.SessionInfo) string {
	result := fmt.Sprintf("Session: %s\nBoard: %s\nCreated: %s\nLast accessed: %s\n\n",
		info.ID, info.BoardID,
		info.CreatedAt.Format("2006-01-02 15:04:05"),
		info.LastAccessedAt.Format("2006-01-02 15:04:05"))
	return result + formatBoardState(info.State)
}

func formatPathResult(r *service.PathResult) string {
	if !r.Found {
		return fmt.Sprintf("[%s] No path from %s to %s\n%s", r.Algorithm, r.Origin, r.Target, r.Message)
	}

	result := fmt.Sprintf("[%s] %s -> %s: %d moves, cost %d", r.Algorithm, r.Origin, r.Target, r.Moves, r.Cost)
	if r.Teleported {
		result += " (via teleport)"
	}
	result += fmt.Sprintf(" in %dµs\n", r.ElapsedUS)
	result += board.FormatPath(r.Path)
	return result
}

func formatCompareResult(r *service.CompareResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Compare %s -> %s\n\n", r.Origin, r.Target))
	sb.WriteString(fmt.Sprintf("%-6s %-6s %6s %6s %10s\n", "ALGO", "FOUND", "MOVES", "COST", "TIME(µs)"))
	for _, res := range r.Results {
		sb.WriteString(fmt.Sprintf("%-6s %-6v %6d %6d %10d\n", res.Algorithm, res.Found, res.Moves, res.Cost, res.ElapsedUS))
	}
	if r.Shortest != "" {
		sb.WriteString(fmt.Sprintf("\nFewest moves: %s\n", r.Shortest))
	}
	if r.Cheapest != "" {
		sb.WriteString(fmt.Sprintf("Cheapest: %s\n", r.Cheapest))
	}
	return sb.String()
}

func formatMoveResult(r *service.MoveResult) string {
	if !r.Valid {
		return fmt.Sprintf("Move rejected after %d steps: %s\n\n%s", r.Steps, r.Message, formatRows(r.Rows))
	}
	return fmt.Sprintf("Knight moved %d steps\n\n%s", r.Steps, formatRows(r.Rows))
}

func formatHistory(h *service.HistoryResponse) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Query history (page %d/%d, %d total)\n\n", h.Page, h.TotalPages, h.TotalQueries))
	for _, q := range h.Queries {
		line := fmt.Sprintf("#%d %s", q.Number, q.Kind)
		if q.Algorithm != "" {
			line += fmt.Sprintf(" [%s]", q.Algorithm)
		}
		if q.Origin != nil && q.Target != nil {
			line += fmt.Sprintf(" %s -> %s", q.Origin, q.Target)
		}
		if q.Kind == service.QueryPath || q.Kind == service.QueryMove {
			line += fmt.Sprintf(" found=%v moves=%d cost=%d", q.Found, q.Moves, q.Cost)
		}
		if q.Detail != "" {
			line += " " + q.Detail
		}
		sb.WriteString(line + "\n")
	}
	if h.HasNext {
		sb.WriteString(fmt.Sprintf("\nMore on page %d", h.Page+1))
	}
	return sb.String()
}

// describeCell rebuilds the terrain from a snapshot to report the cell and
// where a knight can jump from it
func describeCell(state *service.BoardState, c board.Coordinate) string {
	if c.X < 0 || c.Y < 0 || c.X >= state.Width || c.Y >= state.Height || c.Y >= len(state.Terrain) {
		return fmt.Sprintf("Cell %s is off the %dx%d board", c, state.Width, state.Height)
	}

	kind := board.TerrainFromSymbol(state.Terrain[c.Y][c.X])

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Cell %s\nTerrain: %s\n", c, kind))
	if !kind.Passable() {
		sb.WriteString("Passable: no\n")
	} else {
		sb.WriteString(fmt.Sprintf("Passable: yes, cost %d\n", kind.Cost()))
	}

	if c.Y < len(state.Rows) && c.X < len(state.Rows[c.Y]) {
		if mark := state.Rows[c.Y][c.X]; mark != state.Terrain[c.Y][c.X] {
			sb.WriteString(fmt.Sprintf("Marker: %c\n", mark))
		}
	}

	if kind == board.Teleport {
		for _, t := range state.Teleports {
			if t != c {
				sb.WriteString(fmt.Sprintf("Teleport partner: %s\n", t))
			}
		}
	}

	b := board.NewFromLayout(state.Width, state.Height, state.Terrain)
	moves := b.LegalMoves(c)
	if len(moves) == 0 {
		sb.WriteString("Legal moves: none")
		return sb.String()
	}
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	sb.WriteString(fmt.Sprintf("Legal moves (%d): %s", len(moves), strings.Join(parts, " ")))
	return sb.String()
}

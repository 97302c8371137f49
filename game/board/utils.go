package board

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PathCost sums the movement cost of every cell entered after the first
func PathCost(b Engine, path []Coordinate) int {
	cost := 0
	for i := 1; i < len(path); i++ {
		if b.OnBoard(path[i]) {
			cost += b.MovementCost(path[i])
		}
	}
	return cost
}

// CountTerrain counts the cells of a specific terrain kind
func CountTerrain(b Engine, kind TerrainKind) int {
	count := 0
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.TerrainAt(Coordinate{x, y}) == kind {
				count++
			}
		}
	}
	return count
}

// KnightDistance is a lower bound on the number of knight moves between two
// cells on an unobstructed board
func KnightDistance(from, to Coordinate) int {
	dx, dy := abs(from.X-to.X), abs(from.Y-to.Y)
	if dx < dy {
		dx, dy = dy, dx
	}
	// every move changes dx by at most 2 and dx+dy by at most 3
	moves := (dx + 1) / 2
	if m := (dx + dy + 2) / 3; m > moves {
		moves = m
	}
	return moves
}

// ParseCoordinate reads "x,y", "x y" or "[x, y]"
func ParseCoordinate(s string) (Coordinate, error) {
	trimmed := strings.Trim(strings.TrimSpace(s), "[]()")
	fields := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: expected two numbers", s)
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: %w", s, err)
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: %w", s, err)
	}
	return Coordinate{X: x, Y: y}, nil
}

var pathNumber = regexp.MustCompile(`-?[0-9]+`)

// ParsePath reads a list of coordinates such as "0,0; 1,2; 3,3" or
// "[0, 0] [1, 2]". Numbers are taken pairwise in order.
func ParsePath(s string) ([]Coordinate, error) {
	fields := pathNumber.FindAllString(s, -1)
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("invalid path %q: odd number of values", s)
	}
	path := make([]Coordinate, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", s, err)
		}
		y, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", s, err)
		}
		path = append(path, Coordinate{X: x, Y: y})
	}
	return path, nil
}

// FormatPath renders a path one coordinate per line, as the demo driver prints it
func FormatPath(path []Coordinate) string {
	var sb strings.Builder
	for _, c := range path {
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

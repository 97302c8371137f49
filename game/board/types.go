package board

import (
	"errors"
	"fmt"
)

// TerrainKind classifies a single board cell
type TerrainKind uint8

const (
	Free TerrainKind = iota
	Start
	End
	Knight
	Barrier
	Lava
	Rock
	Teleport
	Water
	PathPoint
)

const (
	// Board limits accepted by layout validation
	MinBoardSize = 1
	MaxBoardSize = 64

	// MaxTeleports is the number of teleport cells a board can hold (one pair)
	MaxTeleports = 2

	LavaCost    = 5
	WaterCost   = 2
	DefaultCost = 1

	// knightDistanceSquared is the squared euclidean length of every knight move
	knightDistanceSquared = 5

	unvisited = -1
	noParent  = -1
)

var (
	ErrOffBoard         = errors.New("coordinate is off the board")
	ErrInvalidTerrain   = errors.New("invalid terrain symbol")
	ErrUnknownAlgorithm = errors.New("unknown path algorithm")
)

// Symbol returns the single-character representation used by layouts and dumps
func (k TerrainKind) Symbol() byte {
	switch k {
	case Free:
		return '.'
	case Start:
		return 'S'
	case End:
		return 'E'
	case Knight:
		return 'K'
	case Barrier:
		return 'B'
	case Lava:
		return 'L'
	case Rock:
		return 'R'
	case Teleport:
		return 'T'
	case Water:
		return 'W'
	case PathPoint:
		return '*'
	}
	return '?'
}

// String returns the lower-case terrain name
func (k TerrainKind) String() string {
	switch k {
	case Free:
		return "free"
	case Start:
		return "start"
	case End:
		return "end"
	case Knight:
		return "knight"
	case Barrier:
		return "barrier"
	case Lava:
		return "lava"
	case Rock:
		return "rock"
	case Teleport:
		return "teleport"
	case Water:
		return "water"
	case PathPoint:
		return "path"
	}
	return "unknown"
}

// Passable reports whether a knight may land on a cell of this kind
func (k TerrainKind) Passable() bool {
	return k != Barrier && k != Rock
}

// Cost returns the movement cost of entering a cell of this kind
func (k TerrainKind) Cost() int {
	switch k {
	case Lava:
		return LavaCost
	case Water:
		return WaterCost
	}
	return DefaultCost
}

// TerrainFromSymbol maps a layout symbol to terrain. Unknown symbols are Free.
func TerrainFromSymbol(symbol byte) TerrainKind {
	switch symbol {
	case 'B':
		return Barrier
	case 'L':
		return Lava
	case 'R':
		return Rock
	case 'W':
		return Water
	case 'T':
		return Teleport
	}
	return Free
}

// ParseTerrain maps a terrain name or symbol (as used by the API) to a TerrainKind.
// Only terrain that can be loaded from a layout is accepted.
func ParseTerrain(s string) (TerrainKind, error) {
	switch s {
	case ".", "free", "passable":
		return Free, nil
	case "B", "barrier":
		return Barrier, nil
	case "L", "lava":
		return Lava, nil
	case "R", "rock":
		return Rock, nil
	case "W", "water":
		return Water, nil
	case "T", "teleport":
		return Teleport, nil
	}
	return Free, fmt.Errorf("%w: %q", ErrInvalidTerrain, s)
}

// Coordinate is a board cell, X is the column and Y the row
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String formats the coordinate the way the demo driver prints it
func (c Coordinate) String() string {
	return fmt.Sprintf("[%2d, %2d]", c.X, c.Y)
}

// Algorithm names a path search
type Algorithm string

const (
	AnyPath Algorithm = "any"
	Wave    Algorithm = "wave"
	AStar   Algorithm = "astar"
)

// ParseAlgorithm accepts the algorithm names used by the API and CLIs
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "any", "anypath", "any_path", "dfs":
		return AnyPath, nil
	case "wave", "bfs", "shortest":
		return Wave, nil
	case "", "astar", "a*", "weighted":
		return AStar, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// knightOffsets is the neighbor enumeration order. It decides which path the
// backtracking search returns and which shortest path wins ties.
var knightOffsets = [8]Coordinate{
	{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
}

// node is one arena element of the move graph
type node struct {
	index int
	cost  int
	moves []int

	// scratch, reset by every search
	wave   int
	g      int
	h      float64
	parent int
}

package board

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Engine is the contract the service layer relies on
type Engine interface {
	// Terrain
	Width() int
	Height() int
	OnBoard(c Coordinate) bool
	TerrainAt(c Coordinate) TerrainKind
	SetTerrain(c Coordinate, kind TerrainKind)
	MovementCost(c Coordinate) int
	Teleports() []Coordinate
	Rows() []string

	// Moves
	IsLegalMove(origin, target Coordinate) bool
	LegalMoves(c Coordinate) []Coordinate
	Validate(path []Coordinate) bool
	ValidateRoute(path []Coordinate) bool
	MoveKnight(path []Coordinate, annotate bool) bool

	// Searches
	CalculateAnyPath(origin, target Coordinate) ([]Coordinate, bool)
	CalculateShortestPath(origin, target Coordinate) ([]Coordinate, bool)
	CalculateShortestPathAStar(origin, target Coordinate, checkTeleports bool) ([]Coordinate, bool)
}

// Board holds the terrain grid and the knight move graph built over it.
// A Board is not safe for concurrent use: every search writes node scratch fields.
type Board struct {
	width, height int
	terrain       []TerrainKind
	marks         []TerrainKind
	teleports     []Coordinate

	nodes []node
	stale bool
}

var _ Engine = (*Board)(nil)

// New creates an empty board with every cell Free
func New(width, height int) *Board {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &Board{
		width:   width,
		height:  height,
		terrain: make([]TerrainKind, width*height),
		marks:   make([]TerrainKind, width*height),
	}
	b.buildGraph()
	return b
}

// NewFromLayout creates a board and fills it from layout rows
func NewFromLayout(width, height int, rows []string) *Board {
	b := New(width, height)
	b.applyLayout(rows)
	return b
}

// LoadTerrain creates a board from a text terrain source, one row per line
func LoadTerrain(r io.Reader, width, height int) (*Board, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)

	rows := make([]string, 0, height)
	for scanner.Scan() && len(rows) < height {
		rows = append(rows, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read terrain: %w", err)
	}

	return NewFromLayout(width, height, rows), nil
}

// Reload replaces all terrain with the given layout and rebuilds the graph
func (b *Board) Reload(rows []string) {
	b.applyLayout(rows)
}

func (b *Board) applyLayout(rows []string) {
	for i := range b.terrain {
		b.terrain[i] = Free
		b.marks[i] = Free
	}
	b.teleports = b.teleports[:0]

	for y := 0; y < b.height && y < len(rows); y++ {
		row := rows[y]
		for x := 0; x < b.width && x < len(row); x++ {
			b.setTerrain(Coordinate{x, y}, TerrainFromSymbol(row[x]))
		}
	}
	b.buildGraph()
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// OnBoard reports whether c lies inside the grid
func (b *Board) OnBoard(c Coordinate) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < b.width && c.Y < b.height
}

func (b *Board) index(c Coordinate) int {
	return c.Y*b.width + c.X
}

func (b *Board) coordinate(i int) Coordinate {
	return Coordinate{X: i % b.width, Y: i / b.width}
}

// TerrainAt returns the terrain of an on-board cell. Callers check OnBoard first.
func (b *Board) TerrainAt(c Coordinate) TerrainKind {
	if !b.OnBoard(c) {
		panic(fmt.Sprintf("board: TerrainAt%v: %v", c, ErrOffBoard))
	}
	return b.terrain[b.index(c)]
}

// SetTerrain changes a cell. Off-board coordinates are ignored and a third
// teleport leaves the cell Free. The move graph is rebuilt before the next query.
func (b *Board) SetTerrain(c Coordinate, kind TerrainKind) {
	if !b.OnBoard(c) {
		return
	}
	b.setTerrain(c, kind)
	b.stale = true
}

func (b *Board) setTerrain(c Coordinate, kind TerrainKind) {
	i := b.index(c)
	if b.terrain[i] == Teleport {
		if kind == Teleport {
			return
		}
		b.removeTeleport(c)
	}
	if kind == Teleport {
		if len(b.teleports) >= MaxTeleports {
			kind = Free
		} else {
			b.teleports = append(b.teleports, c)
		}
	}
	b.terrain[i] = kind
}

func (b *Board) removeTeleport(c Coordinate) {
	for i, t := range b.teleports {
		if t == c {
			b.teleports = append(b.teleports[:i], b.teleports[i+1:]...)
			return
		}
	}
}

// MovementCost is the cost of entering c
func (b *Board) MovementCost(c Coordinate) int {
	return b.TerrainAt(c).Cost()
}

// Teleports returns the teleport cells in placement order
func (b *Board) Teleports() []Coordinate {
	out := make([]Coordinate, len(b.teleports))
	copy(out, b.teleports)
	return out
}

// Rows renders one symbol per cell, markers written by MoveKnight shown over terrain
func (b *Board) Rows() []string {
	return b.render(true)
}

// TerrainRows renders the terrain alone, in layout symbols
func (b *Board) TerrainRows() []string {
	return b.render(false)
}

func (b *Board) render(withMarks bool) []string {
	rows := make([]string, b.height)
	line := make([]byte, b.width)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			i := y*b.width + x
			kind := b.terrain[i]
			if withMarks && b.marks[i] != Free {
				kind = b.marks[i]
			}
			line[x] = kind.Symbol()
		}
		rows[y] = string(line)
	}
	return rows
}

// MarkAt returns the replay marker of a cell, Free when unmarked
func (b *Board) MarkAt(c Coordinate) TerrainKind {
	if !b.OnBoard(c) {
		return Free
	}
	return b.marks[b.index(c)]
}

// ClearMarks removes every replay marker
func (b *Board) ClearMarks() {
	for i := range b.marks {
		b.marks[i] = Free
	}
}

func (b *Board) setMark(c Coordinate, kind TerrainKind) {
	if b.OnBoard(c) {
		b.marks[b.index(c)] = kind
	}
}

// buildGraph creates one node per cell and precomputes its legal destinations
func (b *Board) buildGraph() {
	b.nodes = make([]node, b.width*b.height)
	for i := range b.nodes {
		c := b.coordinate(i)
		n := &b.nodes[i]
		n.index = i
		n.cost = b.terrain[i].Cost()
		for _, m := range b.LegalMoves(c) {
			n.moves = append(n.moves, b.index(m))
		}
	}
	b.stale = false
}

// graph returns the node arena, rebuilding it if terrain changed since the last build
func (b *Board) graph() []node {
	if b.stale {
		b.buildGraph()
	}
	return b.nodes
}

// resetScratch clears the per-search fields of every node
func (b *Board) resetScratch() {
	for i := range b.nodes {
		n := &b.nodes[i]
		n.wave = unvisited
		n.g = 0
		n.h = 0
		n.parent = noParent
	}
}

// Neighbors returns the precomputed destinations of c in enumeration order
func (b *Board) Neighbors(c Coordinate) []Coordinate {
	if !b.OnBoard(c) {
		return nil
	}
	nodes := b.graph()
	moves := nodes[b.index(c)].moves
	out := make([]Coordinate, len(moves))
	for i, m := range moves {
		out[i] = b.coordinate(m)
	}
	return out
}

func (b *Board) toPath(indices []int) []Coordinate {
	path := make([]Coordinate, len(indices))
	for i, idx := range indices {
		path[i] = b.coordinate(idx)
	}
	return path
}

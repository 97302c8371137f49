package board

import (
	"math"

	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"
)

// openItem is an entry of the A* open set. Entries are never updated in place;
// a cheaper route pushes a new entry and the stale one is skipped once closed.
type openItem struct {
	index int
	f     float64
	seq   int
}

func lessOpenItem(a, b openItem) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

// CalculateShortestPathAStar finds the cheapest path honoring terrain costs.
// With checkTeleports set and a teleport pair on the board, a route through the
// teleports replaces the direct path when it has fewer cells, or when no direct
// path exists.
func (b *Board) CalculateShortestPathAStar(origin, target Coordinate, checkTeleports bool) ([]Coordinate, bool) {
	if !b.OnBoard(origin) || !b.OnBoard(target) || !b.TerrainAt(target).Passable() {
		return nil, false
	}

	path, found := b.astar(origin, target)
	if !checkTeleports || len(b.teleports) != MaxTeleports {
		return path, found
	}

	via, ok := b.teleportRoute(origin, target)
	if !ok {
		return path, found
	}
	if !found || len(via) < len(path) {
		return via, true
	}
	return path, found
}

// teleportRoute combines the four origin/teleport/target segments into the
// shorter of the two routes that jump between the teleports
func (b *Board) teleportRoute(origin, target Coordinate) ([]Coordinate, bool) {
	a, z := b.teleports[0], b.teleports[1]

	toA, _ := b.CalculateShortestPathAStar(origin, a, false)
	toZ, _ := b.CalculateShortestPathAStar(origin, z, false)
	fromA, _ := b.CalculateShortestPathAStar(a, target, false)
	fromZ, _ := b.CalculateShortestPathAStar(z, target, false)

	var best []Coordinate
	if len(toA) > 0 && len(fromZ) > 0 {
		best = joinTeleport(toA, fromZ)
	}
	if len(toZ) > 0 && len(fromA) > 0 {
		candidate := joinTeleport(toZ, fromA)
		if best == nil || len(candidate) < len(best) {
			best = candidate
		}
	}
	return best, best != nil
}

// joinTeleport drops the teleport cell the knight steps on, since it is moved
// to the paired teleport at once, and appends the segment leaving the pair.
// A knight that starts on a teleport keeps its origin and hops from there.
func joinTeleport(to, from []Coordinate) []Coordinate {
	if len(to) == 1 {
		out := make([]Coordinate, 0, 1+len(from))
		out = append(out, to[0])
		return append(out, from...)
	}
	out := make([]Coordinate, 0, len(to)-1+len(from))
	out = append(out, to[:len(to)-1]...)
	return append(out, from...)
}

// astar runs A* rooted at target and stops when origin is closed. Parent links
// therefore point from origin towards target.
func (b *Board) astar(origin, target Coordinate) ([]Coordinate, bool) {
	nodes := b.graph()
	b.resetScratch()

	start, goal := b.index(origin), b.index(target)

	open := heap.New(lessOpenItem)
	closed := mapset.New[int]()

	nodes[goal].h = heuristic(target, origin)
	open.Push(openItem{index: goal, f: nodes[goal].h})
	seq := 0

	for open.Size() > 0 {
		item, _ := open.Pop()
		u := item.index
		if closed.Has(u) {
			continue
		}
		closed.Put(u)

		if u == start {
			return b.walkParents(start, goal), true
		}

		for _, v := range b.predecessors(u, start) {
			if closed.Has(v) {
				continue
			}
			g := nodes[u].g + nodes[u].cost
			n := &nodes[v]
			if n.parent != noParent && g >= n.g {
				continue
			}
			n.parent = u
			n.g = g
			n.h = heuristic(b.coordinate(v), origin)
			seq++
			open.Push(openItem{index: v, f: float64(g) + n.h, seq: seq})
		}
	}

	return nil, false
}

func (b *Board) walkParents(start, goal int) []Coordinate {
	path := []int{start}
	for current := start; current != goal; {
		current = b.nodes[current].parent
		if current == noParent {
			return nil
		}
		path = append(path, current)
	}
	return b.toPath(path)
}

// heuristic is the straight-line distance between a and b in knight-move units.
// A knight covers sqrt(5) cells of distance per move and every move costs at
// least 1, so the estimate never exceeds the true remaining cost.
func heuristic(a, b Coordinate) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx+dy*dy) / math.Sqrt(knightDistanceSquared)
}

package board

import "github.com/zyedidia/generic/mapset"

// CalculateAnyPath finds some path from origin to target with a greedy
// depth-first walk. The path is not necessarily the shortest; it is the first
// one found following the stored neighbor order.
func (b *Board) CalculateAnyPath(origin, target Coordinate) ([]Coordinate, bool) {
	if !b.OnBoard(origin) || !b.OnBoard(target) || !b.TerrainAt(target).Passable() {
		return nil, false
	}

	nodes := b.graph()
	b.resetScratch()

	goal := b.index(target)
	current := b.index(origin)

	var path []int
	onPath := mapset.New[int]()
	banned := mapset.New[int]()

	for current != goal {
		next := -1
		for _, m := range nodes[current].moves {
			if !onPath.Has(m) && !banned.Has(m) {
				next = m
				break
			}
		}

		if next >= 0 {
			path = append(path, current)
			onPath.Put(current)
			current = next
			continue
		}

		// dead end: never come back here, step back to the previous cell
		banned.Put(current)
		if len(path) == 0 {
			return nil, false
		}
		current = path[len(path)-1]
		path = path[:len(path)-1]
		onPath.Remove(current)
	}

	path = append(path, goal)
	return b.toPath(path), true
}

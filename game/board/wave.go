package board

// CalculateShortestPath finds a path with the fewest knight moves. The wave is
// spread from target so the path can be read off by walking downhill from origin.
func (b *Board) CalculateShortestPath(origin, target Coordinate) ([]Coordinate, bool) {
	if !b.OnBoard(origin) || !b.OnBoard(target) || !b.TerrainAt(target).Passable() {
		return nil, false
	}

	nodes := b.graph()
	b.resetScratch()

	start, goal := b.index(origin), b.index(target)
	if start == goal {
		return []Coordinate{origin}, true
	}

	nodes[goal].wave = 0
	frontier := []int{goal}
	for wave := 0; nodes[start].wave == unvisited; wave++ {
		var next []int
		for _, u := range frontier {
			for _, v := range b.predecessors(u, start) {
				if nodes[v].wave == unvisited {
					nodes[v].wave = wave + 1
					next = append(next, v)
				}
			}
		}
		if len(next) == 0 {
			return nil, false
		}
		frontier = next
	}

	path := []int{start}
	for current := start; current != goal; {
		step := -1
		for _, m := range nodes[current].moves {
			if nodes[m].wave == nodes[current].wave-1 {
				step = m
				break
			}
		}
		if step < 0 {
			return nil, false
		}
		path = append(path, step)
		current = step
	}

	return b.toPath(path), true
}

// predecessors returns the cells from which a knight can legally move onto u.
// Move legality only depends on the destination terrain and the geometry, so
// for a passable u these are u's own destinations, plus the origin when the
// knight starts on a cell it could not otherwise enter.
func (b *Board) predecessors(u, origin int) []int {
	moves := b.nodes[u].moves
	if b.terrain[origin].Passable() || origin == u {
		return moves
	}
	if !b.IsLegalMove(b.coordinate(origin), b.coordinate(u)) {
		return moves
	}
	out := make([]int, len(moves), len(moves)+1)
	copy(out, moves)
	return append(out, origin)
}

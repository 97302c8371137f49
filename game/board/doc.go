// Package board provides the terrain grid and knight path searches.
//
// A Board is a rectangular grid of TerrainKind cells. Each cell owns a node in
// a move graph whose edges are the legal knight moves out of that cell. Moves
// are legal when the destination is one knight jump away, is not Barrier or
// Rock, and at least one of the two L-shaped approach lines is not walled off
// by a pair of Barrier cells.
//
// Searches:
//
//   - CalculateAnyPath: depth-first walk with backtracking, returns the first
//     path found in neighbor enumeration order
//   - CalculateShortestPath: breadth-first wave, fewest moves
//   - CalculateShortestPathAStar: A* over terrain costs (Lava 5, Water 2,
//     everything else 1), optionally routing through the teleport pair
//
// Usage:
//
//	b := board.NewFromLayout(8, 8, []string{
//		"........",
//		"..BB....",
//		"........",
//	})
//
//	path, ok := b.CalculateShortestPathAStar(board.Coordinate{X: 0, Y: 0}, board.Coordinate{X: 7, Y: 5}, true)
//	if ok {
//		b.MoveKnight(path, true)
//		fmt.Println(strings.Join(b.Rows(), "\n"))
//	}
//
// Terrain changes mark the move graph stale and it is rebuilt on the next
// query. A Board is not safe for concurrent use; the service layer serializes
// access per session.
package board

package board

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceDistances computes move counts from origin with a plain BFS over IsLegalMove
func referenceDistances(b *Board, origin Coordinate) map[Coordinate]int {
	dist := map[Coordinate]int{origin: 0}
	queue := []Coordinate{origin}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, m := range b.LegalMoves(c) {
			if _, seen := dist[m]; !seen {
				dist[m] = dist[c] + 1
				queue = append(queue, m)
			}
		}
	}
	return dist
}

// referenceCosts computes cheapest entry costs from origin with an O(n^2) Dijkstra
func referenceCosts(b *Board, origin Coordinate) map[Coordinate]int {
	cost := map[Coordinate]int{origin: 0}
	done := map[Coordinate]bool{}
	for {
		best, bestCost := Coordinate{}, math.MaxInt
		for c, v := range cost {
			if !done[c] && v < bestCost {
				best, bestCost = c, v
			}
		}
		if bestCost == math.MaxInt {
			return cost
		}
		done[best] = true
		for _, m := range b.LegalMoves(best) {
			next := bestCost + b.MovementCost(m)
			if old, ok := cost[m]; !ok || next < old {
				cost[m] = next
			}
		}
	}
}

func assertPathShape(t *testing.T, b *Board, path []Coordinate, origin, target Coordinate) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, origin, path[0])
	assert.Equal(t, target, path[len(path)-1])
	assert.True(t, b.Validate(path), "path %v is not valid", path)
}

func terrainBoard() *Board {
	return NewFromLayout(8, 8, []string{
		"........",
		".LLLLLL.",
		".LWWWWL.",
		".LW..WL.",
		".LW.BWL.",
		".LWWWWL.",
		".LLLLLL.",
		"...R....",
	})
}

func TestCalculateShortestPath_EmptyBoard(t *testing.T) {
	b := emptyBoard(8)
	origin, target := Coordinate{0, 0}, Coordinate{7, 5}

	path, ok := b.CalculateShortestPath(origin, target)
	require.True(t, ok)
	assertPathShape(t, b, path, origin, target)
	assert.Len(t, path, 5)
}

func TestCalculateShortestPath_MatchesBFS(t *testing.T) {
	for name, b := range map[string]*Board{"empty": emptyBoard(8), "terrain": terrainBoard()} {
		t.Run(name, func(t *testing.T) {
			origin := Coordinate{0, 0}
			want := referenceDistances(b, origin)

			for y := 0; y < b.Height(); y++ {
				for x := 0; x < b.Width(); x++ {
					target := Coordinate{x, y}
					path, ok := b.CalculateShortestPath(origin, target)

					moves, reachable := want[target]
					require.Equal(t, reachable, ok, "target %v", target)
					if !ok {
						continue
					}
					assertPathShape(t, b, path, origin, target)
					assert.Equal(t, moves+1, len(path), "target %v", target)
					assert.LessOrEqual(t, KnightDistance(origin, target), moves)
				}
			}
		})
	}
}

func TestCalculateAnyPath(t *testing.T) {
	for name, b := range map[string]*Board{"empty": emptyBoard(8), "terrain": terrainBoard()} {
		t.Run(name, func(t *testing.T) {
			origin := Coordinate{0, 0}
			reachable := referenceDistances(b, origin)

			for y := 0; y < b.Height(); y++ {
				for x := 0; x < b.Width(); x++ {
					target := Coordinate{x, y}
					path, ok := b.CalculateAnyPath(origin, target)

					_, want := reachable[target]
					require.Equal(t, want, ok, "target %v", target)
					if !ok {
						continue
					}
					assertPathShape(t, b, path, origin, target)

					shortest, ok := b.CalculateShortestPath(origin, target)
					require.True(t, ok)
					assert.LessOrEqual(t, len(shortest), len(path))

					seen := map[Coordinate]bool{}
					for _, c := range path {
						assert.False(t, seen[c], "cell %v repeated", c)
						seen[c] = true
					}
				}
			}
		})
	}
}

func TestCalculateAnyPath_FollowsEnumerationOrder(t *testing.T) {
	b := emptyBoard(8)

	// (1,2) is the first neighbor of (0,0) and (2,4) the first of (1,2)
	path, ok := b.CalculateAnyPath(Coordinate{0, 0}, Coordinate{2, 4})
	require.True(t, ok)
	assert.Equal(t, []Coordinate{{0, 0}, {1, 2}, {2, 4}}, path)
}

func TestCalculateShortestPathAStar_MinimalCost(t *testing.T) {
	b := terrainBoard()

	for _, origin := range []Coordinate{{0, 0}, {3, 3}, {7, 7}} {
		want := referenceCosts(b, origin)

		for y := 0; y < b.Height(); y++ {
			for x := 0; x < b.Width(); x++ {
				target := Coordinate{x, y}
				path, ok := b.CalculateShortestPathAStar(origin, target, false)

				cost, reachable := want[target]
				require.Equal(t, reachable, ok, "%v -> %v", origin, target)
				if !ok {
					continue
				}
				assertPathShape(t, b, path, origin, target)
				assert.Equal(t, cost, PathCost(b, path), "%v -> %v", origin, target)

				wave, ok := b.CalculateShortestPath(origin, target)
				require.True(t, ok)
				assert.GreaterOrEqual(t, PathCost(b, wave), PathCost(b, path))
			}
		}
	}
}

func TestCalculateShortestPathAStar_AvoidsLava(t *testing.T) {
	b := NewFromLayout(5, 5, []string{
		".....",
		".....",
		".L...",
		".....",
		".....",
	})

	// (0,0)->(1,2)->(2,4) crosses lava, (0,0)->(2,1)->(1,3)->(3,2)->(2,4) is longer but cheaper
	path, ok := b.CalculateShortestPathAStar(Coordinate{0, 0}, Coordinate{2, 4}, false)
	require.True(t, ok)
	assert.NotContains(t, path, Coordinate{1, 2})
	assert.Less(t, PathCost(b, path), LavaCost+DefaultCost)
}

func TestSearches_Rejections(t *testing.T) {
	b := NewFromLayout(8, 8, []string{
		"........",
		"........",
		"..R.....",
		"...B....",
	})

	searches := map[string]func(o, t Coordinate) ([]Coordinate, bool){
		"any":  b.CalculateAnyPath,
		"wave": b.CalculateShortestPath,
		"astar": func(o, t Coordinate) ([]Coordinate, bool) {
			return b.CalculateShortestPathAStar(o, t, true)
		},
	}

	for name, search := range searches {
		t.Run(name, func(t *testing.T) {
			_, ok := search(Coordinate{0, 0}, Coordinate{2, 2})
			assert.False(t, ok, "rock target")

			_, ok = search(Coordinate{0, 0}, Coordinate{3, 3})
			assert.False(t, ok, "barrier target")

			_, ok = search(Coordinate{-1, 0}, Coordinate{3, 3})
			assert.False(t, ok, "origin off board")

			_, ok = search(Coordinate{0, 0}, Coordinate{8, 8})
			assert.False(t, ok, "target off board")

			path, ok := search(Coordinate{5, 5}, Coordinate{5, 5})
			require.True(t, ok, "origin is target")
			assert.Equal(t, []Coordinate{{5, 5}}, path)
		})
	}
}

func TestSearches_Unreachable(t *testing.T) {
	// the centre of a 3x3 board has no knight moves
	b := emptyBoard(3)
	origin, target := Coordinate{0, 0}, Coordinate{1, 1}

	_, ok := b.CalculateAnyPath(origin, target)
	assert.False(t, ok)
	_, ok = b.CalculateShortestPath(origin, target)
	assert.False(t, ok)
	_, ok = b.CalculateShortestPathAStar(origin, target, true)
	assert.False(t, ok)
}

func TestSearches_OriginOnImpassableTerrain(t *testing.T) {
	b := NewFromLayout(8, 8, []string{"R......."})
	origin, target := Coordinate{0, 0}, Coordinate{7, 5}

	path, ok := b.CalculateAnyPath(origin, target)
	require.True(t, ok)
	assertPathShape(t, b, path, origin, target)

	path, ok = b.CalculateShortestPath(origin, target)
	require.True(t, ok)
	assertPathShape(t, b, path, origin, target)
	assert.Len(t, path, 5)

	path, ok = b.CalculateShortestPathAStar(origin, target, false)
	require.True(t, ok)
	assertPathShape(t, b, path, origin, target)
	assert.Equal(t, 4, PathCost(b, path))
}

func TestCalculateShortestPathAStar_Teleports(t *testing.T) {
	layout := make([]string, 16)
	for i := range layout {
		layout[i] = strings.Repeat(".", 16)
	}
	layout[2] = ".T" + strings.Repeat(".", 14)
	layout[13] = strings.Repeat(".", 14) + "T."

	b := NewFromLayout(16, 16, layout)
	require.Equal(t, []Coordinate{{1, 2}, {14, 13}}, b.Teleports())

	origin, target := Coordinate{0, 0}, Coordinate{15, 15}

	direct, ok := b.CalculateShortestPathAStar(origin, target, false)
	require.True(t, ok)
	assert.True(t, b.Validate(direct))
	assert.GreaterOrEqual(t, len(direct), 11)

	via, ok := b.CalculateShortestPathAStar(origin, target, true)
	require.True(t, ok)
	assert.Equal(t, []Coordinate{{0, 0}, {14, 13}, {15, 15}}, via)
	assert.False(t, b.Validate(via))
	assert.True(t, b.ValidateRoute(via))
}

func TestCalculateShortestPathAStar_TeleportWhenDirectFails(t *testing.T) {
	// a two cell thick rock wall cannot be jumped, only the teleport pair crosses it
	layout := make([]string, 10)
	for i := range layout {
		layout[i] = ".....RR..."
	}
	layout[1] = "..T..RR..."
	layout[5] = ".....RR.T."
	b := NewFromLayout(10, 10, layout)
	origin, target := Coordinate{0, 0}, Coordinate{9, 9}

	_, ok := b.CalculateShortestPathAStar(origin, target, false)
	require.False(t, ok)

	path, ok := b.CalculateShortestPathAStar(origin, target, true)
	require.True(t, ok)
	assert.Equal(t, origin, path[0])
	assert.Equal(t, target, path[len(path)-1])
	assert.True(t, b.ValidateRoute(path))
}

func TestCalculateShortestPathAStar_DirectWhenNoShorterTeleport(t *testing.T) {
	b := NewFromLayout(8, 8, []string{
		"T.......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		".......T",
	})

	path, ok := b.CalculateShortestPathAStar(Coordinate{0, 0}, Coordinate{2, 1}, true)
	require.True(t, ok)
	assert.Equal(t, []Coordinate{{0, 0}, {2, 1}}, path)
}

func TestCalculateShortestPathAStar_OriginOnTeleport(t *testing.T) {
	b := NewFromLayout(8, 8, []string{
		"T.......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"......T.",
	})
	origin, target := Coordinate{0, 0}, Coordinate{7, 5}

	path, ok := b.CalculateShortestPathAStar(origin, target, true)
	require.True(t, ok)
	assert.Equal(t, []Coordinate{{0, 0}, {6, 7}, {7, 5}}, path)
	assert.True(t, b.ValidateRoute(path))
	assert.False(t, b.Validate(path))
}

func TestSetTerrain_RebuildsGraph(t *testing.T) {
	b := emptyBoard(8)
	origin, target := Coordinate{0, 0}, Coordinate{1, 2}

	_, ok := b.CalculateShortestPath(origin, target)
	require.True(t, ok)

	b.SetTerrain(target, Rock)
	_, ok = b.CalculateShortestPath(origin, target)
	assert.False(t, ok)
	assert.NotContains(t, b.Neighbors(origin), target)

	b.SetTerrain(target, Free)
	path, ok := b.CalculateShortestPath(origin, target)
	require.True(t, ok)
	assert.Equal(t, []Coordinate{origin, target}, path)

	// off-board writes are ignored
	b.SetTerrain(Coordinate{9, 9}, Rock)
	assert.Equal(t, 0, CountTerrain(b, Rock))
}

func TestTeleports_ThirdIsIgnored(t *testing.T) {
	b := NewFromLayout(4, 4, []string{
		"T...",
		"..T.",
		"...T",
	})

	assert.Equal(t, []Coordinate{{0, 0}, {2, 1}}, b.Teleports())
	assert.Equal(t, Free, b.TerrainAt(Coordinate{3, 2}))

	b.SetTerrain(Coordinate{1, 1}, Teleport)
	assert.Equal(t, Free, b.TerrainAt(Coordinate{1, 1}))

	// removing one frees a slot
	b.SetTerrain(Coordinate{0, 0}, Water)
	b.SetTerrain(Coordinate{1, 1}, Teleport)
	assert.Equal(t, []Coordinate{{2, 1}, {1, 1}}, b.Teleports())
	assert.Equal(t, 2, CountTerrain(b, Teleport))
}

func TestLoadTerrain(t *testing.T) {
	b, err := LoadTerrain(strings.NewReader("B.\r\nLWTR\n"), 3, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"B..",
		"LWT",
		"...",
	}, b.Rows())
	assert.Equal(t, 1, len(b.Teleports()))
}

func TestReload(t *testing.T) {
	b := NewFromLayout(3, 3, []string{"T.T", "BBB"})
	b.Reload([]string{"..."})

	assert.Empty(t, b.Teleports())
	assert.Equal(t, 0, CountTerrain(b, Barrier))
}

func TestPathCost(t *testing.T) {
	b := NewFromLayout(5, 5, []string{
		"L....",
		".....",
		".W...",
		"...L.",
	})

	// origin lava is not counted
	assert.Equal(t, WaterCost+LavaCost, PathCost(b, []Coordinate{{0, 0}, {1, 2}, {3, 3}}))
	assert.Equal(t, 0, PathCost(b, []Coordinate{{0, 0}}))
}

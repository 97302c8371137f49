package main

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/wricardo/lonely-knight/game/board"
	"github.com/wricardo/lonely-knight/game/service"
	"golang.org/x/sync/errgroup"
)

// Violation is one broken cross-check between the algorithms
type Violation struct {
	Origin board.Coordinate
	Target board.Coordinate
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("%v -> %v: %s", v.Origin, v.Target, v.Reason)
}

// Report summarizes a brute-force run
type Report struct {
	Pairs      int
	Reachable  int
	Violations []Violation
}

// Checker compares every search on many endpoint pairs
type Checker struct {
	client    *Client
	workers   int
	stride    int
	maxPairs  int
	teleports bool
}

// pairs lists passable origin/target pairs, taking every stride-th cell
func (ch *Checker) pairs(state *service.BoardState) [][2]board.Coordinate {
	stride := ch.stride
	if stride < 1 {
		stride = 1
	}

	var cells []board.Coordinate
	for i := 0; i < state.Width*state.Height; i += stride {
		c := board.Coordinate{X: i % state.Width, Y: i / state.Width}
		if board.TerrainFromSymbol(state.Terrain[c.Y][c.X]).Passable() {
			cells = append(cells, c)
		}
	}

	var out [][2]board.Coordinate
	for _, o := range cells {
		for _, t := range cells {
			if o == t {
				continue
			}
			out = append(out, [2]board.Coordinate{o, t})
			if ch.maxPairs > 0 && len(out) >= ch.maxPairs {
				return out
			}
		}
	}
	return out
}

// Run checks every pair on the session board
func (ch *Checker) Run(ctx context.Context, state *service.BoardState) (*Report, error) {
	pairs := ch.pairs(state)
	report := &Report{Pairs: len(pairs)}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(ch.workers, 1))

	for i, pair := range pairs {
		g.Go(func() error {
			result, err := ch.client.Compare(ctx, service.PathRequest{
				Origin:         pair[0],
				Target:         pair[1],
				CheckTeleports: ch.teleports,
			})
			if err != nil {
				return err
			}

			violations := checkCompare(result, ch.teleports)

			mu.Lock()
			defer mu.Unlock()
			if len(result.Results) > 0 && result.Results[0].Found {
				report.Reachable++
			}
			report.Violations = append(report.Violations, violations...)
			if (i+1)%500 == 0 {
				log.WithField("checked", i+1).Info("progress")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

// checkCompare applies the cross-checks to one comparison:
//   - any-path and wave agree on reachability and both return legal moves
//   - wave uses no more moves than any-path
//   - A* without teleports agrees on reachability, costs no more than the
//     others and uses no fewer moves than wave
//   - A* with teleports finds a path whenever wave does, possibly hopping
//     between the teleports
func checkCompare(r *service.CompareResult, teleports bool) []Violation {
	byAlgo := make(map[board.Algorithm]*service.PathResult, len(r.Results))
	for _, res := range r.Results {
		byAlgo[res.Algorithm] = res
	}

	var out []Violation
	fail := func(format string, args ...interface{}) {
		out = append(out, Violation{Origin: r.Origin, Target: r.Target, Reason: fmt.Sprintf(format, args...)})
	}

	anyRes, wave, astar := byAlgo[board.AnyPath], byAlgo[board.Wave], byAlgo[board.AStar]
	if anyRes == nil || wave == nil || astar == nil {
		fail("missing results: got %d", len(r.Results))
		return out
	}

	for _, res := range r.Results {
		if res.Found && !res.Valid && !(teleports && res.Teleported) {
			fail("%s returned an invalid path", res.Algorithm)
		}
	}

	if anyRes.Found != wave.Found {
		fail("any found=%v but wave found=%v", anyRes.Found, wave.Found)
	}
	if anyRes.Found && wave.Found && wave.Moves > anyRes.Moves {
		fail("wave %d moves > any %d moves", wave.Moves, anyRes.Moves)
	}

	if teleports {
		if wave.Found && !astar.Found {
			fail("astar with teleports found nothing but wave did")
		}
		return out
	}

	if astar.Found != wave.Found {
		fail("astar found=%v but wave found=%v", astar.Found, wave.Found)
	}
	if astar.Found && wave.Found {
		if astar.Cost > wave.Cost {
			fail("astar cost %d > wave cost %d", astar.Cost, wave.Cost)
		}
		if astar.Moves < wave.Moves {
			fail("astar %d moves < wave %d moves", astar.Moves, wave.Moves)
		}
	}
	if astar.Found && anyRes.Found && astar.Cost > anyRes.Cost {
		fail("astar cost %d > any cost %d", astar.Cost, anyRes.Cost)
	}
	return out
}

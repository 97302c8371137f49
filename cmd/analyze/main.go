// Command analyze prints quick, human-readable facts about the board layouts
// in the configs directory: dimensions, terrain counts, the connected
// components of the knight move graph, and passable cells the suggested
// origin can never reach.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/lonely-knight/game/board"
	"github.com/zyedidia/generic/mapset"
)

// Analysis summarizes one layout
type Analysis struct {
	Name          string
	Width, Height int
	Terrain       map[board.TerrainKind]int
	Passable      int
	Components    [][]board.Coordinate // largest first
	Unreachable   []board.Coordinate   // passable cells outside the origin's component
	Teleports     []board.Coordinate
}

// components splits the passable cells of b into groups connected by legal
// knight moves. Teleport hops are not followed.
func components(b *board.Board) [][]board.Coordinate {
	seen := mapset.New[board.Coordinate]()
	var groups [][]board.Coordinate

	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			start := board.Coordinate{X: x, Y: y}
			if seen.Has(start) || !b.TerrainAt(start).Passable() {
				continue
			}

			seen.Put(start)
			group := []board.Coordinate{start}
			for i := 0; i < len(group); i++ {
				for _, next := range b.LegalMoves(group[i]) {
					if !seen.Has(next) {
						seen.Put(next)
						group = append(group, next)
					}
				}
			}
			groups = append(groups, group)
		}
	}

	sort.SliceStable(groups, func(i, j int) bool { return len(groups[i]) > len(groups[j]) })
	return groups
}

func analyze(config *board.BoardConfig) *Analysis {
	b := board.NewFromConfig(config)

	a := &Analysis{
		Name:      config.Name,
		Width:     b.Width(),
		Height:    b.Height(),
		Terrain:   make(map[board.TerrainKind]int),
		Teleports: b.Teleports(),
	}

	for _, kind := range []board.TerrainKind{board.Free, board.Barrier, board.Lava, board.Rock, board.Water, board.Teleport} {
		n := board.CountTerrain(b, kind)
		a.Terrain[kind] = n
		if kind.Passable() {
			a.Passable += n
		}
	}

	a.Components = components(b)

	if config.Origin != nil {
		reachable := mapset.New[board.Coordinate]()
		for _, group := range a.Components {
			if containsCell(group, *config.Origin) {
				for _, c := range group {
					reachable.Put(c)
				}
				break
			}
		}
		for _, group := range a.Components {
			for _, c := range group {
				if !reachable.Has(c) {
					a.Unreachable = append(a.Unreachable, c)
				}
			}
		}
	}

	return a
}

func containsCell(cells []board.Coordinate, c board.Coordinate) bool {
	for _, cell := range cells {
		if cell == c {
			return true
		}
	}
	return false
}

func printAnalysis(w io.Writer, a *Analysis) {
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	fmt.Fprintf(w, "Grid Size: %d x %d\n", a.Width, a.Height)
	for _, kind := range []board.TerrainKind{board.Free, board.Water, board.Lava, board.Teleport, board.Rock, board.Barrier} {
		if n := a.Terrain[kind]; n > 0 {
			fmt.Fprintf(w, "  %-8s %d\n", kind, n)
		}
	}
	fmt.Fprintf(w, "Passable cells: %d\n", a.Passable)
	if len(a.Teleports) == 2 {
		fmt.Fprintf(w, "Teleport pair: %v <-> %v\n", a.Teleports[0], a.Teleports[1])
	}

	fmt.Fprintf(w, "Move graph components: %d\n", len(a.Components))
	for i, group := range a.Components {
		if i == 3 {
			fmt.Fprintf(w, "   ... and %d more\n", len(a.Components)-3)
			break
		}
		fmt.Fprintf(w, "   #%d: %d cells, first %v\n", i+1, len(group), group[0])
	}

	if len(a.Unreachable) > 0 {
		fmt.Fprintf(w, "⚠️  WARNING: %d passable cells are unreachable from the origin without teleports\n", len(a.Unreachable))
		for i, c := range a.Unreachable {
			if i == 5 {
				fmt.Fprintf(w, "   ... and %d more\n", len(a.Unreachable)-5)
				break
			}
			fmt.Fprintf(w, "   Unreachable: %v\n", c)
		}
	} else {
		fmt.Fprintf(w, "✅ Every passable cell is reachable from the origin\n")
	}
}

func analyzeFile(w io.Writer, path string) error {
	config, err := board.LoadBoardConfig(path)
	if err != nil {
		return err
	}
	printAnalysis(w, analyze(config))
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:      "analyze",
		Usage:     "summarize knight board layouts",
		ArgsUsage: "[layout.json ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Value:   "configs",
				Usage:   "directory scanned when no files are given",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files := cmd.Args().Slice()
			if len(files) == 0 {
				var err error
				files, err = filepath.Glob(filepath.Join(cmd.String("dir"), "*.json"))
				if err != nil {
					return err
				}
			}

			for _, file := range files {
				fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
				if err := analyzeFile(os.Stdout, file); err != nil {
					fmt.Printf("Error: %v\n", err)
				}
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

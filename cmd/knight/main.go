// Command knight runs the pathfinder locally without a server.
//
//	knight demo                       # the four demo levels
//	knight path --from 0,0 --to 7,5   # one search on a layout
//	knight move "0,2; 2,3; 3,5"       # replay a path step by step
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/lonely-knight/game/board"
)

// printBoard dumps the board one symbol per cell
func printBoard(w io.Writer, b *board.Board) {
	fmt.Fprintln(w, "Board state:")
	for _, row := range b.Rows() {
		fmt.Fprintln(w, row)
	}
}

// printPath writes five coordinates per line
func printPath(w io.Writer, label string, origin, target board.Coordinate, path []board.Coordinate) {
	fmt.Fprintf(w, "%s: From %v to %v found path with %d moves:\n", label, origin, target, len(path)-1)
	for i, c := range path {
		fmt.Fprintf(w, "%v ", c)
		if (i+1)%5 == 0 {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w)
}

func runDemo(w io.Writer, level4 *board.BoardConfig) {
	fmt.Fprintln(w, "*** LEVEL 1 ***")
	b := board.New(8, 8)
	printBoard(w, b)

	paths := []struct {
		name string
		path []board.Coordinate
	}{
		{"pathEmpty", nil},
		{"pathSingle", []board.Coordinate{{X: 1, Y: 6}}},
		{"pathValid", []board.Coordinate{{X: 1, Y: 1}, {X: 2, Y: 3}}},
		{"pathOut", []board.Coordinate{{X: 1, Y: 1}, {X: 2, Y: 3}, {X: 1, Y: 1}, {X: -1, Y: 2}, {X: 2, Y: 3}}},
		{"pathInvalid", []board.Coordinate{{X: 1, Y: 1}, {X: 4, Y: 0}}},
		{"pathLongValid", []board.Coordinate{{X: 0, Y: 2}, {X: 2, Y: 3}, {X: 3, Y: 5}, {X: 2, Y: 7}}},
	}
	for _, p := range paths {
		fmt.Fprintf(w, "%s valid: %v\n", p.name, b.MoveKnight(p.path, false))
	}

	origin := board.Coordinate{X: 0, Y: 0}
	target := board.Coordinate{X: 7, Y: 5}

	fmt.Fprintln(w, "*** LEVEL 2 ***")
	if path, ok := b.CalculateAnyPath(origin, target); ok {
		printPath(w, "Any path", origin, target, path)
	}

	fmt.Fprintln(w, "*** LEVEL 3 ***")
	if path, ok := b.CalculateShortestPath(origin, target); ok {
		printPath(w, "Shortest path", origin, target, path)
	}

	fmt.Fprintln(w, "*** LEVEL 4 ***")
	if level4 == nil || level4.Origin == nil || level4.Target == nil {
		fmt.Fprintln(w, "no level 4 layout with origin and target")
		return
	}
	b4 := board.NewFromConfig(level4)
	printBoard(w, b4)
	if path, ok := b4.CalculateShortestPathAStar(*level4.Origin, *level4.Target, true); ok {
		printPath(w, "Shortest path", *level4.Origin, *level4.Target, path)
		fmt.Fprintf(w, "Cost: %d\n", board.PathCost(b4, path))
	} else {
		fmt.Fprintf(w, "No path from %v to %v\n", *level4.Origin, *level4.Target)
	}
}

// loadBoard reads a JSON layout, or a plain terrain file when width and height are set
func loadBoard(cmd *cli.Command) (*board.Board, *board.BoardConfig, error) {
	if terrain := cmd.String("terrain"); terrain != "" {
		f, err := os.Open(terrain)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		b, err := board.LoadTerrain(f, int(cmd.Int("width")), int(cmd.Int("height")))
		return b, nil, err
	}

	config, err := board.LoadBoardConfig(cmd.String("layout"))
	if err != nil {
		return nil, nil, err
	}
	return board.NewFromConfig(config), config, nil
}

func search(b *board.Board, algorithm board.Algorithm, origin, target board.Coordinate, teleports bool) ([]board.Coordinate, bool) {
	switch algorithm {
	case board.AnyPath:
		return b.CalculateAnyPath(origin, target)
	case board.Wave:
		return b.CalculateShortestPath(origin, target)
	}
	return b.CalculateShortestPathAStar(origin, target, teleports)
}

func runPath(w io.Writer, b *board.Board, algorithm board.Algorithm, origin, target board.Coordinate, teleports bool) error {
	path, ok := search(b, algorithm, origin, target, teleports)
	if !ok {
		return cli.Exit(fmt.Sprintf("no %s path from %v to %v", algorithm, origin, target), 1)
	}

	printPath(w, fmt.Sprintf("%s path", algorithm), origin, target, path)
	fmt.Fprintf(w, "Cost: %d\n", board.PathCost(b, path))

	b.MoveKnight(path, true)
	printBoard(w, b)
	return nil
}

func runMove(w io.Writer, b *board.Board, path []board.Coordinate) error {
	frames, ok := b.Replay(path)
	for i, frame := range frames {
		fmt.Fprintf(w, "Step %d:\n%s\n", i, strings.Join(frame, "\n"))
	}
	if !ok {
		return cli.Exit(fmt.Sprintf("illegal path after %d steps", len(frames)), 1)
	}
	fmt.Fprintf(w, "valid: true, cost %d\n", board.PathCost(b, path))
	return nil
}

var layoutFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "layout",
		Value: "configs/classic.json",
		Usage: "board layout JSON file",
	},
	&cli.StringFlag{
		Name:  "terrain",
		Usage: "plain terrain file, one row per line (needs --width and --height)",
	},
	&cli.IntFlag{Name: "width", Value: 32, Usage: "terrain file width"},
	&cli.IntFlag{Name: "height", Value: 28, Usage: "terrain file height"},
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "knight",
		Usage: "find knight paths on terrain boards",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetLevel(log.DebugLevel)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "demo",
				Usage: "run the four demo levels",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "level4", Value: "configs/level4.json", Usage: "layout used by level 4"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					level4, err := board.LoadBoardConfig(cmd.String("level4"))
					if err != nil {
						log.WithError(err).Warn("level 4 layout not loaded")
					}
					runDemo(os.Stdout, level4)
					return nil
				},
			},
			{
				Name:  "path",
				Usage: "search one path",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "origin cell, e.g. 0,0 (defaults to the layout origin)"},
					&cli.StringFlag{Name: "to", Usage: "target cell (defaults to the layout target)"},
					&cli.StringFlag{Name: "algorithm", Aliases: []string{"a"}, Value: "astar", Usage: "any, wave or astar"},
					&cli.BoolFlag{Name: "teleports", Usage: "let A* use the teleport pair"},
				}, layoutFlags...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					b, config, err := loadBoard(cmd)
					if err != nil {
						return err
					}
					algorithm, err := board.ParseAlgorithm(cmd.String("algorithm"))
					if err != nil {
						return err
					}
					origin, err := endpoint(cmd.String("from"), config, true)
					if err != nil {
						return err
					}
					target, err := endpoint(cmd.String("to"), config, false)
					if err != nil {
						return err
					}
					return runPath(os.Stdout, b, algorithm, origin, target, cmd.Bool("teleports"))
				},
			},
			{
				Name:      "move",
				Usage:     "replay a path and print every step",
				ArgsUsage: `"x,y; x,y; ..."`,
				Flags:     layoutFlags,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					b, _, err := loadBoard(cmd)
					if err != nil {
						return err
					}
					path, err := board.ParsePath(strings.Join(cmd.Args().Slice(), " "))
					if err != nil {
						return err
					}
					return runMove(os.Stdout, b, path)
				},
			},
		},
	}
}

// endpoint parses s, falling back to the layout's suggested origin or target
func endpoint(s string, config *board.BoardConfig, origin bool) (board.Coordinate, error) {
	if s != "" {
		return board.ParseCoordinate(s)
	}
	if config != nil {
		if origin && config.Origin != nil {
			return *config.Origin, nil
		}
		if !origin && config.Target != nil {
			return *config.Target, nil
		}
	}
	return board.Coordinate{}, fmt.Errorf("no endpoint given and the layout suggests none")
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

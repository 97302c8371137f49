// Command validate checks the board layouts in a configs directory. For each
// *.json file it reports:
//   - JSON structure and the checks of board.ValidateBoardConfig (size,
//     symbols, teleport count, legend, endpoints on the board)
//   - terrain counts and the teleport pair
//   - Connectivity: the suggested target is reachable from the suggested
//     origin, with and without the teleport pair
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/lonely-knight/game/board"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single layout file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config board.BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if err := board.ValidateBoardConfig(&config); err != nil {
		result.fail("%v", err)
		return result
	}

	if config.Origin != nil && !board.TerrainFromSymbol(config.Layout[config.Origin.Y][config.Origin.X]).Passable() {
		result.fail("Origin %v is not passable", *config.Origin)
	}

	b := board.NewFromConfig(&config)

	if teleports := b.Teleports(); len(teleports) == 1 {
		result.fail("Teleport at %v has no partner", teleports[0])
	}

	if result.Valid && config.Origin != nil && config.Target != nil {
		connectivity := validateConnectivity(b, *config.Origin, *config.Target)
		result.Valid = connectivity.Valid
		result.Errors = append(result.Errors, connectivity.Errors...)
	}

	if result.Valid {
		result.info("Name: %s", config.Name)
		result.info("Grid: %dx%d", config.Width, config.Height)
		for _, kind := range []board.TerrainKind{board.Barrier, board.Lava, board.Rock, board.Water, board.Teleport} {
			if n := board.CountTerrain(b, kind); n > 0 {
				result.info("%s cells: %d", kind, n)
			}
		}
	}

	return result
}

// validateConnectivity checks that target can be reached from origin. A
// layout whose target is only reachable through the teleport pair is valid
// and reported as such.
func validateConnectivity(b *board.Board, origin, target board.Coordinate) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	wave, ok := b.CalculateShortestPath(origin, target)
	if ok {
		result.info("Connectivity: %v -> %v in %d moves", origin, target, len(wave)-1)
	}

	route, routeOK := b.CalculateShortestPathAStar(origin, target, true)
	switch {
	case routeOK && !b.ValidateRoute(route):
		result.fail("A* returned an invalid route from %v to %v", origin, target)
	case routeOK:
		result.info("Cheapest route: cost %d over %d moves", board.PathCost(b, route), len(route)-1)
		if !ok {
			result.info("Target only reachable through the teleport pair")
		}
	default:
		result.fail("Connectivity failure: target %v unreachable from origin %v", target, origin)
	}

	return result
}

// report validates every layout in dir and writes a summary to w. It returns
// false when any layout is invalid.
func report(w io.Writer, dir string) (bool, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return false, fmt.Errorf("error finding config files: %w", err)
	}
	if len(files) == 0 {
		return false, fmt.Errorf("no layouts found in %s", dir)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)
		log.WithFields(log.Fields{"file": result.File, "valid": result.Valid}).Debug("validated layout")

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Errors {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Fprintln(w, "  ❌ "+err)
				}
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All layouts are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some layouts have errors")
	}
	return allValid, nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "validate knight board layouts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Value:   "../configs",
				Usage:   "directory of layout JSON files",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log every validated file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("debug") {
				log.SetLevel(log.DebugLevel)
			}

			ok, err := report(os.Stdout, cmd.String("dir"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if !ok {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// Command bruteforcer hammers a running path server with every origin/target
// pair of a board and cross-checks the three searches against each other.
package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/lonely-knight/game/service"
)

func main() {
	cmd := &cli.Command{
		Name:  "bruteforcer",
		Usage: "cross-check the path searches of a running server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "path server URL"},
			&cli.StringFlag{Name: "board", Value: "classic", Usage: "board layout for a new session"},
			&cli.StringFlag{Name: "continue", Usage: "use an existing session by ID"},
			&cli.IntFlag{Name: "workers", Value: 8, Usage: "concurrent requests"},
			&cli.IntFlag{Name: "stride", Value: 1, Usage: "use every n-th cell as an endpoint"},
			&cli.IntFlag{Name: "max-pairs", Value: 0, Usage: "stop after this many pairs (0 = all)"},
			&cli.BoolFlag{Name: "teleports", Usage: "let A* use the teleport pair"},
			&cli.BoolFlag{Name: "keep", Usage: "keep the session afterwards"},
			&cli.BoolFlag{Name: "v", Usage: "verbose output"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("v") {
		log.SetLevel(log.DebugLevel)
	}

	client := NewClient(cmd.String("url"))
	log.WithField("url", cmd.String("url")).Info("Connecting to path server")

	var (
		state   *service.BoardState
		created bool
		err     error
	)
	if id := cmd.String("continue"); id != "" {
		state, err = client.UseSession(ctx, id)
	} else {
		state, err = client.CreateSession(ctx, cmd.String("board"))
		created = err == nil
	}
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	log.WithFields(log.Fields{
		"session": client.sessionID,
		"board":   state.BoardID,
		"size":    fmt.Sprintf("%dx%d", state.Width, state.Height),
	}).Info("Session ready")

	if created && !cmd.Bool("keep") {
		defer func() {
			if err := client.DeleteSession(context.Background()); err != nil {
				log.WithError(err).Warn("Failed to delete session")
			}
		}()
	}

	checker := &Checker{
		client:    client,
		workers:   int(cmd.Int("workers")),
		stride:    int(cmd.Int("stride")),
		maxPairs:  int(cmd.Int("max-pairs")),
		teleports: cmd.Bool("teleports"),
	}

	report, err := checker.Run(ctx, state)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"pairs":      report.Pairs,
		"reachable":  report.Reachable,
		"violations": len(report.Violations),
	}).Info("Done")

	for _, v := range report.Violations {
		log.Error(v.String())
	}
	if len(report.Violations) > 0 {
		return cli.Exit(fmt.Sprintf("%d violations", len(report.Violations)), 1)
	}
	return nil
}

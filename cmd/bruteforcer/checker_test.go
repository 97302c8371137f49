package main

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wricardo/lonely-knight/api"
	"github.com/wricardo/lonely-knight/game/board"
	"github.com/wricardo/lonely-knight/game/config"
	"github.com/wricardo/lonely-knight/game/service"
	"github.com/wricardo/lonely-knight/game/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	configs, err := config.NewManager(filepath.Join("..", "..", "configs"))
	require.NoError(t, err)

	pathService := service.NewPathService(session.NewManager(), configs)
	server := httptest.NewServer(api.NewServer(pathService, nil))
	t.Cleanup(server.Close)
	return server
}

func TestChecker_Classic(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	client := NewClient(server.URL)
	state, err := client.CreateSession(ctx, "classic")
	require.NoError(t, err)
	require.NotEmpty(t, client.sessionID)

	checker := &Checker{client: client, workers: 4, stride: 3}
	report, err := checker.Run(ctx, state)
	require.NoError(t, err)

	// 22 cells at stride 3 on 8x8
	assert.Equal(t, 22*21, report.Pairs)
	assert.Equal(t, report.Pairs, report.Reachable)
	assert.Empty(t, report.Violations)

	require.NoError(t, client.DeleteSession(ctx))
	_, err = client.UseSession(ctx, client.sessionID)
	assert.Error(t, err)
}

func TestChecker_TeleportsBoard(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	client := NewClient(server.URL)
	state, err := client.CreateSession(ctx, "teleports")
	require.NoError(t, err)

	for _, teleports := range []bool{false, true} {
		checker := &Checker{client: client, workers: 4, stride: 5, maxPairs: 200, teleports: teleports}
		report, err := checker.Run(ctx, state)
		require.NoError(t, err)
		assert.LessOrEqual(t, report.Pairs, 200)
		assert.Empty(t, report.Violations, "teleports=%v", teleports)
	}
}

func TestClient_Errors(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL)

	_, err := client.CreateSession(context.Background(), "no-such-board")
	assert.Error(t, err)

	_, err = client.UseSession(context.Background(), "zzzz")
	assert.Error(t, err)
}

func TestCheckCompare(t *testing.T) {
	origin, target := board.Coordinate{X: 0, Y: 0}, board.Coordinate{X: 7, Y: 5}
	result := func(algo board.Algorithm, found bool, moves, cost int) *service.PathResult {
		return &service.PathResult{Algorithm: algo, Found: found, Valid: found, Moves: moves, Cost: cost}
	}

	tests := []struct {
		name      string
		results   []*service.PathResult
		teleports bool
		want      int
	}{
		{
			name:    "consistent",
			results: []*service.PathResult{result(board.AnyPath, true, 9, 9), result(board.Wave, true, 4, 6), result(board.AStar, true, 5, 5)},
		},
		{
			name:    "all unreachable",
			results: []*service.PathResult{result(board.AnyPath, false, 0, 0), result(board.Wave, false, 0, 0), result(board.AStar, false, 0, 0)},
		},
		{
			name:    "wave longer than any",
			results: []*service.PathResult{result(board.AnyPath, true, 3, 9), result(board.Wave, true, 4, 4), result(board.AStar, true, 4, 4)},
			want:    1,
		},
		{
			name:    "astar too expensive",
			results: []*service.PathResult{result(board.AnyPath, true, 6, 6), result(board.Wave, true, 4, 7), result(board.AStar, true, 4, 8)},
			want:    2,
		},
		{
			name:    "reachability disagrees",
			results: []*service.PathResult{result(board.AnyPath, true, 6, 6), result(board.Wave, false, 0, 0), result(board.AStar, true, 6, 6)},
			want:    2,
		},
		{
			name:      "teleport route may use more moves",
			results:   []*service.PathResult{result(board.AnyPath, true, 6, 6), result(board.Wave, true, 4, 4), result(board.AStar, true, 3, 9)},
			teleports: true,
		},
		{
			name:    "missing algorithm",
			results: []*service.PathResult{result(board.Wave, true, 4, 4)},
			want:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := checkCompare(&service.CompareResult{Origin: origin, Target: target, Results: tt.results}, tt.teleports)
			assert.Len(t, violations, tt.want, "%v", violations)
		})
	}

	invalid := result(board.AStar, true, 4, 4)
	invalid.Valid = false
	violations := checkCompare(&service.CompareResult{Results: []*service.PathResult{
		result(board.AnyPath, true, 4, 4), result(board.Wave, true, 4, 4), invalid,
	}}, false)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].String(), "astar returned an invalid path")

	// a teleport hop is only accepted when teleports were requested
	hop := result(board.AStar, true, 2, 2)
	hop.Valid = false
	hop.Teleported = true
	unreachable := []*service.PathResult{result(board.AnyPath, false, 0, 0), result(board.Wave, false, 0, 0), hop}
	assert.Empty(t, checkCompare(&service.CompareResult{Results: unreachable}, true))
	assert.NotEmpty(t, checkCompare(&service.CompareResult{Results: unreachable}, false))
}

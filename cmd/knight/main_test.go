package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wricardo/lonely-knight/game/board"
)

func TestRunDemo_Levels1to3(t *testing.T) {
	var buf bytes.Buffer
	runDemo(&buf, nil)
	out := buf.String()

	for _, want := range []string{
		"pathEmpty valid: false",
		"pathSingle valid: true",
		"pathValid valid: true",
		"pathOut valid: false",
		"pathInvalid valid: false",
		"pathLongValid valid: true",
		"Any path: From [ 0,  0] to [ 7,  5]",
		"Shortest path: From [ 0,  0] to [ 7,  5] found path with 4 moves",
		"no level 4 layout",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRunDemo_Level4(t *testing.T) {
	config, err := board.LoadBoardConfig(filepath.Join("..", "..", "configs", "level4.json"))
	if os.IsNotExist(err) {
		t.Skip("level4 layout not found")
	}
	require.NoError(t, err)

	var buf bytes.Buffer
	runDemo(&buf, config)

	out := buf.String()
	assert.Contains(t, out, "*** LEVEL 4 ***")
	assert.Contains(t, out, "Shortest path: From [ 2,  4] to [31, 27]")
	assert.Contains(t, out, "Cost: ")
}

func TestPrintPath(t *testing.T) {
	path := []board.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: 4}, {X: 3, Y: 6}, {X: 4, Y: 4}, {X: 5, Y: 6}}

	var buf bytes.Buffer
	printPath(&buf, "Any path", path[0], path[5], path)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Any path: From [ 0,  0] to [ 5,  6] found path with 5 moves:", lines[0])
	assert.Equal(t, "[ 0,  0] [ 1,  2] [ 2,  4] [ 3,  6] [ 4,  4] ", lines[1])
	assert.Equal(t, "[ 5,  6] ", lines[2])
}

func TestRunPath(t *testing.T) {
	b := board.New(8, 8)

	var buf bytes.Buffer
	require.NoError(t, runPath(&buf, b, board.Wave, board.Coordinate{X: 0, Y: 0}, board.Coordinate{X: 1, Y: 2}, false))
	assert.Contains(t, buf.String(), "wave path: From [ 0,  0] to [ 1,  2] found path with 1 moves")
	assert.Contains(t, buf.String(), "Cost: 1")
	assert.Contains(t, buf.String(), "S.......")

	blocked := board.NewFromLayout(3, 3, []string{"...", "...", "..."})
	assert.Error(t, runPath(&bytes.Buffer{}, blocked, board.AStar, board.Coordinate{X: 0, Y: 0}, board.Coordinate{X: 1, Y: 1}, false))
}

func TestRunMove(t *testing.T) {
	b := board.New(8, 8)

	var buf bytes.Buffer
	path := []board.Coordinate{{X: 0, Y: 2}, {X: 2, Y: 3}, {X: 3, Y: 5}}
	require.NoError(t, runMove(&buf, b, path))
	assert.Contains(t, buf.String(), "Step 0:")
	assert.Contains(t, buf.String(), "Step 1:")
	assert.NotContains(t, buf.String(), "Step 2:")
	assert.Contains(t, buf.String(), "valid: true, cost 2")

	buf.Reset()
	assert.Error(t, runMove(&buf, b, []board.Coordinate{{X: 1, Y: 1}, {X: 4, Y: 0}}))
}

func TestEndpoint(t *testing.T) {
	config := board.DefaultBoardConfig()

	c, err := endpoint("3,4", config, true)
	require.NoError(t, err)
	assert.Equal(t, board.Coordinate{X: 3, Y: 4}, c)

	c, err = endpoint("", config, false)
	require.NoError(t, err)
	assert.Equal(t, board.Coordinate{X: 7, Y: 5}, c)

	_, err = endpoint("", nil, true)
	assert.Error(t, err)
}

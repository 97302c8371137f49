package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/lonely-knight/game/board"
)

func TestComponents_EmptyBoard(t *testing.T) {
	// on an empty 8x8 board every cell is connected
	groups := components(board.NewFromConfig(board.DefaultBoardConfig()))
	if len(groups) != 1 {
		t.Fatalf("Expected 1 component, got %d", len(groups))
	}
	if len(groups[0]) != 64 {
		t.Errorf("Expected 64 cells, got %d", len(groups[0]))
	}
}

func TestComponents_ThreeByThree(t *testing.T) {
	// the centre of a 3x3 board has no knight moves
	b := board.NewFromLayout(3, 3, []string{"...", "...", "..."})
	groups := components(b)
	if len(groups) != 2 {
		t.Fatalf("Expected 2 components, got %d", len(groups))
	}
	if len(groups[0]) != 8 || len(groups[1]) != 1 {
		t.Errorf("Expected sizes 8 and 1, got %d and %d", len(groups[0]), len(groups[1]))
	}
	if groups[1][0] != (board.Coordinate{X: 1, Y: 1}) {
		t.Errorf("Expected isolated centre, got %v", groups[1][0])
	}
}

func TestAnalyze(t *testing.T) {
	config := &board.BoardConfig{
		Name:   "Split",
		Width:  8,
		Height: 3,
		Layout: []string{
			"T..RR...",
			"...RR...",
			"...RR..T",
		},
		Origin: &board.Coordinate{X: 0, Y: 1},
		Target: &board.Coordinate{X: 5, Y: 1},
	}

	a := analyze(config)

	if a.Terrain[board.Rock] != 6 {
		t.Errorf("Expected 6 rock cells, got %d", a.Terrain[board.Rock])
	}
	if a.Passable != 18 {
		t.Errorf("Expected 18 passable cells, got %d", a.Passable)
	}
	// two 8-cell rings and two isolated centres
	if len(a.Components) != 4 {
		t.Errorf("Expected 4 components, got %d", len(a.Components))
	}
	if len(a.Unreachable) != 10 {
		t.Errorf("Expected 10 unreachable cells, got %d", len(a.Unreachable))
	}
	if len(a.Teleports) != 2 {
		t.Errorf("Expected a teleport pair, got %v", a.Teleports)
	}

	var buf bytes.Buffer
	printAnalysis(&buf, a)
	for _, want := range []string{"Name: Split", "Grid Size: 8 x 3", "Move graph components: 4", "WARNING: 10 passable cells"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Expected %q in output:\n%s", want, buf.String())
		}
	}
}

func TestAnalyzeFile(t *testing.T) {
	if err := analyzeFile(&bytes.Buffer{}, "/non/existent/file.json"); err == nil {
		t.Error("Expected error for missing file")
	}

	dir := filepath.Join("..", "..", "configs")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Skip("configs directory not found")
	}

	var buf bytes.Buffer
	if err := analyzeFile(&buf, filepath.Join(dir, "classic.json")); err != nil {
		t.Fatalf("analyzeFile failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Every passable cell is reachable") {
		t.Errorf("Unexpected output:\n%s", buf.String())
	}
}

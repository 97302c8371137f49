package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validLayout = `{
	"name": "Test Layout",
	"description": "Test layout",
	"width": 5,
	"height": 5,
	"layout": [
		".....",
		".BB..",
		"..L..",
		"..W.T",
		"T...."
	],
	"origin": {"x": 0, "y": 0},
	"target": {"x": 4, "y": 4}
}`

func writeLayout(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write layout: %v", err)
	}
	return path
}

func hasMessage(result ValidationResult, substr string) bool {
	for _, msg := range result.Errors {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

func TestValidateConfig_ValidLayout(t *testing.T) {
	path := writeLayout(t, t.TempDir(), "valid.json", validLayout)

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("Expected valid layout, got errors: %v", result.Errors)
	}

	if result.File != "valid.json" {
		t.Errorf("Expected file name valid.json, got %s", result.File)
	}

	for _, want := range []string{"Name: Test Layout", "Grid: 5x5", "barrier cells: 2", "teleport cells: 2", "Connectivity:"} {
		if !hasMessage(result, want) {
			t.Errorf("Expected %q in %v", want, result.Errors)
		}
	}
}

func TestValidateConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "invalid json",
			content: `{"name": "test", invalid json}`,
			want:    "Invalid JSON",
		},
		{
			name:    "bad symbol",
			content: strings.Replace(validLayout, `".BB.."`, `".BX.."`, 1),
			want:    "invalid terrain symbol",
		},
		{
			name:    "row too short",
			content: strings.Replace(validLayout, `"..L.."`, `"..L."`, 1),
			want:    "row 3",
		},
		{
			name:    "lonely teleport",
			content: strings.Replace(validLayout, `"T...."`, `"....."`, 1),
			want:    "has no partner",
		},
		{
			name:    "origin on barrier",
			content: strings.Replace(validLayout, `"origin": {"x": 0, "y": 0}`, `"origin": {"x": 1, "y": 1}`, 1),
			want:    "is not passable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeLayout(t, t.TempDir(), "layout.json", tt.content)
			result := validateConfig(path)
			if result.Valid {
				t.Fatalf("Expected invalid layout")
			}
			if !hasMessage(result, tt.want) {
				t.Errorf("Expected %q in %v", tt.want, result.Errors)
			}
		})
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig("/non/existent/file.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
	if !hasMessage(result, "Failed to read file") {
		t.Error("Expected 'Failed to read file' error")
	}
}

func TestValidateConfig_Unreachable(t *testing.T) {
	// rocks cover every cell a knight can reach from the corner
	layout := `{
		"name": "Cornered",
		"width": 4,
		"height": 4,
		"layout": ["....", "..R.", ".R..", "...."],
		"origin": {"x": 0, "y": 0},
		"target": {"x": 3, "y": 3}
	}`
	path := writeLayout(t, t.TempDir(), "cornered.json", layout)

	result := validateConfig(path)
	if result.Valid {
		t.Fatal("Expected unreachable target to be invalid")
	}
	if !hasMessage(result, "Connectivity failure") {
		t.Errorf("Expected connectivity failure, got %v", result.Errors)
	}
}

func TestValidateConfig_TeleportOnly(t *testing.T) {
	// two rock columns are too wide to jump; only the teleport pair crosses them
	layout := `{
		"name": "Split",
		"width": 8,
		"height": 3,
		"layout": ["T..RR...", "...RR...", "...RR..T"],
		"origin": {"x": 0, "y": 1},
		"target": {"x": 5, "y": 1}
	}`
	path := writeLayout(t, t.TempDir(), "split.json", layout)

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("Expected valid layout, got %v", result.Errors)
	}
	if !hasMessage(result, "only reachable through the teleport pair") {
		t.Errorf("Expected teleport note, got %v", result.Errors)
	}
}

func TestReport(t *testing.T) {
	dir := t.TempDir()
	writeLayout(t, dir, "good.json", validLayout)

	var buf bytes.Buffer
	ok, err := report(&buf, dir)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !ok {
		t.Errorf("Expected all layouts valid, got:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "All layouts are valid") {
		t.Errorf("Unexpected output:\n%s", buf.String())
	}

	writeLayout(t, dir, "bad.json", `{}`)
	buf.Reset()
	ok, err = report(&buf, dir)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if ok {
		t.Error("Expected invalid layout to fail the report")
	}

	if _, err := report(&buf, t.TempDir()); err == nil {
		t.Error("Expected error for empty directory")
	}
}

func TestShippedLayouts(t *testing.T) {
	dir := filepath.Join("..", "configs")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Skip("configs directory not found")
	}

	var buf bytes.Buffer
	ok, err := report(&buf, dir)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !ok {
		t.Errorf("Shipped layouts should be valid:\n%s", buf.String())
	}
}

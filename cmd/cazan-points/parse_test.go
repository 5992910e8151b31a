package main

import (
	"fmt"
	"os"
	"testing"

	"github.com/cazan/points/internal/point"
	"github.com/cazan/points/internal/storage"
	"github.com/google/go-cmp/cmp"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		spec     string
		defaultN int
		want     point.Point
		wantErr  bool
	}{
		{"1,2", 0, point.New(1, 2, 0), false},
		{"1,2", 5, point.New(1, 2, 5), false},
		{"1,2,7", 5, point.New(1, 2, 7), false},
		{" 10 , 20 , 3 ", 0, point.New(10, 20, 3), false},
		{"4294967295,0", 0, point.New(4294967295, 0, 0), false},
		{"4294967296,0", 0, point.Point{}, true},
		{"1", 0, point.Point{}, true},
		{"1,2,3,4", 0, point.Point{}, true},
		{"-1,2", 0, point.Point{}, true},
		{"a,2", 0, point.Point{}, true},
		{"1,2,-3", 0, point.Point{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := parsePoint(tt.spec, tt.defaultN)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePoint(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parsePoint(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseRegion(t *testing.T) {
	minX, minY, maxX, maxY, err := parseRegion("0, 5, 64, 128")
	if err != nil {
		t.Fatalf("parseRegion() error = %v", err)
	}
	if minX != 0 || minY != 5 || maxX != 64 || maxY != 128 {
		t.Errorf("parseRegion() = %d,%d,%d,%d, want 0,5,64,128", minX, minY, maxX, maxY)
	}

	for _, bad := range []string{"", "1,2,3", "1,2,3,x", "10,0,5,5", "0,10,5,5", "-1,0,5,5"} {
		if _, _, _, _, err := parseRegion(bad); err == nil {
			t.Errorf("parseRegion(%q) expected error", bad)
		}
	}
}

func TestParseImageMap_Object(t *testing.T) {
	input := `{"assets/a.png": [{"x": 1, "y": 2, "n": 0}], "assets/b.png": []}`

	got, err := parseImageMap([]byte(input))
	if err != nil {
		t.Fatalf("parseImageMap() error = %v", err)
	}
	want := map[string][]point.Point{
		"assets/a.png": {point.New(1, 2, 0)},
		"assets/b.png": {},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseImageMap() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseImageMap_Document(t *testing.T) {
	input := `[{"path": "assets/a.png", "points": [{"x": 1, "y": 2, "n": 0}]}]`

	got, err := parseImageMap([]byte(input))
	if err != nil {
		t.Fatalf("parseImageMap() error = %v", err)
	}
	want := map[string][]point.Point{"assets/a.png": {point.New(1, 2, 0)}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseImageMap() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseImageMap_Invalid(t *testing.T) {
	inputs := map[string]string{
		"empty":           "  ",
		"duplicate paths": `[{"path": "a.png", "points": []}, {"path": "a.png", "points": []}]`,
		"separator collision in document": `[{"path": "a\\b.png", "points": []}, {"path": "a/b.png", "points": []}]`,
		"separator collision in object":   `{"a\\b.png": [], "a/b.png": []}`,
		"missing n":       `{"a.png": [{"x": 1, "y": 2}]}`,
		"not json":        `{oops`,
		"scalar":          `42`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			if _, err := parseImageMap([]byte(input)); err == nil {
				t.Errorf("parseImageMap(%q) expected error", input)
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("%w: a.png", storage.ErrImageNotFound), ExitNotFound},
		{"parse", &storage.ParseError{Path: "x", Err: fmt.Errorf("bad")}, ExitDataError},
		{"missing file", &storage.FileReadError{Path: "x", Err: os.ErrNotExist}, ExitConfigError},
		{"unreadable file", &storage.FileReadError{Path: "x", Err: os.ErrPermission}, ExitError},
		{"write", &storage.WriteError{Path: "x", Err: os.ErrPermission}, ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathFunctions(t *testing.T) {
	root := "/test/game"

	tests := []struct {
		name string
		fn   func(string) string
		want string
	}{
		{"CazanPath", CazanPath, "/test/game/.cazan"},
		{"ConfigPath", ConfigPath, "/test/game/.cazan/config.json"},
		{"BuildPath", BuildPath, "/test/game/.cazan/build"},
		{"AssetsPath", AssetsPath, "/test/game/.cazan/build/assets.json"},
		{"CachePath", CachePath, "/test/game/.cazan/cache"},
		{"DBPath", DBPath, "/test/game/.cazan/cache/points.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(root)
			if got != tt.want {
				t.Errorf("%s(%q) = %q, want %q", tt.name, root, got, tt.want)
			}
		})
	}
}

func TestIsProject(t *testing.T) {
	tmpDir := t.TempDir()

	if IsProject(tmpDir) {
		t.Error("IsProject() = true for non-project directory")
	}

	if err := os.Mkdir(filepath.Join(tmpDir, CazanDir), 0755); err != nil {
		t.Fatalf("Failed to create .cazan: %v", err)
	}

	if !IsProject(tmpDir) {
		t.Error("IsProject() = false for project directory")
	}
}

func TestIsProject_FileNotDir(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, CazanDir), []byte("not a dir"), 0644); err != nil {
		t.Fatalf("Failed to create .cazan file: %v", err)
	}

	if IsProject(tmpDir) {
		t.Error("IsProject() = true when .cazan is a file")
	}
}

func TestFindProject(t *testing.T) {
	tmpDir := t.TempDir()
	projectDir := filepath.Join(tmpDir, "game")
	nestedDir := filepath.Join(projectDir, "assets", "sprites")

	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatalf("Failed to create nested dirs: %v", err)
	}
	if err := os.Mkdir(filepath.Join(projectDir, CazanDir), 0755); err != nil {
		t.Fatalf("Failed to create .cazan: %v", err)
	}

	for _, start := range []string{projectDir, nestedDir} {
		found, err := FindProject(start)
		if err != nil {
			t.Fatalf("FindProject(%q) error = %v", start, err)
		}
		if found != projectDir {
			t.Errorf("FindProject(%q) = %q, want %q", start, found, projectDir)
		}
	}
}

func TestFindProject_NotFound(t *testing.T) {
	if _, err := FindProject(t.TempDir()); err == nil {
		t.Error("FindProject() expected error outside a project")
	}
}

func TestLoadSave(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := &Config{AssetsDir: "res/images"}
	if err := cfg.Save(tmpDir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.AssetsDir != "res/images" {
		t.Errorf("AssetsDir = %q, want res/images", loaded.AssetsDir)
	}
}

func TestLoad_BuildToolFormat(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(CazanPath(tmpDir), 0755); err != nil {
		t.Fatal(err)
	}
	content := `{
    "assets-dir": "assets"
}`
	if err := os.WriteFile(ConfigPath(tmpDir), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AssetsDir != "assets" {
		t.Errorf("AssetsDir = %q, want assets", cfg.AssetsDir)
	}
}

func TestLoad_DefaultAssetsDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(CazanPath(tmpDir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(tmpDir), []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AssetsDir != DefaultAssetsDir {
		t.Errorf("AssetsDir = %q, want %q", cfg.AssetsDir, DefaultAssetsDir)
	}
}

func TestLoad_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := Load(tmpDir); err == nil {
		t.Error("Load() expected error for missing config")
	}

	if err := os.MkdirAll(CazanPath(tmpDir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(tmpDir), []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmpDir); err == nil {
		t.Error("Load() expected error for invalid JSON")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"rel/path", "rel/path"},
		{"~/game", filepath.Join(home, "game")},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

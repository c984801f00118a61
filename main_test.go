package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/wricardo/shoko-rocket/game/mapfile"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}
}

func TestInitializeServices(t *testing.T) {
	gameService, sessionManager, err := initializeServices("")
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	if gameService == nil {
		t.Fatal("Expected game service to be initialized")
	}
	if sessionManager == nil {
		t.Fatal("Expected session manager to be initialized")
	}

	levels, err := gameService.ListLevels(context.Background())
	if err != nil {
		t.Fatalf("ListLevels failed: %v", err)
	}
	if len(levels) < 2 {
		t.Errorf("Expected builtin levels to load, got %d", len(levels))
	}
}

func TestInitializeServices_BrokenLevel(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.txt"), []byte("not a map\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := initializeServices(dir)
	if err == nil {
		t.Error("Expected error for directory with a broken level")
	}
}

// writeLevelSource writes a known-good map source to a temp file by
// round-tripping a builtin level through the packed form.
func writeLevelSource(t *testing.T) string {
	t.Helper()

	lib, err := mapfile.NewLibrary("")
	if err != nil {
		t.Fatalf("Failed to load builtin levels: %v", err)
	}

	packed, err := lib.Load("Where to go?")
	if err != nil {
		t.Fatalf("Failed to load builtin level: %v", err)
	}

	name, author, art, err := mapfile.Decode(packed)
	if err != nil {
		t.Fatalf("Failed to decode builtin level: %v", err)
	}

	path := filepath.Join(t.TempDir(), "level.txt")
	if err := os.WriteFile(path, mapfile.FormatSource(name, author, art), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMapCheck(t *testing.T) {
	path := writeLevelSource(t)

	err := mapCommand().Run(context.Background(), []string{"map", "check", path})
	if err != nil {
		t.Errorf("Expected valid level to pass check, got: %v", err)
	}
}

func TestMapCheck_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.txt")
	if err := os.WriteFile(path, []byte("not a map\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := mapCommand().Run(context.Background(), []string{"map", "check", path})
	if err == nil {
		t.Error("Expected error for broken map source")
	}
}

func TestMapCheck_MissingArg(t *testing.T) {
	err := mapCommand().Run(context.Background(), []string{"map", "check"})
	if err == nil {
		t.Error("Expected error when no file argument is given")
	}
}

func TestMapPack(t *testing.T) {
	path := writeLevelSource(t)
	out := filepath.Join(t.TempDir(), "level.bin")

	err := mapCommand().Run(context.Background(), []string{"map", "pack", "--out", out, path})
	if err != nil {
		t.Fatalf("map pack failed: %v", err)
	}

	packed, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(packed) != 199 {
		t.Errorf("Expected 199 byte packed map, got %d", len(packed))
	}
}

func TestMapInfo(t *testing.T) {
	// Info accepts the ASCII source form
	path := writeLevelSource(t)
	err := mapCommand().Run(context.Background(), []string{"map", "info", path})
	if err != nil {
		t.Errorf("map info on a source failed: %v", err)
	}

	// And the packed form
	src, _ := os.ReadFile(path)
	packed, err := mapfile.EncodeSource(src)
	if err != nil {
		t.Fatal(err)
	}
	binPath := filepath.Join(t.TempDir(), "level.bin")
	if err := os.WriteFile(binPath, packed, 0644); err != nil {
		t.Fatal(err)
	}

	err = mapCommand().Run(context.Background(), []string{"map", "info", binPath})
	if err != nil {
		t.Errorf("map info on a packed map failed: %v", err)
	}
}

package mapfile

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed levels/*.txt
var builtinLevels embed.FS

// LevelInfo describes an available level.
type LevelInfo struct {
	Name    string `json:"name"`
	Author  string `json:"author"`
	Builtin bool   `json:"builtin"`
}

type libraryEntry struct {
	info   LevelInfo
	packed []byte
}

// Library holds the playable levels: the builtin set plus any level
// sources found in an optional directory. Levels are keyed by their
// map name.
type Library struct {
	mu      sync.RWMutex
	entries map[string]*libraryEntry
	order   []string
	dir     string
}

// NewLibrary creates a library from the builtin levels and the given
// directory. An empty dir loads builtins only.
func NewLibrary(dir string) (*Library, error) {
	lib := &Library{
		entries: make(map[string]*libraryEntry),
		dir:     dir,
	}

	names, err := builtinLevels.ReadDir("levels")
	if err != nil {
		return nil, fmt.Errorf("failed to read builtin levels: %w", err)
	}
	for _, entry := range names {
		src, err := builtinLevels.ReadFile("levels/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read builtin level %s: %w", entry.Name(), err)
		}
		if err := lib.add(src, true); err != nil {
			return nil, fmt.Errorf("builtin level %s: %w", entry.Name(), err)
		}
	}

	if dir != "" {
		if err := lib.loadDir(dir); err != nil {
			return nil, err
		}
	}

	return lib, nil
}

func (l *Library) loadDir(dir string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read levels directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".txt") {
			continue
		}
		src, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read level %s: %w", file.Name(), err)
		}
		if err := l.add(src, false); err != nil {
			return fmt.Errorf("level %s: %w", file.Name(), err)
		}
	}
	return nil
}

func (l *Library) add(src []byte, builtin bool) error {
	name, author, art, err := ParseSource(src)
	if err != nil {
		return err
	}
	packed, err := Encode(name, author, art)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.entries[name]; !exists {
		l.order = append(l.order, name)
	}
	l.entries[name] = &libraryEntry{
		info:   LevelInfo{Name: name, Author: author, Builtin: builtin},
		packed: packed,
	}
	return nil
}

// List returns the available levels, builtins first in file order,
// then directory levels sorted by name.
func (l *Library) List() []LevelInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]LevelInfo, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.entries[name].info)
	}
	return out
}

// Count returns the number of available levels.
func (l *Library) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Load returns the packed bytes of a level by map name.
func (l *Library) Load(name string) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entry, ok := l.entries[name]
	if !ok {
		return nil, fmt.Errorf("level %q not found", name)
	}
	out := make([]byte, len(entry.packed))
	copy(out, entry.packed)
	return out, nil
}

// Save writes a level source into the library directory and registers
// it. The library must have been created with a directory.
func (l *Library) Save(fileName, name, author string, art []string) error {
	if l.dir == "" {
		return fmt.Errorf("library has no levels directory")
	}
	if !strings.HasSuffix(fileName, ".txt") {
		fileName += ".txt"
	}

	// Validate before touching the disk
	if _, err := Encode(name, author, art); err != nil {
		return err
	}

	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create levels directory: %w", err)
	}
	path := filepath.Join(l.dir, filepath.Base(fileName))
	if err := os.WriteFile(path, FormatSource(name, author, art), 0644); err != nil {
		return fmt.Errorf("failed to write level: %w", err)
	}

	return l.add(FormatSource(name, author, art), false)
}

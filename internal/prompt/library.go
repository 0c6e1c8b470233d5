package prompt

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/KnuggetDeveloper/Carousel-Test/internal/logger"
)

// Built-in template names.
const (
	ContentPrompt         = "content"
	FirstImagePrompt      = "first_image"
	RemainingImagesPrompt = "remaining_images"
)

// DefaultsFS contains the built-in prompt templates.
//
//go:embed defaults/*.txt
var DefaultsFS embed.FS

// Library holds named prompt templates: built-in defaults overlaid by .txt
// files from the prompts directory. Concurrent-safe; the watcher mutates the
// overlay while handlers read it.
type Library struct {
	dir string
	log *logger.Logger

	mu        sync.RWMutex
	defaults  map[string]string
	overrides map[string]string
}

func NewLibrary(dir string, log *logger.Logger) (*Library, error) {
	l := &Library{
		dir:       dir,
		log:       log,
		defaults:  make(map[string]string),
		overrides: make(map[string]string),
	}

	entries, err := DefaultsFS.ReadDir("defaults")
	if err != nil {
		return nil, fmt.Errorf("read embedded prompts: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		content, err := DefaultsFS.ReadFile("defaults/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read embedded prompt %s: %w", e.Name(), err)
		}
		l.defaults[strings.TrimSuffix(e.Name(), ".txt")] = string(content)
	}

	l.loadDir()
	return l, nil
}

// Get returns the template registered under name, overrides first.
func (l *Library) Get(name string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if t, ok := l.overrides[name]; ok {
		return t, true
	}
	t, ok := l.defaults[name]
	return t, ok
}

// All returns a copy of every template keyed by name.
func (l *Library) All() map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]string, len(l.defaults)+len(l.overrides))
	for k, v := range l.defaults {
		out[k] = v
	}
	for k, v := range l.overrides {
		out[k] = v
	}
	return out
}

// Names returns every template name, sorted.
func (l *Library) Names() []string {
	all := l.All()
	names := make([]string, 0, len(all))
	for k := range all {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (l *Library) loadDir() {
	files, err := os.ReadDir(l.dir)
	if err != nil {
		return
	}
	for _, f := range files {
		if !f.IsDir() && strings.HasSuffix(strings.ToLower(f.Name()), ".txt") {
			l.loadFile(filepath.Join(l.dir, f.Name()))
		}
	}
}

// loadFile reads one override file into the library. Blank files are ignored
// so a half-written save never blanks a prompt mid-edit.
func (l *Library) loadFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		l.log.Warn("failed to read prompt file", "path", path, "error", err)
		return
	}
	if strings.TrimSpace(string(data)) == "" {
		return
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	l.mu.Lock()
	l.overrides[name] = string(data)
	l.mu.Unlock()
	l.log.Info("prompt template loaded", "name", name, "path", path)
}

func (l *Library) removeFile(path string) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	l.mu.Lock()
	_, existed := l.overrides[name]
	delete(l.overrides, name)
	l.mu.Unlock()
	if existed {
		l.log.Info("prompt override removed", "name", name)
	}
}

// Package output renders a dashboard snapshot in the formats the CLI
// supports: an aligned terminal table, a JSON document, Markdown and a
// self-contained HTML dashboard.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/davetashner/triage/internal/dashboard"
)

// Renderer writes a snapshot of the dashboard to w in a specific format.
type Renderer interface {
	// Name returns the format name (e.g., "table", "json", "html").
	Name() string

	// Render writes the snapshot to w.
	Render(s dashboard.Snapshot, w io.Writer) error
}

var (
	fmtMu       sync.RWMutex
	fmtRegistry = make(map[string]Renderer)
)

// RegisterRenderer adds a renderer to the global registry.
func RegisterRenderer(r Renderer) {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry[r.Name()] = r
}

// GetRenderer returns the renderer with the given name, or an error if not found.
func GetRenderer(name string) (Renderer, error) {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	r, ok := fmtRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %q (available: %s)", name, strings.Join(names(), ", "))
	}
	return r, nil
}

// Names returns the registered format names, sorted.
func Names() []string {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	return names()
}

func names() []string {
	out := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// resetForTesting clears the renderer registry. Only for use in tests.
func resetForTesting() {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry = make(map[string]Renderer)
}

// Package dashboard renders window content for the grid dashboard. Each
// window kind has a renderer fed by live repository subscriptions, so the
// grid redraws from in-memory snapshots without touching storage.
package dashboard

import (
	"strings"
	"sync"

	"github.com/atelo/atelo/internal/domain/entity"
)

// Renderer produces the text content of one window at the given size in
// terminal cells. Implementations must be safe for concurrent use: the
// subscription callbacks that feed them run outside the render goroutine.
type Renderer interface {
	Render(p entity.WindowPlacement, width, height int) string
}

// Registry maps window kinds to their content renderers and owns the
// repository subscriptions feeding them.
type Registry struct {
	mu        sync.RWMutex
	renderers map[entity.WindowKind]Renderer
	detach    []func()
}

// Register binds a renderer to a window kind, replacing any previous one.
func (r *Registry) Register(kind entity.WindowKind, renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.renderers == nil {
		r.renderers = make(map[entity.WindowKind]Renderer)
	}
	r.renderers[kind] = renderer
}

// Render draws the content of one placement. Kinds without a registered
// renderer get an empty body.
func (r *Registry) Render(p entity.WindowPlacement, width, height int) string {
	r.mu.RLock()
	renderer := r.renderers[p.Kind]
	r.mu.RUnlock()

	if renderer == nil {
		return fitLines(nil, width, height)
	}
	return renderer.Render(p, width, height)
}

// Close detaches all repository subscriptions.
func (r *Registry) Close() {
	r.mu.Lock()
	detach := r.detach
	r.detach = nil
	r.mu.Unlock()

	for _, fn := range detach {
		fn()
	}
}

func (r *Registry) addDetach(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detach = append(r.detach, fn)
}

// fitLines clips lines to the window body: at most height lines, each
// truncated to width runes and padded so the block is rectangular.
func fitLines(lines []string, width, height int) string {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	var b strings.Builder
	for i := 0; i < height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		runes := []rune(line)
		if len(runes) > width {
			runes = runes[:width]
		}
		b.WriteString(string(runes))
		for j := len(runes); j < width; j++ {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

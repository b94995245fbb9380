package usecase

import (
	"sort"
	"sync"

	"github.com/jhoicas/Inventario-console/internal/application/session"
)

// Workspace registro de las vistas de lista de la consola, por nombre.
// Al cambiar la identidad del operador todas las vistas se desmontan.
type Workspace struct {
	mu    sync.RWMutex
	views map[string]View
}

// NewWorkspace registra las vistas dadas.
func NewWorkspace(views ...View) *Workspace {
	w := &Workspace{views: make(map[string]View, len(views))}
	for _, v := range views {
		w.views[v.Name()] = v
	}
	return w
}

// View busca una vista por nombre.
func (w *Workspace) View(name string) (View, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	v, ok := w.views[name]
	return v, ok
}

// Names nombres registrados en orden alfabético.
func (w *Workspace) Names() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, 0, len(w.views))
	for name := range w.views {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ResetAll descarta filas y consultas de todas las vistas.
func (w *Workspace) ResetAll() {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, v := range w.views {
		v.Reset()
	}
}

// OnSessionChange listener de sesión: un login nuevo o el fin de la sesión desmontan las vistas
// para que nada de un operador quede visible para el siguiente.
func (w *Workspace) OnSessionChange(ev session.Event) {
	if ev.Reason == session.ReasonRestored {
		return
	}
	w.ResetAll()
}

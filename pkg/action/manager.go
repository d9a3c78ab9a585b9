package action

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/ib-77/bitbench/pkg/progress"
)

// ID identifies a registered action. IDs are never reused by a Manager.
type ID uint64

// Action is what the manager needs from a live action. *Watcher[T]
// satisfies it for every T.
type Action interface {
	Cancel()
	Progress() *progress.Progress
}

// Info is a point-in-time description of a live action.
type Info struct {
	ID       ID
	Name     string
	Started  time.Time
	Progress progress.Snapshot
}

type entry struct {
	name    string
	started time.Time
	action  Action
}

// Manager is the registry of in-flight actions a host can list and cancel.
// Safe for concurrent use.
type Manager struct {
	logger *slog.Logger

	mu      sync.RWMutex
	lastID  ID
	entries map[ID]entry
}

func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		logger:  logger.With(slog.String("component", "action_manager")),
		entries: make(map[ID]entry),
	}
}

func (m *Manager) Register(name string, a Action) ID {
	m.mu.Lock()
	m.lastID++
	id := m.lastID
	m.entries[id] = entry{name: name, started: time.Now(), action: a}
	m.mu.Unlock()

	m.logger.Debug("action registered", slog.Uint64("id", uint64(id)), slog.String("name", name))
	return id
}

// Unregister removes id. Unknown ids are ignored.
func (m *Manager) Unregister(id ID) {
	m.mu.Lock()
	_, ok := m.entries[id]
	delete(m.entries, id)
	m.mu.Unlock()

	if ok {
		m.logger.Debug("action unregistered", slog.Uint64("id", uint64(id)))
	}
}

// Cancel forwards a cancellation request to the action. It returns false
// when id is not registered.
func (m *Manager) Cancel(id ID) bool {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()

	if !ok {
		return false
	}
	m.logger.Info("cancelling action", slog.Uint64("id", uint64(id)), slog.String("name", e.name))
	e.action.Cancel()
	return true
}

// CancelAll requests cancellation of every live action and returns how many
// were signalled.
func (m *Manager) CancelAll() int {
	m.mu.RLock()
	actions := make([]Action, 0, len(m.entries))
	for _, e := range m.entries {
		actions = append(actions, e.action)
	}
	m.mu.RUnlock()

	for _, a := range actions {
		a.Cancel()
	}
	return len(actions)
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// List returns a snapshot of live actions ordered by id.
func (m *Manager) List() []Info {
	m.mu.RLock()
	infos := make([]Info, 0, len(m.entries))
	for id, e := range m.entries {
		infos = append(infos, Info{
			ID:       id,
			Name:     e.name,
			Started:  e.started,
			Progress: e.action.Progress().Snapshot(),
		})
	}
	m.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

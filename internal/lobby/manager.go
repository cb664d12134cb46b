package lobby

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Abheast12/literature/internal/cache"
	"github.com/Abheast12/literature/internal/database"
	"github.com/Abheast12/literature/internal/models"
	"github.com/Abheast12/literature/internal/monitor"
)

// Manager is the registry of live lobbies, keyed by join code. It replaces
// any process-global connection state: handlers receive the manager and
// resolve the lobby per request.
type Manager struct {
	mu      sync.RWMutex
	lobbies map[string]*Lobby

	log     *logrus.Logger
	db      *database.DB
	cache   *cache.Cache
	metrics *monitor.Metrics
}

// NewManager creates an empty registry. db and cache may be nil; the
// server then runs without persistence or presence snapshots.
func NewManager(log *logrus.Logger, db *database.DB, c *cache.Cache, metrics *monitor.Metrics) *Manager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{
		lobbies: make(map[string]*Lobby),
		log:     log,
		db:      db,
		cache:   c,
		metrics: metrics,
	}
}

// GetOrCreate returns the lobby for code, creating it on first join.
func (m *Manager) GetOrCreate(code string) *Lobby {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.lobbies[code]; ok {
		return l
	}
	l := &Lobby{
		Code:     code,
		settings: models.DefaultSettings(),
		log:      m.log.WithField("lobby", code),
		db:       m.db,
		cache:    m.cache,
		metrics:  m.metrics,
	}
	m.lobbies[code] = l
	m.metrics.LobbyOpened()
	m.log.WithField("lobby", code).Info("lobby created")
	return l
}

// Get returns the lobby for code, if it exists.
func (m *Manager) Get(code string) (*Lobby, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.lobbies[code]
	return l, ok
}

// Remove drops an empty lobby from the registry.
func (m *Manager) Remove(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lobbies[code]; ok {
		delete(m.lobbies, code)
		m.metrics.LobbyClosed()
	}
}

package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/yuuto7838/adsim/internal/constants"
	"github.com/yuuto7838/adsim/internal/engine"
	"github.com/yuuto7838/adsim/internal/game"
	"github.com/yuuto7838/adsim/internal/logging"
	"github.com/yuuto7838/adsim/internal/storage"
)

// Manager owns the session and enforces the view state machine. All
// transitions execute atomically under its mutex; the three suspending
// operation kinds (provider calls, the pacing delay, QA answers) release
// the lock while waiting and re-validate the session afterwards so a reset
// in the meantime discards their result instead of half-applying it.
type Manager struct {
	mu sync.Mutex
	s  *game.Session

	repo        storage.Repository
	newProvider ProviderFactory
	provider    Provider

	profiles engine.Profiles
	luck     engine.LuckSource
	runDelay time.Duration
	clock    Clock

	// loadingToken identifies the LOADING pass currently in flight so a
	// completion can tell whether the session it started under still exists.
	loadingToken string

	// One singleflight group per operation class: concurrent identical
	// requests collapse into a single provider call.
	briefGroup singleflight.Group
	scoreGroup singleflight.Group
}

// Config carries the manager's collaborators. Zero fields get production
// defaults.
type Config struct {
	Repo        storage.Repository
	NewProvider ProviderFactory
	Profiles    engine.Profiles
	Luck        engine.LuckSource
	RunDelay    time.Duration
	Clock       Clock
}

// NewManager builds a manager in the initial AWAITING_CREDENTIALS state.
func NewManager(cfg Config) *Manager {
	m := &Manager{
		s:           game.NewSession(),
		repo:        cfg.Repo,
		newProvider: cfg.NewProvider,
		profiles:    cfg.Profiles,
		luck:        cfg.Luck,
		runDelay:    cfg.RunDelay,
		clock:       cfg.Clock,
	}
	if m.profiles == nil {
		m.profiles = engine.DefaultProfiles()
	}
	if m.luck == nil {
		m.luck = engine.NewLuckSource(time.Now().UnixNano())
	}
	if m.runDelay <= 0 {
		m.runDelay = time.Second
	}
	if m.clock == nil {
		m.clock = realClock{}
	}
	return m
}

// Snapshot returns a deep copy of the session for rendering.
func (m *Manager) Snapshot() game.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s.Snapshot()
}

// History returns a copy of the per-game month history.
func (m *Manager) History() []game.MonthResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s.Snapshot().History
}

// setView performs a main-view transition. Any active overlay is cleared,
// per the modal rules.
func (m *Manager) setView(v game.View) {
	m.s.View = v
	m.s.Modal = game.ModalNone
}

// beginLoading flips the session into the transient LOADING view and
// returns the token a completion must present to apply its result. Callers
// hold the lock.
func (m *Manager) beginLoading() string {
	m.setView(game.ViewLoading)
	m.loadingToken = uuid.NewString()
	return m.loadingToken
}

// stillLoading reports whether the LOADING pass identified by token is the
// one currently in flight. Callers hold the lock.
func (m *Manager) stillLoading(token string) bool {
	return m.s.View == game.ViewLoading && m.loadingToken == token
}

// archiveCurrentRun writes the summary of the run being discarded. Failures
// are logged, not surfaced: archival must never block a reset.
func (m *Manager) archiveCurrentRun() {
	a := game.ArchiveFromSession(m.s)
	if a == nil || m.repo == nil {
		return
	}
	if err := m.repo.AppendArchive(a); err != nil {
		logging.Error("failed to archive finished run", err, logging.Fields{constants.LogFieldClient: a.ClientName})
	}
}

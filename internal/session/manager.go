package session

import (
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// State is the session manager's lifecycle state. Before the identity
// provider reports anything the session is unresolved; afterwards the
// state mirrors the resolved role.
type State string

const (
	StateUnresolved State = "unresolved"
	StateGuest      State = State(domain.RoleGuest)
	StateStudent    State = State(domain.RoleStudent)
	StateTutor      State = State(domain.RoleTutor)
	StateStaff      State = State(domain.RoleStaff)
)

// Observer receives role transitions. principal is nil for guest.
type Observer func(role domain.Role, principal *domain.Principal)

// observerBufferSize bounds queued notifications per observer before
// further transitions are dropped for that observer.
const observerBufferSize = 64

type notification struct {
	role      domain.Role
	principal *domain.Principal
}

type observerEntry struct {
	ch chan notification
}

// Manager owns the current principal/role pair for one session and
// fans transitions out to registered observers. One instance per
// session; callers inject it rather than reading ambient globals.
//
// Each observer is pumped by its own goroutine over a buffered channel,
// so a slow or panicking observer cannot delay the others while
// per-observer delivery still follows transition order.
type Manager struct {
	mu          sync.Mutex
	state       State
	role        domain.Role
	principal   *domain.Principal
	observers   []*observerEntry
	readyCbs    []func()
	ready       bool
	closed      bool
	affordances []Affordance
	visible     []string
	logger      *zap.Logger
}

// NewManager builds a manager in the unresolved state using the given
// affordance registry (nil means DefaultAffordances).
func NewManager(affordances []Affordance, logger *zap.Logger) *Manager {
	if affordances == nil {
		affordances = DefaultAffordances
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		state:       StateUnresolved,
		affordances: affordances,
		logger:      logger,
	}
}

// SignedIn records an identity-provider "signed in" report and
// transitions to the principal's resolved role.
func (m *Manager) SignedIn(principal *domain.Principal) {
	if principal == nil {
		m.SignedOut()
		return
	}
	m.transition(State(principal.Role), principal.Role, principal)
}

// SignedOut records a "signed out" report and transitions to guest.
func (m *Manager) SignedOut() {
	m.transition(StateGuest, domain.RoleGuest, nil)
}

// OnRoleChange registers an observer. Late registrants immediately
// receive the current state unless the session is still unresolved.
func (m *Manager) OnRoleChange(fn Observer) {
	entry := &observerEntry{ch: make(chan notification, observerBufferSize)}
	go m.pump(entry, fn)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		close(entry.ch)
		return
	}
	m.observers = append(m.observers, entry)
	if m.state != StateUnresolved {
		m.send(entry, notification{role: m.role, principal: m.principal})
	}
	m.mu.Unlock()
}

// OnReady registers a callback fired once after the first provider
// report. Registration after readiness invokes the callback at once.
func (m *Manager) OnReady(fn func()) {
	m.mu.Lock()
	if m.ready {
		m.mu.Unlock()
		go fn()
		return
	}
	m.readyCbs = append(m.readyCbs, fn)
	m.mu.Unlock()
}

// Close stops observer delivery. Pending buffered notifications drain
// before each pump goroutine exits.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for _, entry := range m.observers {
		close(entry.ch)
	}
	m.observers = nil
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Role returns the current role; guest while unresolved.
func (m *Manager) Role() domain.Role {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateUnresolved {
		return domain.RoleGuest
	}
	return m.role
}

// Principal returns the current principal, nil when signed out.
func (m *Manager) Principal() *domain.Principal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.principal
}

// Visible returns the affordance tags shown for the current role.
func (m *Manager) Visible() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.visible...)
}

func (m *Manager) transition(state State, role domain.Role, principal *domain.Principal) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.state = state
	m.role = role
	m.principal = principal
	m.visible = VisibleTags(m.affordances, role)

	var readyCbs []func()
	if !m.ready {
		m.ready = true
		readyCbs = m.readyCbs
		m.readyCbs = nil
	}
	note := notification{role: role, principal: principal}
	for _, entry := range m.observers {
		m.send(entry, note)
	}
	m.mu.Unlock()

	for _, fn := range readyCbs {
		go fn()
	}
}

func (m *Manager) send(entry *observerEntry, note notification) {
	select {
	case entry.ch <- note:
	default:
		m.logger.Warn("role observer backlog full, dropping notification",
			zap.String("role", string(note.role)))
	}
}

func (m *Manager) pump(entry *observerEntry, fn Observer) {
	for note := range entry.ch {
		m.deliver(fn, note)
	}
}

func (m *Manager) deliver(fn Observer, note notification) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("role observer panicked", zap.Any("panic", r))
		}
	}()
	fn(note.role, note.principal)
}

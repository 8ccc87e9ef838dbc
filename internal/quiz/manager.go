package quiz

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// outbox collects what a controller asked for during one request.
type outbox struct {
	notices []Notice
	target  string
}

func (o *outbox) Notify(n Notice)        { o.notices = append(o.notices, n) }
func (o *outbox) Navigate(target string) { o.target = target }

func (o *outbox) drain() ([]Notice, string) {
	n, t := o.notices, o.target
	o.notices, o.target = nil, ""
	return n, t
}

// Outcome is the result of one operation on a live session.
type Outcome struct {
	Snapshot   Snapshot `json:"session"`
	Notices    []Notice `json:"notices,omitempty"`
	NavigateTo string   `json:"navigateTo,omitempty"`
}

// Entry is a live session held by the Manager.
type Entry struct {
	ID    string
	Owner string

	mu      sync.Mutex
	quiz    Quiz
	ctrl    *Controller
	box     *outbox
	now     func() time.Time
	touched atomic.Int64
}

func newEntry(id, owner string, q Quiz, now func() time.Time) (*Entry, error) {
	e := &Entry{ID: id, Owner: owner, quiz: q.Clone(), now: now}
	if err := e.reset(); err != nil {
		return nil, err
	}
	e.touch()
	return e, nil
}

func (e *Entry) touch() { e.touched.Store(e.now().UnixNano()) }

func (e *Entry) reset() error {
	s, err := NewSession(e.quiz)
	if err != nil {
		return err
	}
	e.box = &outbox{}
	e.ctrl = NewController(s, e.box, e.box)
	return nil
}

// Do runs fn against the session's controller with exclusive access. The
// outcome reflects the state after fn, including any notices it raised.
func (e *Entry) Do(fn func(c *Controller) error) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touch()

	err := fn(e.ctrl)
	notices, target := e.box.drain()
	return Outcome{Snapshot: e.ctrl.Session().Snapshot(), Notices: notices, NavigateTo: target}, err
}

// Manager keeps sessions in memory only. Nothing here survives a restart.
type Manager struct {
	quizzes Loader
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Entry
}

func NewManager(quizzes Loader, idleTTL time.Duration) *Manager {
	if idleTTL <= 0 {
		idleTTL = 2 * time.Hour
	}
	return &Manager{
		quizzes:  quizzes,
		idleTTL:  idleTTL,
		now:      time.Now,
		sessions: map[string]*Entry{},
	}
}

// Start loads the quiz and opens a session for owner. A missing quiz yields
// ErrQuizNotFound and no session. An owner holds at most one live session per
// quiz: starting again replaces the previous attempt.
func (m *Manager) Start(ctx context.Context, quizID, owner string) (*Entry, error) {
	q, err := m.quizzes.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}
	e, err := newEntry(uuid.NewString(), owner, q, m.now)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, old := range m.sessions {
		if old.Owner == owner && old.quiz.ID == e.quiz.ID {
			delete(m.sessions, id)
		}
	}
	m.sessions[e.ID] = e
	return e, nil
}

// Get returns the owner's session. Sessions of other owners are reported as missing.
func (m *Manager) Get(id, owner string) (*Entry, error) {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok || e.Owner != owner {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

// Restart discards the attempt and begins again at the first question.
func (m *Manager) Restart(id, owner string) (Outcome, error) {
	e, err := m.Get(id, owner)
	if err != nil {
		return Outcome{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.reset(); err != nil {
		return Outcome{}, err
	}
	e.touch()
	return Outcome{Snapshot: e.ctrl.Session().Snapshot()}, nil
}

// Leave drops the session.
func (m *Manager) Leave(id, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok || e.Owner != owner {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many went.
func (m *Manager) Sweep(now time.Time) int {
	cutoff := now.Add(-m.idleTTL).UnixNano()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		if e.touched.Load() < cutoff {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps on every tick until ctx is done.
func (m *Manager) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := m.Sweep(now); n > 0 {
				log.Printf("quiz: expired %d idle sessions", n)
			}
		}
	}
}

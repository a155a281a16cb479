package memory

import (
	"sync"
	"time"

	"insightsmith-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionStats is a point-in-time summary of the store.
type SessionStats struct {
	TotalSessions  int `json:"total_sessions"`
	ActiveSessions int `json:"active_sessions"`
	TotalMessages  int `json:"total_messages"`
}

// sessionRecord pairs a session with its own lock. Mutations on one session
// are atomic; sessions under different ids never contend.
type sessionRecord struct {
	mu      sync.Mutex
	session *entity.Session
}

// SessionRepository keeps all live conversation sessions in memory.
// Expiry is not delegated to the cache janitor: sessions are stored without
// TTL and reaped explicitly by SweepExpired, keyed on UpdatedAt, so a
// refreshed session never dies mid-conversation.
type SessionRepository struct {
	cache *cache.Cache
	now   func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		cache: cache.New(cache.NoExpiration, 0),
		now:   time.Now,
	}
}

// Create allocates a new session with the given initial mode.
func (r *SessionRepository) Create(initialMode string) *entity.Session {
	now := r.now()
	record := &sessionRecord{
		session: &entity.Session{
			Id:          uuid.New(),
			Messages:    []entity.ChatMessage{},
			CurrentMode: initialMode,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
	r.cache.Set(record.session.Id.String(), record, cache.NoExpiration)
	return snapshot(record.session)
}

// Get returns a snapshot of the session, or (nil, false) when unknown.
// Callers never share memory with the stored record.
func (r *SessionRepository) Get(sessionId uuid.UUID) (*entity.Session, bool) {
	record, found := r.record(sessionId)
	if !found {
		return nil, false
	}
	record.mu.Lock()
	defer record.mu.Unlock()
	return snapshot(record.session), true
}

// AppendMessage pushes a message to the end of the session's history and
// refreshes UpdatedAt. Returns (nil, false) when the session is unknown,
// e.g. because the sweeper got there first; callers recover by creating a
// fresh session.
func (r *SessionRepository) AppendMessage(sessionId uuid.UUID, message entity.ChatMessage) (*entity.Session, bool) {
	record, found := r.record(sessionId)
	if !found {
		return nil, false
	}
	record.mu.Lock()
	defer record.mu.Unlock()
	record.session.Messages = append(record.session.Messages, message)
	record.session.UpdatedAt = r.now()
	return snapshot(record.session), true
}

// UpdateMode switches the session's current mode.
func (r *SessionRepository) UpdateMode(sessionId uuid.UUID, mode string) (*entity.Session, bool) {
	record, found := r.record(sessionId)
	if !found {
		return nil, false
	}
	record.mu.Lock()
	defer record.mu.Unlock()
	record.session.CurrentMode = mode
	record.session.UpdatedAt = r.now()
	return snapshot(record.session), true
}

// ClearMessages empties the history while keeping the session id and mode.
func (r *SessionRepository) ClearMessages(sessionId uuid.UUID) bool {
	record, found := r.record(sessionId)
	if !found {
		return false
	}
	record.mu.Lock()
	defer record.mu.Unlock()
	record.session.Messages = []entity.ChatMessage{}
	record.session.UpdatedAt = r.now()
	return true
}

// Delete removes the session entirely.
func (r *SessionRepository) Delete(sessionId uuid.UUID) bool {
	key := sessionId.String()
	if _, found := r.cache.Get(key); !found {
		return false
	}
	r.cache.Delete(key)
	return true
}

// SweepExpired removes every session whose UpdatedAt is older than
// now - threshold and returns how many were removed. Safe to interleave with
// concurrent reads and appends: an append racing a sweep either refreshes
// UpdatedAt in time or fails not-found afterwards, which callers treat as a
// stale session.
func (r *SessionRepository) SweepExpired(threshold time.Duration) int {
	cutoff := r.now().Add(-threshold)
	deleted := 0
	for key, item := range r.cache.Items() {
		record := item.Object.(*sessionRecord)
		record.mu.Lock()
		stale := record.session.UpdatedAt.Before(cutoff)
		record.mu.Unlock()
		if stale {
			r.cache.Delete(key)
			deleted++
		}
	}
	return deleted
}

// Stats reports totals across the store. A session counts as active when it
// was touched within the threshold.
func (r *SessionRepository) Stats(threshold time.Duration) SessionStats {
	cutoff := r.now().Add(-threshold)
	stats := SessionStats{}
	for _, item := range r.cache.Items() {
		record := item.Object.(*sessionRecord)
		record.mu.Lock()
		stats.TotalSessions++
		if !record.session.UpdatedAt.Before(cutoff) {
			stats.ActiveSessions++
		}
		stats.TotalMessages += len(record.session.Messages)
		record.mu.Unlock()
	}
	return stats
}

func (r *SessionRepository) record(sessionId uuid.UUID) (*sessionRecord, bool) {
	if x, found := r.cache.Get(sessionId.String()); found {
		return x.(*sessionRecord), true
	}
	return nil, false
}

func snapshot(s *entity.Session) *entity.Session {
	messages := make([]entity.ChatMessage, len(s.Messages))
	copy(messages, s.Messages)
	return &entity.Session{
		Id:          s.Id,
		Messages:    messages,
		CurrentMode: s.CurrentMode,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

package interview

import "sync"

// Store is the live working set of in-progress sessions. Mutations on one
// session id are serialised through a per-entry lock; distinct ids never
// block each other. The store is memory-only: a process restart loses all
// in-progress sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*storeEntry
}

type storeEntry struct {
	mu      sync.Mutex
	session *Session
}

// NewStore builds an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*storeEntry)}
}

// Create inserts a session into the live set.
func (st *Store) Create(session *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[session.ID] = &storeEntry{session: session}
}

// Update runs fn against the session under its exclusive lock. Returns
// ErrSessionNotFound when the id is not live.
func (st *Store) Update(id string, fn func(*Session) error) error {
	entry, ok := st.lookup(id)
	if !ok {
		return ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	// The entry may have been removed between lookup and lock.
	if _, stillLive := st.lookup(id); !stillLive {
		return ErrSessionNotFound
	}

	return fn(entry.session)
}

// Remove runs fn under the session's exclusive lock and, when fn succeeds,
// removes the session from the live set. On failure the session stays live
// so the operation can be retried.
func (st *Store) Remove(id string, fn func(*Session) error) error {
	entry, ok := st.lookup(id)
	if !ok {
		return ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if _, stillLive := st.lookup(id); !stillLive {
		return ErrSessionNotFound
	}

	if err := fn(entry.session); err != nil {
		return err
	}

	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()

	return nil
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *Store) lookup(id string) (*storeEntry, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	entry, ok := st.sessions[id]
	return entry, ok
}

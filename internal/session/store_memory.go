package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryStore keeps sessions and results in maps, guarded by a RWMutex.
// Used for tests and single-process dev runs; production uses SQLStore.
type memoryStore struct {
	mu       sync.RWMutex
	catalog  Catalog
	sessions map[string]Session
	results  map[string]Record
	now      func() time.Time
}

func NewInMemoryStore(catalog Catalog) Store {
	return &memoryStore{
		catalog:  catalog,
		sessions: map[string]Session{},
		results:  map[string]Record{},
		now:      time.Now,
	}
}

func (m *memoryStore) Start(questionnaireID, userID string) (Session, error) {
	if _, ok := m.catalog(questionnaireID); !ok {
		return Session{}, ErrUnknownCatalog
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Session{
		ID:              uuid.NewString(),
		QuestionnaireID: questionnaireID,
		UserID:          userID,
		Phase:           PhaseIntro,
		Answers:         map[int][]int{},
		StartedAt:       m.now().Unix(),
	}
	m.sessions[s.ID] = s
	return cloneSession(s), nil
}

func (m *memoryStore) Get(id string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return cloneSession(s), nil
}

func (m *memoryStore) Answer(id string, questionID, option int) (Session, error) {
	return m.update(id, func(s *Session) error {
		q, _ := m.catalog(s.QuestionnaireID)
		return applyAnswer(s, q, questionID, option)
	})
}

func (m *memoryStore) Advance(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	q, _ := m.catalog(s.QuestionnaireID)
	finalize, err := advance(&s, q)
	if err != nil {
		return Session{}, err
	}
	if finalize {
		m.finalizeLocked(&s)
	}
	m.sessions[id] = s
	return cloneSession(s), nil
}

func (m *memoryStore) Back(id string) (Session, error) {
	return m.update(id, func(s *Session) error { return back(s) })
}

func (m *memoryStore) Submit(id string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	if s.Phase == PhaseResult {
		return m.results[s.ResultID], nil
	}
	m.finalizeLocked(&s)
	m.sessions[id] = s
	return m.results[s.ResultID], nil
}

func (m *memoryStore) Retake(id string) (Session, error) {
	return m.update(id, func(s *Session) error { return retake(s) })
}

func (m *memoryStore) GetResult(resultID string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.results[resultID]
	if !ok {
		return Record{}, ErrResultNotFound
	}
	return r, nil
}

func (m *memoryStore) ListResults(userID string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Record
	for _, r := range m.results {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt > out[j].CompletedAt })
	return out, nil
}

func (m *memoryStore) update(id string, fn func(*Session) error) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	if err := fn(&s); err != nil {
		return Session{}, err
	}
	m.sessions[id] = s
	return cloneSession(s), nil
}

func (m *memoryStore) finalizeLocked(s *Session) {
	q, _ := m.catalog(s.QuestionnaireID)
	rec := buildRecord(uuid.NewString(), *s, q, m.now().Unix())
	m.results[rec.ID] = rec
	s.Phase = PhaseResult
	s.ResultID = rec.ID
}

func cloneSession(s Session) Session {
	s.Answers = s.Answers.Clone()
	return s
}

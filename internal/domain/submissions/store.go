package submissions

import (
	"sync"

	"doralyzer/internal/domain/model"
)

// Store holds the session's submissions and drafts. Insertion order is
// preserved for listing. Update and Delete report whether the identity key
// was present so callers can tell "nothing changed" from "key not found".
type Store interface {
	AddSubmission(s model.Submission) error
	UpdateSubmission(s model.Submission) (bool, error)
	DeleteSubmission(key int64) (bool, error)
	GetSubmission(key int64) (model.Submission, bool, error)
	ListSubmissions() ([]model.Submission, error)

	AddDraft(d model.Draft) error
	UpdateDraft(d model.Draft) (bool, error)
	DeleteDraft(key int64) (bool, error)
	GetDraft(key int64) (model.Draft, bool, error)
	ListDrafts() ([]model.Draft, error)
}

// NewStore returns a Store implementation for the configured storage type:
// "file" persists the session to a JSON file, anything else is in-memory.
func NewStore(storageType, filename string) Store {
	if storageType == "file" {
		return NewFileStore(filename)
	}
	return NewMemoryStore()
}

// MemoryStore is the in-memory implementation; state lives for the process
// lifetime only.
type MemoryStore struct {
	mu          sync.RWMutex
	submissions []model.Submission
	drafts      []model.Draft
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) AddSubmission(s model.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions = append(m.submissions, s)
	return nil
}

func (m *MemoryStore) UpdateSubmission(s model.Submission) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.submissions {
		if m.submissions[i].Key() == s.Key() {
			m.submissions[i] = s
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) DeleteSubmission(key int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.submissions {
		if m.submissions[i].Key() == key {
			m.submissions = append(m.submissions[:i], m.submissions[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) GetSubmission(key int64) (model.Submission, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.submissions {
		if s.Key() == key {
			return s, true, nil
		}
	}
	return model.Submission{}, false, nil
}

func (m *MemoryStore) ListSubmissions() ([]model.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Submission, len(m.submissions))
	copy(out, m.submissions)
	return out, nil
}

func (m *MemoryStore) AddDraft(d model.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts = append(m.drafts, d)
	return nil
}

func (m *MemoryStore) UpdateDraft(d model.Draft) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.drafts {
		if m.drafts[i].Key() == d.Key() {
			m.drafts[i] = d
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) DeleteDraft(key int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.drafts {
		if m.drafts[i].Key() == key {
			m.drafts = append(m.drafts[:i], m.drafts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) GetDraft(key int64) (model.Draft, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.drafts {
		if d.Key() == key {
			return d, true, nil
		}
	}
	return model.Draft{}, false, nil
}

func (m *MemoryStore) ListDrafts() ([]model.Draft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Draft, len(m.drafts))
	copy(out, m.drafts)
	return out, nil
}

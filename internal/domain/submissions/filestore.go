package submissions

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"doralyzer/internal/domain/model"
)

type fileState struct {
	Submissions []model.Submission `json:"submissions"`
	Drafts      []model.Draft      `json:"drafts"`
}

// FileStore persists the session to a JSON file so an interrupted session
// survives a restart. Every operation loads, mutates and rewrites the file.
type FileStore struct {
	filename string
	mu       sync.Mutex
}

// NewFileStore creates a FileStore backed by the given file. A missing
// file is initialized with an empty state.
func NewFileStore(filename string) *FileStore {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		data, _ := json.Marshal(fileState{})
		_ = os.WriteFile(filename, data, 0644)
	}
	return &FileStore{filename: filename}
}

func (f *FileStore) load() (fileState, error) {
	data, err := os.ReadFile(f.filename)
	if err != nil {
		return fileState{}, fmt.Errorf("failed to read file %s: %w", f.filename, err)
	}
	if len(data) == 0 {
		return fileState{}, nil
	}
	var st fileState
	if err := json.Unmarshal(data, &st); err != nil {
		return fileState{}, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return st, nil
}

func (f *FileStore) save(st fileState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(f.filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", f.filename, err)
	}
	return nil
}

func (f *FileStore) AddSubmission(s model.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.load()
	if err != nil {
		return err
	}
	st.Submissions = append(st.Submissions, s)
	return f.save(st)
}

func (f *FileStore) UpdateSubmission(s model.Submission) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.load()
	if err != nil {
		return false, err
	}
	for i := range st.Submissions {
		if st.Submissions[i].Key() == s.Key() {
			st.Submissions[i] = s
			return true, f.save(st)
		}
	}
	return false, nil
}

func (f *FileStore) DeleteSubmission(key int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.load()
	if err != nil {
		return false, err
	}
	for i := range st.Submissions {
		if st.Submissions[i].Key() == key {
			st.Submissions = append(st.Submissions[:i], st.Submissions[i+1:]...)
			return true, f.save(st)
		}
	}
	return false, nil
}

func (f *FileStore) GetSubmission(key int64) (model.Submission, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.load()
	if err != nil {
		return model.Submission{}, false, err
	}
	for _, s := range st.Submissions {
		if s.Key() == key {
			return s, true, nil
		}
	}
	return model.Submission{}, false, nil
}

func (f *FileStore) ListSubmissions() ([]model.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.load()
	if err != nil {
		return nil, err
	}
	return st.Submissions, nil
}

func (f *FileStore) AddDraft(d model.Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.load()
	if err != nil {
		return err
	}
	st.Drafts = append(st.Drafts, d)
	return f.save(st)
}

func (f *FileStore) UpdateDraft(d model.Draft) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.load()
	if err != nil {
		return false, err
	}
	for i := range st.Drafts {
		if st.Drafts[i].Key() == d.Key() {
			st.Drafts[i] = d
			return true, f.save(st)
		}
	}
	return false, nil
}

func (f *FileStore) DeleteDraft(key int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.load()
	if err != nil {
		return false, err
	}
	for i := range st.Drafts {
		if st.Drafts[i].Key() == key {
			st.Drafts = append(st.Drafts[:i], st.Drafts[i+1:]...)
			return true, f.save(st)
		}
	}
	return false, nil
}

func (f *FileStore) GetDraft(key int64) (model.Draft, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.load()
	if err != nil {
		return model.Draft{}, false, err
	}
	for _, d := range st.Drafts {
		if d.Key() == key {
			return d, true, nil
		}
	}
	return model.Draft{}, false, nil
}

func (f *FileStore) ListDrafts() ([]model.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.load()
	if err != nil {
		return nil, err
	}
	return st.Drafts, nil
}

package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/opostest/backend/internal/models"
)

// FileReviewStore persists review state to a single JSON file, keyed by
// session. It backs the file bank mode, where no database is configured.
type FileReviewStore struct {
	path string
	mu   sync.Mutex
}

func NewFileReviewStore(path string) *FileReviewStore {
	return &FileReviewStore{path: path}
}

func (f *FileReviewStore) SaveReview(sessionKey string, state models.ReviewState) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := f.readAll()
	all[sessionKey] = state

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal review state: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("write review state: %w", err)
	}
	return nil
}

func (f *FileReviewStore) LoadReview(sessionKey string) (models.ReviewState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readAll()[sessionKey], nil
}

// readAll loads the whole state file, degrading to an empty map when the
// file is missing or unreadable. Callers hold f.mu.
func (f *FileReviewStore) readAll() map[string]models.ReviewState {
	all := make(map[string]models.ReviewState)
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: could not read review state file %s: %v", f.path, err)
		}
		return all
	}
	if err := json.Unmarshal(data, &all); err != nil {
		log.Printf("WARN: discarding unreadable review state file %s: %v", f.path, err)
		return make(map[string]models.ReviewState)
	}
	return all
}

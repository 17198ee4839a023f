package prompts

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
)

// file shape: {"promptsCalibracion": {"titulo": "...", ...}}
type fileData struct {
	PromptsCalibracion map[string]string `json:"promptsCalibracion"`
}

// Store holds the calibration prompt per section, backed by a JSON file
// that is rewritten wholesale on every update.
type Store struct {
	mu      sync.RWMutex
	path    string
	prompts map[string]string
}

// Load reads the backing file. A missing or malformed file is an error;
// main treats it as a fatal startup condition.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}
	var fd fileData
	if err := json.Unmarshal(data, &fd); err != nil {
		return nil, fmt.Errorf("parse prompts file: %w", err)
	}
	if fd.PromptsCalibracion == nil {
		return nil, fmt.Errorf("prompts file %s is missing the promptsCalibracion key", path)
	}
	log.Printf("[prompts] loaded %d calibration prompts from %s", len(fd.PromptsCalibracion), path)
	return &Store{path: path, prompts: fd.PromptsCalibracion}, nil
}

// Get returns the calibration prompt for a section, or "" when none is set.
func (s *Store) Get(section string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prompts[section]
}

// All returns a copy of the current configuration.
func (s *Store) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.prompts))
	for k, v := range s.prompts {
		out[k] = v
	}
	return out
}

// Merge shallow-merges the given prompts over the current configuration,
// persists the result and returns a copy of the merged map.
func (s *Store) Merge(partial map[string]string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range partial {
		s.prompts[k] = v
	}
	if err := s.saveNoLock(); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(s.prompts))
	for k, v := range s.prompts {
		out[k] = v
	}
	return out, nil
}

// Save rewrites the backing file with the current configuration.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveNoLock()
}

func (s *Store) saveNoLock() error {
	data, err := json.MarshalIndent(fileData{PromptsCalibracion: s.prompts}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode prompts: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write prompts file: %w", err)
	}
	return nil
}

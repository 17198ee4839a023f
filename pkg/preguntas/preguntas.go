package preguntas

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Respuestas are the four initial planning answers a user gives before
// working on the outline sections.
type Respuestas struct {
	Tema      string `json:"tema"`
	Proposito string `json:"proposito"`
	Audiencia string `json:"audiencia"`
	Tiempo    string `json:"tiempo"`
}

// Store keeps the current answers in memory and mirrors resets to a JSON
// file. Like the section state, it is process-wide and unpartitioned.
type Store struct {
	mu      sync.Mutex
	path    string
	current Respuestas
}

func New(path string) *Store {
	return &Store{path: path}
}

// Set replaces the current answers.
func (s *Store) Set(r Respuestas) {
	s.mu.Lock()
	s.current = r
	s.mu.Unlock()
}

// Clear resets the answers and persists the empty state to the backing file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Respuestas{}
	data, err := json.MarshalIndent(s.current, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preguntas: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write preguntas file: %w", err)
	}
	return nil
}

// Current returns the stored answers.
func (s *Store) Current() Respuestas {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

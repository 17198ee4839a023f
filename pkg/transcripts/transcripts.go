package transcripts

import (
	"strings"
	"sync"
)

// Secciones lists the eight recognized outline sections, in sermon order.
var Secciones = []string{
	"titulo",
	"introduccion",
	"costura",
	"problematica",
	"conector",
	"desarrollo",
	"conclusion",
	"ministracion",
}

// Store holds the latest transcribed text per section for the current
// process. It is shared across all requests and only resets on restart.
type Store struct {
	mu    sync.RWMutex
	texts map[string]string
}

var (
	defaultStore *Store
	once         sync.Once
)

// Default returns the process-wide store.
func Default() *Store {
	once.Do(func() {
		defaultStore = New()
	})
	return defaultStore
}

func New() *Store {
	return &Store{texts: make(map[string]string)}
}

// Set records text for a section. Unknown section names are stored too;
// they just never count toward AllFilled.
func (s *Store) Set(section, text string) {
	s.mu.Lock()
	s.texts[section] = text
	s.mu.Unlock()
}

// Get returns the stored text for a section, or "" when unset.
func (s *Store) Get(section string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.texts[section]
}

// AllFilled reports whether every recognized section has non-blank text.
func (s *Store) AllFilled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sec := range Secciones {
		if strings.TrimSpace(s.texts[sec]) == "" {
			return false
		}
	}
	return true
}

// Snapshot returns a copy of the recognized sections' texts.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(Secciones))
	for _, sec := range Secciones {
		out[sec] = s.texts[sec]
	}
	return out
}

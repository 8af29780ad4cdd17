package conversation

import (
	"sync"
	"time"

	"shopfront/app/service/catalog"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleError     Role = "error"
)

// Turn is one message in a conversation. Turns are append-only; attached
// suggestions are never mutated after the turn is stored.
type Turn struct {
	Role        Role              `json:"role"`
	Content     string            `json:"content"`
	Timestamp   time.Time         `json:"timestamp"`
	Suggestions []catalog.Product `json:"suggestions,omitempty"`
	Suggested   bool              `json:"suggested,omitempty"`
}

// UserProfile accumulates per-session preference signals. Windows are FIFO:
// the oldest entry is evicted first.
type UserProfile struct {
	RecentSearches []string `json:"recent_searches"`
	Interests      []string `json:"interests"`
	PriceMin       float64  `json:"price_min"`
	PriceMax       float64  `json:"price_max"`
}

func (p *UserProfile) recordSearch(text string, window int) {
	p.RecentSearches = append(p.RecentSearches, text)
	if len(p.RecentSearches) > window {
		p.RecentSearches = p.RecentSearches[len(p.RecentSearches)-window:]
	}
}

func (p *UserProfile) recordInterest(category string, window int) {
	for i, existing := range p.Interests {
		if existing == category {
			// Already known: move to the most recent slot instead of growing.
			p.Interests = append(append(p.Interests[:i], p.Interests[i+1:]...), category)
			return
		}
	}

	p.Interests = append(p.Interests, category)
	if len(p.Interests) > window {
		p.Interests = p.Interests[len(p.Interests)-window:]
	}
}

// Session holds all mutable state of one conversation. Turns are strictly
// serialized: the mutex is held for the whole of ProcessMessage.
type Session struct {
	ID string

	mu            sync.Mutex
	turns         []Turn
	lastSuggested []catalog.Product
	profile       UserProfile
}

func (s *Session) appendTurn(turn Turn) {
	s.turns = append(s.turns, turn)
}

// Turns returns a copy of the conversation so far.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Turn, len(s.turns))
	copy(result, s.turns)

	return result
}

// LastSuggested returns a copy of the current referent window.
func (s *Session) LastSuggested() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]catalog.Product, len(s.lastSuggested))
	copy(result, s.lastSuggested)

	return result
}

func (s *Session) Profile() UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.profile
}

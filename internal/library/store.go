package library

import (
	"strings"
	"sync"

	"github.com/chenwei791129/gamehub/pkg/catalog"
)

// Persister receives a copy of the whole library after every mutation.
// Persist is called with the store locked, so snapshots arrive in mutation order;
// it must not block or call back into the store.
type Persister interface {
	Persist(games []Game)
}

// Change describes what happened to the store
type Change int

const (
	// ChangeLoaded means the whole library was replaced
	ChangeLoaded Change = iota
	// ChangeAdded means a game was appended
	ChangeAdded
	// ChangeRemoved means a game was removed
	ChangeRemoved
	// ChangeUpdated means a game's fields were edited
	ChangeUpdated
	// ChangeFilter means the category or search text changed
	ChangeFilter
)

// String returns a short label for logs
func (c Change) String() string {
	switch c {
	case ChangeLoaded:
		return "loaded"
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeUpdated:
		return "updated"
	case ChangeFilter:
		return "filter"
	default:
		return "unknown"
	}
}

// Listener is notified after the store changed and the view was recomputed
type Listener func(change Change)

// Store owns the library collection and the filtered view derived from it.
// All mutation goes through its methods. Games are identified by pointer, so
// callers keep the *Game they got from the store to remove or edit it, and must
// not modify a *Game except inside Update.
type Store struct {
	mu        sync.Mutex
	games     []*Game
	view      []*Game
	category  string
	search    string
	persister Persister

	listeners map[int]Listener
	nextID    int
}

// NewStore creates an empty store. persister may be nil.
func NewStore(persister Persister) *Store {
	return &Store{
		games:     []*Game{},
		view:      []*Game{},
		category:  catalog.AllCategories,
		persister: persister,
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers fn for change notifications and returns a function removing it
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Replace swaps in a freshly loaded library without persisting it
func (s *Store) Replace(games []*Game) {
	s.mu.Lock()
	s.games = make([]*Game, 0, len(games))
	for _, g := range games {
		if g != nil {
			s.games = append(s.games, g)
		}
	}
	s.refilterLocked()
	s.mu.Unlock()

	s.notify(ChangeLoaded)
}

// Add appends a game to the library
func (s *Store) Add(g *Game) error {
	if err := g.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.games = append(s.games, g)
	s.refilterLocked()
	s.persist(Snapshot(s.games))
	s.mu.Unlock()

	s.notify(ChangeAdded)
	return nil
}

// Remove deletes the given game, matched by identity
func (s *Store) Remove(g *Game) error {
	s.mu.Lock()
	idx := s.indexLocked(g)
	if idx < 0 {
		s.mu.Unlock()
		return ErrGameNotFound
	}
	s.games = append(s.games[:idx], s.games[idx+1:]...)
	s.refilterLocked()
	s.persist(Snapshot(s.games))
	s.mu.Unlock()

	s.notify(ChangeRemoved)
	return nil
}

// Update applies edit to the given game and persists the result
func (s *Store) Update(g *Game, edit func(*Game)) error {
	s.mu.Lock()
	if s.indexLocked(g) < 0 {
		s.mu.Unlock()
		return ErrGameNotFound
	}
	edit(g)
	s.refilterLocked()
	s.persist(Snapshot(s.games))
	s.mu.Unlock()

	s.notify(ChangeUpdated)
	return nil
}

// SetCategory changes the category filter and recomputes the view
func (s *Store) SetCategory(category string) {
	s.mu.Lock()
	s.category = category
	s.refilterLocked()
	s.mu.Unlock()

	s.notify(ChangeFilter)
}

// SetSearch changes the search text and recomputes the view
func (s *Store) SetSearch(text string) {
	s.mu.Lock()
	s.search = text
	s.refilterLocked()
	s.mu.Unlock()

	s.notify(ChangeFilter)
}

// Category returns the current category filter
func (s *Store) Category() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// Search returns the current search text
func (s *Store) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// Games returns the library in insertion order
func (s *Store) Games() []*Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Game(nil), s.games...)
}

// View returns the filtered, sorted games
func (s *Store) View() []*Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Game(nil), s.view...)
}

// Len returns the number of games in the library
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// Find returns the games whose title equals title, ignoring case
func (s *Store) Find(title string) []*Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found []*Game
	for _, g := range s.games {
		if strings.EqualFold(g.Title, title) {
			found = append(found, g)
		}
	}
	return found
}

// Executables maps every game to its executable path. Safe to call from any goroutine.
func (s *Store) Executables() map[*Game]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths := make(map[*Game]string, len(s.games))
	for _, g := range s.games {
		paths[g] = g.ExecutablePath
	}
	return paths
}

// Contains reports whether g is part of the library
func (s *Store) Contains(g *Game) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(g) >= 0
}

func (s *Store) indexLocked(g *Game) int {
	for i, candidate := range s.games {
		if candidate == g {
			return i
		}
	}
	return -1
}

func (s *Store) refilterLocked() {
	s.view = Filter(s.games, s.category, s.search)
}

// persist runs with s.mu held
func (s *Store) persist(snapshot []Game) {
	if s.persister != nil {
		s.persister.Persist(snapshot)
	}
}

// notify calls listeners outside the lock so they can read the store
func (s *Store) notify(change Change) {
	s.mu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(change)
	}
}

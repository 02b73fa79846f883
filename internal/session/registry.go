package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"xiangqi/internal/storage"
	"xiangqi/internal/xiangqi"
)

// ErrSessionNotFound is returned for unknown or already-evicted session ids.
var ErrSessionNotFound = errors.New("session not found")

// Session owns one game. Its mutex serializes apply/undo so two
// near-simultaneous requests for the same game cannot both read the same
// pre-move board. Independent sessions share nothing and run in parallel.
type Session struct {
	mu         sync.Mutex
	id         string
	humanSide  xiangqi.Side
	game       *xiangqi.Game
	createdAt  time.Time
	lastAccess time.Time
}

// Snapshot is the immutable view returned by every boundary operation.
type Snapshot struct {
	SessionID string         `json:"sessionId"`
	Board     xiangqi.Board  `json:"-"`
	Turn      xiangqi.Side   `json:"turn"`
	Status    xiangqi.Status `json:"status"`
	Winner    xiangqi.Side   `json:"winner"`
	InCheck   bool           `json:"inCheck"`
}

func (s *Session) snapshot() Snapshot {
	status, winner := s.game.Status()
	return Snapshot{
		SessionID: s.id,
		Board:     s.game.Board(),
		Turn:      s.game.Turn(),
		Status:    status,
		Winner:    winner,
		InCheck:   s.game.InCheck(),
	}
}

// Registry owns the id->Session mapping and is its only writer. An optional
// Store receives a write-through record of every game; a nil store disables
// recording.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	store    *storage.Store
}

// NewRegistry creates an empty registry. store may be nil.
func NewRegistry(store *storage.Store) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		store:    store,
	}
}

// NewGame creates a session with a fresh id for a human playing humanSide.
// Red moves first regardless of which side the human chose.
func (r *Registry) NewGame(humanSide xiangqi.Side) (Snapshot, error) {
	if humanSide != xiangqi.Red && humanSide != xiangqi.Black {
		return Snapshot{}, fmt.Errorf("invalid human side %v", humanSide)
	}
	now := time.Now()
	s := &Session{
		id:         uuid.NewString(),
		humanSide:  humanSide,
		game:       xiangqi.NewGame(),
		createdAt:  now,
		lastAccess: now,
	}
	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()

	if r.store != nil {
		if err := r.store.CreateGame(s.id, humanSide.String()); err != nil {
			log.Printf("record game %s: %v", s.id, err)
		}
	}
	return s.snapshot(), nil
}

func (r *Registry) get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// HumanSide returns the side the session's human player chose.
func (r *Registry) HumanSide(id string) (xiangqi.Side, error) {
	s, err := r.get(id)
	if err != nil {
		return xiangqi.NoSide, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.humanSide, nil
}

// State returns the session's current snapshot without mutating anything.
func (r *Registry) State(id string) (Snapshot, error) {
	s, err := r.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	return s.snapshot(), nil
}

// LegalMoves returns the legal destinations for the piece on from, for the
// presentation layer to highlight. Empty when from holds no piece of the
// side to move.
func (r *Registry) LegalMoves(id string, from xiangqi.Position) ([]xiangqi.Position, error) {
	s, err := r.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()

	moves := s.game.LegalMovesFrom(from)
	dests := make([]xiangqi.Position, 0, len(moves))
	for _, mv := range moves {
		dests = append(dests, mv.To)
	}
	return dests, nil
}

// ApplyMove plays from->to in the addressed session. Engine errors
// (xiangqi.ErrIllegalMove, xiangqi.ErrGameOver) pass through unchanged.
func (r *Registry) ApplyMove(id string, from, to xiangqi.Position) (Snapshot, error) {
	s, err := r.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()

	if err := s.game.Apply(from, to); err != nil {
		return Snapshot{}, err
	}
	r.record(s)
	return s.snapshot(), nil
}

// Undo reverts the last halfMoves half-moves. Engine errors pass through.
func (r *Registry) Undo(id string, halfMoves int) (Snapshot, error) {
	s, err := r.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()

	if err := s.game.Undo(halfMoves); err != nil {
		return Snapshot{}, err
	}
	r.record(s)
	return s.snapshot(), nil
}

// MoveHistory returns the session's applied moves in chronological order.
func (r *Registry) MoveHistory(id string) ([]xiangqi.Move, error) {
	s, err := r.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	return s.game.History(), nil
}

// record writes the session's history and status through to the store.
// Caller holds the session mutex. Failures are logged, never fatal: the
// in-memory registry stays authoritative.
func (r *Registry) record(s *Session) {
	if r.store == nil {
		return
	}
	status, _ := s.game.Status()
	if err := r.store.UpdateStatus(s.id, string(status)); err != nil {
		log.Printf("record status %s: %v", s.id, err)
		return
	}
	data, err := json.Marshal(s.game.History())
	if err != nil {
		log.Printf("marshal history %s: %v", s.id, err)
		return
	}
	if err := r.store.SaveHistory(s.id, string(data)); err != nil {
		log.Printf("record history %s: %v", s.id, err)
	}
}

// Info is a read-only session summary.
type Info struct {
	ID         string       `json:"id"`
	HumanSide  xiangqi.Side `json:"humanSide"`
	CreatedAt  time.Time    `json:"createdAt"`
	LastAccess time.Time    `json:"lastAccess"`
	Moves      int          `json:"moves"`
}

// List returns a summary of all live sessions.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]Info, 0, len(r.sessions))
	for _, s := range r.sessions {
		s.mu.Lock()
		infos = append(infos, Info{
			ID:         s.id,
			HumanSide:  s.humanSide,
			CreatedAt:  s.createdAt,
			LastAccess: s.lastAccess,
			Moves:      len(s.game.History()),
		})
		s.mu.Unlock()
	}
	return infos
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Remove evicts a session from memory and deletes its stored record.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	if r.store != nil {
		if err := r.store.DeleteGame(id); err != nil {
			log.Printf("delete game %s: %v", id, err)
		}
	}
}

// CleanupLoop evicts sessions idle longer than maxAge, checking every
// interval. Run it in its own goroutine.
func (r *Registry) CleanupLoop(interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		r.cleanup(maxAge)
	}
}

func (r *Registry) cleanup(maxAge time.Duration) {
	now := time.Now()
	var stale []string
	r.mu.RLock()
	for id, s := range r.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastAccess)
		s.mu.Unlock()
		if idle > maxAge {
			stale = append(stale, id)
		}
	}
	r.mu.RUnlock()
	for _, id := range stale {
		log.Printf("cleaning up session %s", id)
		r.Remove(id)
	}
}

package library

import (
	"sync"

	"go.uber.org/zap"
)

// Saver writes library snapshots to disk on a single background goroutine.
// Only the newest pending snapshot is written; older ones are superseded.
type Saver struct {
	path    string
	logger  *zap.Logger
	onError func(error)

	mu      sync.Mutex
	pending []Game
	dirty   bool
	running bool

	wakeCh   chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewSaver creates a saver for the library file at path.
// onError is called from the saver goroutine for every failed write; it may be nil.
func NewSaver(path string, logger *zap.Logger, onError func(error)) *Saver {
	return &Saver{
		path:    path,
		logger:  logger,
		onError: onError,
		wakeCh:  make(chan struct{}, 1),
	}
}

// Start launches the writer goroutine
func (s *Saver) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.writeLoop()
	}()
}

// Stop writes any pending snapshot and waits for the writer goroutine to exit.
// On a saver that was never started the pending snapshot is written inline.
func (s *Saver) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		s.flush()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
}

// Persist queues a snapshot for writing. It implements Persister.
func (s *Saver) Persist(games []Game) {
	s.mu.Lock()
	s.pending = games
	s.dirty = true
	s.mu.Unlock()

	select {
	case s.wakeCh <- struct{}{}:
	default:
		// A wake-up is already queued
	}
}

// writeLoop waits for snapshots and writes them in order
func (s *Saver) writeLoop() {
	for {
		select {
		case <-s.stopChan:
			s.flush()
			return
		case <-s.wakeCh:
			s.flush()
		}
	}
}

// flush writes the pending snapshot, if any
func (s *Saver) flush() {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	games := s.pending
	s.pending = nil
	s.dirty = false
	s.mu.Unlock()

	if err := Save(s.path, games); err != nil {
		s.logger.Error("Failed to save games", zap.String("path", s.path), zap.Error(err))
		if s.onError != nil {
			s.onError(err)
		}
		return
	}
	s.logger.Debug("Saved games", zap.String("path", s.path), zap.Int("count", len(games)))
}

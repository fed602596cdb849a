package gui

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"

	"github.com/chenwei791129/gamehub/internal/library"
	"github.com/chenwei791129/gamehub/internal/process"
)

// MonitorStatus holds one round of process checks
type MonitorStatus struct {
	Games map[*library.Game]process.Status
	Event string
}

// Monitor polls the running state of every game in the library
type Monitor struct {
	stopChan chan struct{}
	statusCh chan MonitorStatus
	window   *MainWindow
	store    *library.Store
	logger   *zap.Logger

	// previous running state, used to log starts and exits
	wasRunning map[*library.Game]bool
	mu         sync.Mutex

	// Running state
	running bool
	wg      sync.WaitGroup
}

// NewMonitor creates a new monitor instance
func NewMonitor(window *MainWindow, store *library.Store, logger *zap.Logger) *Monitor {
	return &Monitor{
		window:     window,
		store:      store,
		logger:     logger,
		statusCh:   make(chan MonitorStatus, 10),
		wasRunning: make(map[*library.Game]bool),
	}
}

// Start begins the monitoring loops
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.stopChan = make(chan struct{})
	m.mu.Unlock()

	m.wg.Add(2)
	go func() {
		defer m.wg.Done()
		m.processCheckLoop()
	}()
	go func() {
		defer m.wg.Done()
		m.statusUpdateLoop()
	}()
}

// Stop stops the monitoring loops
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	close(m.stopChan)
	m.mu.Unlock()

	// Wait for all goroutines to finish
	m.wg.Wait()
}

// IsRunning returns whether the monitor is running
func (m *Monitor) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// processCheckLoop checks the library's executables once per second
func (m *Monitor) processCheckLoop() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			if !m.checkGames() {
				return
			}
		}
	}
}

// checkGames queries every executable once and reports the result.
// It returns false when process queries are unsupported on this platform.
func (m *Monitor) checkGames() bool {
	paths := m.store.Executables()
	byPath := make(map[string]process.Status, len(paths))
	statuses := make(map[*library.Game]process.Status, len(paths))

	for g, path := range paths {
		status, seen := byPath[path]
		if !seen {
			var err error
			status, err = process.GameStatus(path)
			if errors.Is(err, process.ErrUnsupported) {
				m.logger.Debug("Process monitoring is not available on this platform")
				return false
			}
			if err != nil {
				m.logger.Debug("Error checking game", zap.String("path", path), zap.Error(err))
				continue
			}
			byPath[path] = status
		}
		statuses[g] = status
	}

	m.sendStatus(MonitorStatus{Games: statuses})
	for _, event := range m.transitions(statuses) {
		m.sendStatus(MonitorStatus{Event: event})
	}
	return true
}

// transitions compares statuses with the previous round and describes games that started or exited
func (m *Monitor) transitions(statuses map[*library.Game]process.Status) []string {
	paths := m.store.Executables()

	m.mu.Lock()
	defer m.mu.Unlock()

	var events []string
	for g, status := range statuses {
		if status.Running && !m.wasRunning[g] {
			events = append(events, fmt.Sprintf("%s is running (PID %d)", filepath.Base(paths[g]), status.Processes[0].PID))
		}
		if !status.Running && m.wasRunning[g] {
			events = append(events, fmt.Sprintf("%s exited", filepath.Base(paths[g])))
		}
		m.wasRunning[g] = status.Running
	}
	for g := range m.wasRunning {
		if _, ok := statuses[g]; !ok {
			delete(m.wasRunning, g)
		}
	}
	return events
}

// sendStatus sends a status update to the channel
func (m *Monitor) sendStatus(status MonitorStatus) {
	select {
	case m.statusCh <- status:
	default:
		// Channel full, skip this update
	}
}

// statusUpdateLoop processes status updates and updates the UI
func (m *Monitor) statusUpdateLoop() {
	var lastGames map[*library.Game]process.Status

	// Use a ticker to throttle UI updates
	updateTicker := time.NewTicker(500 * time.Millisecond)
	defer updateTicker.Stop()

	needsUpdate := false

	for {
		select {
		case <-m.stopChan:
			return
		case status := <-m.statusCh:
			if status.Games != nil {
				lastGames = status.Games
				needsUpdate = true
			}

			// Log events immediately
			if status.Event != "" {
				event := status.Event
				fyne.Do(func() {
					m.window.AppendLog(event)
				})
			}
		case <-updateTicker.C:
			// Throttled UI update
			if needsUpdate {
				games := lastGames
				fyne.Do(func() {
					m.window.UpdateGameStatus(games)
				})
				needsUpdate = false
			}
		}
	}
}

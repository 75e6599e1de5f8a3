// Package session provides thread-safe shared state for the viewer: the
// progressively loaded catalog, the observing site and an event log.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/litescript/ls-starfield/internal/catalog"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/pointing"
	"github.com/litescript/ls-starfield/internal/star"
)

// EventType represents the type of session event.
type EventType string

const (
	EventMetadataLoaded EventType = "METADATA_LOADED"
	EventBandMerged     EventType = "BAND_MERGED"
	EventLoadFailed     EventType = "LOAD_FAILED"
	EventSourceChanged  EventType = "SOURCE_CHANGED"
)

// Event represents a catalog state change.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	Depth     float64   `json:"depth,omitempty"`
	Stars     int       `json:"stars,omitempty"`
	Err       string    `json:"error,omitempty"`
}

// Config holds configuration for the session manager.
type Config struct {
	Source       string
	Frame        pointing.Frame
	InitialDepth float64
	MaxEvents    int
	Logger       *logging.Logger
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		InitialDepth: 4.0,
		MaxEvents:    50,
	}
}

// Manager owns the loader state and serializes access to it. Renderers call
// Snapshot and work on the immutable copy; Deepen runs the blocking catalog
// fetches without holding the state lock.
type Manager struct {
	mu sync.RWMutex

	// advMu serializes Deepen calls: the loader requires that advances
	// against the same state value never race.
	advMu sync.Mutex

	loader *catalog.Loader
	state  catalog.State
	source string
	frame  pointing.Frame

	lastAdvance time.Time
	lastError   error

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	log *logging.Logger
}

// NewManager creates a session manager.
func NewManager(cfg Config, opts ...catalog.Option) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}

	m := &Manager{
		state:     catalog.NewState(),
		source:    cfg.Source,
		frame:     cfg.Frame,
		events:    make([]Event, 0, maxEvents),
		maxEvents: maxEvents,
		log:       log.WithPrefix("session"),
	}

	// The loader's notify hook publishes every intermediate state, so a
	// renderer polling Snapshot sees each band as it merges rather than
	// waiting for the full requested depth.
	opts = append(opts, catalog.WithNotify(m.publish))
	m.loader = catalog.NewLoader(opts...)
	return m
}

// publish records an intermediate loader state and the event it implies.
func (m *Manager) publish(st catalog.State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.state
	m.state = st

	now := time.Now()
	switch step := st.Step.(type) {
	case catalog.StepOk:
		if _, wasInit := prev.Step.(catalog.StepInit); wasInit {
			m.addEvent(Event{
				Type:      EventMetadataLoaded,
				Timestamp: now,
				Source:    step.Metadata.Source,
			})
			return
		}
		if st.LoadedVmag != nil && (prev.LoadedVmag == nil || *st.LoadedVmag != *prev.LoadedVmag) {
			m.addEvent(Event{
				Type:      EventBandMerged,
				Timestamp: now,
				Depth:     *st.LoadedVmag,
				Stars:     len(st.Stars),
			})
		}
	case catalog.StepFail:
		e := Event{Type: EventLoadFailed, Timestamp: now}
		if step.Err != nil {
			e.Err = step.Err.Error()
		}
		m.addEvent(e)
	}
}

// Deepen drives the catalog toward the requested magnitude depth. It blocks
// on network fetches; intermediate states become visible through Snapshot
// as each band merges. Concurrent calls are serialized.
func (m *Manager) Deepen(ctx context.Context, requiredVmag float64) error {
	m.advMu.Lock()
	defer m.advMu.Unlock()

	m.mu.RLock()
	st := m.state
	source := m.source
	m.mu.RUnlock()

	next, err := m.loader.Advance(ctx, st, source, requiredVmag)

	m.mu.Lock()
	m.state = next
	m.lastAdvance = time.Now()
	m.lastError = err
	m.mu.Unlock()

	if err != nil {
		m.log.Error("deepen to %.1f failed: %v", requiredVmag, err)
	}
	return err
}

// SetSource switches to a different catalog source. The state itself resets
// on the next Deepen; a terminal Fail state is cleared immediately so the
// new source gets a fresh retry budget.
func (m *Manager) SetSource(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if source == m.source {
		return
	}
	m.source = source
	if m.state.Failed() {
		m.state = catalog.NewState()
	}
	m.addEvent(Event{Type: EventSourceChanged, Timestamp: time.Now(), Source: source})
}

// SetFrame updates the observing site.
func (m *Manager) SetFrame(f pointing.Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frame = f
}

// addEvent adds an event to the ring buffer. Caller holds mu.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of session state. The catalog
// map is shared but never mutated after publication.
type Snapshot struct {
	Stars       star.Catalog
	LoadedVmag  *float64
	Failed      bool
	Source      string
	Frame       pointing.Frame
	LastAdvance time.Time
	LastError   error
	Events      []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Stars:       m.state.Stars,
		LoadedVmag:  m.state.LoadedVmag,
		Failed:      m.state.Failed(),
		Source:      m.source,
		Frame:       m.frame,
		LastAdvance: m.lastAdvance,
		LastError:   m.lastError,
		Events:      m.eventsOrdered(),
	}
}

// eventsOrdered returns events oldest to newest. Caller holds mu.
func (m *Manager) eventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		result[i] = m.events[(m.eventWriteAt+i)%m.maxEvents]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.eventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// HasStars reports whether at least one band has merged.
func (m *Manager) HasStars() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.state.Stars) > 0
}

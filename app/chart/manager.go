package chart

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"student-performance-dashboard/app/metrics"
)

var (
	// ErrStale is returned by Apply when a newer ticket was issued for the slot.
	ErrStale = errors.New("chart: result superseded by a newer request")
	// ErrNoChart is returned when a slot holds no live instance.
	ErrNoChart = errors.New("chart: slot is empty")
	// ErrDisposed is returned when rendering an instance that was disposed.
	ErrDisposed = errors.New("chart: instance disposed")
	// ErrSuperseded is returned when a pinned version is no longer the live one.
	ErrSuperseded = errors.New("chart: version replaced by a newer instance")
)

// SlotConfig pairs a slot with the configuration to draw in it.
type SlotConfig struct {
	Slot   string
	Config Config
}

// Chart is a live chart instance. Dispose releases its resources; a disposed
// chart must not be rendered again.
type Chart interface {
	Render(w io.Writer) error
	Dispose()
}

// Factory constructs the instance for a slot.
type Factory func(slot string, cfg Config) (Chart, error)

// Ticket records the generation issued per slot when a load started.
type Ticket struct {
	gens map[string]uint64
}

// Generation returns the generation the ticket holds for slot.
func (t Ticket) Generation(slot string) uint64 {
	return t.gens[slot]
}

type slotState struct {
	chart   Chart
	cfg     Config
	issued  uint64
	version uint64
}

// Manager owns the chart instances of the dashboard, one per slot.
type Manager struct {
	mu      sync.Mutex
	factory Factory
	slots   map[string]*slotState
}

// NewManager returns a manager that builds instances with factory. A nil
// factory renders SVG with go-chart.
func NewManager(factory Factory) *Manager {
	if factory == nil {
		factory = RenderSVG
	}
	return &Manager{factory: factory, slots: make(map[string]*slotState)}
}

func (m *Manager) state(slot string) *slotState {
	st, ok := m.slots[slot]
	if !ok {
		st = &slotState{}
		m.slots[slot] = st
	}
	return st
}

// Set disposes the instance currently held by slot, then constructs a new
// one from cfg and stores it.
func (m *Manager) Set(slot string, cfg Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.replace(slot, cfg)
}

func (m *Manager) replace(slot string, cfg Config) error {
	st := m.state(slot)

	// 1. Dispose instance lama dulu
	if st.chart != nil {
		st.chart.Dispose()
		st.chart = nil
		metrics.ObserveChart(slot, "disposed")
	}

	// 2. Versi naik juga saat gagal, URL lama tidak boleh cocok lagi
	st.version++

	// 3. Baru buat instance baru
	c, err := m.factory(slot, cfg)
	if err != nil {
		st.cfg = Config{}
		metrics.ObserveChart(slot, "failed")
		return fmt.Errorf("chart %s: %w", slot, err)
	}

	st.chart = c
	st.cfg = cfg
	metrics.ObserveChart(slot, "created")
	return nil
}

// Begin issues a new generation for each slot. Results applied with an older
// ticket are dropped.
func (m *Manager) Begin(slots ...string) Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := Ticket{gens: make(map[string]uint64, len(slots))}
	for _, slot := range slots {
		st := m.state(slot)
		st.issued++
		t.gens[slot] = st.issued
	}
	return t
}

// Apply replaces the slot's chart only if t is still the newest ticket issued
// for it.
func (m *Manager) Apply(t Ticket, slot string, cfg Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.apply(t, slot, cfg)
}

// ApplyAll applies every config of one load under a single lock, so readers
// never see part of it. The result holds one error per config: ErrStale, a
// construction error (that slot is left empty, the others still apply) or
// nil.
func (m *Manager) ApplyAll(t Ticket, configs []SlotConfig) []error {
	m.mu.Lock()
	defer m.mu.Unlock()

	errs := make([]error, len(configs))
	for i, sc := range configs {
		errs[i] = m.apply(t, sc.Slot, sc.Config)
	}
	return errs
}

func (m *Manager) apply(t Ticket, slot string, cfg Config) error {
	gen, ok := t.gens[slot]
	if !ok {
		return fmt.Errorf("chart %s: ticket does not cover slot", slot)
	}
	if gen != m.state(slot).issued {
		metrics.ObserveChart(slot, "stale")
		return ErrStale
	}

	return m.replace(slot, cfg)
}

// Render writes the live instance of slot to w.
func (m *Manager) Render(slot string, w io.Writer) error {
	return m.RenderVersion(slot, 0, w)
}

// RenderVersion writes the live instance of slot to w when it is still
// version. A zero version accepts whatever is live.
func (m *Manager) RenderVersion(slot string, version uint64, w io.Writer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.live(slot, version)
	if err != nil {
		return err
	}
	return st.chart.Render(w)
}

// Config returns the configuration of the live instance of slot.
func (m *Manager) Config(slot string) (Config, bool) {
	cfg, err := m.ConfigVersion(slot, 0)
	return cfg, err == nil
}

// ConfigVersion is Config pinned to version, like RenderVersion.
func (m *Manager) ConfigVersion(slot string, version uint64) (Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.live(slot, version)
	if err != nil {
		return Config{}, err
	}
	return st.cfg, nil
}

func (m *Manager) live(slot string, version uint64) (*slotState, error) {
	st, ok := m.slots[slot]
	if !ok {
		return nil, ErrNoChart
	}
	if version != 0 && version != st.version {
		return nil, ErrSuperseded
	}
	if st.chart == nil {
		return nil, ErrNoChart
	}
	return st, nil
}

// Version changes each time slot is rebuilt, including failed rebuilds.
func (m *Manager) Version(slot string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if st, ok := m.slots[slot]; ok {
		return st.version
	}
	return 0
}

// Live returns the number of slots holding an instance.
func (m *Manager) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, st := range m.slots {
		if st.chart != nil {
			n++
		}
	}
	return n
}

// Close disposes every live instance.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for slot, st := range m.slots {
		if st.chart != nil {
			st.chart.Dispose()
			st.chart = nil
			metrics.ObserveChart(slot, "disposed")
		}
	}
}

package monitoring

import (
	"context"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
	"github.com/fredcamaral/lessondeck/internal/domain/ports"
)

// emaAlpha weights the newest sample of the moving averages
const emaAlpha = 0.1

// Snapshot is a point-in-time copy of the collected metrics
type Snapshot struct {
	Uptime     string `json:"uptime"`
	MemoryMB   int64  `json:"memory_mb"`
	HeapMB     int64  `json:"heap_mb"`
	Goroutines int    `json:"goroutines"`
	GCCycles   uint32 `json:"gc_cycles"`

	DecksGenerated int64                            `json:"decks_generated"`
	Failures       map[entities.DeckErrorType]int64 `json:"failures"`
	Renders        map[entities.DeckFormat]int64    `json:"renders"`

	AvgGenerationMS int64 `json:"avg_generation_ms"`
	AvgRenderMS     int64 `json:"avg_render_ms"`
}

// Monitor collects deck pipeline metrics and periodic runtime statistics
type Monitor struct {
	startTime time.Time
	interval  time.Duration

	mu            sync.RWMutex
	succeeded     int64
	failures      map[entities.DeckErrorType]int64
	renders       map[entities.DeckFormat]int64
	avgGeneration time.Duration
	avgRender     time.Duration

	memoryUsage int64
	heapSize    int64
	goroutines  int
	gcCount     uint32

	runMu   sync.Mutex
	running bool
	stopCh  chan struct{}
}

// NewMonitor creates a monitor that refreshes runtime statistics every interval
func NewMonitor(interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	m := &Monitor{
		startTime: time.Now(),
		interval:  interval,
		failures:  make(map[entities.DeckErrorType]int64),
		renders:   make(map[entities.DeckFormat]int64),
	}
	m.updateRuntime()
	return m
}

// Start begins periodic runtime collection until ctx is done or Stop is called
func (m *Monitor) Start(ctx context.Context) {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	if m.running {
		return
	}
	m.running = true
	m.stopCh = make(chan struct{})

	go m.collect(ctx, m.stopCh)
}

// Stop ends periodic collection
func (m *Monitor) Stop() {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	if !m.running {
		return
	}
	m.running = false
	close(m.stopCh)
}

func (m *Monitor) collect(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			m.updateRuntime()
		}
	}
}

func (m *Monitor) updateRuntime() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.memoryUsage = safeUint64ToInt64(memStats.Alloc)
	m.heapSize = safeUint64ToInt64(memStats.HeapAlloc)
	m.goroutines = runtime.NumGoroutine()
	m.gcCount = memStats.NumGC
}

// RecordGeneration records one content generation
func (m *Monitor) RecordGeneration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.avgGeneration = movingAverage(m.avgGeneration, duration)
}

// RecordRender records one render in format
func (m *Monitor) RecordRender(format entities.DeckFormat, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renders[format]++
	m.avgRender = movingAverage(m.avgRender, duration)
}

// RecordSuccess counts a stored deck
func (m *Monitor) RecordSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.succeeded++
}

// RecordFailure counts a failed request by error type
func (m *Monitor) RecordFailure(kind entities.DeckErrorType) {
	if kind == "" {
		kind = "unknown"
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[kind]++
}

// Snapshot returns a copy of current metrics
func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	failures := make(map[entities.DeckErrorType]int64, len(m.failures))
	for k, v := range m.failures {
		failures[k] = v
	}
	renders := make(map[entities.DeckFormat]int64, len(m.renders))
	for k, v := range m.renders {
		renders[k] = v
	}

	return Snapshot{
		Uptime:          time.Since(m.startTime).Round(time.Second).String(),
		MemoryMB:        m.memoryUsage / (1024 * 1024),
		HeapMB:          m.heapSize / (1024 * 1024),
		Goroutines:      m.goroutines,
		GCCycles:        m.gcCount,
		DecksGenerated:  m.succeeded,
		Failures:        failures,
		Renders:         renders,
		AvgGenerationMS: m.avgGeneration.Milliseconds(),
		AvgRenderMS:     m.avgRender.Milliseconds(),
	}
}

// movingAverage folds sample into an exponential moving average; the first sample seeds it
func movingAverage(avg, sample time.Duration) time.Duration {
	if avg == 0 {
		return sample
	}
	return time.Duration(float64(avg)*(1-emaAlpha) + float64(sample)*emaAlpha)
}

// safeUint64ToInt64 safely converts uint64 to int64, capping at max int64 value
func safeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(val)
}

var _ ports.DeckMetrics = (*Monitor)(nil)

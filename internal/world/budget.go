package world

import (
	"sync"
	"time"
)

// DefaultFrameWindow is the rolling sample window size
const DefaultFrameWindow = 30

// FrameBudgetMonitor tracks recent system wall-clock costs against a
// per-tick budget. The over-budget ratio over the rolling window
// drives the adaptive planner's tier cuts.
type FrameBudgetMonitor struct {
	mu sync.Mutex

	budget  time.Duration
	window  int
	samples []time.Duration
	next    int
	filled  bool
}

// NewFrameBudgetMonitor creates a monitor with the given per-tick
// budget and rolling window size. A window of zero or less uses
// DefaultFrameWindow.
func NewFrameBudgetMonitor(budget time.Duration, window int) *FrameBudgetMonitor {
	if window <= 0 {
		window = DefaultFrameWindow
	}
	return &FrameBudgetMonitor{
		budget:  budget,
		window:  window,
		samples: make([]time.Duration, window),
	}
}

// Record adds one tick's measured cost to the window
func (m *FrameBudgetMonitor) Record(cost time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.samples[m.next] = cost
	m.next++
	if m.next == m.window {
		m.next = 0
		m.filled = true
	}
}

// OverBudgetRatio is the fraction of recorded samples exceeding the
// budget. No samples means no pressure.
func (m *FrameBudgetMonitor) OverBudgetRatio() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := m.next
	if m.filled {
		count = m.window
	}
	if count == 0 {
		return 0
	}

	over := 0
	for i := 0; i < count; i++ {
		if m.samples[i] > m.budget {
			over++
		}
	}
	return float64(over) / float64(count)
}

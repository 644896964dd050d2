package monitor

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// CycleTracker numbers monitoring cycles and records which targets changed
// within the current one.
type CycleTracker struct {
	changedTargets map[string]struct{}
	mutex          sync.RWMutex
	maxCycles      int
	currentCycle   int
	now            func() time.Time
}

// NewCycleTracker creates a new CycleTracker. maxCycles 0 means no limit.
func NewCycleTracker(maxCycles int) *CycleTracker {
	return &CycleTracker{
		changedTargets: make(map[string]struct{}),
		maxCycles:      maxCycles,
		now:            time.Now,
	}
}

// StartCycle begins a new cycle, increments the counter and returns the new ID.
func (ct *CycleTracker) StartCycle() string {
	ct.mutex.Lock()
	defer ct.mutex.Unlock()

	ct.currentCycle++
	ct.changedTargets = make(map[string]struct{})
	return fmt.Sprintf("cycle-%s", ct.now().Format("20060102-150405"))
}

// EndCycle marks the end of a cycle.
func (ct *CycleTracker) EndCycle() {
	ct.mutex.Lock()
	defer ct.mutex.Unlock()
	ct.changedTargets = make(map[string]struct{})
}

// ShouldContinue returns false if the maximum number of cycles has been reached.
func (ct *CycleTracker) ShouldContinue() bool {
	ct.mutex.RLock()
	defer ct.mutex.RUnlock()
	if ct.maxCycles == 0 {
		return true // Run indefinitely
	}
	return ct.currentCycle < ct.maxCycles
}

// AddChangedTarget records a target whose items changed in the current cycle.
func (ct *CycleTracker) AddChangedTarget(name string) {
	if name == "" {
		return
	}

	ct.mutex.Lock()
	defer ct.mutex.Unlock()

	ct.changedTargets[name] = struct{}{}
}

// GetChangedTargets returns the changed targets of the current cycle, sorted.
func (ct *CycleTracker) GetChangedTargets() []string {
	ct.mutex.RLock()
	defer ct.mutex.RUnlock()

	names := make([]string, 0, len(ct.changedTargets))
	for name := range ct.changedTargets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CompletedCycles returns how many cycles were started.
func (ct *CycleTracker) CompletedCycles() int {
	ct.mutex.RLock()
	defer ct.mutex.RUnlock()
	return ct.currentCycle
}

// Package registry holds the biquad block kernels available on this build
// and picks the best one for the running CPU.
package registry

import (
	"sort"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients are biquad transfer coefficients (a0 normalized to 1).
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// BlockFn filters buf in-place with one section starting from the delay
// line (d0, d1) and returns the final delay line.
type BlockFn func(c Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64)

// Kernels is one backend. Forward runs buf[0] to buf[n-1], Reverse runs
// buf[n-1] to buf[0] as the backward pass of zero-phase filtering.
type Kernels struct {
	Name      string
	SIMDLevel cpu.SIMDLevel
	Priority  int
	Forward   BlockFn
	Reverse   BlockFn
}

// Complete reports whether both directions are implemented.
func (k *Kernels) Complete() bool {
	return k.Forward != nil && k.Reverse != nil
}

// Registry stores the available backends ordered by descending priority.
type Registry struct {
	mu      sync.RWMutex
	entries []Kernels
}

// Global is the registry the biquad package dispatches through.
var Global = &Registry{}

// Register adds a backend.
func (r *Registry) Register(k Kernels) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, k)
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].Priority > r.entries[j].Priority
	})
}

// Lookup returns the highest-priority complete backend the CPU supports,
// or nil.
func (r *Registry) Lookup(features cpu.Features) *Kernels {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		k := &r.entries[i]
		if k.Complete() && cpu.Supports(features, k.SIMDLevel) {
			return k
		}
	}
	return nil
}

// Names lists the registered backends in lookup order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.entries))
	for i, k := range r.entries {
		names[i] = k.Name
	}
	return names
}

// Package ident produces unique IDs for timeline entities. The generator is
// injected rather than module-global so tests get a fresh counter per case.
package ident

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"
)

// Generator mints IDs of the form "<prefix>-<n>-<ts36>" where n is a
// per-generator monotonic counter and ts36 is the creation-time unix
// timestamp in base 36. The counter guarantees uniqueness within a
// generation session; the timestamp keeps sessions apart.
type Generator struct {
	counter uint64
	now     func() time.Time
}

func New() *Generator {
	return &Generator{now: time.Now}
}

// NewAt fixes the timestamp source. Used in tests.
func NewAt(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next returns the next ID for the given entity prefix.
func (g *Generator) Next(prefix string) string {
	n := atomic.AddUint64(&g.counter, 1)
	ts := strconv.FormatInt(g.now().Unix(), 36)
	return fmt.Sprintf("%s-%d-%s", prefix, n, ts)
}

// Entity prefixes used across the timeline.
const (
	PrefixCheckpoint = "cp"
	PrefixTask       = "t"
	PrefixChecklist  = "cl"
	PrefixStandalone = "st"
)

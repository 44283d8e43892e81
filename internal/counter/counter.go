package counter

import "sync/atomic"

// Counters is the shared tally of probe outcomes. The monitor loop is the
// only writer; the metrics endpoint reads a snapshot on every scrape.
// Both counters are increment-only for the lifetime of the process.
type Counters struct {
	success atomic.Uint64
	failure atomic.Uint64
}

func New() *Counters {
	return &Counters{}
}

// RecordSuccess marks one completed probe cycle as successful.
func (c *Counters) RecordSuccess() {
	c.success.Add(1)
}

// RecordFailure marks one completed probe cycle as failed.
func (c *Counters) RecordFailure() {
	c.failure.Add(1)
}

// Snapshot returns the current values. The two loads are independent, so a
// scrape racing an increment may see one counter a step ahead of the other;
// each value on its own is always consistent.
func (c *Counters) Snapshot() (success, failure uint64) {
	return c.success.Load(), c.failure.Load()
}

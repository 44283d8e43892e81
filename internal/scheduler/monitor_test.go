package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/chainops/wsprobe/internal/counter"
	"github.com/chainops/wsprobe/internal/probe"
)

// --- fakes ---

// scriptedChecker replays a fixed outcome sequence, then repeats the last one.
type scriptedChecker struct {
	mu      sync.Mutex
	results []probe.CheckResult
	calls   int
}

func (f *scriptedChecker) Check(ctx context.Context, target string) probe.CheckResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	return f.results[i]
}

func (f *scriptedChecker) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func failure(phase string) probe.CheckResult {
	return probe.CheckResult{Phase: phase, Message: "boom"}
}

func success(head string) probe.CheckResult {
	return probe.CheckResult{Success: true, FinalizedHead: head}
}

// --- tests ---

func TestMonitor_ImmediatePassIncrementsSuccess(t *testing.T) {
	c := counter.New()
	chk := &scriptedChecker{results: []probe.CheckResult{success("0xabc123")}}
	m := NewMonitor(zap.NewNop(), chk, c, "ws://127.0.0.1:9944", time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() { m.Run(ctx); close(done) }()

	waitFor(t, func() bool { return chk.callCount() >= 1 })
	s, f := c.Snapshot()
	if s != 1 || f != 0 {
		t.Fatalf("counters = (%d, %d), want (1, 0)", s, f)
	}

	cancel()
	<-done
}

func TestMonitor_SumEqualsCompletedCycles(t *testing.T) {
	c := counter.New()
	chk := &scriptedChecker{results: []probe.CheckResult{
		success("0x1"),
		failure(probe.PhaseRequest),
		success("0x2"),
		failure(probe.PhaseRequest),
	}}
	m := NewMonitor(zap.NewNop(), chk, c, "ws://127.0.0.1:9944", 2*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	waitFor(t, func() bool { return chk.callCount() >= 4 })
	cancel()

	// Let any in-flight cycle commit, then compare.
	time.Sleep(20 * time.Millisecond)
	s, f := c.Snapshot()
	if int(s+f) != chk.callCount() {
		t.Fatalf("success+failure = %d, completed cycles = %d", s+f, chk.callCount())
	}
	if s < 2 || f < 2 {
		t.Fatalf("counters = (%d, %d), want at least (2, 2)", s, f)
	}
}

func TestMonitor_SurvivesConsecutiveFailures(t *testing.T) {
	c := counter.New()
	chk := &scriptedChecker{results: []probe.CheckResult{failure(probe.PhaseConnect)}}
	m := NewMonitor(zap.NewNop(), chk, c, "ws://127.0.0.1:1", 2*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	// Ten failed cycles must not stop the loop; cycle eleven still runs.
	waitFor(t, func() bool { return chk.callCount() >= 11 })

	s, f := c.Snapshot()
	if s != 0 {
		t.Fatalf("successCount = %d, want 0", s)
	}
	if f < 10 {
		t.Fatalf("failureCount = %d, want >= 10", f)
	}
}

func TestMonitor_StopsOnContextCancel(t *testing.T) {
	c := counter.New()
	chk := &scriptedChecker{results: []probe.CheckResult{success("0x1")}}
	m := NewMonitor(zap.NewNop(), chk, c, "ws://127.0.0.1:9944", time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { m.Run(ctx); close(done) }()

	waitFor(t, func() bool { return chk.callCount() >= 1 })
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestHostOf(t *testing.T) {
	cases := []struct{ in, want string }{
		{"wss://mainnet.liberland.org", "mainnet.liberland.org"},
		{"ws://127.0.0.1:9944", "127.0.0.1"},
		{"not a url", "not a url"},
	}
	for _, c := range cases {
		if got := hostOf(c.in); got != c.want {
			t.Fatalf("hostOf(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

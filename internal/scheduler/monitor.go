package scheduler

import (
	"context"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/chainops/wsprobe/internal/counter"
	"github.com/chainops/wsprobe/internal/probe"
)

// Monitor drives the probe cycle: one check per tick, one counter bump per
// check. It is the sole writer of the counters.
type Monitor struct {
	Logger   *zap.Logger
	Checker  probe.Checker
	Counters *counter.Counters
	Target   string
	Interval time.Duration
}

func NewMonitor(
	logger *zap.Logger,
	checker probe.Checker,
	counters *counter.Counters,
	target string,
	interval time.Duration,
) *Monitor {
	return &Monitor{
		Logger:   logger,
		Checker:  checker,
		Counters: counters,
		Target:   target,
		Interval: interval,
	}
}

// Run starts the loop. It does an immediate pass, then runs each tick.
// At most one check is in flight: a check that overruns the interval delays
// the next tick instead of overlapping it. No check outcome stops the loop;
// it returns only when ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	t := time.NewTicker(m.Interval)
	defer t.Stop()

	m.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			m.Logger.Info("monitor_stopped")
			return
		case <-t.C:
			m.runOnce(ctx)
		}
	}
}

func (m *Monitor) runOnce(ctx context.Context) {
	out := m.Checker.Check(ctx, m.Target)

	if out.Success {
		m.Counters.RecordSuccess()
		m.Logger.Debug("check_succeeded",
			zap.String("url", m.Target),
			zap.String("finalized_head", out.FinalizedHead),
			zap.Float64("latency_ms", out.LatencyMS),
		)
		return
	}

	m.Counters.RecordFailure()
	fields := []zap.Field{
		zap.String("url", m.Target),
		zap.String("phase", out.Phase),
		zap.String("reason", out.Message),
		zap.Float64("latency_ms", out.LatencyMS),
	}
	if out.Phase == probe.PhaseConnect {
		fields = append(fields, zap.String("dns", probe.ClassifyDNS(hostOf(m.Target))))
	}
	m.Logger.Warn("check_failed", fields...)
}

// hostOf pulls the hostname from a URL string.
func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}

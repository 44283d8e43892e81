// cmd/preflight/main.go
//
// One-shot check of the monitor target for deploy scripts: probes the
// endpoint once with the same timeouts as the service and exits nonzero on
// failure.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chainops/wsprobe/internal/config"
	"github.com/chainops/wsprobe/internal/probe"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fail(err.Error())
	}
	ok("config valid: " + cfg.MonitorURL)

	checker := probe.NewWSChecker(cfg.ConnectTimeout, cfg.RequestTimeout)
	out := checker.Check(context.Background(), cfg.MonitorURL)
	if !out.Success {
		fail(fmt.Sprintf("check failed during %s: %s", out.Phase, out.Message))
	}

	ok(fmt.Sprintf("finalized head %s (%.0f ms)", out.FinalizedHead, out.LatencyMS))
	ok("preflight passed")
}

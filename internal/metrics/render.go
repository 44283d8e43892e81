// Package metrics renders the probe counters into Prometheus text
// exposition. Rendering is pure: the counters are passed in by value and a
// fresh registry is built per call, so concurrent scrapes never contend
// with the monitor loop.
package metrics

import (
	"bytes"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const (
	// FamilyName is the single counter family this exporter produces.
	FamilyName = "check_count"
	familyHelp = "Number of connection check results"

	// ResultSuccess and ResultFailure are the values of the result label.
	// "TIMEOUT" predates this implementation and means any failure, not
	// just a timeout; scrapers depend on the literal text.
	ResultSuccess = "SUCCESS"
	ResultFailure = "TIMEOUT"
)

var textFormat = expfmt.NewFormat(expfmt.TypeTextPlain)

// Render encodes the counter pair as two check_count samples labeled with
// the monitored endpoint and the result class, returning the body and its
// content type. Both samples are always present, including at zero.
func Render(endpoint string, success, failure uint64) ([]byte, string, error) {
	reg := prometheus.NewRegistry()
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        FamilyName,
		Help:        familyHelp,
		ConstLabels: prometheus.Labels{"endpoint": endpoint},
	}, []string{"result"})
	if err := reg.Register(vec); err != nil {
		return nil, "", fmt.Errorf("register %s: %w", FamilyName, err)
	}

	vec.WithLabelValues(ResultSuccess).Add(float64(success))
	vec.WithLabelValues(ResultFailure).Add(float64(failure))

	mfs, err := reg.Gather()
	if err != nil {
		return nil, "", fmt.Errorf("gather: %w", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, textFormat)
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return nil, "", fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return buf.Bytes(), string(textFormat), nil
}

package tracing

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Sampler strategies accepted in telemetry.tracing.sampler.
const (
	SamplerAlways = "always"
	SamplerNever  = "never"
	SamplerRatio  = "ratio"
)

// newSampler builds the provider's sampler:
//
//	telemetry:
//	  tracing:
//	    sampler: ratio
//	    sample_ratio: 0.1
//	    skip_paths: [/health, /metrics]
//
// The result is parent based, so a caller's sampled traceparent is always
// honoured. Root spans for skip paths are dropped before the strategy runs.
func newSampler(strategy string, ratio float64, skipPaths []string) (sdktrace.Sampler, error) {
	var root sdktrace.Sampler

	switch strategy {
	case SamplerAlways:
		root = sdktrace.AlwaysSample()
	case SamplerNever:
		root = sdktrace.NeverSample()
	case SamplerRatio:
		if ratio < 0.0 || ratio > 1.0 {
			return nil, fmt.Errorf("sample ratio must be between 0.0 and 1.0, got %f", ratio)
		}
		root = sdktrace.TraceIDRatioBased(ratio)
	default:
		return nil, fmt.Errorf("unknown sampler strategy: %s (valid: always, never, ratio)", strategy)
	}

	if len(skipPaths) > 0 {
		skip := make(map[string]struct{}, len(skipPaths))
		for _, p := range skipPaths {
			skip[p] = struct{}{}
		}
		root = pathFilter{next: root, skip: skip}
	}

	return sdktrace.ParentBased(root), nil
}

// pathFilter drops spans whose AttrURLPath start attribute is a skip path.
type pathFilter struct {
	next sdktrace.Sampler
	skip map[string]struct{}
}

func (f pathFilter) ShouldSample(p sdktrace.SamplingParameters) sdktrace.SamplingResult {
	for _, attr := range p.Attributes {
		if string(attr.Key) != AttrURLPath {
			continue
		}
		if _, ok := f.skip[attr.Value.AsString()]; ok {
			return sdktrace.SamplingResult{
				Decision:   sdktrace.Drop,
				Tracestate: trace.SpanContextFromContext(p.ParentContext).TraceState(),
			}
		}
		break
	}
	return f.next.ShouldSample(p)
}

func (f pathFilter) Description() string {
	return fmt.Sprintf("PathFilter{%s}", f.next.Description())
}

var _ sdktrace.Sampler = pathFilter{}

// urlPath is the start attribute pathFilter inspects.
func urlPath(path string) attribute.KeyValue {
	return attribute.String(AttrURLPath, path)
}

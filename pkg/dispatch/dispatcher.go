package dispatch

import (
	"context"
	"net/http"

	"mercator-hq/courier/pkg/proxy/types"
	"mercator-hq/courier/pkg/session"
	"mercator-hq/courier/pkg/telemetry/logging"
	"mercator-hq/courier/pkg/telemetry/metrics"
	"mercator-hq/courier/pkg/telemetry/tracing"
	"mercator-hq/courier/pkg/transaction"
	"mercator-hq/courier/pkg/transport"
	"mercator-hq/courier/pkg/twitter"
)

// Executor runs one relay call.
type Executor interface {
	Execute(ctx context.Context, env *types.Envelope) (any, error)
}

// Config configures a Dispatcher.
type Config struct {
	// HTTPClient is the shared outbound client
	HTTPClient *http.Client

	// WebOrigin and APIOrigin locate the platform
	WebOrigin string
	APIOrigin string

	// Generator computes transaction ids. nil means transaction.Keyed.
	Generator transaction.Generator

	// Invoker runs packaged methods
	Invoker *Invoker

	// Raw runs raw passthrough calls
	Raw Executor

	// Tracer is optional
	Tracer *tracing.Tracer
}

// Dispatcher routes a validated envelope to the packaged method path or
// the raw passthrough path.
type Dispatcher struct {
	http      *http.Client
	webOrigin string
	apiOrigin string
	generator transaction.Generator
	invoker   *Invoker
	raw       Executor
	tracer    *tracing.Tracer
}

// New creates a Dispatcher.
func New(cfg Config) *Dispatcher {
	if cfg.Generator == nil {
		cfg.Generator = &transaction.Keyed{}
	}
	if cfg.Invoker == nil {
		cfg.Invoker = NewInvoker(InvokerConfig{})
	}
	return &Dispatcher{
		http:      cfg.HTTPClient,
		webOrigin: cfg.WebOrigin,
		apiOrigin: cfg.APIOrigin,
		generator: cfg.Generator,
		invoker:   cfg.Invoker,
		raw:       cfg.Raw,
		tracer:    cfg.Tracer,
	}
}

// Target reports which path env selects: metrics.DispatchMethod,
// metrics.DispatchRaw or metrics.DispatchNone.
func Target(env *types.Envelope) string {
	switch {
	case env == nil:
		return metrics.DispatchNone
	case env.MethodName != "":
		return metrics.DispatchMethod
	case env.EndpointPath != "":
		return metrics.DispatchRaw
	default:
		return metrics.DispatchNone
	}
}

// Execute implements Executor.
func (d *Dispatcher) Execute(ctx context.Context, env *types.Envelope) (any, error) {
	if env != nil && env.MethodName != "" && env.EndpointPath != "" {
		return nil, types.NewRequestError(types.CodeAmbiguousDispatchTarget, "methodName",
			"methodName and endpointPath are mutually exclusive")
	}

	switch Target(env) {
	case metrics.DispatchMethod:
		return d.executeMethod(ctx, env)
	case metrics.DispatchRaw:
		return d.executeRaw(ctx, env)
	default:
		return nil, types.NewRequestError(types.CodeMissingDispatchTarget, "methodName",
			"either methodName or endpointPath is required")
	}
}

func (d *Dispatcher) executeMethod(ctx context.Context, env *types.Envelope) (any, error) {
	ctx = logging.WithDispatch(ctx, metrics.DispatchMethod)
	ctx = logging.WithMethod(ctx, env.MethodName)

	ctx, span := d.tracer.Start(ctx, "dispatch.method")
	defer span.End()
	tracing.SetDispatchAttributes(span, metrics.DispatchMethod, env.MethodName)

	capture := &transport.Capture{}
	hc := tracing.WrapClient(transport.WithCapture(d.http, capture), d.tracer)

	var hook func(*http.Request)
	if seed := env.TransactionSeed; seed != nil {
		hook = session.TransactionHook(d.generator, seed.Verification, seed.AnimationKey)
	}

	client := twitter.NewClient(twitter.Config{
		Headers:    session.Headers(session.Seed(env.Headers), env.AuthToken, env.CSRFToken),
		Flags:      env.FeatureFlags,
		OnRequest:  hook,
		HTTPClient: hc,
		WebOrigin:  d.webOrigin,
		APIOrigin:  d.apiOrigin,
	})

	result, err := d.invoker.Invoke(ctx, client, capture, env.MethodName, env.Params())
	tracing.SetError(span, err)
	tracing.SetStatus(span, err)
	return result, err
}

func (d *Dispatcher) executeRaw(ctx context.Context, env *types.Envelope) (any, error) {
	ctx = logging.WithDispatch(ctx, metrics.DispatchRaw)

	ctx, span := d.tracer.Start(ctx, "dispatch.raw")
	defer span.End()
	tracing.SetDispatchAttributes(span, metrics.DispatchRaw, "")

	if d.raw == nil {
		err := types.NewRequestError(types.CodeMissingDispatchTarget, "endpointPath",
			"raw passthrough is not available")
		tracing.SetStatus(span, err)
		return nil, err
	}

	result, err := d.raw.Execute(ctx, env)
	tracing.SetError(span, err)
	tracing.SetStatus(span, err)
	return result, err
}

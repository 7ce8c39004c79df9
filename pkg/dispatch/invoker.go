package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"mercator-hq/courier/pkg/normalize"
	"mercator-hq/courier/pkg/proxy/types"
	"mercator-hq/courier/pkg/telemetry/metrics"
	"mercator-hq/courier/pkg/telemetry/tracing"
	"mercator-hq/courier/pkg/transport"
	"mercator-hq/courier/pkg/twitter"
)

// Invoker calls packaged methods and shapes their failures.
type Invoker struct {
	registry *Registry
	policy   *EmptyResultPolicy
	errors   normalize.Options
	metrics  *metrics.Collector
	logger   *slog.Logger
}

// InvokerConfig configures an Invoker.
type InvokerConfig struct {
	// Registry holds the callable methods. nil means DefaultRegistry().
	Registry *Registry

	// Policy decides empty-result reclassification. nil disables it.
	Policy *EmptyResultPolicy

	// Errors controls remote error shaping
	Errors normalize.Options

	// Metrics is optional
	Metrics *metrics.Collector

	// Logger is optional
	Logger *slog.Logger
}

// NewInvoker creates an Invoker.
func NewInvoker(cfg InvokerConfig) *Invoker {
	if cfg.Registry == nil {
		cfg.Registry = DefaultRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Invoker{
		registry: cfg.Registry,
		policy:   cfg.Policy,
		errors:   cfg.Errors,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
	}
}

// Registry returns the method registry.
func (inv *Invoker) Registry() *Registry {
	return inv.registry
}

// Invoke calls the method registered as name on client.
//
// capture must be the recorder installed on client's transport; it is
// consulted when the call fails. Failures are returned as:
//   - the method's empty result, when the empty-result policy applies;
//   - *types.RequestError for unknown methods and missing query ids;
//   - *normalize.RemoteError for failures the platform answered;
//   - any other error unchanged.
func (inv *Invoker) Invoke(ctx context.Context, client *twitter.Client, capture *transport.Capture, name string, params map[string]any) (any, error) {
	m, ok := inv.registry.Lookup(name)
	if !ok {
		return nil, types.NewRequestError(types.CodeUnsupportedMethod, "methodName",
			fmt.Sprintf("unsupported method: %s", name))
	}
	if params == nil {
		params = map[string]any{}
	}

	result, err := m.Invoke(ctx, client, params)
	if err == nil {
		return result, nil
	}
	return inv.fail(ctx, m, capture, err)
}

func (inv *Invoker) fail(ctx context.Context, m *Method, capture *transport.Capture, err error) (any, error) {
	var last *transport.Response
	if capture != nil {
		last = capture.Last()
	}

	if inv.policy.Applies(err, last) {
		inv.logger.WarnContext(ctx, "reclassified decode failure as empty result",
			"method", m.Name,
			"error", err,
		)
		inv.metrics.RecordEmptyResult(m.Name)
		tracing.MarkEmptyResult(tracing.SpanFromContext(ctx))
		markEmpty(ctx)
		return m.Empty(), nil
	}

	if errors.Is(err, twitter.ErrMissingQueryID) {
		return nil, types.NewRequestError(types.CodeInvalidValue, "featureFlags", err.Error())
	}

	var apiErr *twitter.APIError
	if !errors.As(err, &apiErr) || apiErr.Response == nil {
		return nil, err
	}
	return nil, remoteError(apiErr, inv.errors)
}

// remoteError converts a client API error into the normalized remote
// failure. The structured body is the parsed payload, then the errors
// list, then whatever the raw body parses to.
func remoteError(apiErr *twitter.APIError, opts normalize.Options) *normalize.RemoteError {
	resp := apiErr.Response

	payload := apiErr.Payload
	if payload == nil && len(apiErr.Errors) > 0 {
		items := make([]any, 0, len(apiErr.Errors))
		for _, item := range apiErr.Errors {
			entry := map[string]any{"message": item.Message}
			if item.Code != 0 {
				entry["code"] = float64(item.Code)
			}
			if item.Kind != "" {
				entry["kind"] = item.Kind
			}
			if item.Name != "" {
				entry["name"] = item.Name
			}
			items = append(items, entry)
		}
		payload = map[string]any{"errors": items}
	}

	remote := normalize.NewRemoteError(resp.StatusCode, normalize.StatusText(resp.Status, resp.StatusCode),
		resp.URL, apiErr.Body, payload, opts)
	remote.Cause = apiErr
	return remote
}

type emptyKey struct{}

// TrackEmpty returns a context in which empty-result reclassifications are
// recorded, and a function reporting whether one happened.
func TrackEmpty(ctx context.Context) (context.Context, func() bool) {
	flag := new(atomic.Bool)
	return context.WithValue(ctx, emptyKey{}, flag), flag.Load
}

func markEmpty(ctx context.Context) {
	if flag, ok := ctx.Value(emptyKey{}).(*atomic.Bool); ok {
		flag.Store(true)
	}
}

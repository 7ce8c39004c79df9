// Package dispatch routes relay requests to the packaged method path or the
// raw passthrough path.
//
// The packaged path builds a session-scoped twitter.Client per request and
// calls a method from the Registry through the Invoker. Decode failures on
// legitimately empty datasets are reclassified by EmptyResultPolicy;
// failures the platform answered become *normalize.RemoteError.
//
// Basic usage:
//
//	d := dispatch.New(dispatch.Config{
//		HTTPClient: transport.NewClient(transport.Config{}),
//		Invoker:    dispatch.NewInvoker(dispatch.InvokerConfig{}),
//		Raw:        passthrough.New(passthrough.Config{}),
//	})
//	data, err := d.Execute(ctx, env)
package dispatch

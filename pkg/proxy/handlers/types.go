package handlers

import (
	"context"

	"mercator-hq/courier/pkg/proxy/types"
)

// Relay executes a validated envelope against the platform.
// *dispatch.Dispatcher implements it.
type Relay interface {
	Execute(ctx context.Context, env *types.Envelope) (any, error)
}

package fulfillment

// DefaultCancellablePhaseLimit is the index of the last phase during which
// an order may still be cancelled. Once production is left the window is
// closed.
const DefaultCancellablePhaseLimit = 2

// OrderPolicy carries the operator-tunable fulfillment rules. Deployments
// override the defaults through configuration.
type OrderPolicy struct {
	cancellablePhaseLimit int
}

// NewOrderPolicy creates a policy with the given cancellable-phase limit.
// Non-positive limits fall back to the default.
func NewOrderPolicy(cancellablePhaseLimit int) OrderPolicy {
	if cancellablePhaseLimit <= 0 {
		cancellablePhaseLimit = DefaultCancellablePhaseLimit
	}
	return OrderPolicy{cancellablePhaseLimit: cancellablePhaseLimit}
}

// DefaultOrderPolicy returns the policy used when no configuration is
// supplied
func DefaultOrderPolicy() OrderPolicy {
	return NewOrderPolicy(DefaultCancellablePhaseLimit)
}

// CancellableAt reports whether an order sitting in the given phase is still
// inside the cancellation window
func (p OrderPolicy) CancellableAt(phase PhaseName) bool {
	idx := PhaseIndex(phase)
	return idx >= 0 && idx <= p.cancellablePhaseLimit
}

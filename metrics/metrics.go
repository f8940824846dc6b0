package metrics

import "time"

// Recorder counts payment-flow events and observes operation latency.
// Implementations must be safe for concurrent use; recording is advisory
// and must never fail the flow.
type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}

// Event and operation names recorded by the orchestrator.
const (
	EventPaymentSucceeded = "payment_succeeded"
	EventPaymentFailed    = "payment_failed"
	EventBridgeSubmitted  = "bridge_submitted"
	EventBridgeFailed     = "bridge_failed"
	EventBridgeTimeout    = "bridge_timeout"

	OpExecutePayment = "execute_payment"
	OpScanChains     = "scan_chains"
	OpBridge         = "bridge"
	OpWait           = "wait_for_completion"
)

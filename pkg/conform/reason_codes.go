package conform

// Engine-level reason codes. Gate reasons use the codes in pkg/failure.
const (
	ReasonGateNotRegistered = "GATE_NOT_REGISTERED"
	ReasonGatePanic         = "GATE_PANIC"
)

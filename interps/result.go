package interps

// FaultKind classifies a fault surfaced by Execute.
type FaultKind string

const (
	// ParseFailure: the code is not valid as an expression or as a
	// statement sequence.
	ParseFailure FaultKind = "ParseFailure"
	// RuntimeFault: valid code faulted while executing.
	RuntimeFault FaultKind = "RuntimeFault"
	// ToolInvocationFault: a registered tool callable faulted.
	ToolInvocationFault FaultKind = "ToolInvocationFault"
)

type Fault struct {
	Kind    FaultKind `json:"kind"`
	Message string    `json:"message"`
}

var _ error = new(Fault)

func (f *Fault) Error() string {
	return string(f.Kind) + ": " + f.Message
}

// Result is the envelope returned by every Execute call. A fault never
// propagates past the engine boundary; it lands in Err, and Stdout keeps
// whatever was written before the fault.
type Result struct {
	Value    any            `json:"value"`
	Stdout   string         `json:"stdout"`
	Bindings map[string]any `json:"bindings"`
	Err      *Fault         `json:"error"`
}

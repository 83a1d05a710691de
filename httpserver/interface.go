package httpserver

// Readiness reports whether events posted now will be dispatched.
// *liveevents.Client implements it.
type Readiness interface {
	Ready() bool
}

// ReadinessFunc adapts a plain function to Readiness.
type ReadinessFunc func() bool

func (f ReadinessFunc) Ready() bool { return f() }

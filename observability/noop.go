package observability

// NoOpObserver discards every report.
type NoOpObserver struct{}

func (n *NoOpObserver) ObserveOperation(ctx OperationContext) {}

// NewNoOpObserver returns an Observer that does nothing.
func NewNoOpObserver() Observer {
	return &NoOpObserver{}
}

// Package observability defines the hook through which the broker adapters
// report what they did.
//
// The kafka and redis producers accept an optional Observer and call it once
// per buffered record ("produce") and once per flushed batch ("deliver"):
//
//	client := kafka.NewClient(cfg)
//	client.WithObserver(obs)
//
// Adapters work without one; a nil observer is simply skipped. The relay
// wires metrics.OperationObserver here, which turns the reports into
// Prometheus series. Tests usually record the reports in a slice.
package observability

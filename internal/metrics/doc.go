// Package metrics provides build and validation metrics for seobuilder.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection never needs nil checks:
//
//	type Pipeline struct {
//	    recorder metrics.Recorder
//	}
//
// To enable metrics, swap NoopRecorder for a PrometheusRecorder registered
// against a registry and serve the registry with Handler (watch mode does
// this on the configured metrics listen address).
package metrics

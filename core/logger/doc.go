// Package logger provides structured logging based on Zap.
//
// A single New constructor turns the logging config into either a console
// logger for local development or a JSON logger for production. The level
// and encoding come from the environment via core/config.
//
// # Request Correlation
//
// Every HTTP request carries a RayID set by the rayid middleware. The
// WithRayID helper extracts it from a Fiber context and attaches it as a
// field, so every log line emitted while serving a request can be
// correlated back to it.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger

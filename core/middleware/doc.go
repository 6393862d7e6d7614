// Package middleware holds the HTTP middleware for the Fiber application.
//
// # Components
//
//   - Auth: API key validation for the document endpoints. The key is
//     optional; when unset the API is open, which suits local use of the
//     tree browser.
//   - RayID: assigns a unique request id to every incoming request and
//     exposes it in the context and response headers, so log lines from
//     one tree computation can be traced together.
//
// Both are registered globally in cmd/start.go before the feature routes.
package middleware

// Package server provides HTTP routing and middleware for the web front end.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns ("GET /api/series").
//
// # Middleware
//
//   - [RequestLogger] logs method, path, status and duration through charmbracelet/log
//   - [RateLimit] rejects requests over a token bucket with 429
//   - [Recover] turns handler panics into 500 responses
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Server
//
// [Server] owns the [http.Server] lifecycle and shuts down gracefully when its context is cancelled.
package server

// Package server provides HTTP routing, middleware, and the profile preview handler.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [MuxRouter] implementation uses gorilla/mux internally with method filtering.
//
// # Profile Preview
//
// [ProfileHandler] loads the profile on every request and serves it as an HTML page or as JSON.
// `spotter profile serve` mounts it on localhost and opens the browser, so the rendered cards
// can be checked without the web frontend.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server

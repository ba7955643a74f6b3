// Package internal holds the HTTP core of authgate: the App, the request
// Context, routing and the server runtime. Import it through the root
// authgate package.
//
// Routes come from two places. Handlers declare explicit routes through
// [Handler.Routes]. Controllers are dispatched by convention under
// "/api/{controller}/{id}" where id is optional, the HTTP verb selects the
// method, and controller names match case-insensitively. With
// [RoutingNamespace] a controller that also reports a namespace is reachable
// as "/api/{namespace}/{controller}/{id}".
//
// Every error a handler returns goes through the single ErrorHandler set on
// the App. [APIErrorHandler] renders JSON problem bodies and is the default.
//
// The App is immutable after [New]. Values bound with [WithValue] are shared
// by every request and read back with [ContextValue].
package internal

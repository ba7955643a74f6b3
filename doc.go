// Package authgate is the HTTP backend behind the refresh token and user
// details client wrappers in pkg/apiclient.
//
// It re-exports the framework types from internal so applications and the
// handlers package depend on one import path.
//
//	app := authgate.New(
//	    authgate.WithLogger(log),
//	    authgate.WithSecurityCommand(cmd),
//	    authgate.WithRouting(authgate.RoutingNamespace),
//	    authgate.WithHandlers(handlers.NewRefreshTokens()),
//	    authgate.WithControllers(handlers.NewSampleController(mgr)),
//	)
//
//	err := app.Run(":8080", authgate.Logger(log))
//
// # Routing
//
// Handlers declare attribute routes through Routes(Router). Controllers are
// dispatched by convention under "/api/{controller}/{id}" where id is
// optional. With RoutingNamespace, controllers implementing Namespaced are
// also reachable under "/api/{namespace}/{controller}/{id}".
//
// # Errors
//
// Handlers return errors. One ErrorHandler per App renders them; the default
// is APIErrorHandler, which writes a JSON Problem body.
package authgate

// Package dbctx resolves the data-access handle a piece of code should use.
//
// Resolution order:
//
//  1. an override carried by the context.Context (see [WithHandle]);
//  2. otherwise the shared instance registered in a [Registry] under the
//     resolver's name ([DefaultName], "AuthContext", unless configured).
//
// Overrides travel with the context, so they are visible exactly to the code
// that receives that context and its descendants. There is no goroutine-local
// state to reset between requests. A typical override is a request-scoped
// transaction installed by middleware:
//
//	reg := dbctx.NewRegistry[db.Querier]()
//	reg.Register(dbctx.DefaultName, func(context.Context) (db.Querier, error) {
//		return pool, nil
//	})
//	resolve := dbctx.NewResolver(reg)
//
//	// inside a request
//	q, err := resolve.Handle(ctx) // pool, or the tx installed via dbctx.WithHandle
//
// Registry lookups are safe for concurrent use and idempotent: a factory runs
// at most once per name and every caller receives the same instance.
package dbctx

// Package cache provides small typed key-value caches with TTLs.
//
// Two backends implement [Cache]: [Memory] for single-instance deployments and
// [Redis] when several API replicas must share entries. [Loader] puts a
// read-through layer with stampede protection in front of either:
//
//	users := cache.NewLoader[security.User](cache.NewMemory[security.User](), 5*time.Minute)
//	u, err := users.Get(ctx, userID, func(ctx context.Context) (security.User, error) {
//		return store.UserDetails(ctx, userID)
//	})
package cache

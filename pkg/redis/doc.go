// Package redis opens go-redis clients from environment configuration and
// exposes the health and shutdown hooks the application registers.
//
//	client, err := redis.Open(ctx, cfg.Redis)
//	if err != nil {
//		return err
//	}
//	app := authgate.New(
//		authgate.WithHealthChecks(authgate.Checks{"redis": redis.Healthcheck(client)}),
//		authgate.WithShutdownHook(redis.Shutdown(client)),
//	)
//
// Only redis:// and rediss:// URLs are accepted.
package redis

// Package security is the refresh-token and user-details command surface the
// API binds as a process-wide singleton.
//
// [Store] is the Postgres implementation. It never holds a connection of its
// own: every call resolves a [db.Querier] through a [dbctx.Resolver], so a
// transaction placed on the request context is picked up transparently and
// the shared "AuthContext" pool is used otherwise.
//
// [Cached] decorates any [Command] with a user-details cache, and [PurgeJob]
// removes expired refresh tokens on a cron schedule.
package security

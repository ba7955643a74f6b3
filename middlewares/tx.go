package middlewares

import (
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/authgate/internal"
	"github.com/dmitrymomot/authgate/pkg/db"
	"github.com/dmitrymomot/authgate/pkg/dbctx"
)

// Tx runs the rest of the chain inside a transaction started on b. The
// transaction is placed on the request context as the db.Querier override,
// so every repository resolving through dbctx uses it. It commits when the
// handler returns nil and rolls back otherwise.
//
// The response is held back until the commit succeeds. A failed commit
// discards it and the commit error is rendered instead.
func Tx(b db.TxBeginner) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			parent := c.Context()
			defer c.SetContext(parent)

			rw := c.ResponseWriter()
			buffered := rw.Buffer()
			if buffered {
				defer rw.DiscardBuffer()
			}

			err := db.WithTx(parent, b, func(tx pgx.Tx) error {
				c.SetContext(dbctx.WithHandle[db.Querier](parent, tx))
				return next(c)
			})
			if !buffered {
				return err
			}
			if err != nil {
				rw.DiscardBuffer()
				return err
			}
			return rw.ReleaseBuffer()
		}
	}
}

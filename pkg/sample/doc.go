// Package sample is the placeholder CRUD module generated alongside the API.
//
// [Manager] exposes the four CRUD operations but none of them is implemented
// yet: each returns [ErrNotImplemented] without touching its [Repository].
// The Postgres repository is ready for when the operations are filled in.
package sample

// Package health serves liveness and readiness probes.
//
// Readiness runs every named check concurrently under a shared timeout and
// answers 503 if any of them fails. Responses are plain text unless the
// client asks for JSON through the Accept header or ?format=json.
package health

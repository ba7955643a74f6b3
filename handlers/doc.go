// Package handlers serves the endpoints called by pkg/apiclient and the
// conventionally routed sample controller.
//
// Every handler reads the security command through authgate.Security, so a
// single command bound at startup serves all requests.
package handlers

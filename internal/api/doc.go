// Package api exposes the vocabulary trainer over HTTP. Handlers decode and
// validate JSON requests, call the services in internal/service and map
// their errors to status codes in one place (errors.go).
//
// Route registration lives in cmd/server.
package api

// Package events lets services request background work without importing
// the task machinery.
//
// A service emits a TaskRequestEvent; handlers registered for the event's
// type turn it into a task.
package events

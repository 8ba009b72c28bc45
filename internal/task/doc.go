// Package task runs background work outside the request path.
//
// Tasks are persisted before they are queued so that a restart loses
// nothing: pending and interrupted tasks are reloaded as StoredTask values
// and rebuilt through a Registry. The only task type today fills in
// example sentences for newly added words.
package task

// Package tasks runs document ingestion in the background.
//
// Submitted files are processed on a shared worker pool. Every submission
// gets a task record whose status advances through PENDING, STARTED and
// optionally RETRY before landing on SUCCESS or FAILURE; the record is
// persisted so status survives process restarts. Transient failures are
// retried with exponential backoff, validation failures are not.
package tasks

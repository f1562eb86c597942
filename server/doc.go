// Package server exposes the docrag HTTP API.
//
// Document routes submit background ingestion jobs and report on stored
// assets; chat routes manage threads and stream answers as plain token
// bodies. Errors map to JSON {"detail": ...} payloads with conventional
// status codes.
package server

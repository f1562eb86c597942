// Package ingestion provides pipeline orchestration for turning source
// documents into stored, searchable assets.
//
// The Pipeline type manages the ingestion workflow for one file:
//   - Validating and normalizing the source path
//   - Rejecting duplicate file names
//   - Extracting text and splitting it into overlapping word windows
//   - Embedding all windows in one batch
//   - Persisting chunks under a freshly minted asset id
//
// Ingestion of a file is all-or-nothing: a failure at any stage leaves no
// partial asset behind.
package ingestion

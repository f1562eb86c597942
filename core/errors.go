// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Domain errors. Validation and lookup failures are surfaced to callers
// with these sentinels so boundaries can map them to distinct statuses.
var (
	// ErrInvalidPath indicates an empty or non-absolute file path.
	ErrInvalidPath = errors.New("missing or invalid file path")

	// ErrPathTraversal indicates a path containing a ".." segment.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrNotFound indicates a missing file or folder.
	ErrNotFound = errors.New("file not found")

	// ErrNotAFile indicates a path that exists but is not a regular file.
	ErrNotAFile = errors.New("path is not a file")

	// ErrUnsupportedFormat indicates a file extension outside pdf/txt/docx.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtractionFailed indicates text extraction from a document failed.
	ErrExtractionFailed = errors.New("failed to extract text from document")

	// ErrEmptyEmbeddingInput indicates a document produced no chunks to embed.
	ErrEmptyEmbeddingInput = errors.New("no text found for embedding")

	// ErrDuplicateFileName indicates a document with the same file name
	// has already been ingested.
	ErrDuplicateFileName = errors.New("duplicate file name detected")

	// ErrAssetNotFound indicates an asset id with no stored chunks.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrThreadNotFound indicates an unknown chat thread id.
	ErrThreadNotFound = errors.New("thread not found")

	// ErrTaskNotFound indicates an unknown background task id.
	ErrTaskNotFound = errors.New("task not found")

	// ErrEmptyMessage indicates a chat request without a message body.
	ErrEmptyMessage = errors.New("message cannot be empty")
)

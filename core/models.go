package core

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ChunkID builds the storage identity for chunk idx of an asset.
func ChunkID(assetID string, idx int) string {
	return fmt.Sprintf("%s_%d", assetID, idx)
}

// FileType identifies a supported document format.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeTXT  FileType = "txt"
	FileTypeDOCX FileType = "docx"
)

// SupportedFileTypes lists the formats the ingestion pipeline accepts.
var SupportedFileTypes = []FileType{FileTypePDF, FileTypeTXT, FileTypeDOCX}

// IsSupportedFileType reports whether ext names a supported format.
func IsSupportedFileType(ext string) bool {
	for _, ft := range SupportedFileTypes {
		if string(ft) == ext {
			return true
		}
	}
	return false
}

// ChecksumFromContent computes a hex-encoded BLAKE2b digest of text content.
// Identical content always produces the identical checksum.
func ChecksumFromContent(text string) string {
	h, _ := blake2b.New(16, nil)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// DocumentMeta describes the source file of an asset. It is attached
// identically to every chunk of the same asset.
type DocumentMeta struct {
	FileName  string    `json:"file_name"`
	FileType  FileType  `json:"file_type"`
	FileSize  int64     `json:"file_size"`
	CreatedAt time.Time `json:"created_at"` // Derived from the source file's timestamp, UTC
	Checksum  string    `json:"checksum,omitempty"`
}

// Chunk is one word-windowed slice of a document, embedded and stored with
// an asset-scoped index.
//
// Invariants: Index values for an asset are contiguous from 0 and unique;
// the Vector length is constant across all chunks of the store.
type Chunk struct {
	AssetID string       `json:"asset_id"`
	Index   int          `json:"chunk_idx"`
	Text    string       `json:"text"`
	Vector  []float32    `json:"vector,omitempty"`
	Meta    DocumentMeta `json:"meta"`
}

// ChunkID returns the storage identity of a chunk: "{asset_id}_{idx}".
func (c *Chunk) ChunkID() string {
	return ChunkID(c.AssetID, c.Index)
}

// ChunkInfo is the id/index pair reported for a stored chunk.
type ChunkInfo struct {
	ChunkID  string `json:"chunk_id"`
	ChunkIdx int    `json:"chunk_idx"`
}

// StoredDocument groups the stored chunks of one asset for reporting.
type StoredDocument struct {
	AssetID   string      `json:"asset_id"`
	FileName  string      `json:"file_name"`
	FileType  FileType    `json:"file_type"`
	FileSize  int64       `json:"file_size"`
	CreatedAt time.Time   `json:"created_at"`
	Chunks    []ChunkInfo `json:"chunks"`
}

// Thread is a chat session bound to exactly one asset.
// LastUsed is advanced on every read or write chat operation.
type Thread struct {
	ID        string    `json:"thread_id"`
	AssetID   string    `json:"asset_id"`
	CreatedAt time.Time `json:"created_at"`
	LastUsed  time.Time `json:"last_used"`
}

// Sender identifies the author of a chat message.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// Message is one entry in a thread's append-only history log.
type Message struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"` // UTC
}

// SearchResult is a chunk matched by vector similarity search.
type SearchResult struct {
	Chunk *Chunk
	Score float32
}

// TaskStatus is the lifecycle state of a background ingestion task.
type TaskStatus string

const (
	TaskPending TaskStatus = "PENDING"
	TaskStarted TaskStatus = "STARTED"
	TaskRetry   TaskStatus = "RETRY"
	TaskSuccess TaskStatus = "SUCCESS"
	TaskFailure TaskStatus = "FAILURE"
)

// Task records the progress of one background ingestion job.
// AssetID is populated only on success; Error only on failure.
type Task struct {
	ID        string     `json:"task_id"`
	FilePath  string     `json:"file_path"`
	Status    TaskStatus `json:"status"`
	AssetID   string     `json:"asset_id,omitempty"`
	Error     string     `json:"error,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

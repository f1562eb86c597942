package badger

import (
	"encoding/binary"
	"fmt"
)

// Key prefixes for different data types
const (
	chunkRecordPrefix   = "chunk"
	threadRecordPrefix  = "thread"
	historyRecordPrefix = "hist"
	taskRecordPrefix    = "task"
)

// makeChunkKey generates a key for chunk idx of an asset.
// Format: prefix:assetID:idx, with idx written in BigEndian order so
// lexicographic iteration yields chunks in index order.
func makeChunkKey(assetID string, idx int) []byte {
	prefix := makeAssetPrefix(assetID)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(idx))
	return buf
}

// makeAssetPrefix generates the common prefix of all chunk keys of an asset.
func makeAssetPrefix(assetID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", chunkRecordPrefix, assetID))
}

// makeChunkScanPrefix generates the common prefix of all chunk keys.
func makeChunkScanPrefix() []byte {
	return []byte(chunkRecordPrefix + ":")
}

// makeThreadKey generates a key for a thread record.
func makeThreadKey(threadID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", threadRecordPrefix, threadID))
}

// makeThreadScanPrefix generates the common prefix of all thread keys.
func makeThreadScanPrefix() []byte {
	return []byte(threadRecordPrefix + ":")
}

// makeHistoryKey generates a key for message seq of a thread's log.
// Format: prefix:threadID:seq, with seq written in BigEndian order so
// lexicographic iteration yields messages in insertion order.
func makeHistoryKey(threadID string, seq uint64) []byte {
	prefix := makeHistoryPrefix(threadID)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeHistoryPrefix generates the common prefix of one thread's log keys.
func makeHistoryPrefix(threadID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", historyRecordPrefix, threadID))
}

// makeTaskKey generates a key for a task record.
func makeTaskKey(taskID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", taskRecordPrefix, taskID))
}

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


package storage

import (
	"encoding/json"
	"fmt"

	"github.com/poiesic/docrag/core"
)

// MarshalChunk serializes a Chunk to bytes.
func MarshalChunk(chunk *core.Chunk) ([]byte, error) {
	data, err := json.Marshal(chunk)
	if err != nil {
		return nil, fmt.Errorf("%w: chunk: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalChunk deserializes a Chunk from bytes.
func UnmarshalChunk(data []byte) (*core.Chunk, error) {
	var chunk core.Chunk
	if err := json.Unmarshal(data, &chunk); err != nil {
		return nil, fmt.Errorf("%w: chunk: %w", ErrSerializationFailed, err)
	}
	return &chunk, nil
}

// MarshalThread serializes a Thread to bytes.
func MarshalThread(thread *core.Thread) ([]byte, error) {
	data, err := json.Marshal(thread)
	if err != nil {
		return nil, fmt.Errorf("%w: thread: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalThread deserializes a Thread from bytes.
func UnmarshalThread(data []byte) (*core.Thread, error) {
	var thread core.Thread
	if err := json.Unmarshal(data, &thread); err != nil {
		return nil, fmt.Errorf("%w: thread: %w", ErrSerializationFailed, err)
	}
	return &thread, nil
}

// MarshalMessage serializes a Message to bytes.
func MarshalMessage(msg *core.Message) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("%w: message: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalMessage deserializes a Message from bytes.
func UnmarshalMessage(data []byte) (*core.Message, error) {
	var msg core.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: message: %w", ErrSerializationFailed, err)
	}
	return &msg, nil
}

// MarshalTask serializes a Task to bytes.
func MarshalTask(task *core.Task) ([]byte, error) {
	data, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("%w: task: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalTask deserializes a Task from bytes.
func UnmarshalTask(data []byte) (*core.Task, error) {
	var task core.Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("%w: task: %w", ErrSerializationFailed, err)
	}
	return &task, nil
}

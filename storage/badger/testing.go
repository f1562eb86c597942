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


package badger

// MemoryRepositories bundles in-memory repositories for testing.
// Caller must call Close when done.
type MemoryRepositories struct {
	Vectors *VectorRepository
	Threads *ThreadRepository
	History *HistoryRepository
	Tasks   *TaskRepository
	Backend *Backend
}

// NewMemoryRepositories creates all four repositories over one in-memory
// backend for testing.
func NewMemoryRepositories() (*MemoryRepositories, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	return &MemoryRepositories{
		Vectors: NewVectorRepository(backend),
		Threads: NewThreadRepository(backend),
		History: NewHistoryRepository(backend),
		Tasks:   NewTaskRepository(backend),
		Backend: backend,
	}, nil
}

// Close closes all repositories and the backing store.
func (m *MemoryRepositories) Close() error {
	m.Vectors.Close()
	m.Threads.Close()
	m.History.Close()
	m.Tasks.Close()
	return m.Backend.Close()
}

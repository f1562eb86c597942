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


// Package storage defines the persistence interfaces and value codecs for
// docrag.
//
// Four repositories partition the persisted state: VectorRepository owns
// chunk data (vectors, texts, metadata), ThreadRepository owns chat thread
// records, HistoryRepository owns per-thread message logs, and
// TaskRepository owns background task states. The storage/badger subpackage
// implements all four on a single embedded BadgerDB instance.
//
// Values are serialized as JSON documents; the JSON shapes double as the
// wire format reported over the HTTP API.
package storage

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


// Package core holds the domain model shared by every other package:
// documents and their chunks, chat threads and messages, background task
// states, the error taxonomy, and file path validation.
//
// A document ingested into the system becomes an Asset: a UUID identity plus
// an ordered sequence of word-windowed chunks, each carrying the same
// DocumentMeta. Assets are immutable once created. A Thread binds a chat
// session to exactly one asset; many threads may reference the same asset.
package core

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


// Package ai provides abstractions for the AI services used in docrag.
//
// Two interfaces cover the system's needs:
//
//   - Embedder: turns chunk text into fixed-dimension vectors
//   - Generator: gates question relevance and streams grounded answers
//
// AIProvider aggregates both for convenient initialization and lifecycle
// management. Production implementations live in ai/openai (any
// OpenAI-compatible API); test doubles live in ai/mock. Business logic
// depends only on the interfaces, so providers can be swapped and tests
// never need a live model.
package ai

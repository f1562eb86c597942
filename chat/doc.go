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


// Package chat orchestrates question answering over ingested documents.
//
// A message turn runs: resolve thread, touch last_used, record the user
// message, retrieve the asset's most similar chunks, then answer. Retrieval
// never crosses asset boundaries. Questions that cannot be served get a
// fixed notice instead of an LLM call; questions the relevance gate rejects
// get a fixed fallback sentence recorded as the agent's answer.
//
// Answers stream through a token channel: the producer pushes tokens and
// closes the channel when done. On a mid-stream failure the producer pushes
// one terminal error token and closes without recording the partial answer.
package chat

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


// Package extract pulls text out of supported document formats.
//
// Text returns the full content in one string. Segments delivers the
// content incrementally in the format's natural unit: lines for txt,
// pages for pdf, paragraphs for docx. Parser failures are wrapped into
// core.ErrExtractionFailed; the underlying library error is logged, not
// surfaced.
package extract

// Copyright 2025 Voicetask Labs
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


// Package ai provides abstractions for the AI services used by the
// ingestion pipeline: text embedding and conversation condensation.
//
// The package defines interfaces only; concrete implementations live in
// sub-packages:
//
//   - ai/openai: production implementation against an Azure-flavored
//     OpenAI-compatible API
//   - ai/mock: test doubles for unit testing without remote services
//
// Public constructors in the implementation packages return the interface
// types defined here to enforce abstraction; mock constructors return
// concrete types so tests can inject behavior and assert call counts.
package ai

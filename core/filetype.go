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


package core

import "strings"

// AllowedFileTypes lists the upload extensions accepted by the pipeline.
// The set is closed; anything else is skipped during extraction.
var AllowedFileTypes = []string{"pdf", "txt", "pptx"}

// FileExt returns the lowercased suffix after the last dot in filename,
// without the dot. Returns an empty string if the filename has no dot.
func FileExt(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// IsAllowed reports whether the filename carries a supported extension.
// A filename without a dot is not allowed; it is not an error.
func IsAllowed(filename string) bool {
	if !strings.Contains(filename, ".") {
		return false
	}
	ext := FileExt(filename)
	for _, allowed := range AllowedFileTypes {
		if ext == allowed {
			return true
		}
	}
	return false
}

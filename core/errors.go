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

import "errors"

// Domain errors
var (
	// ErrUnsupportedFileType indicates a file extension outside the allow-list.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrEmptyFilename indicates a file with no usable name.
	ErrEmptyFilename = errors.New("filename cannot be empty")

	// ErrNilStream indicates an uploaded file without a readable stream.
	ErrNilStream = errors.New("file stream cannot be nil")
)

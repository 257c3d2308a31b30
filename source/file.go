// Copyright 2025 The Rivaas Authors
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

package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// File loads settings bytes from a file or from fixed content.
type File struct {
	path string
	data []byte
}

// NewFile creates a File source reading the file at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// NewFileContent creates a File source that always returns data. Useful for
// embedded defaults and tests.
func NewFileContent(data []byte) *File {
	return &File{data: data}
}

// Path returns the file path, or "" for a content source.
func (f *File) Path() string {
	return f.path
}

// Load reads the file. A file that does not exist loads as no content, so a
// store opened on a new path starts empty.
//
// Errors:
//   - Returns error if the file exists but cannot be read
func (f *File) Load(context.Context) ([]byte, error) {
	if f.path == "" {
		return f.data, nil
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

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

package dumper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFilePermissions represents the default file permissions for
// written settings files (0644).
const DefaultFilePermissions = 0o644

// File writes settings bytes to a file. Writes go to a temporary file in the
// same directory that is then renamed over the target, so readers never see
// a partial document.
type File struct {
	path        string
	permissions os.FileMode
}

// NewFile creates a File dumper writing to path with
// [DefaultFilePermissions].
func NewFile(path string) *File {
	return NewFileWithPermissions(path, DefaultFilePermissions)
}

// NewFileWithPermissions creates a File dumper with custom file permissions.
// Use this when you need more restrictive permissions (e.g., 0600 for
// settings holding secrets).
func NewFileWithPermissions(path string, permissions os.FileMode) *File {
	return &File{
		path:        path,
		permissions: permissions,
	}
}

// Path returns the target file path.
func (f *File) Path() string {
	return f.path
}

// Dump replaces the file's content with data, creating missing parent
// directories.
//
// Errors:
//   - Returns error if the directory or temporary file cannot be created
//   - Returns error if writing or renaming fails
func (f *File) Dump(_ context.Context, data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err = tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck,gosec // write error takes precedence
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err = tmp.Chmod(f.permissions); err != nil {
		tmp.Close() //nolint:errcheck,gosec // chmod error takes precedence
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err = os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

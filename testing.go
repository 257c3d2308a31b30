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

package settings

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"rivaas.dev/settings/variant"
)

// mockSource is a test implementation of the Source interface.
type mockSource struct {
	data []byte
	err  error
}

// Load implements the Source interface for testing.
func (m *mockSource) Load(_ context.Context) ([]byte, error) {
	return m.data, m.err
}

// MockDumper is a test implementation of the Dumper interface. It records
// the last document written to it.
type MockDumper struct {
	mu     sync.Mutex
	called int
	data   []byte
	err    error
}

// Dump implements the Dumper interface for testing.
func (m *MockDumper) Dump(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.called++
	m.data = append([]byte(nil), data...)
	return m.err
}

// Calls returns how many times Dump was called.
func (m *MockDumper) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.called
}

// Data returns the last document passed to Dump.
func (m *MockDumper) Data() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data
}

// TestSource creates a mock source serving the given document.
func TestSource(data []byte) Source {
	return &mockSource{data: data}
}

// TestSourceWithError creates a mock source that returns an error on Load.
func TestSourceWithError(err error) Source {
	return &mockSource{err: err}
}

// TestDumper creates a mock dumper for testing.
func TestDumper() *MockDumper {
	return &MockDumper{}
}

// TestDumperWithError creates a mock dumper that returns an error on Dump.
func TestDumperWithError(err error) *MockDumper {
	return &MockDumper{err: err}
}

// TestStore creates a new Store with the given options for testing.
// It fails the test if creation fails.
func TestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := New(opts...)
	require.NoError(t, err, "failed to create test store")
	return s
}

// TestStoreLoaded creates a Store over a JSON document and loads it.
func TestStoreLoaded(t *testing.T, document string) *Store {
	t.Helper()
	s := TestStore(t, WithSource(TestSource([]byte(document))))
	require.NoError(t, s.Load(t.Context()), "failed to load test store")
	return s
}

// TestJSONFile creates a temporary JSON file with the given content.
// The file is automatically cleaned up when the test completes.
func TestJSONFile(t *testing.T, content []byte) string {
	t.Helper()
	return testFile(t, "settings.json", content)
}

// TestYAMLFile creates a temporary YAML file with the given content.
func TestYAMLFile(t *testing.T, content []byte) string {
	t.Helper()
	return testFile(t, "settings.yaml", content)
}

// TestTOMLFile creates a temporary TOML file with the given content.
func TestTOMLFile(t *testing.T, content []byte) string {
	t.Helper()
	return testFile(t, "settings.toml", content)
}

func testFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(filePath, content, 0o600)
	require.NoError(t, err, "failed to create test file")
	return filePath
}

// AssertValue asserts that the value under key equals expected, comparing
// numbers by value.
func AssertValue(t *testing.T, s *Store, key string, expected variant.Value) {
	t.Helper()
	actual, ok := s.Value(key)
	require.True(t, ok, "no value for key %q", key)
	require.True(t, variant.Equal(expected, actual), "value mismatch for key %q: got %#v", key, actual)
}

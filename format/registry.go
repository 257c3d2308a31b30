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

package format

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"rivaas.dev/settings/codec"
)

// ReadFunc parses a settings document from r into dst and reports success.
// A failed read must leave dst untouched.
type ReadFunc func(r io.Reader, dst *SettingsMap) bool

// WriteFunc stores src to w and reports success.
type WriteFunc func(w io.Writer, src SettingsMap) bool

// Format is a named pair of settings entry points.
type Format struct {
	// Name identifies the format, e.g. "json".
	Name string

	// Extensions lists file extensions, with the leading dot, that select
	// this format in [Registry.Detect].
	Extensions []string

	Read  ReadFunc
	Write WriteFunc
}

// NewDocumentFormat returns a format that stores settings as documents
// serialized with c.
func NewDocumentFormat(name string, extensions []string, c codec.Codec) Format {
	return Format{
		Name:       name,
		Extensions: extensions,
		Read:       readWith(c),
		Write:      writeWith(c),
	}
}

var (
	// ErrDuplicateFormat is returned when registering a name twice.
	ErrDuplicateFormat = errors.New("format already registered")

	// ErrInvalidFormat is returned when registering a format without a name
	// or entry points.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrUnknownFormat is returned when no registered format matches.
	ErrUnknownFormat = errors.New("unknown format")
)

// Registry maps format names and file extensions to formats. Formats are
// registered once, at startup, and looked up whenever a store is opened.
// A Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	formats map[string]Format
	byExt   map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[string]Format),
		byExt:   make(map[string]string),
	}
}

// NewDefaultRegistry returns a new registry holding the built-in formats:
// "json" (.json), "yaml" (.yaml, .yml) and "toml" (.toml).
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, f := range []Format{
		NewDocumentFormat(string(codec.TypeJSON), []string{".json"}, codec.JSONCodec{}),
		NewDocumentFormat(string(codec.TypeYAML), []string{".yaml", ".yml"}, codec.YAMLCodec{}),
		NewDocumentFormat(string(codec.TypeTOML), []string{".toml"}, codec.TOMLCodec{}),
	} {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds f to the registry. Extensions already claimed by another
// format are taken over by f.
//
// Errors:
//   - Returns [ErrInvalidFormat] if f has no name or a nil entry point
//   - Returns [ErrDuplicateFormat] if f.Name is already registered
func (r *Registry) Register(f Format) error {
	if f.Name == "" || f.Read == nil || f.Write == nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, f.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formats[f.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateFormat, f.Name)
	}
	r.formats[f.Name] = f
	for _, ext := range f.Extensions {
		r.byExt[strings.ToLower(ext)] = f.Name
	}
	return nil
}

// Lookup returns the format registered under name.
func (r *Registry) Lookup(name string) (Format, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formats[name]
	return f, ok
}

// Detect returns the format for path based on its extension.
//
// Errors:
//   - Returns [ErrUnknownFormat] if no format claims the extension
func (r *Registry) Detect(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))

	r.mu.RLock()
	defer r.mu.RUnlock()
	if name, ok := r.byExt[ext]; ok {
		return r.formats[name], nil
	}
	return Format{}, fmt.Errorf("%w: cannot detect format from extension %q", ErrUnknownFormat, ext)
}

// Names returns the registered format names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"

	"rivaas.dev/settings/format"
	"rivaas.dev/settings/keypath"
	"rivaas.dev/settings/tree"
	"rivaas.dev/settings/variant"
)

// DefaultFormat is the format of sources and dumpers with no other way to
// choose one.
const DefaultFormat = "json"

// DefaultTag is the struct tag read by [Store.Unmarshal].
const DefaultTag = "settings"

// Store is an in-memory cache of a flat settings map backed by sources and
// dumpers. Keys are slash-separated paths such as "window/geometry".
//
// Load replaces the cache with what the sources hold, Sync writes the cache
// to every dumper. Between the two, reads and writes only touch memory.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	mu       sync.RWMutex
	values   format.SettingsMap
	defaults format.SettingsMap

	inputs     []input
	outputs    []output
	registry   *format.Registry
	formatName string
	watchPath  string
	tagName    string
	logger     *slog.Logger

	decoderConfig *mapstructure.DecoderConfig
	decoderOnce   sync.Once
}

// New creates a Store with the given options. Errors from every option are
// joined and returned together with the partially configured store.
func New(options ...Option) (*Store, error) {
	s := &Store{
		values:     make(format.SettingsMap),
		defaults:   make(format.SettingsMap),
		formatName: DefaultFormat,
		tagName:    DefaultTag,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	var errs error
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(s); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if s.registry == nil {
		s.registry = format.NewDefaultRegistry()
	}
	if err := s.resolveFormats(); err != nil {
		errs = errors.Join(errs, err)
	}

	return s, errs
}

// MustNew is like New but panics if any option fails.
// Use this in main() or initialization code where panic is acceptable.
func MustNew(options ...Option) *Store {
	s, err := New(options...)
	if err != nil {
		panic(fmt.Sprintf("settings: failed to create store: %v", err))
	}
	return s
}

// Load reads every source and replaces the cached values. A source with no
// content contributes nothing. Defaults fill in keys no source provides.
// On error the cached values are left untouched.
//
// Errors:
//   - Returns [Error] wrapping [format.ErrUnknownFormat] if a source has no
//     format, as when New reported a detection error
//   - Returns [Error] wrapping the source's error if a source cannot be read
//   - Returns [Error] wrapping [ErrReadFailed] if a document cannot be parsed
func (s *Store) Load(ctx context.Context) error {
	loaded := make(format.SettingsMap)
	for i, in := range s.inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := fmt.Sprintf("%s[%d]", in.name, i)
		if in.format.Read == nil {
			return NewError(name, "read", format.ErrUnknownFormat)
		}

		data, err := in.src.Load(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "settings source failed", "source", name, "error", err)
			return NewError(name, "load", err)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}

		var m format.SettingsMap
		if !in.format.Read(bytes.NewReader(data), &m) {
			s.logger.WarnContext(ctx, "settings unreadable", "source", name, "format", in.format.Name)
			return NewError(name, "read", ErrReadFailed)
		}
		maps.Copy(loaded, m)
	}

	merged, err := mergeDefaults(loaded, s.defaults)
	if err != nil {
		return NewError("defaults", "merge", err)
	}

	s.mu.Lock()
	s.values = merged
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "settings loaded", "sources", len(s.inputs), "keys", len(merged))
	return nil
}

// slot hides a value from mergo, so values are replaced whole rather than
// merged field by field.
type slot struct {
	v variant.Value
}

// mergeDefaults returns loaded with defaults filling in missing keys.
func mergeDefaults(loaded, defaults format.SettingsMap) (format.SettingsMap, error) {
	if len(defaults) == 0 {
		return loaded, nil
	}
	merged := make(map[string]any, len(loaded)+len(defaults))
	for _, layer := range []format.SettingsMap{defaults, loaded} {
		boxed := make(map[string]any, len(layer))
		for k, v := range layer {
			boxed[k] = slot{v: v}
		}
		if err := mergo.Merge(&merged, boxed, mergo.WithOverride); err != nil {
			return nil, err
		}
	}

	out := make(format.SettingsMap, len(merged))
	for k, x := range merged {
		out[k] = x.(slot).v
	}
	return out, nil
}

// MustLoad is like Load but panics on error.
func (s *Store) MustLoad(ctx context.Context) {
	if err := s.Load(ctx); err != nil {
		panic(err)
	}
}

// Sync writes the cached values to every dumper.
//
// Errors:
//   - Returns [Error] wrapping [format.ErrUnknownFormat] if a dumper has no
//     format
//   - Returns [Error] wrapping [ErrWriteFailed] if the values cannot be
//     serialized in a dumper's format
//   - Returns [Error] wrapping the dumper's error if writing fails
func (s *Store) Sync(ctx context.Context) error {
	snapshot := s.Snapshot()

	for i, out := range s.outputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := fmt.Sprintf("%s[%d]", out.name, i)
		if out.format.Write == nil {
			return NewError(name, "write", format.ErrUnknownFormat)
		}

		var buf bytes.Buffer
		if !out.format.Write(&buf, snapshot) {
			return NewError(name, "write", ErrWriteFailed)
		}
		if err := out.dst.Dump(ctx, buf.Bytes()); err != nil {
			s.logger.WarnContext(ctx, "settings dump failed", "dumper", name, "error", err)
			return NewError(name, "sync", err)
		}
	}

	s.logger.DebugContext(ctx, "settings synced", "dumpers", len(s.outputs), "keys", len(snapshot))
	return nil
}

// Value returns the value stored under key.
func (s *Store) Value(key string) (variant.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Get returns the value stored under key, or [variant.Invalid] if there is
// none.
func (s *Store) Get(key string) variant.Value {
	if v, ok := s.Value(key); ok {
		return v
	}
	return variant.Invalid{}
}

// Contains reports whether key holds a value.
func (s *Store) Contains(key string) bool {
	_, ok := s.Value(key)
	return ok
}

// Set stores v under key. A nil v stores [variant.Invalid].
func (s *Store) Set(key string, v variant.Value) {
	if v == nil {
		v = variant.Invalid{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = v
}

// SetAny converts x with variant.From and stores it under key.
//
// Errors:
//   - Returns [Error] wrapping [variant.ErrUnsupported] if x has no value kind
func (s *Store) SetAny(key string, x any) error {
	v, err := variant.From(x)
	if err != nil {
		return NewFieldError("store", key, "set", err)
	}
	s.Set(key, v)
	return nil
}

// Remove deletes key and every key inside it. Removing "" clears the store.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key == "" {
		clear(s.values)
		return
	}
	delete(s.values, key)
	maps.DeleteFunc(s.values, func(k string, _ variant.Value) bool {
		return keypath.IsChild(key, k)
	})
}

// Clear removes every value.
func (s *Store) Clear() {
	s.Remove("")
}

// Keys returns every key in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.values))
}

// ChildKeys returns the keys directly inside group that hold a value.
func (s *Store) ChildKeys(group string) []string {
	return keypath.ChildKeys(keypath.Trim(group), s.Keys())
}

// ChildGroups returns the groups directly inside group.
func (s *Store) ChildGroups(group string) []string {
	return keypath.ChildGroups(keypath.Trim(group), s.Keys())
}

// Snapshot returns a copy of the cached values.
func (s *Store) Snapshot() format.SettingsMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

// Len returns the number of keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// getDecoderConfig returns a cached decoder configuration to reduce reflection overhead.
func (s *Store) getDecoderConfig() mapstructure.DecoderConfig {
	s.decoderOnce.Do(func() {
		s.decoderConfig = &mapstructure.DecoderConfig{
			TagName:          s.tagName,
			Squash:           true,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.StringToTimeHookFunc(time.RFC3339),
			),
		}
	})
	return *s.decoderConfig
}

// Unmarshal decodes the cached values into target, which must be a pointer
// to a struct or map. Key paths become nested fields: "window/width" fills
// the field tagged "width" of the struct tagged "window".
//
// Errors:
//   - Returns [Error] if decoding fails
func (s *Store) Unmarshal(target any) error {
	nested := tree.FromMap(s.Snapshot()).ToNested(variant.Native)

	config := s.getDecoderConfig()
	config.Result = target
	decoder, err := mapstructure.NewDecoder(&config)
	if err != nil {
		return NewError("binding", "create-decoder", err)
	}
	if err = decoder.Decode(nested); err != nil {
		return NewError("binding", "bind", err)
	}
	return nil
}

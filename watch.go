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
	"errors"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ErrNoWatchPath is returned by Watch when the store has no file source.
var ErrNoWatchPath = errors.New("no file to watch")

// Watch reloads the store whenever the first file added with [WithFile] or
// [WithFileAs] is written or replaced, then calls onChange if it is not nil.
// A reload that fails is logged and leaves the cached values as they were.
//
// The directory holding the file is watched rather than the file itself, so
// atomic replacements by rename are seen. Watch blocks until ctx is done and
// then returns nil.
//
// Errors:
//   - Returns [ErrNoWatchPath] if the store has no file source
//   - Returns [Error] if the watcher cannot be created
func (s *Store) Watch(ctx context.Context, onChange func()) error {
	if s.watchPath == "" {
		return ErrNoWatchPath
	}
	target, err := filepath.Abs(s.watchPath)
	if err != nil {
		return NewError("watcher", "resolve-path", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return NewError("watcher", "create", err)
	}
	defer watcher.Close()

	if err = watcher.Add(filepath.Dir(target)); err != nil {
		return NewError("watcher", "add", err)
	}
	s.logger.DebugContext(ctx, "watching settings file", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.Load(ctx); err != nil {
				s.logger.WarnContext(ctx, "settings reload failed", "path", target, "error", err)
				continue
			}
			if onChange != nil {
				onChange()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.WarnContext(ctx, "settings watcher error", "path", target, "error", err)
		}
	}
}

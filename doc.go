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

// Package settings stores application settings as a flat map of typed
// values addressed by slash-separated keys, and persists them as a
// hierarchical document.
//
// A key such as "window/geometry" becomes the nested field geometry of the
// object window in the stored document. Values that plain JSON cannot carry
// without loss, such as rectangles, byte arrays, 64-bit integers or
// timestamps, are written as tagged objects of the form
//
//	{"$type": 19, "$data": [10, 20, 300, 200]}
//
// and are read back as the same kind. A key that is both a value and a group,
// like "foo" next to "foo/bar", keeps its value under the reserved field
// "$value" of the object foo.
//
// # Quick Start
//
//	s := settings.MustNew(settings.WithFile("$HOME/.config/app/settings.json"))
//	if err := s.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	s.Set("window/geometry", variant.Rect{X: 10, Y: 20, Width: 300, Height: 200})
//	width := s.Int("window/width")
//
//	if err := s.Sync(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Sources and Dumpers
//
// Load reads every source in the order the options were given; later sources
// override keys of earlier ones. Sync writes the whole map to every dumper.
// [WithFile] adds both for one path, detecting the format from the
// extension. [WithConsul] does the same for a Consul key and is skipped when
// CONSUL_HTTP_ADDR is not set.
//
// Documents are JSON by default. YAML and TOML are available through the
// format registry; see package [rivaas.dev/settings/format].
//
// # Defaults
//
// [WithDefaults] supplies values for keys that no source provides. They are
// merged in by Load, so the next Sync persists them like any other value.
//
// # Struct Binding
//
// [Store.Unmarshal] decodes the map into a struct, one nesting level per key
// segment:
//
//	type Window struct {
//	    Title  string `settings:"title"`
//	    Width  int    `settings:"width"`
//	}
//	var w struct {
//	    Window Window `settings:"window"`
//	}
//	err := s.Unmarshal(&w)
//
// # Error Handling
//
// Errors from options, sources and dumpers are reported as [*Error], which
// names where the error occurred and wraps the cause:
//
//	if errors.Is(err, settings.ErrReadFailed) {
//	    // the stored document was not valid
//	}
//
// # Thread Safety
//
// Store is safe for concurrent use. Two stores backed by the same file do
// not coordinate: the last Sync wins.
package settings

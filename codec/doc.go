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

// Package codec provides the document serializers settings files are stored
// with.
//
// Each codec implements [Encoder] and [Decoder] over plain document nodes:
// map[string]any, []any, float64, string, bool and nil. Decoding into *any
// always yields those shapes, whatever the wire format, so the rest of the
// module never sees format-specific number or map types.
//
// # Built-in Codecs
//
//   - JSON: encoding/json, indented with four spaces and sorted keys
//   - YAML: github.com/goccy/go-yaml
//   - TOML: github.com/BurntSushi/toml; documents containing null are rejected
//
// [CasterCodec] converts command-line text into a typed value:
//
//	var v variant.Value
//	err := codec.NewCaster(variant.KindInt32).Decode([]byte("42"), &v)
//	// v is variant.Int32(42)
package codec

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

// Package variant defines the dynamically-typed values stored in settings.
//
// A [Value] is one of a closed set of kinds: scalars ([Bool], the sized
// integer and float types, [String], [Bytes]), geometric records ([Point],
// [Rect] and friends), containers ([Pair], [List], [Map], [Hash]), [DateTime],
// passthrough document nodes ([JSONValue], [JSONObject], [JSONArray],
// [JSONDocument]) and [Opaque] values of kinds unknown to this package.
// [Invalid] stands for "no value".
//
// Every kind has a stable numeric type identifier (see [TypeID]) used by the
// on-disk encodings.
//
// Converting between Values and plain Go values:
//
//	v, err := variant.From(map[string]any{"w": 640, "h": 480})
//	x := variant.Native(v) // map[string]any{"w": int64(640), "h": int64(480)}
package variant

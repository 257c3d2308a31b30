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

package variant

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnsupported is returned by [From] for Go values with no Value kind.
var ErrUnsupported = errors.New("unsupported value type")

// Native returns v as a plain Go value: bool, the sized integer and float
// types, string, []byte, []string, time.Time, []any, map[string]any, or the
// record struct itself. Invalid becomes nil. Opaque values are returned as is.
func Native(v Value) any {
	switch x := v.(type) {
	case nil, Invalid:
		return nil
	case Bool:
		return bool(x)
	case Int32:
		return int32(x)
	case Uint32:
		return uint32(x)
	case Int64:
		return int64(x)
	case Uint64:
		return uint64(x)
	case Float32:
		return float32(x)
	case Float64:
		return float64(x)
	case String:
		return string(x)
	case Bytes:
		return []byte(x)
	case StringList:
		return []string(x)
	case Pair:
		return []any{Native(x.First), Native(x.Second)}
	case List:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Native(e)
		}
		return out
	case Map:
		return nativeMap(x)
	case Hash:
		return nativeMap(x)
	case DateTime:
		return x.Time
	case JSONValue:
		return x.Node
	case JSONObject:
		return map[string]any(x)
	case JSONArray:
		return []any(x)
	case JSONDocument:
		return x.Node
	}
	return v
}

func nativeMap[M ~map[string]Value](m M) map[string]any {
	out := make(map[string]any, len(m))
	for k, e := range m {
		out[k] = Native(e)
	}
	return out
}

// From converts a plain Go value to a Value. Values that already implement
// Value are returned unchanged. Plain int and uint map to the 64-bit kinds,
// []any to List and map[string]any to Map.
//
// Errors:
//   - Returns [ErrUnsupported] for any other type
func From(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Invalid{}, nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case int:
		return Int64(v), nil
	case int8:
		return Int32(v), nil
	case int16:
		return Int32(v), nil
	case int32:
		return Int32(v), nil
	case int64:
		return Int64(v), nil
	case uint:
		return Uint64(v), nil
	case uint8:
		return Uint32(v), nil
	case uint16:
		return Uint32(v), nil
	case uint32:
		return Uint32(v), nil
	case uint64:
		return Uint64(v), nil
	case float32:
		return Float32(v), nil
	case float64:
		return Float64(v), nil
	case string:
		return String(v), nil
	case []byte:
		return Bytes(v), nil
	case []string:
		return StringList(v), nil
	case time.Time:
		return DateTime{Time: v}, nil
	case []any:
		out := make(List, len(v))
		for i, e := range v {
			ev, err := From(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = ev
		}
		return out, nil
	case map[string]any:
		out := make(Map, len(v))
		for k, e := range v {
			ev, err := From(e)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			out[k] = ev
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, x)
}

// MustFrom is like [From] but panics on error.
func MustFrom(x any) Value {
	v, err := From(x)
	if err != nil {
		panic(err)
	}
	return v
}

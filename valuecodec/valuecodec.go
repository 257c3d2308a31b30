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

// Package valuecodec maps settings values to document nodes and back.
//
// A document node is one of nil, bool, float64, string, []any or
// map[string]any. Values with a natural document form (booleans, 32-bit
// integers, finite floats, strings, arrays) are written directly. Everything
// else is written as a tagged object:
//
//	{"$type": 19, "$data": [10, 20, 30, 40]}
//
// where $type is the value's type identifier (see the Type constants in
// package variant) and $data its payload. 64-bit integers are written
// directly while their magnitude is at most 2^51 and tagged with a decimal
// string beyond that. Strings that are not valid UTF-8 are tagged too, also
// inside string lists.
//
// Decoding never fails: objects without both reserved fields, unknown tags,
// and malformed payloads decode to a [variant.JSONObject] holding the node.
package valuecodec

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"rivaas.dev/settings/legacy"
	"rivaas.dev/settings/variant"
)

// Reserved object fields of a tagged value.
const (
	TypeKey = "$type"
	DataKey = "$data"
)

// SafeIntegerLimit is the largest 64-bit integer magnitude written as a
// plain document number.
const SafeIntegerLimit = 1 << 51

// Encode returns the document node for v. Encode is deterministic and total.
func Encode(v variant.Value) any {
	switch x := v.(type) {
	case nil, variant.Invalid:
		return tagged(variant.TypeInvalid, nil)
	case variant.Bool:
		return bool(x)
	case variant.Int32:
		return float64(x)
	case variant.Uint32:
		return float64(x)
	case variant.Float32:
		return encodeFloat(variant.TypeFloat32, float64(x), 32)
	case variant.Float64:
		return encodeFloat(variant.TypeFloat64, float64(x), 64)
	case variant.String:
		return encodeString(string(x))
	case variant.JSONArray:
		return []any(x)

	case variant.Int64:
		if x >= -SafeIntegerLimit && x <= SafeIntegerLimit {
			return float64(x)
		}
		return tagged(variant.TypeInt64, strconv.FormatInt(int64(x), 10))
	case variant.Uint64:
		if x <= SafeIntegerLimit {
			return float64(x)
		}
		return tagged(variant.TypeUint64, strconv.FormatUint(uint64(x), 10))

	case variant.Bytes:
		return tagged(variant.TypeBytes, legacy.Latin1String(x))
	case variant.StringList:
		arr := make([]any, len(x))
		for i, s := range x {
			arr[i] = encodeString(s)
		}
		return tagged(variant.TypeStringList, arr)

	case variant.Point:
		return tagged(variant.TypePoint, ints(x.X, x.Y))
	case variant.PointF:
		return tagged(variant.TypePointF, []any{x.X, x.Y})
	case variant.Size:
		return tagged(variant.TypeSize, ints(x.Width, x.Height))
	case variant.SizeF:
		return tagged(variant.TypeSizeF, []any{x.Width, x.Height})
	case variant.Rect:
		return tagged(variant.TypeRect, ints(x.X, x.Y, x.Width, x.Height))
	case variant.RectF:
		return tagged(variant.TypeRectF, []any{x.X, x.Y, x.Width, x.Height})
	case variant.Line:
		return tagged(variant.TypeLine, ints(x.X1, x.Y1, x.X2, x.Y2))
	case variant.LineF:
		return tagged(variant.TypeLineF, []any{x.X1, x.Y1, x.X2, x.Y2})

	case variant.Pair:
		return tagged(variant.TypePair, []any{Encode(x.First), Encode(x.Second)})
	case variant.List:
		arr := make([]any, len(x))
		for i, e := range x {
			arr[i] = Encode(e)
		}
		return tagged(variant.TypeList, arr)
	case variant.Map:
		return tagged(variant.TypeMap, encodeEntries(x))
	case variant.Hash:
		return tagged(variant.TypeHash, encodeEntries(x))

	case variant.JSONValue:
		return tagged(variant.TypeJSONValue, x.Node)
	case variant.JSONObject:
		return tagged(variant.TypeJSONObject, map[string]any(x))
	case variant.JSONDocument:
		switch x.Node.(type) {
		case map[string]any, []any:
			return tagged(variant.TypeJSONDocument, x.Node)
		}
		return tagged(variant.TypeJSONDocument, nil)

	case variant.DateTime:
		return tagged(variant.TypeDateTime, legacy.Format(x))
	case variant.Opaque:
		return tagged(max(x.TypeID, variant.UserType), legacy.Format(x))
	}
	return tagged(variant.TypeInvalid, nil)
}

// encodeString writes s directly unless it is not valid UTF-8, which
// document text cannot hold. Such strings are tagged with their bytes in the
// @ByteArray text form.
func encodeString(s string) any {
	if utf8.ValidString(s) {
		return s
	}
	return tagged(variant.TypeString, legacy.Format(variant.Bytes(s)))
}

// decodeString reverses encodeString for the payload of a tagged string.
func decodeString(data any) (string, bool) {
	s, ok := data.(string)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(s, "@ByteArray(") {
		if b, ok := legacy.Parse(s).(variant.Bytes); ok {
			return string(b), true
		}
	}
	return s, true
}

func tagged(typeID int, data any) map[string]any {
	return map[string]any{
		TypeKey: float64(typeID),
		DataKey: data,
	}
}

func ints(vals ...int32) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = float64(v)
	}
	return out
}

// encodeFloat writes finite floats directly. NaN and infinities have no
// document number form and are tagged with their strconv spelling.
func encodeFloat(typeID int, f float64, bits int) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return tagged(typeID, strconv.FormatFloat(f, 'g', -1, bits))
	}
	return f
}

func encodeEntries[M ~map[string]variant.Value](m M) map[string]any {
	obj := make(map[string]any, len(m))
	for k, e := range m {
		obj[k] = Encode(e)
	}
	return obj
}

// IsTagged reports whether node is an object carrying a $type field. Such
// objects are values, not branches of the settings hierarchy.
func IsTagged(node any) bool {
	obj, ok := node.(map[string]any)
	if !ok {
		return false
	}
	_, ok = obj[TypeKey]
	return ok
}

// Decode returns the value represented by node. Decode never fails; see the
// package documentation for how unrecognized input degrades.
func Decode(node any) variant.Value {
	switch x := node.(type) {
	case nil:
		return variant.Invalid{}
	case bool:
		return variant.Bool(x)
	case float64:
		return variant.Float64(x)
	case string:
		return variant.String(x)
	case []any:
		return variant.JSONArray(x)
	case map[string]any:
		if v, ok := decodeTagged(x); ok {
			return v
		}
		return variant.JSONObject(x)
	}
	if f, ok := number(node); ok {
		return variant.Float64(f)
	}
	return variant.JSONValue{Node: node}
}

func decodeTagged(obj map[string]any) (variant.Value, bool) {
	rawType, ok := obj[TypeKey]
	if !ok {
		return nil, false
	}
	data, ok := obj[DataKey]
	if !ok {
		return nil, false
	}
	tf, ok := number(rawType)
	if !ok || tf != math.Trunc(tf) || tf < 0 || tf > math.MaxInt32 {
		return nil, false
	}
	typeID := int(tf)

	if typeID >= variant.UserType {
		s, ok := data.(string)
		if !ok {
			return nil, false
		}
		return legacy.Parse(s), true
	}

	kind, ok := variant.KindOf(typeID)
	if !ok {
		return nil, false
	}
	return decodeKind(kind, data)
}

func decodeKind(kind variant.Kind, data any) (variant.Value, bool) {
	switch kind {
	case variant.KindInvalid:
		return variant.Invalid{}, true
	case variant.KindBool:
		b, ok := data.(bool)
		return variant.Bool(b), ok
	case variant.KindString:
		s, ok := decodeString(data)
		return variant.String(s), ok

	case variant.KindInt32:
		n, ok := integer(data, math.MinInt32, math.MaxInt32)
		return variant.Int32(n), ok
	case variant.KindUint32:
		n, ok := integer(data, 0, math.MaxUint32)
		return variant.Uint32(n), ok
	case variant.KindInt64:
		return decodeInt64(data)
	case variant.KindUint64:
		return decodeUint64(data)
	case variant.KindFloat32:
		f, ok := decodeFloat(data, 32)
		return variant.Float32(f), ok
	case variant.KindFloat64:
		f, ok := decodeFloat(data, 64)
		return variant.Float64(f), ok

	case variant.KindBytes:
		s, ok := data.(string)
		if !ok {
			return nil, false
		}
		return variant.Bytes(legacy.Latin1Bytes(s)), true
	case variant.KindStringList:
		arr, ok := data.([]any)
		if !ok {
			return nil, false
		}
		list := make(variant.StringList, len(arr))
		for i, e := range arr {
			if s, isString := e.(string); isString {
				list[i] = s
				continue
			}
			s, isString := Decode(e).(variant.String)
			if !isString {
				return nil, false
			}
			list[i] = string(s)
		}
		return list, true

	case variant.KindPoint:
		v, ok := int32s(data, 2)
		if !ok {
			return nil, false
		}
		return variant.Point{X: v[0], Y: v[1]}, true
	case variant.KindSize:
		v, ok := int32s(data, 2)
		if !ok {
			return nil, false
		}
		return variant.Size{Width: v[0], Height: v[1]}, true
	case variant.KindRect:
		v, ok := int32s(data, 4)
		if !ok {
			return nil, false
		}
		return variant.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, true
	case variant.KindLine:
		v, ok := int32s(data, 4)
		if !ok {
			return nil, false
		}
		return variant.Line{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}, true
	case variant.KindPointF:
		v, ok := float64s(data, 2)
		if !ok {
			return nil, false
		}
		return variant.PointF{X: v[0], Y: v[1]}, true
	case variant.KindSizeF:
		v, ok := float64s(data, 2)
		if !ok {
			return nil, false
		}
		return variant.SizeF{Width: v[0], Height: v[1]}, true
	case variant.KindRectF:
		v, ok := float64s(data, 4)
		if !ok {
			return nil, false
		}
		return variant.RectF{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, true
	case variant.KindLineF:
		v, ok := float64s(data, 4)
		if !ok {
			return nil, false
		}
		return variant.LineF{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}, true

	case variant.KindPair:
		arr, ok := data.([]any)
		if !ok || len(arr) != 2 {
			return nil, false
		}
		return variant.Pair{First: Decode(arr[0]), Second: Decode(arr[1])}, true
	case variant.KindList:
		arr, ok := data.([]any)
		if !ok {
			return nil, false
		}
		list := make(variant.List, len(arr))
		for i, e := range arr {
			list[i] = Decode(e)
		}
		return list, true
	case variant.KindMap:
		m, ok := decodeEntries(data)
		return variant.Map(m), ok
	case variant.KindHash:
		m, ok := decodeEntries(data)
		return variant.Hash(m), ok

	case variant.KindJSONValue:
		return variant.JSONValue{Node: data}, true
	case variant.KindJSONObject:
		obj, ok := data.(map[string]any)
		return variant.JSONObject(obj), ok
	case variant.KindJSONArray:
		arr, ok := data.([]any)
		return variant.JSONArray(arr), ok
	case variant.KindJSONDocument:
		switch data.(type) {
		case nil, map[string]any, []any:
			return variant.JSONDocument{Node: data}, true
		}
		return nil, false

	case variant.KindDateTime:
		s, ok := data.(string)
		if !ok {
			return nil, false
		}
		return legacy.Parse(s), true
	}
	return nil, false
}

func decodeInt64(data any) (variant.Value, bool) {
	if s, ok := data.(string); ok {
		n, err := strconv.ParseInt(s, 10, 64)
		return variant.Int64(n), err == nil
	}
	n, ok := integer(data, -SafeIntegerLimit, SafeIntegerLimit)
	return variant.Int64(n), ok
}

func decodeUint64(data any) (variant.Value, bool) {
	if s, ok := data.(string); ok {
		n, err := strconv.ParseUint(s, 10, 64)
		return variant.Uint64(n), err == nil
	}
	n, ok := integer(data, 0, SafeIntegerLimit)
	return variant.Uint64(uint64(n)), ok
}

func decodeFloat(data any, bits int) (float64, bool) {
	if s, ok := data.(string); ok {
		f, err := strconv.ParseFloat(s, bits)
		return f, err == nil
	}
	return number(data)
}

func decodeEntries(data any) (map[string]variant.Value, bool) {
	obj, ok := data.(map[string]any)
	if !ok {
		return nil, false
	}
	m := make(map[string]variant.Value, len(obj))
	for k, e := range obj {
		m[k] = Decode(e)
	}
	return m, true
}

// integer returns data as an integer within [lo, hi].
func integer(data any, lo, hi float64) (int64, bool) {
	f, ok := number(data)
	if !ok || f != math.Trunc(f) || f < lo || f > hi {
		return 0, false
	}
	return int64(f), true
}

func int32s(data any, n int) ([]int32, bool) {
	arr, ok := data.([]any)
	if !ok || len(arr) != n {
		return nil, false
	}
	out := make([]int32, n)
	for i, e := range arr {
		v, ok := integer(e, math.MinInt32, math.MaxInt32)
		if !ok {
			return nil, false
		}
		out[i] = int32(v)
	}
	return out, true
}

func float64s(data any, n int) ([]float64, bool) {
	arr, ok := data.([]any)
	if !ok || len(arr) != n {
		return nil, false
	}
	out := make([]float64, n)
	for i, e := range arr {
		f, ok := number(e)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// number accepts the numeric types produced by document parsers.
func number(n any) (float64, bool) {
	switch x := n.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}

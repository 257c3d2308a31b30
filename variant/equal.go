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
	"bytes"
	"math"
	"reflect"
	"slices"
)

// Equal reports whether a and b hold the same value.
//
// Numeric kinds compare by exact numeric value regardless of their width or
// signedness, so Int32(3), Int64(3) and Float64(3) are all equal; NaN equals
// NaN. Every other kind is equal only to a value of the same kind with the
// same content. DateTime values compare as instants. A nil Value is treated
// as [Invalid].
func Equal(a, b Value) bool {
	if a == nil {
		a = Invalid{}
	}
	if b == nil {
		b = Invalid{}
	}

	na, aNum := toNumber(a)
	nb, bNum := toNumber(b)
	if aNum || bNum {
		return aNum && bNum && na.equal(nb)
	}

	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case Invalid:
		return true
	case Bool:
		return x == b.(Bool)
	case String:
		return x == b.(String)
	case Bytes:
		return bytes.Equal(x, b.(Bytes))
	case StringList:
		return slices.Equal(x, b.(StringList))
	case Point:
		return x == b.(Point)
	case PointF:
		return x == b.(PointF)
	case Size:
		return x == b.(Size)
	case SizeF:
		return x == b.(SizeF)
	case Rect:
		return x == b.(Rect)
	case RectF:
		return x == b.(RectF)
	case Line:
		return x == b.(Line)
	case LineF:
		return x == b.(LineF)
	case Pair:
		y := b.(Pair)
		return Equal(x.First, y.First) && Equal(x.Second, y.Second)
	case List:
		y := b.(List)
		return slices.EqualFunc(x, y, Equal)
	case Map:
		return mapsEqual(x, b.(Map))
	case Hash:
		return mapsEqual(x, b.(Hash))
	case DateTime:
		return x.Time.Equal(b.(DateTime).Time)
	case JSONValue:
		return NodeEqual(x.Node, b.(JSONValue).Node)
	case JSONObject:
		return NodeEqual(map[string]any(x), map[string]any(b.(JSONObject)))
	case JSONArray:
		return NodeEqual([]any(x), []any(b.(JSONArray)))
	case JSONDocument:
		return NodeEqual(x.Node, b.(JSONDocument).Node)
	case Opaque:
		y := b.(Opaque)
		return x.TypeID == y.TypeID && bytes.Equal(x.Payload, y.Payload)
	}
	return false
}

func mapsEqual[M ~map[string]Value](a, b M) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !Equal(va, vb) {
			return false
		}
	}
	return true
}

// NodeEqual reports whether two document nodes are structurally equal.
// Numbers compare by value whatever their Go type, so a node built with int
// literals equals the same node read back from a document as float64.
func NodeEqual(a, b any) bool {
	if fa, ok := nodeNumber(a); ok {
		fb, ok := nodeNumber(b)
		return ok && fa == fb
	}

	switch x := a.(type) {
	case nil:
		return b == nil
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, va := range x {
			vb, ok := y[k]
			if !ok || !NodeEqual(va, vb) {
				return false
			}
		}
		return true
	case []any:
		y, ok := b.([]any)
		return ok && slices.EqualFunc(x, y, NodeEqual)
	}
	return reflect.DeepEqual(a, b)
}

func nodeNumber(n any) (float64, bool) {
	switch x := n.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}

// number is a numeric value in the widest representation that holds it
// exactly: signed, unsigned or floating point.
type number struct {
	form byte // 'i', 'u' or 'f'
	i    int64
	u    uint64
	f    float64
}

func toNumber(v Value) (number, bool) {
	switch x := v.(type) {
	case Int32:
		return number{form: 'i', i: int64(x)}, true
	case Int64:
		return number{form: 'i', i: int64(x)}, true
	case Uint32:
		return number{form: 'u', u: uint64(x)}, true
	case Uint64:
		return number{form: 'u', u: uint64(x)}, true
	case Float32:
		return number{form: 'f', f: float64(x)}, true
	case Float64:
		return number{form: 'f', f: float64(x)}, true
	}
	return number{}, false
}

func (a number) equal(b number) bool {
	switch {
	case a.form == 'f' && b.form == 'f':
		return a.f == b.f || (math.IsNaN(a.f) && math.IsNaN(b.f))
	case a.form == 'f':
		return floatIsInt(a.f, b)
	case b.form == 'f':
		return floatIsInt(b.f, a)
	case a.form == 'i' && b.form == 'i':
		return a.i == b.i
	case a.form == 'u' && b.form == 'u':
		return a.u == b.u
	case a.form == 'i':
		return a.i >= 0 && uint64(a.i) == b.u
	default:
		return b.i >= 0 && uint64(b.i) == a.u
	}
}

// floatIsInt reports whether f is exactly the integer n.
func floatIsInt(f float64, n number) bool {
	if math.IsInf(f, 0) || math.Trunc(f) != f {
		return false
	}
	if n.form == 'i' {
		if f < math.MinInt64 || f >= -math.MinInt64 {
			return false
		}
		return int64(f) == n.i
	}
	if f < 0 || f >= math.MaxUint64 {
		return false
	}
	return uint64(f) == n.u
}

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

import "time"

// Value is a dynamically-typed settings value. The set of implementations is
// closed: only the types declared in this package satisfy it.
type Value interface {
	// Kind reports which concrete type the value holds.
	Kind() Kind

	variant()
}

// Kind identifies the concrete type of a [Value].
type Kind int

// Value kinds.
const (
	KindInvalid Kind = iota
	KindBool
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindBytes
	KindStringList
	KindPoint
	KindPointF
	KindSize
	KindSizeF
	KindRect
	KindRectF
	KindLine
	KindLineF
	KindPair
	KindList
	KindMap
	KindHash
	KindDateTime
	KindJSONValue
	KindJSONObject
	KindJSONArray
	KindJSONDocument
	KindOpaque
)

var kindNames = [...]string{
	KindInvalid:      "invalid",
	KindBool:         "bool",
	KindInt32:        "int32",
	KindUint32:       "uint32",
	KindInt64:        "int64",
	KindUint64:       "uint64",
	KindFloat32:      "float32",
	KindFloat64:      "float64",
	KindString:       "string",
	KindBytes:        "bytes",
	KindStringList:   "stringlist",
	KindPoint:        "point",
	KindPointF:       "pointf",
	KindSize:         "size",
	KindSizeF:        "sizef",
	KindRect:         "rect",
	KindRectF:        "rectf",
	KindLine:         "line",
	KindLineF:        "linef",
	KindPair:         "pair",
	KindList:         "list",
	KindMap:          "map",
	KindHash:         "hash",
	KindDateTime:     "datetime",
	KindJSONValue:    "jsonvalue",
	KindJSONObject:   "jsonobject",
	KindJSONArray:    "jsonarray",
	KindJSONDocument: "jsondocument",
	KindOpaque:       "opaque",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind returns the kind whose [Kind.String] is name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return KindInvalid, false
}

// Invalid is the "no value" sentinel.
type Invalid struct{}

type (
	Bool    bool
	Int32   int32
	Uint32  uint32
	Int64   int64
	Uint64  uint64
	Float32 float32
	Float64 float64
	String  string

	// Bytes is an arbitrary byte sequence.
	Bytes []byte

	// StringList is an ordered list of strings.
	StringList []string
)

// Point is an integer 2D point.
type Point struct {
	X, Y int32
}

// PointF is a floating point 2D point.
type PointF struct {
	X, Y float64
}

// Size is an integer 2D size.
type Size struct {
	Width, Height int32
}

// SizeF is a floating point 2D size.
type SizeF struct {
	Width, Height float64
}

// Rect is an integer rectangle given by its top-left corner and size.
type Rect struct {
	X, Y, Width, Height int32
}

// RectF is a floating point rectangle given by its top-left corner and size.
type RectF struct {
	X, Y, Width, Height float64
}

// Line is an integer line segment from (X1, Y1) to (X2, Y2).
type Line struct {
	X1, Y1, X2, Y2 int32
}

// LineF is a floating point line segment from (X1, Y1) to (X2, Y2).
type LineF struct {
	X1, Y1, X2, Y2 float64
}

// Pair is an ordered pair of values.
type Pair struct {
	First, Second Value
}

// List is an ordered list of values.
type List []Value

// Map is a map of values iterated in key order.
type Map map[string]Value

// Hash is a map of values with no defined iteration order. It is kept
// distinct from [Map] so the distinction survives a round trip.
type Hash map[string]Value

// DateTime is a point in time together with its location.
type DateTime struct {
	Time time.Time
}

// JSONValue wraps an arbitrary document node: nil, bool, float64, string,
// []any or map[string]any.
type JSONValue struct {
	Node any
}

// JSONObject is a document object carried through unchanged.
type JSONObject map[string]any

// JSONArray is a document array carried through unchanged.
type JSONArray []any

// JSONDocument is a whole document whose root is an object, an array, or
// nil for the empty document.
type JSONDocument struct {
	Node any
}

// Opaque carries a value of a kind this package does not know about.
// TypeID identifies the kind to the application that produced it; it should
// be at least [UserType] to stay clear of the built-in identifiers.
type Opaque struct {
	TypeID  int
	Payload []byte
}

// UserType is the first type identifier available to [Opaque] values.
const UserType = 65536

func (Invalid) Kind() Kind      { return KindInvalid }
func (Bool) Kind() Kind         { return KindBool }
func (Int32) Kind() Kind        { return KindInt32 }
func (Uint32) Kind() Kind       { return KindUint32 }
func (Int64) Kind() Kind        { return KindInt64 }
func (Uint64) Kind() Kind       { return KindUint64 }
func (Float32) Kind() Kind      { return KindFloat32 }
func (Float64) Kind() Kind      { return KindFloat64 }
func (String) Kind() Kind       { return KindString }
func (Bytes) Kind() Kind        { return KindBytes }
func (StringList) Kind() Kind   { return KindStringList }
func (Point) Kind() Kind        { return KindPoint }
func (PointF) Kind() Kind       { return KindPointF }
func (Size) Kind() Kind         { return KindSize }
func (SizeF) Kind() Kind        { return KindSizeF }
func (Rect) Kind() Kind         { return KindRect }
func (RectF) Kind() Kind        { return KindRectF }
func (Line) Kind() Kind         { return KindLine }
func (LineF) Kind() Kind        { return KindLineF }
func (Pair) Kind() Kind         { return KindPair }
func (List) Kind() Kind         { return KindList }
func (Map) Kind() Kind          { return KindMap }
func (Hash) Kind() Kind         { return KindHash }
func (DateTime) Kind() Kind     { return KindDateTime }
func (JSONValue) Kind() Kind    { return KindJSONValue }
func (JSONObject) Kind() Kind   { return KindJSONObject }
func (JSONArray) Kind() Kind    { return KindJSONArray }
func (JSONDocument) Kind() Kind { return KindJSONDocument }
func (Opaque) Kind() Kind       { return KindOpaque }

func (Invalid) variant()      {}
func (Bool) variant()         {}
func (Int32) variant()        {}
func (Uint32) variant()       {}
func (Int64) variant()        {}
func (Uint64) variant()       {}
func (Float32) variant()      {}
func (Float64) variant()      {}
func (String) variant()       {}
func (Bytes) variant()        {}
func (StringList) variant()   {}
func (Point) variant()        {}
func (PointF) variant()       {}
func (Size) variant()         {}
func (SizeF) variant()        {}
func (Rect) variant()         {}
func (RectF) variant()        {}
func (Line) variant()         {}
func (LineF) variant()        {}
func (Pair) variant()         {}
func (List) variant()         {}
func (Map) variant()          {}
func (Hash) variant()         {}
func (DateTime) variant()     {}
func (JSONValue) variant()    {}
func (JSONObject) variant()   {}
func (JSONArray) variant()    {}
func (JSONDocument) variant() {}
func (Opaque) variant()       {}

// IsValid reports whether v holds a value other than [Invalid]. A nil
// interface is treated as invalid.
func IsValid(v Value) bool {
	return v != nil && v.Kind() != KindInvalid
}

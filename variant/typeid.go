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

// Type identifiers written to documents and binary dumps. They are part of
// the on-disk format: existing values must never change. The numbering
// leaves gaps for identifiers reserved by other producers of the format.
const (
	TypeInvalid      = 0
	TypeBool         = 1
	TypeInt32        = 2
	TypeUint32       = 3
	TypeInt64        = 4
	TypeUint64       = 5
	TypeFloat64      = 6
	TypeMap          = 8
	TypeList         = 9
	TypeString       = 10
	TypeStringList   = 11
	TypeBytes        = 12
	TypeDateTime     = 16
	TypeRect         = 19
	TypeRectF        = 20
	TypeSize         = 21
	TypeSizeF        = 22
	TypeLine         = 23
	TypeLineF        = 24
	TypePoint        = 25
	TypePointF       = 26
	TypeHash         = 28
	TypeFloat32      = 38
	TypeJSONValue    = 45
	TypeJSONObject   = 46
	TypeJSONArray    = 47
	TypeJSONDocument = 48
	TypePair         = 58
)

var typeIDs = map[Kind]int{
	KindInvalid:      TypeInvalid,
	KindBool:         TypeBool,
	KindInt32:        TypeInt32,
	KindUint32:       TypeUint32,
	KindInt64:        TypeInt64,
	KindUint64:       TypeUint64,
	KindFloat32:      TypeFloat32,
	KindFloat64:      TypeFloat64,
	KindString:       TypeString,
	KindBytes:        TypeBytes,
	KindStringList:   TypeStringList,
	KindPoint:        TypePoint,
	KindPointF:       TypePointF,
	KindSize:         TypeSize,
	KindSizeF:        TypeSizeF,
	KindRect:         TypeRect,
	KindRectF:        TypeRectF,
	KindLine:         TypeLine,
	KindLineF:        TypeLineF,
	KindPair:         TypePair,
	KindList:         TypeList,
	KindMap:          TypeMap,
	KindHash:         TypeHash,
	KindDateTime:     TypeDateTime,
	KindJSONValue:    TypeJSONValue,
	KindJSONObject:   TypeJSONObject,
	KindJSONArray:    TypeJSONArray,
	KindJSONDocument: TypeJSONDocument,
}

var kindsByID = func() map[int]Kind {
	m := make(map[int]Kind, len(typeIDs))
	for k, id := range typeIDs {
		m[id] = k
	}
	return m
}()

// TypeID returns the on-disk identifier of v. Opaque values report their
// own TypeID.
func TypeID(v Value) int {
	if o, ok := v.(Opaque); ok {
		return o.TypeID
	}
	if v == nil {
		return TypeInvalid
	}
	return typeIDs[v.Kind()]
}

// KindOf returns the built-in kind registered under id.
func KindOf(id int) (Kind, bool) {
	k, ok := kindsByID[id]
	return k, ok
}

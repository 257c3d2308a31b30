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

package legacy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"rivaas.dev/settings/variant"
)

// Layout is the version of the binary dump layout.
type Layout uint

const (
	// LayoutVariant is used by "@Variant(...)". Date-times are stored as UTC
	// milliseconds.
	LayoutVariant Layout = 1

	// LayoutDateTime is used by "@DateTime(...)". Date-times keep
	// nanoseconds, the zone offset and the zone name.
	LayoutDateTime Layout = 2
)

// opaqueTag marks an [variant.Opaque] envelope; real type identifiers are
// never negative.
const opaqueTag = -1

var (
	// ErrLayout is returned when a dump was written with a different layout
	// than the one requested.
	ErrLayout = errors.New("dump layout mismatch")

	// ErrCorrupt is returned when a dump cannot be read.
	ErrCorrupt = errors.New("corrupt dump")
)

// Dump serializes v using the given layout. The dump is a MessagePack
// stream: the layout number followed by the value as a [type, payload]
// array. Map keys are written in sorted order, so dumps are deterministic.
func Dump(v variant.Value, layout Layout) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.EncodeUint(uint64(layout)); err != nil {
		return nil, err
	}
	w := dumpWriter{enc: enc, layout: layout}
	if err := w.value(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Undump reads a dump written by [Dump] with the same layout.
//
// Errors:
//   - Returns [ErrLayout] if the dump was written with another layout
//   - Returns [ErrCorrupt] if the dump is truncated, has trailing bytes, or
//     holds an unknown type
func Undump(data []byte, layout Layout) (variant.Value, error) {
	r := bytes.NewReader(data)
	dec := msgpack.NewDecoder(r)

	version, err := dec.DecodeUint64()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if Layout(version) != layout {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrLayout, version, layout)
	}

	rd := dumpReader{dec: dec, layout: layout}
	v, err := rd.value()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, r.Len())
	}
	return v, nil
}

type dumpWriter struct {
	enc    *msgpack.Encoder
	layout Layout
}

func (w dumpWriter) value(v variant.Value) error {
	if v == nil {
		v = variant.Invalid{}
	}
	if err := w.enc.EncodeArrayLen(2); err != nil {
		return err
	}

	if o, ok := v.(variant.Opaque); ok {
		if err := w.enc.EncodeInt(opaqueTag); err != nil {
			return err
		}
		if err := w.enc.EncodeArrayLen(2); err != nil {
			return err
		}
		if err := w.enc.EncodeInt(int64(o.TypeID)); err != nil {
			return err
		}
		return w.enc.EncodeBytes(o.Payload)
	}

	if err := w.enc.EncodeInt(int64(variant.TypeID(v))); err != nil {
		return err
	}

	switch x := v.(type) {
	case variant.Invalid:
		return w.enc.EncodeNil()
	case variant.Bool:
		return w.enc.EncodeBool(bool(x))
	case variant.Int32:
		return w.enc.EncodeInt(int64(x))
	case variant.Int64:
		return w.enc.EncodeInt(int64(x))
	case variant.Uint32:
		return w.enc.EncodeUint(uint64(x))
	case variant.Uint64:
		return w.enc.EncodeUint(uint64(x))
	case variant.Float32:
		return w.enc.EncodeFloat32(float32(x))
	case variant.Float64:
		return w.enc.EncodeFloat64(float64(x))
	case variant.String:
		return w.enc.EncodeString(string(x))
	case variant.Bytes:
		return w.enc.EncodeBytes(x)
	case variant.StringList:
		if err := w.enc.EncodeArrayLen(len(x)); err != nil {
			return err
		}
		for _, s := range x {
			if err := w.enc.EncodeString(s); err != nil {
				return err
			}
		}
		return nil
	case variant.Point:
		return w.ints(x.X, x.Y)
	case variant.Size:
		return w.ints(x.Width, x.Height)
	case variant.Rect:
		return w.ints(x.X, x.Y, x.Width, x.Height)
	case variant.Line:
		return w.ints(x.X1, x.Y1, x.X2, x.Y2)
	case variant.PointF:
		return w.floats(x.X, x.Y)
	case variant.SizeF:
		return w.floats(x.Width, x.Height)
	case variant.RectF:
		return w.floats(x.X, x.Y, x.Width, x.Height)
	case variant.LineF:
		return w.floats(x.X1, x.Y1, x.X2, x.Y2)
	case variant.Pair:
		if err := w.enc.EncodeArrayLen(2); err != nil {
			return err
		}
		if err := w.value(x.First); err != nil {
			return err
		}
		return w.value(x.Second)
	case variant.List:
		if err := w.enc.EncodeArrayLen(len(x)); err != nil {
			return err
		}
		for _, e := range x {
			if err := w.value(e); err != nil {
				return err
			}
		}
		return nil
	case variant.Map:
		return writeMap(w, x)
	case variant.Hash:
		return writeMap(w, x)
	case variant.DateTime:
		return w.dateTime(x.Time)
	case variant.JSONValue:
		return w.node(x.Node)
	case variant.JSONObject:
		return w.node(map[string]any(x))
	case variant.JSONArray:
		return w.node([]any(x))
	case variant.JSONDocument:
		return w.node(x.Node)
	}
	return fmt.Errorf("cannot dump %s", v.Kind())
}

func (w dumpWriter) ints(vals ...int32) error {
	if err := w.enc.EncodeArrayLen(len(vals)); err != nil {
		return err
	}
	for _, n := range vals {
		if err := w.enc.EncodeInt(int64(n)); err != nil {
			return err
		}
	}
	return nil
}

func (w dumpWriter) floats(vals ...float64) error {
	if err := w.enc.EncodeArrayLen(len(vals)); err != nil {
		return err
	}
	for _, f := range vals {
		if err := w.enc.EncodeFloat64(f); err != nil {
			return err
		}
	}
	return nil
}

func writeMap[M ~map[string]variant.Value](w dumpWriter, m M) error {
	if err := w.enc.EncodeMapLen(len(m)); err != nil {
		return err
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := w.enc.EncodeString(k); err != nil {
			return err
		}
		if err := w.value(m[k]); err != nil {
			return err
		}
	}
	return nil
}

func (w dumpWriter) dateTime(t time.Time) error {
	if w.layout == LayoutVariant {
		return w.enc.EncodeInt(t.UnixMilli())
	}
	name, offset := t.Zone()
	if err := w.enc.EncodeArrayLen(4); err != nil {
		return err
	}
	if err := w.enc.EncodeInt(t.Unix()); err != nil {
		return err
	}
	if err := w.enc.EncodeInt(int64(t.Nanosecond())); err != nil {
		return err
	}
	if err := w.enc.EncodeInt(int64(offset)); err != nil {
		return err
	}
	return w.enc.EncodeString(name)
}

// node stores a document node as its JSON text.
func (w dumpWriter) node(n any) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return w.enc.EncodeString(string(data))
}

type dumpReader struct {
	dec    *msgpack.Decoder
	layout Layout
}

func (r dumpReader) value() (variant.Value, error) {
	if err := r.expectLen(2); err != nil {
		return nil, err
	}
	id, err := r.dec.DecodeInt()
	if err != nil {
		return nil, err
	}

	if id == opaqueTag {
		if err = r.expectLen(2); err != nil {
			return nil, err
		}
		typeID, err := r.dec.DecodeInt()
		if err != nil {
			return nil, err
		}
		payload, err := r.dec.DecodeBytes()
		if err != nil {
			return nil, err
		}
		return variant.Opaque{TypeID: typeID, Payload: payload}, nil
	}

	kind, ok := variant.KindOf(id)
	if !ok {
		return nil, fmt.Errorf("unknown type %d", id)
	}

	switch kind {
	case variant.KindInvalid:
		return variant.Invalid{}, r.dec.DecodeNil()
	case variant.KindBool:
		b, err := r.dec.DecodeBool()
		return variant.Bool(b), err
	case variant.KindInt32:
		n, err := r.dec.DecodeInt32()
		return variant.Int32(n), err
	case variant.KindInt64:
		n, err := r.dec.DecodeInt64()
		return variant.Int64(n), err
	case variant.KindUint32:
		n, err := r.dec.DecodeUint32()
		return variant.Uint32(n), err
	case variant.KindUint64:
		n, err := r.dec.DecodeUint64()
		return variant.Uint64(n), err
	case variant.KindFloat32:
		f, err := r.dec.DecodeFloat32()
		return variant.Float32(f), err
	case variant.KindFloat64:
		f, err := r.dec.DecodeFloat64()
		return variant.Float64(f), err
	case variant.KindString:
		s, err := r.dec.DecodeString()
		return variant.String(s), err
	case variant.KindBytes:
		b, err := r.dec.DecodeBytes()
		return variant.Bytes(b), err
	case variant.KindStringList:
		n, err := r.dec.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		list := make(variant.StringList, 0, max(n, 0))
		for range n {
			s, err := r.dec.DecodeString()
			if err != nil {
				return nil, err
			}
			list = append(list, s)
		}
		return list, nil
	case variant.KindPoint:
		v, err := r.ints(2)
		if err != nil {
			return nil, err
		}
		return variant.Point{X: v[0], Y: v[1]}, nil
	case variant.KindSize:
		v, err := r.ints(2)
		if err != nil {
			return nil, err
		}
		return variant.Size{Width: v[0], Height: v[1]}, nil
	case variant.KindRect:
		v, err := r.ints(4)
		if err != nil {
			return nil, err
		}
		return variant.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
	case variant.KindLine:
		v, err := r.ints(4)
		if err != nil {
			return nil, err
		}
		return variant.Line{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}, nil
	case variant.KindPointF:
		v, err := r.floats(2)
		if err != nil {
			return nil, err
		}
		return variant.PointF{X: v[0], Y: v[1]}, nil
	case variant.KindSizeF:
		v, err := r.floats(2)
		if err != nil {
			return nil, err
		}
		return variant.SizeF{Width: v[0], Height: v[1]}, nil
	case variant.KindRectF:
		v, err := r.floats(4)
		if err != nil {
			return nil, err
		}
		return variant.RectF{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
	case variant.KindLineF:
		v, err := r.floats(4)
		if err != nil {
			return nil, err
		}
		return variant.LineF{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}, nil
	case variant.KindPair:
		if err := r.expectLen(2); err != nil {
			return nil, err
		}
		first, err := r.value()
		if err != nil {
			return nil, err
		}
		second, err := r.value()
		if err != nil {
			return nil, err
		}
		return variant.Pair{First: first, Second: second}, nil
	case variant.KindList:
		n, err := r.dec.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		list := make(variant.List, 0, max(n, 0))
		for range n {
			e, err := r.value()
			if err != nil {
				return nil, err
			}
			list = append(list, e)
		}
		return list, nil
	case variant.KindMap:
		m, err := r.entries()
		return variant.Map(m), err
	case variant.KindHash:
		m, err := r.entries()
		return variant.Hash(m), err
	case variant.KindDateTime:
		t, err := r.dateTime()
		return variant.DateTime{Time: t}, err
	case variant.KindJSONValue:
		n, err := r.node()
		return variant.JSONValue{Node: n}, err
	case variant.KindJSONObject:
		n, err := r.node()
		if err != nil {
			return nil, err
		}
		obj, ok := n.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("json object payload is %T", n)
		}
		return variant.JSONObject(obj), nil
	case variant.KindJSONArray:
		n, err := r.node()
		if err != nil {
			return nil, err
		}
		arr, ok := n.([]any)
		if !ok {
			return nil, fmt.Errorf("json array payload is %T", n)
		}
		return variant.JSONArray(arr), nil
	case variant.KindJSONDocument:
		n, err := r.node()
		return variant.JSONDocument{Node: n}, err
	}
	return nil, fmt.Errorf("unknown type %d", id)
}

func (r dumpReader) expectLen(want int) error {
	n, err := r.dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != want {
		return fmt.Errorf("array length %d, want %d", n, want)
	}
	return nil
}

func (r dumpReader) ints(n int) ([]int32, error) {
	if err := r.expectLen(n); err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		v, err := r.dec.DecodeInt32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (r dumpReader) floats(n int) ([]float64, error) {
	if err := r.expectLen(n); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		v, err := r.dec.DecodeFloat64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (r dumpReader) entries() (map[string]variant.Value, error) {
	n, err := r.dec.DecodeMapLen()
	if err != nil {
		return nil, err
	}
	m := make(map[string]variant.Value, max(n, 0))
	for range n {
		k, err := r.dec.DecodeString()
		if err != nil {
			return nil, err
		}
		v, err := r.value()
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}

func (r dumpReader) dateTime() (time.Time, error) {
	if r.layout == LayoutVariant {
		ms, err := r.dec.DecodeInt64()
		if err != nil {
			return time.Time{}, err
		}
		return time.UnixMilli(ms).UTC(), nil
	}

	if err := r.expectLen(4); err != nil {
		return time.Time{}, err
	}
	sec, err := r.dec.DecodeInt64()
	if err != nil {
		return time.Time{}, err
	}
	nsec, err := r.dec.DecodeInt64()
	if err != nil {
		return time.Time{}, err
	}
	offset, err := r.dec.DecodeInt()
	if err != nil {
		return time.Time{}, err
	}
	name, err := r.dec.DecodeString()
	if err != nil {
		return time.Time{}, err
	}

	loc := time.UTC
	if name != "UTC" || offset != 0 {
		loc = time.FixedZone(name, offset)
	}
	return time.Unix(sec, nsec).In(loc), nil
}

func (r dumpReader) node() (any, error) {
	s, err := r.dec.DecodeString()
	if err != nil {
		return nil, err
	}
	var n any
	if err := json.Unmarshal([]byte(s), &n); err != nil {
		return nil, err
	}
	return n, nil
}

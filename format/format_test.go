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

//go:build !integration

package format

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/settings/codec"
	"rivaas.dev/settings/variant"
)

// roundTrip writes m with Write and reads it back with Read.
func roundTrip(t *testing.T, m SettingsMap) SettingsMap {
	t.Helper()
	var buf bytes.Buffer
	require.True(t, Write(&buf, m))
	var out SettingsMap
	require.True(t, Read(&buf, &out), buf.String())
	return out
}

func assertSettingsEqual(t *testing.T, want, got SettingsMap) {
	t.Helper()
	require.Len(t, got, len(want))
	for k, v := range want {
		g, ok := got[k]
		if assert.True(t, ok, "missing key %q", k) {
			assert.True(t, variant.Equal(v, g), "key %q: want %#v, got %#v", k, v, g)
		}
	}
}

func TestReservedKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$value", ReservedKey(ReservedValue))
	assert.Equal(t, "$type", ReservedKey(ReservedType))
	assert.Equal(t, "$data", ReservedKey(ReservedData))
	assert.Empty(t, ReservedKey(Reserved(42)))
}

func TestRoundTrip_Values(t *testing.T) {
	t.Parallel()

	m := SettingsMap{
		"int64/at":          variant.Int64(1 << 51),
		"int64/below":       variant.Int64(1<<51 - 1),
		"int64/above":       variant.Int64(1<<51 + 1),
		"int64/neg/at":      variant.Int64(-(1 << 51)),
		"int64/neg/below":   variant.Int64(-(1 << 51) - 1),
		"int64/neg/above":   variant.Int64(-(1 << 51) + 1),
		"int64/min":         variant.Int64(math.MinInt64),
		"int64/max":         variant.Int64(math.MaxInt64),
		"uint64/max":        variant.Uint64(math.MaxUint64),
		"uint64/zero":       variant.Uint64(0),
		"string/empty":      variant.String(""),
		"string/invalid":    variant.String("@Invalid()"),
		"bytes/empty":       variant.Bytes{},
		"invalid":           variant.Invalid{},
		"geometry":          variant.Rect{X: 10, Y: 20, Width: 640, Height: 480},
		"list":              variant.List{variant.String("a"), variant.Int64(1 << 60)},
		"misc/point":        variant.PointF{X: 0.5, Y: 1.5},
		"misc/stringlist":   variant.StringList{"x", "y"},
		"misc/bool":         variant.Bool(false),
		"misc/float/nan":    variant.Float64(math.NaN()),
		"misc/json/array":   variant.JSONArray{1.0, "two", nil},
		"misc/json/object":  variant.JSONObject{"$type": "not a tag"},
		"misc/opaque":       variant.Opaque{TypeID: variant.UserType + 1, Payload: []byte{0, 1, 2}},
		"misc/hash":         variant.Hash{"k": variant.Size{Width: 1, Height: 2}},
		"misc/pair":         variant.Pair{First: variant.String("a"), Second: variant.Bool(true)},
		"misc/html":         variant.String("<a href='x'>&</a>"),
		"misc/unicode":      variant.String("héllo, 世界"),
		"misc/nul":          variant.String("a\x00b"),
		"misc/bytes/binary": variant.Bytes{0, 0x80, 0xff},
	}
	assertSettingsEqual(t, m, roundTrip(t, m))
}

func TestRoundTrip_NonUTF8Strings(t *testing.T) {
	t.Parallel()

	m := SettingsMap{
		"s":     variant.String("\xff\xfe"),
		"mixed": variant.String("ok\xc3"),
		"sl":    variant.StringList{"\xc3", "@ByteArray(x)", ""},
	}

	reg := NewDefaultRegistry()
	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f, ok := reg.Lookup(name)
			require.True(t, ok)

			var buf bytes.Buffer
			require.True(t, f.Write(&buf, m))
			var got SettingsMap
			require.True(t, f.Read(&buf, &got), buf.String())
			assert.Equal(t, m, got)
		})
	}
}

func TestRoundTrip_InvalidLiteralStaysString(t *testing.T) {
	t.Parallel()

	got := roundTrip(t, SettingsMap{"s": variant.String("@Invalid()")})
	assert.Equal(t, variant.String("@Invalid()"), got["s"])
}

func TestRoundTrip_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.True(t, Write(&buf, SettingsMap{}))
	assert.Equal(t, "{}\n", buf.String())

	out := SettingsMap{"stale": variant.Bool(true)}
	require.True(t, Read(&buf, &out))
	assert.Empty(t, out)
}

func TestPrefixCollision(t *testing.T) {
	t.Parallel()

	m := SettingsMap{"foo": variant.Int32(1), "foo/bar": variant.Int32(2)}
	var buf bytes.Buffer
	require.True(t, Write(&buf, m))
	assert.JSONEq(t, `{"foo": {"$value": 1, "bar": 2}}`, buf.String())
	assertSettingsEqual(t, m, roundTrip(t, m))
}

func TestNestedCollisionDocument(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.True(t, Write(&buf, SettingsMap{
		"foo":             variant.Int32(1),
		"foo/bar":         variant.Int32(2),
		"foo/bar/baz":     variant.Int32(3),
		"foo/bar/baz/qux": variant.Int32(4),
	}))
	assert.JSONEq(t, `{
		"foo": {
			"$value": 1,
			"bar": {
				"$value": 2,
				"baz": {"$value": 3, "qux": 4}
			}
		}
	}`, buf.String())
}

func TestWrite_SortedKeyOrder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.True(t, Write(&buf, SettingsMap{
		"zeta":  variant.Int32(1),
		"alpha": variant.Int32(2),
		"mid/b": variant.Int32(3),
		"mid/a": variant.Int32(4),
	}))
	want := "{\n" +
		"    \"alpha\": 2,\n" +
		"    \"mid\": {\n" +
		"        \"a\": 4,\n" +
		"        \"b\": 3\n" +
		"    },\n" +
		"    \"zeta\": 1\n" +
		"}\n"
	assert.Equal(t, want, buf.String())
}

func TestWrite_TaggedShape(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.True(t, Write(&buf, SettingsMap{"big": variant.Int64(1<<51 + 1)}))
	assert.JSONEq(t, `{"big": {"$type": 4, "$data": "2251799813685249"}}`, buf.String())
}

func TestLastWriteWins(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.True(t, Write(&buf, SettingsMap{
		"foo": variant.String("abc"),
		"bar": variant.Int32(123),
		"baz": variant.Bool(true),
	}))
	buf.Reset()
	second := SettingsMap{
		"foo": variant.String("xyz"),
		"bar": variant.Int32(456),
		"baz": variant.Bool(false),
	}
	require.True(t, Write(&buf, second))

	var out SettingsMap
	require.True(t, Read(&buf, &out))
	assertSettingsEqual(t, second, out)
}

func TestRead_FailureLeavesDestination(t *testing.T) {
	t.Parallel()

	inputs := map[string]string{
		"syntax":    `{"foo": `,
		"trailing":  `{} x`,
		"array":     `[1, 2]`,
		"scalar":    `"text"`,
		"null root": `null`,
		"empty":     ``,
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dst := SettingsMap{"keep": variant.Int32(1)}
			assert.False(t, Read(strings.NewReader(in), &dst))
			assert.Equal(t, SettingsMap{"keep": variant.Int32(1)}, dst)
		})
	}
}

func TestRead_NilArguments(t *testing.T) {
	t.Parallel()

	assert.False(t, Read(strings.NewReader("{}"), nil))
	var m SettingsMap
	assert.False(t, Read(nil, &m))
	assert.False(t, Write(nil, SettingsMap{}))
}

func TestRead_UnknownTagIsPassthrough(t *testing.T) {
	t.Parallel()

	var m SettingsMap
	require.True(t, Read(strings.NewReader(`{"a": {"$type": 12345, "$data": 1}, "b": {"$data": 2}}`), &m))
	assert.Equal(t, variant.JSONObject{"$type": 12345.0, "$data": 1.0}, m["a"])
	assert.Equal(t, variant.Float64(2), m["b/$data"])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("io") }

func TestIOFailures(t *testing.T) {
	t.Parallel()

	assert.False(t, Write(failingWriter{}, SettingsMap{"a": variant.Int32(1)}))
	var m SettingsMap
	assert.False(t, Read(failingReader{}, &m))
	assert.Nil(t, m)
}

func TestRead_SizeLimit(t *testing.T) {
	t.Parallel()

	doc := `{"a": "12345"}`
	read := readLimited(codec.JSONCodec{}, int64(len(doc)))

	var got SettingsMap
	require.True(t, read(strings.NewReader(doc), &got))
	assert.Equal(t, SettingsMap{"a": variant.String("12345")}, got)

	kept := got
	assert.False(t, read(strings.NewReader(doc+" "), &got))
	assert.Equal(t, kept, got)
}

func TestDecodeEncode_Errors(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("{"), codec.JSONCodec{})
	require.ErrorIs(t, err, ErrMalformed)

	_, err = Decode([]byte("[]"), codec.JSONCodec{})
	require.ErrorIs(t, err, ErrNotObject)

	_, err = Encode(SettingsMap{"a": variant.Invalid{}}, codec.TOMLCodec{})
	require.ErrorIs(t, err, ErrEncode)
	require.ErrorIs(t, err, codec.ErrNull)
}

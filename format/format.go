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

package format

import (
	"errors"
	"fmt"
	"io"

	"rivaas.dev/settings/codec"
	"rivaas.dev/settings/tree"
	"rivaas.dev/settings/valuecodec"
	"rivaas.dev/settings/variant"
)

// SettingsMap is a flat settings map keyed by slash-separated paths.
type SettingsMap map[string]variant.Value

// Reserved names a key with special meaning in stored documents.
type Reserved int

// Reserved keys.
const (
	// ReservedValue holds the value of a path that also has children.
	ReservedValue Reserved = iota
	// ReservedType holds the type identifier of a tagged value.
	ReservedType
	// ReservedData holds the payload of a tagged value.
	ReservedData
)

// ReservedKey returns the document key for k, so documents built by hand can
// avoid colliding with it. It returns "" for unknown values of k.
func ReservedKey(k Reserved) string {
	switch k {
	case ReservedValue:
		return tree.ValueKey
	case ReservedType:
		return valuecodec.TypeKey
	case ReservedData:
		return valuecodec.DataKey
	}
	return ""
}

var (
	// ErrMalformed is returned when data is not a valid document.
	ErrMalformed = errors.New("malformed document")

	// ErrNotObject is returned when the document root is not an object.
	ErrNotObject = errors.New("document root is not an object")

	// ErrEncode is returned when a settings map cannot be serialized.
	ErrEncode = errors.New("cannot encode document")
)

// Decode parses data with dec and flattens the document into a settings map.
//
// Errors:
//   - Returns [ErrMalformed] if dec rejects data
//   - Returns [ErrNotObject] if the document root is not an object
func Decode(data []byte, dec codec.Decoder) (SettingsMap, error) {
	var node any
	if err := dec.Decode(data, &node); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	obj, ok := node.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotObject, node)
	}
	return tree.FromDocument(obj).ToMap(), nil
}

// Encode builds the document for m and serializes it with enc.
//
// Errors:
//   - Returns [ErrEncode] if enc fails
func Encode(m SettingsMap, enc codec.Encoder) ([]byte, error) {
	data, err := enc.Encode(tree.FromMap(m).ToDocument())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return data, nil
}

// MaxDocumentSize is the largest document Read and the registered formats
// accept.
const MaxDocumentSize = 64 << 20

// Read parses a JSON settings document from r into dst. On failure it
// returns false and leaves dst untouched. Documents larger than
// [MaxDocumentSize] fail.
func Read(r io.Reader, dst *SettingsMap) bool {
	return readWith(codec.JSONCodec{})(r, dst)
}

// Write stores src to w as a JSON settings document with sorted keys. It
// returns false if the document cannot be written.
func Write(w io.Writer, src SettingsMap) bool {
	return writeWith(codec.JSONCodec{})(w, src)
}

func readWith(dec codec.Decoder) ReadFunc {
	return readLimited(dec, MaxDocumentSize)
}

func readLimited(dec codec.Decoder, limit int64) ReadFunc {
	return func(r io.Reader, dst *SettingsMap) bool {
		if r == nil || dst == nil {
			return false
		}
		data, err := io.ReadAll(io.LimitReader(r, limit+1))
		if err != nil || int64(len(data)) > limit {
			return false
		}
		m, err := Decode(data, dec)
		if err != nil {
			return false
		}
		*dst = m
		return true
	}
}

func writeWith(enc codec.Encoder) WriteFunc {
	return func(w io.Writer, src SettingsMap) bool {
		if w == nil {
			return false
		}
		data, err := Encode(src, enc)
		if err != nil {
			return false
		}
		_, err = w.Write(data)
		return err == nil
	}
}

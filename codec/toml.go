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

package codec

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// TypeTOML is a constant representing the "toml" encoding type.
const TypeTOML Type = "toml"

// ErrNull is returned when encoding a document holding a null value in a
// format that has no null.
var ErrNull = errors.New("null value not representable")

// TOMLCodec reads and writes TOML documents. TOML has no null, so documents
// containing one are rejected rather than silently losing the key.
type TOMLCodec struct{}

// Encode encodes the given value 'v' to a TOML-encoded byte slice.
//
// Errors:
//   - Returns [ErrNull] if v holds a nil value
func (TOMLCodec) Encode(v any) ([]byte, error) {
	if path, ok := findNull(v, ""); ok {
		return nil, fmt.Errorf("toml: %w at %q", ErrNull, path)
	}
	return toml.Marshal(v)
}

// Decode decodes the TOML-encoded data into the value pointed to by v.
func (TOMLCodec) Decode(data []byte, v any) error {
	if p, ok := v.(*any); ok {
		raw := make(map[string]any)
		if err := toml.Unmarshal(data, &raw); err != nil {
			return err
		}
		*p = Normalize(raw)
		return nil
	}
	return toml.Unmarshal(data, v)
}

func findNull(node any, path string) (string, bool) {
	switch x := node.(type) {
	case nil:
		return path, true
	case map[string]any:
		for k, e := range x {
			if p, ok := findNull(e, path+"."+k); ok {
				return p, true
			}
		}
	case []any:
		for i, e := range x {
			if p, ok := findNull(e, fmt.Sprintf("%s[%d]", path, i)); ok {
				return p, true
			}
		}
	}
	return "", false
}

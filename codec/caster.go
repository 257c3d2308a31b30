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
	"strings"

	"github.com/spf13/cast"

	"rivaas.dev/settings/legacy"
	"rivaas.dev/settings/variant"
)

// ErrCast is returned when text cannot be converted to the requested kind.
var ErrCast = errors.New("cannot cast")

// CasterCodec decodes command-line text into a [variant.Value] of a fixed
// kind.
type CasterCodec struct {
	kind variant.Kind
}

// NewCaster creates a CasterCodec producing values of the given kind.
// Kinds without a scalar text form are read with [legacy.Parse].
func NewCaster(kind variant.Kind) *CasterCodec {
	return &CasterCodec{kind: kind}
}

// Decode implements [Decoder]. v must be a *variant.Value.
func (c *CasterCodec) Decode(data []byte, v any) error {
	out, ok := v.(*variant.Value)
	if !ok {
		return fmt.Errorf("invalid type assertion: %T", v)
	}
	value, err := c.cast(string(data))
	if err != nil {
		return fmt.Errorf("%w %q to %s: %w", ErrCast, data, c.kind, err)
	}
	*out = value
	return nil
}

func (c *CasterCodec) cast(text string) (variant.Value, error) {
	switch c.kind {
	case variant.KindBool:
		b, err := cast.ToBoolE(text)
		return variant.Bool(b), err
	case variant.KindInt32:
		n, err := cast.ToInt32E(text)
		return variant.Int32(n), err
	case variant.KindUint32:
		n, err := cast.ToUint32E(text)
		return variant.Uint32(n), err
	case variant.KindInt64:
		n, err := cast.ToInt64E(text)
		return variant.Int64(n), err
	case variant.KindUint64:
		n, err := cast.ToUint64E(text)
		return variant.Uint64(n), err
	case variant.KindFloat32:
		f, err := cast.ToFloat32E(text)
		return variant.Float32(f), err
	case variant.KindFloat64:
		f, err := cast.ToFloat64E(text)
		return variant.Float64(f), err
	case variant.KindString:
		return variant.String(text), nil
	case variant.KindBytes:
		return variant.Bytes(text), nil
	case variant.KindStringList:
		if text == "" {
			return variant.StringList{}, nil
		}
		return variant.StringList(cast.ToStringSlice(strings.Split(text, ","))), nil
	case variant.KindDateTime:
		t, err := cast.ToTimeE(text)
		return variant.DateTime{Time: t}, err
	case variant.KindInvalid:
		return variant.Invalid{}, nil
	}

	v := legacy.Parse(text)
	if v.Kind() != c.kind {
		return nil, fmt.Errorf("text is %s", v.Kind())
	}
	return v, nil
}

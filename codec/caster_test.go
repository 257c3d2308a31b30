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

package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/settings/variant"
)

func TestCasterCodec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind variant.Kind
		text string
		want variant.Value
	}{
		{variant.KindBool, "true", variant.Bool(true)},
		{variant.KindInt32, "-12", variant.Int32(-12)},
		{variant.KindUint32, "12", variant.Uint32(12)},
		{variant.KindInt64, "9007199254740993", variant.Int64(9007199254740993)},
		{variant.KindUint64, "42", variant.Uint64(42)},
		{variant.KindFloat64, "0.25", variant.Float64(0.25)},
		{variant.KindString, "@keep", variant.String("@keep")},
		{variant.KindBytes, "raw", variant.Bytes("raw")},
		{variant.KindStringList, "a,b,c", variant.StringList{"a", "b", "c"}},
		{variant.KindStringList, "", variant.StringList{}},
		{variant.KindRect, "@Rect(1 2 3 4)", variant.Rect{X: 1, Y: 2, Width: 3, Height: 4}},
		{variant.KindSize, "@Size(5 6)", variant.Size{Width: 5, Height: 6}},
		{variant.KindDateTime, "2024-01-02T03:04:05Z", variant.DateTime{Time: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()
			var got variant.Value
			require.NoError(t, NewCaster(tt.kind).Decode([]byte(tt.text), &got))
			assert.True(t, variant.Equal(tt.want, got), "got %#v", got)
		})
	}
}

func TestCasterCodec_Errors(t *testing.T) {
	t.Parallel()

	var got variant.Value
	err := NewCaster(variant.KindInt32).Decode([]byte("abc"), &got)
	require.ErrorIs(t, err, ErrCast)
	assert.Nil(t, got)

	err = NewCaster(variant.KindRect).Decode([]byte("@Size(1 2)"), &got)
	require.ErrorIs(t, err, ErrCast)

	var wrong any
	assert.Error(t, NewCaster(variant.KindBool).Decode([]byte("true"), &wrong))
}

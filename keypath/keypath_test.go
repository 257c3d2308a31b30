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

package keypath

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "single", path: "foo", want: []string{"foo"}},
		{name: "nested", path: "foo/bar/baz", want: []string{"foo", "bar", "baz"}},
		{name: "empty", path: "", want: []string{""}},
		{name: "leading", path: "/foo", want: []string{"", "foo"}},
		{name: "trailing", path: "foo/", want: []string{"foo", ""}},
		{name: "doubled", path: "foo//bar", want: []string{"foo", "", "bar"}},
		{name: "only separator", path: "/", want: []string{"", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Split(tt.path, Separator)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, strings.Count(tt.path, Separator)+1)
			assert.Equal(t, tt.path, Join(got...))
		})
	}
}

func TestSplit_CustomSeparator(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b/c"}, Split("a.b/c", "."))
}

func TestIsChild(t *testing.T) {
	t.Parallel()

	assert.True(t, IsChild("", "foo"))
	assert.True(t, IsChild("foo", "foo/bar"))
	assert.True(t, IsChild("foo", "foo/bar/baz"))
	assert.False(t, IsChild("foo", "foo"))
	assert.False(t, IsChild("foo", "foobar/baz"))
}

func TestRelative(t *testing.T) {
	t.Parallel()

	rel, ok := Relative("foo", "foo/bar/baz")
	assert.True(t, ok)
	assert.Equal(t, "bar/baz", rel)

	rel, ok = Relative("", "foo")
	assert.True(t, ok)
	assert.Equal(t, "foo", rel)

	_, ok = Relative("foo", "bar/baz")
	assert.False(t, ok)
}

func TestChildKeysAndGroups(t *testing.T) {
	t.Parallel()

	keys := []string{"a", "b/c", "b/d/e", "b", "f/g", "b/c"}

	assert.Equal(t, []string{"a", "b"}, ChildKeys("", keys))
	assert.Equal(t, []string{"b", "f"}, ChildGroups("", keys))
	assert.Equal(t, []string{"c"}, ChildKeys("b", keys))
	assert.Equal(t, []string{"d"}, ChildGroups("b", keys))
	assert.Empty(t, ChildKeys("missing", keys))
}

func TestTrim(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a/b", Trim("/a/b/"))
	assert.Equal(t, "", Trim("/"))
}

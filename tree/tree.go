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

// Package tree stages settings between their flat and hierarchical forms.
//
// A Tree is built once, either from a flat map of slash-separated key paths
// or from a decoded document, and then projected to the other form. Nodes
// live in two arenas, one for leaves and one for branches, and refer to each
// other by index. Children of a branch are kept sorted by key, so every
// projection is in key order.
//
// When a path is both a value and the prefix of deeper paths, as with
// "foo" and "foo/bar", the value of "foo" is kept under the reserved child
// key [ValueKey] of branch "foo".
package tree

import (
	"slices"
	"sort"

	"rivaas.dev/settings/keypath"
	"rivaas.dev/settings/valuecodec"
	"rivaas.dev/settings/variant"
)

// ValueKey is the child key holding the value of a path that is also a
// branch.
const ValueKey = "$value"

// root is the index of the root branch.
const root = 0

type ref struct {
	index int
	leaf  bool
}

type leaf struct {
	key   string
	value variant.Value
}

type branch struct {
	key      string
	children []ref // sorted by key
}

// Tree is the intermediate form of a settings map. The zero value is not
// usable; create trees with [New], [FromMap] or [FromDocument].
type Tree struct {
	leaves   []leaf
	branches []branch
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{branches: []branch{{}}}
}

// FromMap builds a tree from a flat map. Keys are inserted in sorted order,
// so when two keys address the same node the later key wins.
func FromMap(m map[string]variant.Value) *Tree {
	t := New()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		t.Set(k, m[k])
	}
	return t
}

// FromDocument builds a tree from a decoded document object. A field holding
// an object without a [valuecodec.TypeKey] field is a branch; any other field,
// and every [ValueKey] field, is a leaf decoded with [valuecodec.Decode].
func FromDocument(doc map[string]any) *Tree {
	t := New()
	t.addObject(root, doc)
	return t
}

func (t *Tree) addObject(b int, obj map[string]any) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		node := obj[k]
		if k == ValueKey {
			t.insert(b, k, valuecodec.Decode(node))
			continue
		}
		if child, ok := node.(map[string]any); ok && !valuecodec.IsTagged(child) {
			t.addObject(t.findOrCreateBranch(b, k), child)
			continue
		}
		t.insert(b, k, valuecodec.Decode(node))
	}
}

// Set stores v under the slash-separated path.
func (t *Tree) Set(path string, v variant.Value) {
	segments := keypath.Split(path, keypath.Separator)
	b := root
	for _, seg := range segments[:len(segments)-1] {
		b = t.findOrCreateBranch(b, seg)
	}
	t.insert(b, segments[len(segments)-1], v)
}

// Len returns the number of values in the tree.
func (t *Tree) Len() int {
	return len(t.leaves)
}

func (t *Tree) key(r ref) string {
	if r.leaf {
		return t.leaves[r.index].key
	}
	return t.branches[r.index].key
}

// search returns the position of key among the children of branch b, and
// whether it is present.
func (t *Tree) search(b int, key string) (int, bool) {
	children := t.branches[b].children
	i := sort.Search(len(children), func(i int) bool {
		return t.key(children[i]) >= key
	})
	return i, i < len(children) && t.key(children[i]) == key
}

func (t *Tree) findOrCreateBranch(b int, key string) int {
	i, found := t.search(b, key)
	if found {
		r := t.branches[b].children[i]
		if !r.leaf {
			return r.index
		}
		// The path already holds a value: move it under ValueKey of a new
		// branch that takes over its slot.
		t.leaves[r.index].key = ValueKey
		nb := t.newBranch(key)
		t.branches[nb].children = []ref{r}
		t.branches[b].children[i] = ref{index: nb}
		return nb
	}

	nb := t.newBranch(key)
	t.branches[b].children = slices.Insert(t.branches[b].children, i, ref{index: nb})
	return nb
}

func (t *Tree) insert(b int, key string, v variant.Value) {
	i, found := t.search(b, key)
	if found {
		r := t.branches[b].children[i]
		if r.leaf {
			t.leaves[r.index].value = v
			return
		}
		t.insert(r.index, ValueKey, v)
		return
	}

	t.leaves = append(t.leaves, leaf{key: key, value: v})
	r := ref{index: len(t.leaves) - 1, leaf: true}
	t.branches[b].children = slices.Insert(t.branches[b].children, i, r)
}

func (t *Tree) newBranch(key string) int {
	t.branches = append(t.branches, branch{key: key})
	return len(t.branches) - 1
}

// ToMap projects the tree to a flat map. A [ValueKey] leaf takes the path of
// its parent branch; at the top level it keeps its own key.
func (t *Tree) ToMap() map[string]variant.Value {
	m := make(map[string]variant.Value, len(t.leaves))
	t.flatten(root, nil, m)
	return m
}

// flatten walks branch b. path holds the segments leading to b; it is nil
// for the root.
func (t *Tree) flatten(b int, path []string, m map[string]variant.Value) {
	for _, r := range t.branches[b].children {
		if !r.leaf {
			t.flatten(r.index, append(path, t.branches[r.index].key), m)
			continue
		}
		lf := t.leaves[r.index]
		// A top-level ValueKey leaf keeps its key rather than collapsing to "".
		if lf.key == ValueKey && b != root {
			m[keypath.Join(path...)] = lf.value
			continue
		}
		m[keypath.Join(append(path, lf.key)...)] = lf.value
	}
}

// ToDocument projects the tree to a document object whose leaves are
// encoded with [valuecodec.Encode].
func (t *Tree) ToDocument() map[string]any {
	return t.ToNested(valuecodec.Encode)
}

// ToNested projects the tree to nested maps, converting every value with
// conv. [ValueKey] children are emitted as ordinary fields.
func (t *Tree) ToNested(conv func(variant.Value) any) map[string]any {
	return t.nest(root, conv)
}

func (t *Tree) nest(b int, conv func(variant.Value) any) map[string]any {
	children := t.branches[b].children
	obj := make(map[string]any, len(children))
	for _, r := range children {
		if r.leaf {
			lf := t.leaves[r.index]
			obj[lf.key] = conv(lf.value)
			continue
		}
		obj[t.branches[r.index].key] = t.nest(r.index, conv)
	}
	return obj
}

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

// Package keypath splits and joins slash-delimited settings keys.
//
// A key such as "window/geometry/width" addresses a value three levels deep.
// Splitting never fails: leading, trailing and doubled separators produce empty
// segments, which are preserved so that [Join] restores the original key.
package keypath

import (
	"slices"
	"strings"
)

// Separator delimits the segments of a settings key.
const Separator = "/"

// Split splits path on sep. The result always has one more segment than
// there are occurrences of sep in path.
//
// Example:
//
//	keypath.Split("a/b/c", "/") // ["a" "b" "c"]
//	keypath.Split("/a//", "/")  // ["" "a" "" ""]
//	keypath.Split("", "/")      // [""]
func Split(path, sep string) []string {
	return strings.Split(path, sep)
}

// Join joins segments with [Separator].
func Join(segments ...string) string {
	return strings.Join(segments, Separator)
}

// Trim removes leading and trailing separators from key.
func Trim(key string) string {
	return strings.Trim(key, Separator)
}

// IsChild reports whether key lies inside group. The empty group contains
// every key; a key is not a child of itself.
func IsChild(group, key string) bool {
	if group == "" {
		return true
	}
	return strings.HasPrefix(key, group+Separator)
}

// Relative returns key with the group prefix removed, or false when key is
// not a child of group.
func Relative(group, key string) (string, bool) {
	if !IsChild(group, key) {
		return "", false
	}
	if group == "" {
		return key, true
	}
	return key[len(group)+len(Separator):], true
}

// ChildKeys returns the sorted, de-duplicated keys that sit directly inside
// group, i.e. children that hold a value and have no further separator.
func ChildKeys(group string, keys []string) []string {
	var out []string
	for _, k := range keys {
		rel, ok := Relative(group, k)
		if !ok || strings.Contains(rel, Separator) {
			continue
		}
		out = append(out, rel)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// ChildGroups returns the sorted, de-duplicated names of the sub-groups that
// sit directly inside group.
func ChildGroups(group string, keys []string) []string {
	var out []string
	for _, k := range keys {
		rel, ok := Relative(group, k)
		if !ok {
			continue
		}
		if i := strings.Index(rel, Separator); i >= 0 {
			out = append(out, rel[:i])
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

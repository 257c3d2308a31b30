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

// Package format reads and writes flat settings maps as hierarchical
// documents.
//
// A settings key such as "window/geometry" becomes the nested field
// window.geometry of the document. A key that is both a value and a prefix
// of other keys keeps its value in the reserved field "$value":
//
//	{"foo": 1, "foo/bar": 2}  <->  {"foo": {"$value": 1, "bar": 2}}
//
// Values without a natural document form are written as tagged objects, see
// package valuecodec.
//
// [Read] and [Write] are the JSON entry points. A [Registry] maps names and
// file extensions to formats; [NewDefaultRegistry] also provides YAML and
// TOML:
//
//	reg := format.NewDefaultRegistry()
//	f, err := reg.Detect("app.yaml")
//	if err != nil {
//	    return err
//	}
//	var m format.SettingsMap
//	if !f.Read(file, &m) {
//	    return errors.New("unreadable settings")
//	}
package format

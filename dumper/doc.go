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

// Package dumper provides the places settings documents are written to.
//
// A dumper receives the serialized bytes of a whole document and replaces
// whatever the destination held before.
//
// # Available Dumpers
//
//   - File: atomic replacement of a file on disk
//   - Consul: one key of Consul's key-value store
//
// # Example
//
//	fileDumper := dumper.NewFileWithPermissions("settings.json", 0o600)
//	err := fileDumper.Dump(ctx, data)
package dumper

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

// Package source provides the places settings documents are loaded from.
//
// A source returns the raw bytes of one document; parsing them is left to
// the store's format. A missing file or Consul key is not an error and loads
// as no content.
//
// # Available Sources
//
//   - File: a file on disk, or fixed content
//   - Consul: one key of Consul's key-value store
//
// # Example
//
//	src := source.NewFile("$HOME/.config/app/settings.json")
//	data, err := src.Load(ctx)
package source

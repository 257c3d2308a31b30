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

package settings

import "context"

// Source loads the raw bytes of a settings document.
//
// Load must be safe to call concurrently. Returning no data and no error
// means there is nothing stored yet.
type Source interface {
	Load(ctx context.Context) ([]byte, error)
}

// Dumper replaces a stored settings document with new bytes.
type Dumper interface {
	Dump(ctx context.Context, data []byte) error
}


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

import "github.com/goccy/go-yaml"

// TypeYAML is a constant representing the "yaml" encoding type.
const TypeYAML Type = "yaml"

// YAMLCodec reads and writes YAML documents. Decoding into *any yields the
// same node shapes as [JSONCodec]; see [Normalize].
type YAMLCodec struct{}

// Encode encodes the given value 'v' to a YAML-encoded byte slice.
func (YAMLCodec) Encode(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Decode decodes the YAML-encoded data into the value pointed to by v.
func (YAMLCodec) Decode(data []byte, v any) error {
	if p, ok := v.(*any); ok {
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return err
		}
		*p = Normalize(raw)
		return nil
	}
	return yaml.Unmarshal(data, v)
}

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

package dumper

import (
	"context"
	"fmt"

	"github.com/hashicorp/consul/api"
)

// ConsulKV defines the interface for Consul key-value writes.
// This interface enables testing by allowing mock implementations.
type ConsulKV interface {
	Put(p *api.KVPair, q *api.WriteOptions) (*api.WriteMeta, error)
}

// Consul writes settings bytes to one key of Consul's key-value store.
type Consul struct {
	kv   ConsulKV
	path string
}

// NewConsul creates a Consul dumper writing the key at path.
// If kv is nil, it uses the default Consul client KV implementation, which
// is configured from CONSUL_HTTP_ADDR and CONSUL_HTTP_TOKEN.
//
// Errors:
//   - Returns error if the Consul client cannot be created
func NewConsul(path string, kv ConsulKV) (*Consul, error) {
	if kv == nil {
		client, err := api.NewClient(api.DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create consul client: %w", err)
		}
		kv = client.KV()
	}
	return &Consul{kv: kv, path: path}, nil
}

// Dump stores data under the configured key.
//
// Errors:
//   - Returns error if the Consul write fails
func (c *Consul) Dump(ctx context.Context, data []byte) error {
	_, err := c.kv.Put(&api.KVPair{Key: c.path, Value: data}, (&api.WriteOptions{}).WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to put consul key: %w", err)
	}
	return nil
}

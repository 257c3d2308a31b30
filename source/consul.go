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

package source

import (
	"context"
	"fmt"

	"github.com/hashicorp/consul/api"
)

// ConsulKV defines the interface for Consul key-value reads.
// This interface enables testing by allowing mock implementations.
type ConsulKV interface {
	Get(key string, q *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error)
}

// Consul loads a settings document stored under one key of Consul's
// key-value store.
//
// The Consul client is configured using environment variables:
//   - CONSUL_HTTP_ADDR: The address of the Consul server (e.g., "http://localhost:8500")
//   - CONSUL_HTTP_TOKEN: The access token for authentication (optional)
type Consul struct {
	kv        ConsulKV
	path      string
	lastIndex uint64
}

// NewConsul creates a Consul source reading the key at path.
// If kv is nil, it uses the default Consul client KV implementation.
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

// Path returns the Consul key.
func (c *Consul) Path() string {
	return c.path
}

// LastIndex returns the modify index seen by the last successful Load.
func (c *Consul) LastIndex() uint64 {
	return c.lastIndex
}

// Load retrieves the value stored at the configured key. A key that does not
// exist loads as no content.
//
// Errors:
//   - Returns error if the Consul query fails
func (c *Consul) Load(ctx context.Context) ([]byte, error) {
	pair, meta, err := c.kv.Get(c.path, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get consul key: %w", err)
	}
	if meta != nil {
		c.lastIndex = meta.LastIndex
	}
	if pair == nil {
		return nil, nil
	}
	return pair.Value, nil
}

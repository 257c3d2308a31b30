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

//go:build integration

package source

import (
	"context"
	"testing"

	"github.com/hashicorp/consul/api"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/log"
	"github.com/testcontainers/testcontainers-go/modules/consul"
)

// ConsulSourceTestSuite is a test suite for the Consul source
type ConsulSourceTestSuite struct {
	suite.Suite
	consul *consul.ConsulContainer
	client *api.Client
}

// SetupSuite starts a Consul container and points the default client at it.
func (s *ConsulSourceTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := consul.Run(ctx, "hashicorp/consul:1.15", testcontainers.WithLogger(log.TestLogger(s.T())))
	s.Require().NoError(err)
	s.consul = container

	endpoint, err := container.ApiEndpoint(ctx)
	s.Require().NoError(err)

	s.T().Setenv("CONSUL_HTTP_ADDR", endpoint)

	config := api.DefaultConfig()
	config.Address = endpoint
	s.client, err = api.NewClient(config)
	s.Require().NoError(err)
}

// TearDownSuite tears down the test suite
func (s *ConsulSourceTestSuite) TearDownSuite() {
	if s.consul != nil {
		s.Require().NoError(s.consul.Terminate(context.Background()))
	}
}

// TestConsulSourceTestSuite runs the test suite
func TestConsulSourceTestSuite(t *testing.T) {
	suite.Run(t, new(ConsulSourceTestSuite))
}

func (s *ConsulSourceTestSuite) TestLoad_ValuePresent() {
	key := "test/value-present"
	value := `{"foo": {"$value": 1, "bar": 2}}`
	_, err := s.client.KV().Put(&api.KVPair{Key: key, Value: []byte(value)}, nil)
	s.Require().NoError(err)

	src, err := NewConsul(key, nil)
	s.Require().NoError(err)

	data, err := src.Load(context.Background())
	s.Require().NoError(err)
	s.JSONEq(value, string(data))
	s.NotZero(src.LastIndex())
}

func (s *ConsulSourceTestSuite) TestLoad_ValueAbsent() {
	src, err := NewConsul("test/value-absent", nil)
	s.Require().NoError(err)

	data, err := src.Load(context.Background())
	s.Require().NoError(err)
	s.Empty(data)
}

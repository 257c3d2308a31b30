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

//go:build !integration

package codec

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// YAMLCodecTestSuite is a test suite for YAMLCodec.
type YAMLCodecTestSuite struct {
	suite.Suite
	codec YAMLCodec
}

// TestYAMLCodecTestSuite runs the YAMLCodecTestSuite.
func TestYAMLCodecTestSuite(t *testing.T) {
	suite.Run(t, new(YAMLCodecTestSuite))
}

func (s *YAMLCodecTestSuite) TestRoundTrip() {
	in := map[string]any{
		"name":    "app",
		"port":    8080.0,
		"ratio":   0.5,
		"enabled": true,
		"none":    nil,
		"tags":    []any{"a", 1.0},
		"$value":  map[string]any{"$type": 19.0, "$data": []any{1.0, 2.0, 3.0, 4.0}},
	}
	b, err := s.codec.Encode(in)
	s.Require().NoError(err)

	var out any
	s.Require().NoError(s.codec.Decode(b, &out))
	s.Equal(in, out)
}

func (s *YAMLCodecTestSuite) TestDecode_NormalizesIntegers() {
	var out any
	s.Require().NoError(s.codec.Decode([]byte("a: 1\nb:\n  - 2\n  - c: 3\n"), &out))
	s.Equal(map[string]any{
		"a": 1.0,
		"b": []any{2.0, map[string]any{"c": 3.0}},
	}, out)
}

func (s *YAMLCodecTestSuite) TestDecode_Typed() {
	var out struct {
		Name string `yaml:"name"`
	}
	s.Require().NoError(s.codec.Decode([]byte("name: x\n"), &out))
	s.Equal("x", out.Name)
}

func (s *YAMLCodecTestSuite) TestDecode_Error() {
	var out any
	s.Error(s.codec.Decode([]byte("a: [1, 2\n"), &out))
}

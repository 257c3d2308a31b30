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

// JSONCodecTestSuite is a test suite for JSONCodec.
type JSONCodecTestSuite struct {
	suite.Suite
	codec JSONCodec
}

// SetupTest sets up the test suite.
func (s *JSONCodecTestSuite) SetupTest() {
	s.codec = JSONCodec{}
}

// TestJSONCodecTestSuite runs the JSONCodecTestSuite.
func TestJSONCodecTestSuite(t *testing.T) {
	suite.Run(t, new(JSONCodecTestSuite))
}

func (s *JSONCodecTestSuite) TestEncode_SortedAndIndented() {
	b, err := s.codec.Encode(map[string]any{"b": 1.0, "a": map[string]any{"y": "<>", "x": true}})
	s.Require().NoError(err)
	s.Equal("{\n    \"a\": {\n        \"x\": true,\n        \"y\": \"<>\"\n    },\n    \"b\": 1\n}\n", string(b))
}

func (s *JSONCodecTestSuite) TestEncode_Empty() {
	b, err := s.codec.Encode(map[string]any{})
	s.NoError(err)
	s.Equal("{}\n", string(b))
}

func (s *JSONCodecTestSuite) TestEncode_Error() {
	ch := make(chan int) // not serializable
	_, err := s.codec.Encode(ch)
	s.Error(err)
}

func (s *JSONCodecTestSuite) TestDecode() {
	var v any
	err := s.codec.Decode([]byte(`{"foo": "bar", "num": 42, "n": null}`), &v)
	s.Require().NoError(err)
	s.Equal(map[string]any{"foo": "bar", "num": 42.0, "n": nil}, v)
}

func (s *JSONCodecTestSuite) TestDecode_Error() {
	var v any
	s.Error(s.codec.Decode([]byte(`{"foo": "bar"`), &v))
	s.Error(s.codec.Decode([]byte(`{} {}`), &v))
}

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

// TOMLCodecTestSuite is a test suite for TOMLCodec.
type TOMLCodecTestSuite struct {
	suite.Suite
	codec TOMLCodec
}

// TestTOMLCodecTestSuite runs the TOMLCodecTestSuite.
func TestTOMLCodecTestSuite(t *testing.T) {
	suite.Run(t, new(TOMLCodecTestSuite))
}

func (s *TOMLCodecTestSuite) TestRoundTrip() {
	in := map[string]any{
		"title": "x",
		"server": map[string]any{
			"port":   8080.0,
			"$value": true,
		},
		"list": []any{"a", "b"},
	}
	b, err := s.codec.Encode(in)
	s.Require().NoError(err)

	var out any
	s.Require().NoError(s.codec.Decode(b, &out))
	s.Equal(in, out)
}

func (s *TOMLCodecTestSuite) TestEncode_RejectsNull() {
	_, err := s.codec.Encode(map[string]any{"a": map[string]any{"b": nil}})
	s.Require().ErrorIs(err, ErrNull)
	s.Contains(err.Error(), ".a.b")

	_, err = s.codec.Encode(map[string]any{"l": []any{1.0, nil}})
	s.ErrorIs(err, ErrNull)
}

func (s *TOMLCodecTestSuite) TestDecode_Error() {
	var out any
	s.Error(s.codec.Decode([]byte("a = \n"), &out))
}

func (s *TOMLCodecTestSuite) TestDecode_Empty() {
	var out any
	s.Require().NoError(s.codec.Decode(nil, &out))
	s.Equal(map[string]any{}, out)
}

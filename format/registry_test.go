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

package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"rivaas.dev/settings/codec"
	"rivaas.dev/settings/variant"
)

// RegistryTestSuite is a test suite for Registry.
type RegistryTestSuite struct {
	suite.Suite
	reg *Registry
}

// SetupTest sets up the test suite.
func (s *RegistryTestSuite) SetupTest() {
	s.reg = NewDefaultRegistry()
}

// TestRegistryTestSuite runs the RegistryTestSuite.
func TestRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) TestNames() {
	s.Equal([]string{"json", "toml", "yaml"}, s.reg.Names())
}

func (s *RegistryTestSuite) TestDetect() {
	tests := map[string]string{
		"app.json":        "json",
		"/etc/app.YAML":   "yaml",
		"app.yml":         "yaml",
		"dir.d/conf.toml": "toml",
	}
	for path, want := range tests {
		f, err := s.reg.Detect(path)
		s.Require().NoError(err, path)
		s.Equal(want, f.Name, path)
	}

	_, err := s.reg.Detect("app.ini")
	s.ErrorIs(err, ErrUnknownFormat)

	_, err = s.reg.Detect("noext")
	s.ErrorIs(err, ErrUnknownFormat)
}

func (s *RegistryTestSuite) TestRegister_Duplicate() {
	err := s.reg.Register(NewDocumentFormat("json", nil, codec.JSONCodec{}))
	s.ErrorIs(err, ErrDuplicateFormat)
}

func (s *RegistryTestSuite) TestRegister_Invalid() {
	s.ErrorIs(s.reg.Register(Format{Name: "x"}), ErrInvalidFormat)
	s.ErrorIs(s.reg.Register(Format{Read: Read, Write: Write}), ErrInvalidFormat)
}

func (s *RegistryTestSuite) TestRegister_Custom() {
	s.Require().NoError(s.reg.Register(Format{
		Name:       "jsonc",
		Extensions: []string{".JSONC"},
		Read:       Read,
		Write:      Write,
	}))
	f, err := s.reg.Detect("settings.jsonc")
	s.Require().NoError(err)
	s.Equal("jsonc", f.Name)

	_, ok := s.reg.Lookup("jsonc")
	s.True(ok)
	_, ok = s.reg.Lookup("ini")
	s.False(ok)
}

func (s *RegistryTestSuite) TestDefaultRegistriesAreIndependent() {
	s.Require().NoError(s.reg.Register(Format{Name: "extra", Read: Read, Write: Write}))
	_, ok := NewDefaultRegistry().Lookup("extra")
	s.False(ok)
}

func TestDocumentFormats_RoundTrip(t *testing.T) {
	t.Parallel()

	m := SettingsMap{
		"app/name":     variant.String("demo"),
		"app":          variant.Bool(true),
		"app/size":     variant.Size{Width: 800, Height: 600},
		"app/big":      variant.Uint64(1 << 63),
		"ratio":        variant.Float64(0.75),
		"tags":         variant.StringList{"a", "b"},
		"blob":         variant.Bytes("bin"),
		"nested/a/b/c": variant.Int32(7),
	}

	reg := NewDefaultRegistry()
	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f, ok := reg.Lookup(name)
			require.True(t, ok)

			var buf bytes.Buffer
			require.True(t, f.Write(&buf, m))

			var out SettingsMap
			require.True(t, f.Read(&buf, &out), buf.String())
			assertSettingsEqual(t, m, out)
		})
	}
}

func TestTOMLFormat_RejectsInvalid(t *testing.T) {
	t.Parallel()

	f, ok := NewDefaultRegistry().Lookup("toml")
	require.True(t, ok)
	var buf bytes.Buffer
	assert.False(t, f.Write(&buf, SettingsMap{"gone": variant.Invalid{}}))
	assert.Zero(t, buf.Len())
}

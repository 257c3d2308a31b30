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

package settings

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without field",
			err:  NewError("file-source[0]", "read", ErrReadFailed),
			want: "settings error in file-source[0] during read: settings could not be read",
		},
		{
			name: "with field",
			err:  NewFieldError("defaults", "window/width", "convert", errors.New("bad")),
			want: "settings error in defaults.window/width during convert: bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("context: %w", NewError("dumper[0]", "sync", ErrWriteFailed))
	require.ErrorIs(t, err, ErrWriteFailed)

	var settingsErr *Error
	require.ErrorAs(t, err, &settingsErr)
	assert.Equal(t, "dumper[0]", settingsErr.Source)
	assert.Equal(t, "sync", settingsErr.Operation)
	assert.Empty(t, settingsErr.Field)
}

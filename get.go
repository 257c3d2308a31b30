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

import (
	"fmt"
	"time"

	"github.com/spf13/cast"

	"rivaas.dev/settings/variant"
)

// native returns the Go form of the value under key, or nil if there is
// none.
func (s *Store) native(key string) any {
	if s == nil {
		return nil
	}
	v, ok := s.Value(key)
	if !ok {
		return nil
	}
	return variant.Native(v)
}

// String returns the value under key as a string.
func (s *Store) String(key string) string {
	return cast.ToString(s.native(key))
}

// Int returns the value under key as an int.
func (s *Store) Int(key string) int {
	return cast.ToInt(s.native(key))
}

// Int64 returns the value under key as an int64.
func (s *Store) Int64(key string) int64 {
	return cast.ToInt64(s.native(key))
}

// Float64 returns the value under key as a float64.
func (s *Store) Float64(key string) float64 {
	return cast.ToFloat64(s.native(key))
}

// Bool returns the value under key as a bool.
func (s *Store) Bool(key string) bool {
	return cast.ToBool(s.native(key))
}

// Duration returns the value under key as a time.Duration. Numbers are
// nanoseconds; strings are parsed with time.ParseDuration.
func (s *Store) Duration(key string) time.Duration {
	return cast.ToDuration(s.native(key))
}

// Time returns the value under key as a time.Time.
func (s *Store) Time(key string) time.Time {
	return cast.ToTime(s.native(key))
}

// StringSlice returns the value under key as a []string.
func (s *Store) StringSlice(key string) []string {
	x := s.native(key)
	if x == nil {
		return []string{}
	}
	return cast.ToStringSlice(x)
}

// GetOr returns the value under key converted to T, or defaultVal if the key
// is missing or does not convert.
//
// Example:
//
//	width := settings.GetOr(s, "window/width", 800)
//	title := settings.GetOr(s, "window/title", "untitled")
func GetOr[T any](s *Store, key string, defaultVal T) T {
	x := s.native(key)
	if x == nil {
		return defaultVal
	}
	if result, ok := convertTo[T](x); ok {
		return result
	}
	return defaultVal
}

// GetE returns the value under key converted to T.
//
// Errors:
//   - Returns [Error] wrapping [ErrNotFound] if the key holds no value
//   - Returns [Error] if the value does not convert to T
func GetE[T any](s *Store, key string) (T, error) {
	var zero T
	x := s.native(key)
	if x == nil {
		return zero, NewFieldError("store", key, "get", ErrNotFound)
	}
	if result, ok := convertTo[T](x); ok {
		return result, nil
	}
	return zero, NewFieldError("store", key, "get", fmt.Errorf("cannot convert %T to %T", x, zero))
}

// convertTo converts x with the cast package. Types cast does not know are
// only accepted by direct assertion.
func convertTo[T any](x any) (T, bool) {
	if result, ok := x.(T); ok {
		return result, true
	}

	var zero T
	var (
		result any
		err    error
	)
	switch any(zero).(type) {
	case string:
		result, err = cast.ToStringE(x)
	case int:
		result, err = cast.ToIntE(x)
	case int64:
		result, err = cast.ToInt64E(x)
	case int32:
		result, err = cast.ToInt32E(x)
	case uint:
		result, err = cast.ToUintE(x)
	case uint64:
		result, err = cast.ToUint64E(x)
	case uint32:
		result, err = cast.ToUint32E(x)
	case float64:
		result, err = cast.ToFloat64E(x)
	case float32:
		result, err = cast.ToFloat32E(x)
	case bool:
		result, err = cast.ToBoolE(x)
	case []string:
		result, err = cast.ToStringSliceE(x)
	case []int:
		result, err = cast.ToIntSliceE(x)
	case map[string]any:
		result, err = cast.ToStringMapE(x)
	case map[string]string:
		result, err = cast.ToStringMapStringE(x)
	case time.Duration:
		result, err = cast.ToDurationE(x)
	case time.Time:
		result, err = cast.ToTimeE(x)
	default:
		return zero, false
	}
	if err != nil {
		return zero, false
	}
	typed, ok := result.(T)
	return typed, ok
}

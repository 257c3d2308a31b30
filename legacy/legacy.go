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

// Package legacy implements the textual value form used by settings files
// that predate tagged document values.
//
// A value is written as "@TypeSpec(payload)". TypeSpec is one of ByteArray,
// String, Rect, Size, Point, DateTime or Variant; everything else is a plain
// string. A plain string that starts with '@' is escaped by doubling the '@'.
//
// Variant and DateTime payloads are binary dumps (see [Dump]) carried as a
// Latin-1 string. The format is frozen: new value kinds are only ever added
// to the tagged document encoding, never here.
package legacy

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"rivaas.dev/settings/variant"
)

const (
	prefixByteArray = "@ByteArray("
	prefixString    = "@String("
	prefixVariant   = "@Variant("
	prefixDateTime  = "@DateTime("
	prefixRect      = "@Rect("
	prefixSize      = "@Size("
	prefixPoint     = "@Point("
	invalidText     = "@Invalid()"
)

// Format returns the textual form of v.
func Format(v variant.Value) string {
	switch x := v.(type) {
	case nil, variant.Invalid:
		return invalidText
	case variant.Bytes:
		return prefixByteArray + Latin1String(x) + ")"
	case variant.String:
		return escape(string(x))
	case variant.Bool:
		return escape(strconv.FormatBool(bool(x)))
	case variant.Int32:
		return escape(strconv.FormatInt(int64(x), 10))
	case variant.Int64:
		return escape(strconv.FormatInt(int64(x), 10))
	case variant.Uint32:
		return escape(strconv.FormatUint(uint64(x), 10))
	case variant.Uint64:
		return escape(strconv.FormatUint(uint64(x), 10))
	case variant.Float32:
		return escape(strconv.FormatFloat(float64(x), 'g', -1, 32))
	case variant.Float64:
		return escape(strconv.FormatFloat(float64(x), 'g', -1, 64))
	case variant.Rect:
		return fmt.Sprintf("@Rect(%d %d %d %d)", x.X, x.Y, x.Width, x.Height)
	case variant.Size:
		return fmt.Sprintf("@Size(%d %d)", x.Width, x.Height)
	case variant.Point:
		return fmt.Sprintf("@Point(%d %d)", x.X, x.Y)
	case variant.DateTime:
		return wrapDump(prefixDateTime, v, LayoutDateTime)
	}
	return wrapDump(prefixVariant, v, LayoutVariant)
}

func escape(s string) string {
	if strings.ContainsRune(s, 0) {
		return prefixString + s + ")"
	}
	if strings.HasPrefix(s, "@") {
		return "@" + s
	}
	return s
}

func wrapDump(prefix string, v variant.Value, layout Layout) string {
	data, err := Dump(v, layout)
	if err != nil {
		return invalidText
	}
	return prefix + Latin1String(data) + ")"
}

// Parse returns the value encoded by s. Text that is not a recognized
// "@TypeSpec(...)" form is returned as a String, with a doubled leading '@'
// reduced to one. A Variant or DateTime dump that cannot be read yields
// Invalid.
func Parse(s string) variant.Value {
	if !strings.HasPrefix(s, "@") {
		return variant.String(s)
	}

	if strings.HasSuffix(s, ")") {
		switch {
		case strings.HasPrefix(s, prefixByteArray):
			return variant.Bytes(Latin1Bytes(s[len(prefixByteArray) : len(s)-1]))
		case strings.HasPrefix(s, prefixString):
			return variant.String(s[len(prefixString) : len(s)-1])
		case strings.HasPrefix(s, prefixVariant):
			return parseDump(s[len(prefixVariant):len(s)-1], LayoutVariant)
		case strings.HasPrefix(s, prefixDateTime):
			return parseDump(s[len(prefixDateTime):len(s)-1], LayoutDateTime)
		case strings.HasPrefix(s, prefixRect):
			if args := splitArgs(s, prefixRect); len(args) == 4 {
				return variant.Rect{X: atoi(args[0]), Y: atoi(args[1]), Width: atoi(args[2]), Height: atoi(args[3])}
			}
		case strings.HasPrefix(s, prefixSize):
			if args := splitArgs(s, prefixSize); len(args) == 2 {
				return variant.Size{Width: atoi(args[0]), Height: atoi(args[1])}
			}
		case strings.HasPrefix(s, prefixPoint):
			if args := splitArgs(s, prefixPoint); len(args) == 2 {
				return variant.Point{X: atoi(args[0]), Y: atoi(args[1])}
			}
		case s == invalidText:
			return variant.Invalid{}
		}
	}

	if strings.HasPrefix(s, "@@") {
		return variant.String(s[1:])
	}
	return variant.String(s)
}

func parseDump(payload string, layout Layout) variant.Value {
	v, err := Undump(Latin1Bytes(payload), layout)
	if err != nil {
		return variant.Invalid{}
	}
	return v
}

// splitArgs splits the space-delimited arguments between the prefix and the
// closing parenthesis. Arguments are not escaped.
func splitArgs(s, prefix string) []string {
	return strings.Split(s[len(prefix):len(s)-1], " ")
}

// atoi parses a 32-bit integer argument; malformed input reads as zero.
func atoi(s string) int32 {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0
	}
	return int32(n)
}

// Latin1String maps every byte of b to the character with the same code
// point.
func Latin1String(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(charmap.ISO8859_1.DecodeByte(c))
	}
	return sb.String()
}

// Latin1Bytes is the inverse of [Latin1String]. Characters outside Latin-1
// are replaced by '?'.
func Latin1Bytes(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		c, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			c = '?'
		}
		out = append(out, c)
	}
	return out
}

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

package settings_test

import (
	"context"
	"fmt"
	"log"

	"rivaas.dev/settings"
	"rivaas.dev/settings/variant"
)

// Example demonstrates loading settings and reading values.
func Example() {
	yamlContent := []byte(`
window:
  title: main
  width: 800
recent:
  - a.txt
  - b.txt
`)

	s, err := settings.New(
		settings.WithContent(yamlContent, "yaml"),
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := s.Load(context.Background()); err != nil {
		log.Fatal(err)
	}

	fmt.Println(s.String("window/title"))
	fmt.Println(s.Int("window/width"))
	fmt.Println(s.StringSlice("recent"))
	fmt.Println(s.Keys())

	// Output:
	// main
	// 800
	// [a.txt b.txt]
	// [recent window/title window/width]
}

// ExampleStore_Sync demonstrates how typed values are written.
func ExampleStore_Sync() {
	out := settings.TestDumper()
	s := settings.MustNew(settings.WithDumper(out))

	s.Set("window/geometry", variant.Rect{X: 10, Y: 20, Width: 300, Height: 200})
	s.Set("window/title", variant.String("main"))

	if err := s.Sync(context.Background()); err != nil {
		log.Fatal(err)
	}

	fmt.Print(string(out.Data()))
	// Output:
	// {
	//     "window": {
	//         "geometry": {
	//             "$data": [
	//                 10,
	//                 20,
	//                 300,
	//                 200
	//             ],
	//             "$type": 19
	//         },
	//         "title": "main"
	//     }
	// }
}

// ExampleStore_Sync_valueAndGroup demonstrates a key that is also a group.
func ExampleStore_Sync_valueAndGroup() {
	out := settings.TestDumper()
	s := settings.MustNew(settings.WithDumper(out))

	s.Set("foo", variant.Int32(1))
	s.Set("foo/bar", variant.Int32(2))

	if err := s.Sync(context.Background()); err != nil {
		log.Fatal(err)
	}

	fmt.Print(string(out.Data()))
	// Output:
	// {
	//     "foo": {
	//         "$value": 1,
	//         "bar": 2
	//     }
	// }
}

// ExampleStore_Unmarshal demonstrates binding settings to a struct.
func ExampleStore_Unmarshal() {
	type Window struct {
		Title string `settings:"title"`
		Width int    `settings:"width"`
	}

	s := settings.MustNew(
		settings.WithContent([]byte(`{"window": {"title": "main", "width": 800}}`), "json"),
	)
	if err := s.Load(context.Background()); err != nil {
		log.Fatal(err)
	}

	var cfg struct {
		Window Window `settings:"window"`
	}
	if err := s.Unmarshal(&cfg); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s %d\n", cfg.Window.Title, cfg.Window.Width)
	// Output: main 800
}

// ExampleStore_ChildGroups demonstrates walking the key hierarchy.
func ExampleStore_ChildGroups() {
	s := settings.MustNew()
	s.Set("editor/font/size", variant.Int32(12))
	s.Set("editor/font/family", variant.String("mono"))
	s.Set("editor/tabs", variant.Int32(4))
	s.Set("editor/theme/name", variant.String("dark"))

	fmt.Println(s.ChildGroups("editor"))
	fmt.Println(s.ChildKeys("editor"))
	fmt.Println(s.ChildKeys("editor/font"))
	// Output:
	// [font theme]
	// [tabs]
	// [family size]
}

// ExampleGetOr demonstrates reading a value with a fallback.
func ExampleGetOr() {
	s := settings.MustNew()
	s.Set("window/width", variant.Int32(1024))

	fmt.Println(settings.GetOr(s, "window/width", 800))
	fmt.Println(settings.GetOr(s, "window/height", 600))
	// Output:
	// 1024
	// 600
}

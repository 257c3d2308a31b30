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
	"errors"
	"fmt"
	"log/slog"
	"os"

	"rivaas.dev/settings/dumper"
	"rivaas.dev/settings/format"
	"rivaas.dev/settings/source"
	"rivaas.dev/settings/variant"
)

// Option is a functional option that can be used to configure a Store.
type Option func(s *Store) error

// endpoint is a source or dumper together with how its format is chosen.
// The format is resolved once all options have been applied, so option
// order does not matter.
type endpoint struct {
	name       string // for errors, e.g. "file-source"
	path       string // detect the format from this path's extension
	formatName string // explicit format; wins over path
	format     format.Format
}

type input struct {
	endpoint
	src Source
}

type output struct {
	endpoint
	dst Dumper
}

// WithFile returns an Option that stores settings in a file. The file is
// read by Load, written by Sync and watched by Watch. The format is detected
// from the file extension (.json, .yaml, .yml, .toml); for other names use
// WithFileAs.
//
// Paths support environment variable expansion using ${VAR} or $VAR syntax.
//
// Example:
//
//	s := settings.MustNew(
//	    settings.WithFile("${HOME}/.config/app/settings.json"),
//	)
func WithFile(path string) Option {
	return WithFileAs(path, "")
}

// WithFileAs is like WithFile with an explicit format name. An empty name
// detects the format from the extension.
//
// Example:
//
//	s := settings.MustNew(
//	    settings.WithFileAs("settings.conf", "json"),
//	)
func WithFileAs(path, formatName string) Option {
	return func(s *Store) error {
		path = os.ExpandEnv(path)
		if path == "" {
			return NewError("file-source", "configure", errors.New("path cannot be empty"))
		}
		ep := endpoint{path: path, formatName: formatName}

		ep.name = "file-source"
		s.inputs = append(s.inputs, input{endpoint: ep, src: source.NewFile(path)})
		ep.name = "file-dumper"
		s.outputs = append(s.outputs, output{endpoint: ep, dst: dumper.NewFile(path)})

		if s.watchPath == "" {
			s.watchPath = path
		}
		return nil
	}
}

// WithConsul returns an Option that stores settings under a key of Consul's
// key-value store. The format is detected from the key's extension.
//
// If CONSUL_HTTP_ADDR is not set, this option is silently skipped, allowing
// development without Consul while requiring it in production environments.
//
// Required environment variables (production only):
//   - CONSUL_HTTP_ADDR: The address of the Consul server (e.g., "http://localhost:8500")
//   - CONSUL_HTTP_TOKEN: The access token for authentication with Consul (optional)
//
// Example:
//
//	s := settings.MustNew(
//	    settings.WithConsul("${APP_ENV}/service/settings.json"),
//	)
func WithConsul(path string) Option {
	return func(s *Store) error {
		if os.Getenv("CONSUL_HTTP_ADDR") == "" {
			return nil
		}
		path = os.ExpandEnv(path)

		src, err := source.NewConsul(path, nil)
		if err != nil {
			return NewError("consul-source", "create-client", err)
		}
		dst, err := dumper.NewConsul(path, nil)
		if err != nil {
			return NewError("consul-dumper", "create-client", err)
		}

		s.inputs = append(s.inputs, input{endpoint: endpoint{name: "consul-source", path: path}, src: src})
		s.outputs = append(s.outputs, output{endpoint: endpoint{name: "consul-dumper", path: path}, dst: dst})
		return nil
	}
}

// WithSource adds a source read in the store's default format (see
// WithFormat). Sources are loaded in order; later sources override keys of
// earlier ones.
func WithSource(src Source) Option {
	return func(s *Store) error {
		if src == nil {
			return errors.New("source cannot be nil")
		}
		s.inputs = append(s.inputs, input{endpoint: endpoint{name: "source"}, src: src})
		return nil
	}
}

// WithDumper adds a dumper written in the store's default format.
func WithDumper(d Dumper) Option {
	return func(s *Store) error {
		if d == nil {
			return errors.New("dumper cannot be nil")
		}
		s.outputs = append(s.outputs, output{endpoint: endpoint{name: "dumper"}, dst: d})
		return nil
	}
}

// WithFormat sets the default format, used by sources and dumpers added
// with WithSource and WithDumper. The default is "json".
func WithFormat(name string) Option {
	return func(s *Store) error {
		if name == "" {
			return errors.New("format name cannot be empty")
		}
		s.formatName = name
		return nil
	}
}

// WithRegistry sets the registry formats are looked up in. The default is
// format.NewDefaultRegistry().
func WithRegistry(reg *format.Registry) Option {
	return func(s *Store) error {
		if reg == nil {
			return errors.New("registry cannot be nil")
		}
		s.registry = reg
		return nil
	}
}

// WithDefaults sets values reported for keys that no source provides.
// Values are converted with variant.From.
//
// Example:
//
//	s := settings.MustNew(
//	    settings.WithFile("settings.json"),
//	    settings.WithDefaults(map[string]any{
//	        "window/width":  int32(800),
//	        "window/height": int32(600),
//	    }),
//	)
func WithDefaults(defaults map[string]any) Option {
	return func(s *Store) error {
		for key, x := range defaults {
			v, err := variant.From(x)
			if err != nil {
				return NewFieldError("defaults", key, "convert", err)
			}
			s.defaults[key] = v
		}
		return nil
	}
}

// WithLogger sets the logger for load, sync and watch events. By default
// nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		s.logger = logger
		return nil
	}
}

// WithTag sets the struct tag name used by Unmarshal. The default is
// "settings".
//
// Example:
//
//	type Window struct {
//	    Width int `ui:"width"`
//	}
//	s := settings.MustNew(settings.WithTag("ui"))
func WithTag(tagName string) Option {
	return func(s *Store) error {
		if tagName == "" {
			return errors.New("tag name cannot be empty")
		}
		s.tagName = tagName
		return nil
	}
}

// resolveFormats picks the format of every source and dumper.
func (s *Store) resolveFormats() error {
	var errs error
	for i := range s.inputs {
		f, err := s.resolve(s.inputs[i].endpoint)
		if err != nil {
			errs = errors.Join(errs, NewError(fmt.Sprintf("%s[%d]", s.inputs[i].name, i), "detect-format", err))
			continue
		}
		s.inputs[i].format = f
	}
	for i := range s.outputs {
		f, err := s.resolve(s.outputs[i].endpoint)
		if err != nil {
			errs = errors.Join(errs, NewError(fmt.Sprintf("%s[%d]", s.outputs[i].name, i), "detect-format", err))
			continue
		}
		s.outputs[i].format = f
	}
	return errs
}

func (s *Store) resolve(ep endpoint) (format.Format, error) {
	switch {
	case ep.formatName != "":
		return s.lookup(ep.formatName)
	case ep.path != "":
		return s.registry.Detect(ep.path)
	}
	return s.lookup(s.formatName)
}

func (s *Store) lookup(name string) (format.Format, error) {
	f, ok := s.registry.Lookup(name)
	if !ok {
		return format.Format{}, fmt.Errorf("%w: %q", format.ErrUnknownFormat, name)
	}
	return f, nil
}

// WithContent adds a read-only source serving data in the named format.
// Content sources have no dumper and are never watched.
//
// Example:
//
//	settings.WithContent(embeddedDefaults, "json")
func WithContent(data []byte, formatName string) Option {
	return func(s *Store) error {
		if formatName == "" {
			return NewError("content-source", "configure", errors.New("format name cannot be empty"))
		}
		s.inputs = append(s.inputs, input{
			endpoint: endpoint{name: "content-source", formatName: formatName},
			src:      source.NewFileContent(data),
		})
		return nil
	}
}

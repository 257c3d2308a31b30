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

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rivaas.dev/settings"
	"rivaas.dev/settings/codec"
	"rivaas.dev/settings/keypath"
	"rivaas.dev/settings/legacy"
	"rivaas.dev/settings/variant"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	format  string // overrides detection from the file extension
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "settings",
		Short: "Read and edit settings documents",
		Long: `settings reads and edits documents holding a flat map of typed
values under slash-separated keys, as JSON, YAML or TOML.

Values are printed and parsed in their text form, e.g. "@Rect(0 0 800 600)"
for a rectangle or "@ByteArray(...)" for raw bytes.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&flags.format, "format", "f", "", "document format (json, yaml, toml); detected from the extension when empty")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newGetCmd(flags),
		newSetCmd(flags),
		newListCmd(flags),
		newRemoveCmd(flags),
		newConvertCmd(flags),
	)
	return root
}

func newGetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get FILE KEY",
		Short: "Print the value stored under KEY",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd.Context(), flags, args[0])
			if err != nil {
				return err
			}
			v, ok := s.Value(args[1])
			if !ok {
				return fmt.Errorf("%q: %w", args[1], settings.ErrNotFound)
			}
			fmt.Fprintln(cmd.OutOrStdout(), legacy.Format(v))
			return nil
		},
	}
}

func newSetCmd(flags *globalFlags) *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:   "set FILE KEY VALUE",
		Short: "Store VALUE under KEY",
		Long: `Store VALUE under KEY and write the document back.

VALUE is read as the kind given by --type. Scalar kinds take their usual text
form; stringlist takes comma-separated items; other kinds take the text form
printed by "get", e.g. "@Size(640 480)".`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := variant.ParseKind(kindName)
			if !ok {
				return fmt.Errorf("unknown type %q", kindName)
			}
			var v variant.Value
			if err := codec.NewCaster(kind).Decode([]byte(args[2]), &v); err != nil {
				return err
			}

			s, err := open(cmd.Context(), flags, args[0])
			if err != nil {
				return err
			}
			s.Set(args[1], v)
			return s.Sync(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&kindName, "type", "t", variant.KindString.String(), "kind of VALUE, e.g. bool, int64, float64, stringlist, rect")
	return cmd
}

func newListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list FILE [GROUP]",
		Short: "Print every key inside GROUP with its value",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd.Context(), flags, args[0])
			if err != nil {
				return err
			}
			group := ""
			if len(args) == 2 {
				group = keypath.Trim(args[1])
			}

			out := cmd.OutOrStdout()
			for _, key := range s.Keys() {
				if group != "" && key != group && !keypath.IsChild(group, key) {
					continue
				}
				fmt.Fprintf(out, "%s = %s\n", key, legacy.Format(s.Get(key)))
			}
			return nil
		},
	}
}

func newRemoveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "remove FILE KEY",
		Short:   "Remove KEY and every key inside it",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd.Context(), flags, args[0])
			if err != nil {
				return err
			}
			s.Remove(args[1])
			return s.Sync(cmd.Context())
		},
	}
}

func newConvertCmd(flags *globalFlags) *cobra.Command {
	var toFormat string

	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Rewrite the document IN as OUT",
		Long: `Rewrite the document IN as OUT. The output format is detected from
the extension of OUT unless --to is given; --format applies to IN only.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := open(cmd.Context(), flags, args[0])
			if err != nil {
				return err
			}
			out, err := settings.New(append(storeOptions(flags), settings.WithFileAs(args[1], toFormat))...)
			if err != nil {
				return err
			}
			for key, v := range in.Snapshot() {
				out.Set(key, v)
			}
			return out.Sync(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&toFormat, "to", "", "format of OUT")
	return cmd
}

// storeOptions returns the options every store opened by the command shares.
func storeOptions(flags *globalFlags) []settings.Option {
	level := slog.LevelWarn
	if flags.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return []settings.Option{settings.WithLogger(logger)}
}

// open creates a store on path and loads it.
func open(ctx context.Context, flags *globalFlags, path string) (*settings.Store, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := settings.New(append(storeOptions(flags), settings.WithFileAs(path, strings.ToLower(flags.format)))...)
	if err != nil {
		return nil, err
	}
	if err = s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

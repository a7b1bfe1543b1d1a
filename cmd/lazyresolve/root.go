// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	slogcontext "github.com/veqryn/slog-context"
)

const (
	logLevelFlag  = "loglevel"
	logFormatFlag = "logformat"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lazyresolve [sub-command]",
		Short: "Drive declarations through the lazy resolution phases",
		Long: `lazyresolve loads scenario files describing declarations, their
  dependencies and scripted phase failures, and resolves them on demand
  the way a compiler frontend does.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := baseLogger(cmd)
			if err != nil {
				return fmt.Errorf("could not set up logging: %w", err)
			}
			cmd.SetContext(slogcontext.NewCtx(cmd.Context(), logger))
			return nil
		},
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}

	enumVar(cmd.PersistentFlags(), logLevelFlag, []string{"warn", "debug", "info", "error"},
		"set the log level")
	enumVar(cmd.PersistentFlags(), logFormatFlag, []string{"text", "json"},
		"set the log format")

	cmd.AddCommand(newPhasesCommand(), newResolveCommand())
	return cmd
}

func baseLogger(cmd *cobra.Command) (*slog.Logger, error) {
	name, err := enumGet(cmd.Flags(), logLevelFlag)
	if err != nil {
		return nil, err
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return nil, err
	}

	format, err := enumGet(cmd.Flags(), logFormatFlag)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	}
	return slog.New(handler), nil
}

// enum is a flag value restricted to a fixed set of strings. The first
// option is the default.
type enum struct {
	value   string
	options []string
}

var _ pflag.Value = (*enum)(nil)

func enumVar(f *pflag.FlagSet, name string, options []string, usage string) {
	f.Var(&enum{value: options[0], options: options}, name,
		fmt.Sprintf("%s (one of %s)", usage, strings.Join(options, ", ")))
}

func enumGet(f *pflag.FlagSet, name string) (string, error) {
	flag := f.Lookup(name)
	if flag == nil {
		return "", fmt.Errorf("flag accessed but not defined: %s", name)
	}
	e, ok := flag.Value.(*enum)
	if !ok {
		return "", fmt.Errorf("flag %s is not an enum", name)
	}
	return e.value, nil
}

func (e *enum) String() string { return e.value }
func (e *enum) Type() string   { return "enum" }

func (e *enum) Set(s string) error {
	if !slices.Contains(e.options, s) {
		return fmt.Errorf("must be one of %s", strings.Join(e.options, ", "))
	}
	e.value = s
	return nil
}

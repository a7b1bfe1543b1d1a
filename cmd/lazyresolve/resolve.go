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
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-logr/logr"
	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/bufbuild/lazyresolve"
	"github.com/bufbuild/lazyresolve/deprecation"
	"github.com/bufbuild/lazyresolve/internal/scenario"
	"github.com/bufbuild/lazyresolve/phase"
)

const (
	phaseFlag       = "phase"
	apiVersionFlag  = "api-version"
	filterFlag      = "filter"
	parallelismFlag = "parallelism"
	outputFlag      = "output"
	traceFlag       = "trace"
)

func newResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve PATTERN...",
		Short: "Resolve the declarations of scenario files",
		Long: `Resolve loads every scenario file matching the given patterns, resolves
  each of its declarations and prints the phase, status and deprecation
  each one ended up with. Patterns may use doublestar globs, such as
  "testdata/**/*.yaml".

  Exits with a non-zero status if any declaration failed to resolve.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runResolve,
	}

	f := cmd.Flags()
	f.Var(new(phaseValue), phaseFlag, "resolve to this phase instead of the one the scenario names")
	f.String(apiVersionFlag, "", "query deprecations at this API version instead of the latest")
	f.String(filterFlag, "", "only resolve and print declarations whose name matches this glob")
	f.Int(parallelismFlag, 0, "number of declarations resolved at once; 0 means one per CPU")
	enumVar(f, outputFlag, []string{"table", "tree"}, "output format")
	f.Bool(traceFlag, false, "print every phase run, in order")
	return cmd
}

// phaseValue is a flag holding a phase, by name.
type phaseValue phase.Phase

func (v *phaseValue) String() string { return phase.Phase(*v).String() }
func (v *phaseValue) Type() string   { return "phase" }

func (v *phaseValue) Set(s string) error {
	p, ok := phase.ByName(strings.ToUpper(s))
	if !ok {
		return fmt.Errorf("unknown phase %q", s)
	}
	*v = phaseValue(p)
	return nil
}

var errFailed = errors.New("some declarations failed to resolve")

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := slogcontext.FromCtx(ctx)

	files, err := expand(args)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	output, err := enumGet(f, outputFlag)
	if err != nil {
		return err
	}
	parallelism, err := f.GetInt(parallelismFlag)
	if err != nil {
		return err
	}
	showTrace, err := f.GetBool(traceFlag)
	if err != nil {
		return err
	}

	var filter glob.Glob
	if pattern, _ := f.GetString(filterFlag); pattern != "" {
		if filter, err = glob.Compile(pattern, '.'); err != nil {
			return fmt.Errorf("invalid --%s: %w", filterFlag, err)
		}
	}

	var reports []report
	failed := 0
	for _, file := range files {
		s, err := scenario.LoadFile(file)
		if err != nil {
			return err
		}
		if f.Changed(phaseFlag) {
			s.Target = phase.Phase(*f.Lookup(phaseFlag).Value.(*phaseValue)) //nolint:errcheck // Always a *phaseValue.
		}
		if v, _ := f.GetString(apiVersionFlag); v != "" {
			if s.APIVersion, err = deprecation.ParseVersion(v); err != nil {
				return fmt.Errorf("invalid --%s: %w", apiVersionFlag, err)
			}
		}

		decls := s.Declarations()
		if filter != nil {
			decls = slices.DeleteFunc(decls, func(d lazyresolve.Declaration) bool {
				return !filter.Match(d.String())
			})
		}

		par := parallelism
		if err := s.Check(); err != nil && par != 1 {
			logger.WarnContext(ctx, "resolving on a single goroutine", "file", file, "reason", err.Error())
			par = 1
		}

		trace := new(scenario.Trace)
		driver := lazyresolve.Driver{
			Runner:         s.NewRunner(trace),
			MaxParallelism: par,
			Logger:         logr.FromSlogHandler(logger.Handler()),
		}
		logger.InfoContext(ctx, "resolving scenario", "file", file, "declarations", len(decls), "phase", s.Target.String())
		errs, err := driver.Resolve(ctx, s.Target, decls...)
		if err != nil {
			return err
		}

		// Results are indexed like s.Decls; line errors up with them.
		byName := make(map[string]error, len(decls))
		for i, d := range decls {
			byName[d.String()] = errs[i]
		}
		all := make([]error, len(s.Decls))
		for i, d := range s.Decls {
			all[i] = byName[d.Name]
			if all[i] != nil {
				failed++
			}
		}

		results := s.Results(all)
		if filter != nil {
			results = slices.DeleteFunc(results, func(r scenario.Result) bool {
				return !filter.Match(r.Name)
			})
		}
		reports = append(reports, report{name: s.Name, target: s.Target, results: results, trace: trace.Lines()})
	}

	out := cmd.OutOrStdout()
	switch output {
	case "tree":
		renderTree(out, reports)
	default:
		renderTables(out, reports)
	}
	if showTrace {
		renderTrace(out, reports)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of them", errFailed, failed)
	}
	return nil
}

// expand turns patterns into the list of files they match. A pattern that
// matches nothing must name an existing file.
func expand(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("no scenario files match %q", pattern)
			}
			matches = []string{pattern}
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

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

// Package scenario loads declaration graphs described in YAML, together
// with scripted phase logic, for driving the runner in tests and from the
// command line.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/lazyresolve/deprecation"
	"github.com/bufbuild/lazyresolve/fir"
	"github.com/bufbuild/lazyresolve/internal/toposort"
	"github.com/bufbuild/lazyresolve/phase"
)

// Scenario is a loaded scenario file.
type Scenario struct {
	// Name of the scenario; defaults to the file it was loaded from.
	Name string
	// The phase to resolve to, if the file specifies one.
	Target phase.Phase
	// The API version to query deprecations at. Nil means the latest.
	APIVersion *semver.Version

	// Every declaration of the scenario, in file order.
	Decls   []*fir.Declaration
	Session *fir.Session

	scripts map[*fir.Declaration]*script
}

// script is the scripted behavior of one declaration.
type script struct {
	depends [phase.Total][]*fir.Declaration
	fail    phase.Phase
	fails   bool
}

// file is the YAML form of a scenario.
type file struct {
	Name        string        `yaml:"name"`
	Target      string        `yaml:"target"`
	APIVersion  string        `yaml:"api_version"`
	Declaration []declaration `yaml:"declarations"`
}

type declaration struct {
	Name        string              `yaml:"name"`
	Kind        string              `yaml:"kind"`
	Visibility  string              `yaml:"visibility"`
	Modality    string              `yaml:"modality"`
	Annotations []annotation        `yaml:"annotations"`
	Depends     map[string][]string `yaml:"depends"`
	Fail        string              `yaml:"fail"`
}

type annotation struct {
	Kind       string `yaml:"kind"`
	Site       string `yaml:"site"`
	Level      string `yaml:"level"`
	Message    string `yaml:"message"`
	Propagates bool   `yaml:"propagates"`
	Warning    string `yaml:"warning"`
	Error      string `yaml:"error"`
	Hidden     string `yaml:"hidden"`
	Since      string `yaml:"since"`
}

// LoadFile loads the scenario at path.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(path, f)
}

// Load loads a scenario from r. name is used in errors, and as the name of
// the scenario if it does not have one.
func Load(name string, r io.Reader) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := validate(data); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var in file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	s, err := build(&in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if s.Name == "" {
		s.Name = name
	}
	return s, nil
}

func build(in *file) (*Scenario, error) {
	s := &Scenario{
		Name:    in.Name,
		Target:  phase.Last,
		Session: new(fir.Session),
		scripts: make(map[*fir.Declaration]*script),
	}

	if in.Target != "" {
		p, ok := phase.ByName(in.Target)
		if !ok {
			return nil, fmt.Errorf("unknown target phase %q", in.Target)
		}
		s.Target = p
	}
	if in.APIVersion != "" {
		v, err := deprecation.ParseVersion(in.APIVersion)
		if err != nil {
			return nil, fmt.Errorf("invalid api_version: %w", err)
		}
		s.APIVersion = v
	}

	// Two passes: dependencies may refer to declarations later in the file.
	for _, in := range in.Declaration {
		d, err := newDeclaration(in)
		if err != nil {
			return nil, err
		}
		if err := s.Session.Add(d); err != nil {
			return nil, err
		}
		s.Decls = append(s.Decls, d)
	}

	for i, in := range in.Declaration {
		d := s.Decls[i]
		sc := new(script)
		for name, deps := range in.Depends {
			p, ok := phase.ByName(name)
			if !ok || p.NoProcessor() {
				return nil, fmt.Errorf("%s: cannot depend on anything in phase %q", d.Name, name)
			}
			for _, dep := range deps {
				target, ok := s.Session.Lookup(dep)
				if !ok {
					return nil, fmt.Errorf("%s: depends on unknown declaration %q", d.Name, dep)
				}
				sc.depends[p] = append(sc.depends[p], target)
			}
		}
		if in.Fail != "" {
			p, ok := phase.ByName(in.Fail)
			if !ok || p.NoProcessor() {
				return nil, fmt.Errorf("%s: cannot fail in phase %q", d.Name, in.Fail)
			}
			sc.fail, sc.fails = p, true
		}
		s.scripts[d] = sc
	}

	return s, nil
}

func newDeclaration(in declaration) (*fir.Declaration, error) {
	kind, ok := fir.KindByName(in.Kind)
	if !ok {
		return nil, fmt.Errorf("%s: unknown kind %q", in.Name, in.Kind)
	}
	d := fir.New(in.Name, kind)
	d.Visibility = fir.Visibility(in.Visibility)
	d.Modality = fir.Modality(in.Modality)

	for i, a := range in.Annotations {
		info, err := newAnnotation(a)
		if err != nil {
			return nil, fmt.Errorf("%s: annotation %d: %w", in.Name, i, err)
		}
		d.Annotations = append(d.Annotations, info)
	}
	return d, nil
}

func newAnnotation(in annotation) (deprecation.AnnotationInfo, error) {
	var out deprecation.AnnotationInfo
	var ok bool
	if out.Kind, ok = deprecation.KindByName(in.Kind); !ok {
		return out, fmt.Errorf("unknown kind %q", in.Kind)
	}

	out.Site = deprecation.AllSites
	if in.Site != "" {
		if out.Site, ok = deprecation.UseSiteByName(in.Site); !ok {
			return out, fmt.Errorf("unknown use site %q", in.Site)
		}
	}
	out.Level = deprecation.Warning
	if in.Level != "" {
		if out.Level, ok = deprecation.LevelByName(in.Level); !ok {
			return out, fmt.Errorf("unknown level %q", in.Level)
		}
	}
	out.Message = in.Message
	out.PropagatesToOverrides = in.Propagates

	versions := []struct {
		text string
		out  **semver.Version
	}{
		{in.Warning, &out.WarningSince},
		{in.Error, &out.ErrorSince},
		{in.Hidden, &out.HiddenSince},
		{in.Since, &out.Since},
	}
	for _, v := range versions {
		if v.text == "" {
			continue
		}
		parsed, err := deprecation.ParseVersion(v.text)
		if err != nil {
			return out, fmt.Errorf("invalid version %q: %w", v.text, err)
		}
		*v.out = parsed
	}

	switch {
	case out.Kind == deprecation.DeprecatedSince &&
		out.WarningSince == nil && out.ErrorSince == nil && out.HiddenSince == nil:
		return out, errors.New("deprecated-since needs at least one of warning, error or hidden")
	case out.Kind == deprecation.SinceVersion && out.Since == nil:
		return out, errors.New("since-version needs since")
	}
	return out, nil
}

// Check reports whether s's dependencies can be resolved by several
// goroutines at once.
//
// A cycle among the dependencies of a single phase, such as a.A needing a.B
// in TYPES while a.B needs a.A in TYPES, is caught by the runner when a
// single goroutine walks it. When two goroutines each claim one end, they
// wait on each other forever. Check returns an error describing the first
// such cycle, if any.
func (s *Scenario) Check() error {
	for p := range phase.Phases() {
		children := func(d *fir.Declaration) iter.Seq[*fir.Declaration] {
			return slices.Values(s.scripts[d].depends[p])
		}
		key := func(d *fir.Declaration) *fir.Declaration { return d }
		if _, err := toposort.Sort(s.Decls, key, children); err != nil {
			return fmt.Errorf("dependencies in %v: %w", p, err)
		}
	}
	return nil
}

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

package scenario

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bufbuild/lazyresolve"
	"github.com/bufbuild/lazyresolve/deprecation"
	"github.com/bufbuild/lazyresolve/fir"
)

// Result is the outcome of resolving one declaration of a scenario.
type Result struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	Phase string `yaml:"phase"`

	// Resolved visibility and modality, if STATUS was reached.
	Status string `yaml:"status,omitempty"`
	// Deprecation at the scenario's API version: "none" if the declaration
	// is known not to be deprecated, empty if not computed yet.
	Deprecation string `yaml:"deprecation,omitempty"`
	Error       string `yaml:"error,omitempty"`
}

// Results summarizes s after resolving it. errs holds the error for each
// declaration, in the order of s.Decls, as returned by
// [lazyresolve.Driver.Resolve]; it may be shorter than s.Decls.
//
// Results are ordered by declaration name.
func (s *Scenario) Results(errs []error) []Result {
	byDecl := make(map[*fir.Declaration]error, len(errs))
	for i, err := range errs {
		if i < len(s.Decls) {
			byDecl[s.Decls[i]] = err
		}
	}

	var out []Result
	for d := range s.Session.All() {
		r := Result{
			Name:        d.Name,
			Kind:        d.Kind.String(),
			Phase:       d.Phase().String(),
			Deprecation: formatDeprecation(lazyresolve.DeprecationInfo(d, s.APIVersion)),
		}
		if status, ok := fir.StatusOf(d); ok {
			r.Status = status.String()
		}
		if err := byDecl[d]; err != nil {
			r.Error = err.Error()
		}
		out = append(out, r)
	}
	return out
}

// FormatResults renders results as YAML.
func FormatResults(results []Result) (string, error) {
	var buf strings.Builder
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(results); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatDeprecation(info *deprecation.PerUseSite) string {
	switch {
	case info == nil:
		return ""
	case info.IsEmpty():
		return "none"
	}

	var parts []string
	if info.All != nil {
		parts = append(parts, info.All.String())
	}
	for _, site := range slices.Sorted(maps.Keys(info.BySite)) {
		parts = append(parts, fmt.Sprintf("%v %v", site, info.BySite[site]))
	}
	return strings.Join(parts, "; ")
}

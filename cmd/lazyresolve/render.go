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
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rivo/uniseg"

	"github.com/bufbuild/lazyresolve/internal/scenario"
	"github.com/bufbuild/lazyresolve/phase"
)

// report is what resolving one scenario file produced.
type report struct {
	name    string
	target  phase.Phase
	results []scenario.Result
	trace   []string
}

func renderTables(out io.Writer, reports []report) {
	for _, r := range reports {
		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetTitle(fmt.Sprintf("%s (to %v)", r.name, r.target))
		t.AppendHeader(table.Row{"Declaration", "Kind", "Phase", "Status", "Deprecation", "Error"})
		for _, res := range r.results {
			t.AppendRow(table.Row{res.Name, res.Kind, res.Phase, res.Status, res.Deprecation, res.Error})
		}
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 6, WidthMax: 80},
		})
		style := table.StyleLight
		style.Options.DrawBorder = false
		t.SetStyle(style)
		t.Render()
	}
}

// renderTree prints one branch per declaration, with its name padded so the
// phases line up. Names may contain wide characters, so padding goes by
// display width rather than bytes.
func renderTree(out io.Writer, reports []report) {
	for _, r := range reports {
		fmt.Fprintf(out, "%s (to %v)\n", r.name, r.target)

		width := 0
		for _, res := range r.results {
			width = max(width, uniseg.StringWidth(res.Name))
		}

		for i, res := range r.results {
			branch, stem := "├── ", "│   "
			if i == len(r.results)-1 {
				branch, stem = "└── ", "    "
			}

			line := []string{res.Phase}
			if res.Status != "" {
				line = append(line, res.Status)
			}
			pad := strings.Repeat(" ", width-uniseg.StringWidth(res.Name))
			fmt.Fprintf(out, "%s%s%s  %s\n", branch, res.Name, pad, strings.Join(line, ", "))

			var children []string
			if res.Deprecation != "" && res.Deprecation != "none" {
				children = append(children, "deprecated: "+res.Deprecation)
			}
			if res.Error != "" {
				children = append(children, "error: "+res.Error)
			}
			for j, child := range children {
				leaf := "├── "
				if j == len(children)-1 {
					leaf = "└── "
				}
				fmt.Fprintf(out, "%s%s%s\n", stem, leaf, child)
			}
		}
	}
}

func renderTrace(out io.Writer, reports []report) {
	for _, r := range reports {
		fmt.Fprintf(out, "trace of %s:\n", r.name)
		for _, line := range r.trace {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
}

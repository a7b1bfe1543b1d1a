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

// Package fir provides the declaration tree that resolution operates on.
//
// The parser hands the resolver a tree of [Declaration]s in the raw state:
// names, kinds and annotations as written, resolved to [phase.RawFIR]. Each
// declaration carries its own resolution state and side table; phases fill
// in the rest.
//
//go:generate go run github.com/bufbuild/lazyresolve/internal/enum kind.yaml
package fir

import (
	"fmt"

	"github.com/bufbuild/lazyresolve/attr"
	"github.com/bufbuild/lazyresolve/deprecation"
	"github.com/bufbuild/lazyresolve/phase"
	"github.com/bufbuild/lazyresolve/state"
)

// Declaration is a resolvable declaration: a class, function, property, and
// so on.
//
// The exported fields are what the parser produced and must not be changed
// once resolution starts. Declarations must not be copied.
type Declaration struct {
	// The fully qualified name, such as "kotlin.collections.List".
	Name string
	Kind Kind

	// Deprecation-like annotations, in declaration order.
	Annotations []deprecation.AnnotationInfo

	// Visibility and modality as written. The zero values mean that the
	// modifier was omitted.
	Visibility Visibility
	Modality   Modality

	state state.Cell
	attrs attr.Table
}

// New returns a new raw declaration.
func New(name string, kind Kind) *Declaration {
	return &Declaration{Name: name, Kind: kind}
}

// ResolveState returns this declaration's resolution state.
func (d *Declaration) ResolveState() *state.Cell {
	return &d.state
}

// Attributes returns this declaration's side table.
func (d *Declaration) Attributes() *attr.Table {
	return &d.attrs
}

// Phase returns the phase this declaration may currently be read at.
func (d *Declaration) Phase() phase.Phase {
	return d.state.Phase()
}

// String implements [fmt.Stringer].
func (d *Declaration) String() string {
	return d.Name
}

// GoString implements [fmt.GoStringer].
func (d *Declaration) GoString() string {
	return fmt.Sprintf("fir.Declaration{%s %s @ %v}", d.Kind, d.Name, d.Phase())
}

// Fork returns a copy of d under a new name, resolved as far as d currently
// is, with an independent copy of its side table.
//
// This is how a declaration-like view, such as a substitution override, is
// derived from its original without mutating it. d must not be advanced
// concurrently with this call.
func (d *Declaration) Fork(name string) *Declaration {
	fork := &Declaration{
		Name:        name,
		Kind:        d.Kind,
		Annotations: d.Annotations,
		Visibility:  d.Visibility,
		Modality:    d.Modality,
	}
	fork.state.Init(d.Phase())
	fork.attrs = *d.attrs.Copy()
	return fork
}

// ResolveDeprecations computes d's deprecation provider from its
// annotations and stores it in its side table.
//
// This belongs to [phase.CompilerRequiredAnnotations].
func ResolveDeprecations(d *Declaration) deprecation.Provider {
	return deprecation.Install(&d.attrs, d.Annotations)
}

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

package fir

import (
	"fmt"

	"github.com/bufbuild/lazyresolve/attr"
)

// StatusKey is the side table slot holding a declaration's resolved
// [Status]. It is written by the STATUS phase.
var StatusKey = attr.NewKey[Status]("fir.status")

// Visibility is a declaration's visibility modifier.
type Visibility string

const (
	Public    Visibility = "public"
	Internal  Visibility = "internal"
	Protected Visibility = "protected"
	Private   Visibility = "private"
)

// Modality is a declaration's inheritance modifier.
type Modality string

const (
	Final    Modality = "final"
	Open     Modality = "open"
	Abstract Modality = "abstract"
	Sealed   Modality = "sealed"
)

// Status is a declaration's resolved visibility and modality.
type Status struct {
	Visibility Visibility
	Modality   Modality
}

// String implements [fmt.Stringer].
func (s Status) String() string {
	return fmt.Sprintf("%s %s", s.Visibility, s.Modality)
}

// ResolveStatus fills in the defaults for d's omitted modifiers and stores
// the result in its side table.
func ResolveStatus(d *Declaration) (Status, error) {
	status := Status{Visibility: d.Visibility, Modality: d.Modality}
	switch status.Visibility {
	case "":
		status.Visibility = Public
	case Public, Internal, Protected, Private:
	default:
		return Status{}, fmt.Errorf("%s: unknown visibility %q", d.Name, status.Visibility)
	}

	switch status.Modality {
	case "":
		status.Modality = Final
		if d.Kind == Interface {
			status.Modality = Abstract
		}
	case Final, Open, Abstract, Sealed:
	default:
		return Status{}, fmt.Errorf("%s: unknown modality %q", d.Name, status.Modality)
	}

	if status.Modality == Sealed && d.Kind != Class && d.Kind != Interface {
		return Status{}, fmt.Errorf("%s: a %s cannot be sealed", d.Name, d.Kind)
	}

	attr.Set(&d.attrs, StatusKey, status)
	return status, nil
}

// StatusOf returns d's resolved status, if the STATUS phase has run.
func StatusOf(d *Declaration) (Status, bool) {
	return attr.Get(&d.attrs, StatusKey)
}

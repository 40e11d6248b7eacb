// Copyright 2025 Siyadah
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

package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/siyadah/flowgen/pkg/flow"
)

// Fix records one applied repair.
type Fix struct {
	// Kind names the repair applied
	Kind string `json:"kind"`

	// Step is the 1-based index of the repaired step
	Step int `json:"step"`

	// Detail describes what changed
	Detail string `json:"detail"`
}

// FixResult reports what AutoFix changed.
type FixResult struct {
	// Fixed is true when at least one repair was applied
	Fixed bool `json:"fixed"`

	Fixes []Fix `json:"fixes"`
}

// Repair kinds.
const (
	FixAddIndex       = "add_index"
	FixNormalizePhone = "normalize_phone"
)

// localSaudiMobile matches a whole local-form Saudi mobile number.
var localSaudiMobile = regexp.MustCompile(`^05\d{8}$`)

// phoneProps are the input properties phone normalization applies to.
var phoneProps = map[string]bool{"number": true, "receiver": true, "to": true}

// AutoFix repairs mechanical defects in place and reports what changed.
// Two repairs only: assigning a missing step index from list position,
// and rewriting literal local Saudi mobile numbers to international
// form. Binding expressions are never touched. Idempotent: a second run
// applies nothing. AutoFix makes no validity claim; callers revalidate.
func AutoFix(f *flow.Flow) *FixResult {
	result := &FixResult{}
	if f == nil {
		return result
	}

	for i, s := range f.Steps {
		if s.Index == 0 {
			s.Index = i + 1
			result.Fixes = append(result.Fixes, Fix{
				Kind:   FixAddIndex,
				Step:   s.Index,
				Detail: fmt.Sprintf("assigned index %d from position", s.Index),
			})
		}

		for prop, value := range s.Input {
			if !phoneProps[prop] || strings.HasPrefix(value, "{{") {
				continue
			}
			if localSaudiMobile.MatchString(value) {
				s.Input[prop] = "+966" + value[1:]
				result.Fixes = append(result.Fixes, Fix{
					Kind:   FixNormalizePhone,
					Step:   s.Index,
					Detail: fmt.Sprintf("normalized '%s' to international form", prop),
				})
			}
		}
	}

	result.Fixed = len(result.Fixes) > 0
	return result
}

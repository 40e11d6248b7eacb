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

package intent

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// EntityKind tags what an extracted span represents.
type EntityKind string

const (
	EntityPhone    EntityKind = "phone"
	EntityEmail    EntityKind = "email"
	EntityTime     EntityKind = "time"
	EntityDate     EntityKind = "date"
	EntityAmount   EntityKind = "amount"
	EntityName     EntityKind = "name"
	EntityTool     EntityKind = "tool"
	EntityIndustry EntityKind = "industry"
)

// Entity is a typed span extracted from the raw request text. Entities
// are informational annotations for downstream stages; they are not
// validated against the registry.
type Entity struct {
	// Kind is the pattern's declared type
	Kind EntityKind `json:"type"`

	// Value is the matched text, trimmed
	Value string `json:"value"`

	// Position is the character offset of the match in the request
	Position int `json:"position"`
}

// entityPattern binds a compiled regex to the entity kind it yields.
// Extraction runs on the raw text; the table is data so coverage can
// grow without touching control flow.
type entityPattern struct {
	kind EntityKind
	re   *regexp.Regexp
}

var entityPatterns = []entityPattern{
	// Saudi mobile numbers, international or local form.
	{EntityPhone, regexp.MustCompile(`(?:\+966|00966|0)5\d{8}`)},
	{EntityPhone, regexp.MustCompile(`05\d{8}`)},

	{EntityEmail, regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.]+`)},

	{EntityTime, regexp.MustCompile(`الساعة?\s*(\d{1,2}(?::\d{2})?)\s*(صباح|مساء|ص|م)?`)},
	{EntityTime, regexp.MustCompile(`(\d{1,2}(?::\d{2})?)\s*(AM|PM|am|pm)`)},

	{EntityDate, regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})[/\-](\d{2,4})`)},
	{EntityDate, regexp.MustCompile(`(اليوم|بكرة|غدا|غداً|بعد بكرة|الأحد|الاثنين|الثلاثاء|الأربعاء|الخميس|الجمعة|السبت)`)},

	{EntityAmount, regexp.MustCompile(`(\d[\d,]*\.?\d*)\s*(ريال|SAR|ر\.س|دولار|USD)`)},
	{EntityAmount, regexp.MustCompile(`(ريال|SAR)\s*(\d[\d,]*\.?\d*)`)},

	{EntityName, regexp.MustCompile(`(?:اسمه?|العميل|المريض|الزبون)\s+([^\s,،.]+(?:\s+[^\s,،.]+)?)`)},

	{EntityTool, regexp.MustCompile(`(?i)(واتساب|واتس|إيميل|ايميل|سلاك|slack|شيت|sheet|جيميل|gmail|تلغرام|telegram|هبسبوت|hubspot|شوبيفاي|shopify|سترايب|stripe|كالندلي|calendly|جيرا|jira|نوشن|notion)`)},

	{EntityIndustry, regexp.MustCompile(`(عيادة|مستشفى|طبي|مستوصف|مجمع طبي|clinic)`)},
	{EntityIndustry, regexp.MustCompile(`(متجر|محل|دكان|shop|store|ecommerce)`)},
	{EntityIndustry, regexp.MustCompile(`(مطعم|كافيه|مقهى|restaurant|cafe)`)},
	{EntityIndustry, regexp.MustCompile(`(شركة استشارات|استشاري|consulting)`)},
	{EntityIndustry, regexp.MustCompile(`(مقاولات|بناء|construction)`)},
	{EntityIndustry, regexp.MustCompile(`(تدريب|دورات|أكاديمية|training)`)},
}

// ExtractEntities pulls every typed span out of the raw text, in match
// order, deduplicated by (kind, value). Pure and total: no matches
// yields an empty list, never an error.
func ExtractEntities(text string) []Entity {
	var entities []Entity
	seen := make(map[string]bool)

	for _, p := range entityPatterns {
		locs := p.re.FindAllStringIndex(text, -1)
		for _, loc := range locs {
			value := strings.TrimSpace(text[loc[0]:loc[1]])
			key := string(p.kind) + ":" + value
			if seen[key] {
				continue
			}
			seen[key] = true
			entities = append(entities, Entity{
				Kind:     p.kind,
				Value:    value,
				Position: utf8.RuneCountInString(text[:loc[0]]),
			})
		}
	}

	return entities
}

// ToolMentions returns the values of tool-kind entities, in order.
func ToolMentions(entities []Entity) []string {
	var out []string
	for _, e := range entities {
		if e.Kind == EntityTool {
			out = append(out, e.Value)
		}
	}
	return out
}

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

// Package intent classifies free-form automation requests against a
// fixed taxonomy and extracts typed entities from them.
//
// Classification is a deterministic scoring heuristic, not a learned
// model: weighted keyword matches on normalized text, sentence-level
// confidence boosters on the raw text, and negative-keyword penalties.
// The weight constants are empirically chosen; they live in Scoring so
// they can be tuned without touching the algorithm.
package intent

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/siyadah/flowgen/internal/arabic"
)

// Scoring holds the classifier's tunable constants.
type Scoring struct {
	// LongKeywordWeight is added per matched keyword longer than
	// LongKeywordRunes; longer phrases are less ambiguous and dominate
	LongKeywordWeight float64

	// ShortKeywordWeight is added per matched short keyword
	ShortKeywordWeight float64

	// LongKeywordRunes is the rune-length cutoff between the two tiers
	LongKeywordRunes int

	// NegativePenalty is subtracted per present negative keyword
	NegativePenalty float64

	// Threshold is the minimum score for an intent to be emitted
	Threshold float64
}

// DefaultScoring returns the production constants. Covered by golden
// regression tests; change them there first.
func DefaultScoring() Scoring {
	return Scoring{
		LongKeywordWeight:  0.30,
		ShortKeywordWeight: 0.15,
		LongKeywordRunes:   4,
		NegativePenalty:    0.35,
		Threshold:          0.15,
	}
}

// Match is one classified intent.
type Match struct {
	// Intent is the taxonomy intent id
	Intent string `json:"intent"`

	// NameAr is the localized display name
	NameAr string `json:"name_ar"`

	// Category is the taxonomy category tag
	Category string `json:"category"`

	// Confidence is the clamped score in [0,1], rounded to 2 decimals
	Confidence float64 `json:"confidence"`

	// MatchedKeywords lists the keywords that contributed, as declared
	MatchedKeywords []string `json:"matched_keywords"`
}

// Classifier scores requests against the taxonomy.
type Classifier struct {
	scoring Scoring
}

// NewClassifier creates a classifier with the given scoring constants.
func NewClassifier(scoring Scoring) *Classifier {
	return &Classifier{scoring: scoring}
}

// Classify scores every taxonomy intent against the request and returns
// the intents clearing the inclusion threshold, sorted by descending
// confidence. Sorting is stable, so taxonomy declaration order breaks
// ties. An empty result is the valid "unrecognized request" outcome,
// not an error.
func (c *Classifier) Classify(text string) []Match {
	normalized := arabic.Normalize(text)
	var results []Match

	// Booster hits depend only on the raw text, compute them once.
	var boost float64
	for _, b := range Boosters {
		if b.Regex.MatchString(text) {
			boost += b.Boost
		}
	}

	for _, def := range Taxonomy {
		score := 0.0
		var matched []string

		for _, kw := range def.Keywords {
			nkw := arabic.Normalize(kw)
			if nkw == "" || !contains(normalized, nkw) {
				continue
			}
			if utf8.RuneCountInString(nkw) > c.scoring.LongKeywordRunes {
				score += c.scoring.LongKeywordWeight
			} else {
				score += c.scoring.ShortKeywordWeight
			}
			matched = append(matched, kw)
		}

		score += boost

		for _, neg := range Negatives[def.ID] {
			if contains(normalized, arabic.Normalize(neg)) {
				score -= c.scoring.NegativePenalty
			}
		}

		score = math.Max(0, math.Min(score, 1.0))
		if score < c.scoring.Threshold {
			continue
		}

		results = append(results, Match{
			Intent:          def.ID,
			NameAr:          def.NameAr,
			Category:        def.Category,
			Confidence:      math.Round(score*100) / 100,
			MatchedKeywords: matched,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	return results
}

func contains(haystack, needle string) bool {
	return needle != "" && strings.Contains(haystack, needle)
}

// Analysis is the full understanding of one request: classified intents
// plus extracted entities and two sentence-level flags downstream stages
// care about.
type Analysis struct {
	// Input is the raw request text
	Input string `json:"input"`

	// Primary is the highest-confidence intent, nil when nothing cleared
	// the threshold
	Primary *Match `json:"primary_intent"`

	// Secondary holds up to the next two intents by confidence
	Secondary []Match `json:"secondary_intents"`

	// All is the complete ranked list
	All []Match `json:"all_intents"`

	// Entities are the typed spans extracted from the raw text
	Entities []Entity `json:"entities"`

	// HasAutomationIntent reports explicit automation wording
	HasAutomationIntent bool `json:"has_automation_intent"`

	// HasSequence reports multi-step sequencing wording
	HasSequence bool `json:"has_sequence"`
}

var (
	automationRegex = regexp.MustCompile(`تلقائي|أوتوماتيك|auto|بدون تدخل|أبي|ابي|ابغى|أبغى|نظام|سوي لي|سولي|اتمت`)
	sequenceRegex   = regexp.MustCompile(`وبعدين|ثم|بعد كذا|و\s*بعدها`)
)

// Analyze runs classification and entity extraction over one request.
func (c *Classifier) Analyze(text string) *Analysis {
	matches := c.Classify(text)

	a := &Analysis{
		Input:               text,
		All:                 matches,
		Entities:            ExtractEntities(text),
		HasAutomationIntent: automationRegex.MatchString(text),
		HasSequence:         sequenceRegex.MatchString(text),
	}
	if len(matches) > 0 {
		a.Primary = &matches[0]
	}
	if len(matches) > 1 {
		end := min(3, len(matches))
		a.Secondary = matches[1:end]
	}
	return a
}

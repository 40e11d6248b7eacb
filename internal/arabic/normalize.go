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

// Package arabic canonicalizes Arabic-script text for matching.
//
// Classification and alias lookups both run on normalized text, so the
// same request matches regardless of hamza placement, taa marbuta
// spelling, diacritics or elongation. Normalize is pure, total and
// idempotent.
package arabic

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// strippable covers the Arabic diacritic blocks (U+0610-U+061A honorifics,
// U+064B-U+065F harakat) and the tatweel elongation character.
var strippable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0610, Hi: 0x061A, Stride: 1},
		{Lo: 0x0640, Hi: 0x0640, Stride: 1},
		{Lo: 0x064B, Hi: 0x065F, Stride: 1},
	},
}

// foldLetter maps Arabic letter-shape variants to one representative:
// all alef forms to bare alef, taa marbuta to haa, alef maqsura to yaa.
func foldLetter(r rune) rune {
	switch r {
	case 'أ', 'إ', 'آ':
		return 'ا'
	case 'ة':
		return 'ه'
	case 'ى':
		return 'ي'
	}
	return r
}

// Normalize canonicalizes text for matching: folds letter variants,
// strips diacritics and tatweel, lowercases and trims.
//
// Normalize(Normalize(x)) == Normalize(x) for all x.
func Normalize(text string) string {
	// A fresh chain per call; transform.Chain values carry internal
	// buffers and are not safe for concurrent reuse.
	chain := transform.Chain(
		runes.Map(foldLetter),
		runes.Remove(runes.In(strippable)),
	)
	out, _, err := transform.String(chain, text)
	if err != nil {
		out = text
	}
	return strings.TrimSpace(strings.ToLower(out))
}

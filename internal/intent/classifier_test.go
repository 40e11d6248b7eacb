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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPrimaryIntent(t *testing.T) {
	c := NewClassifier(DefaultScoring())

	tests := []struct {
		name string
		text string
		want string
	}{
		{"book appointment", "أبي أحجز موعد", AppointmentBook},
		{"send invoice", "أرسل فاتورة للعميل", InvoiceSend},
		{"new lead", "عميل جديد يتواصل", LeadCapture},
		{"daily report", "أبي تقرير يومي", ReportDaily},
		{"whatsapp message", "أرسل واتساب", NotifyWhatsApp},
		{"support complaint", "عندي شكوى من عميل", SupportTicket},
		{"sheet logging", "سجّل الطلبات في شيت", SheetLog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := c.Classify(tt.text)
			require.NotEmpty(t, matches, "expected at least one intent for %q", tt.text)
			assert.Equal(t, tt.want, matches[0].Intent)
		})
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	c := NewClassifier(DefaultScoring())
	assert.Empty(t, c.Classify(""))
	assert.Empty(t, c.Classify("   "))
}

func TestClassifyUnrecognized(t *testing.T) {
	c := NewClassifier(DefaultScoring())
	// No taxonomy keyword appears; an empty result, not an error.
	assert.Empty(t, c.Classify("xyzzy plugh"))
}

func TestClassifyMonotonicOrdering(t *testing.T) {
	c := NewClassifier(DefaultScoring())

	inputs := []string{
		"أبي أحجز موعد وأرسل واتساب للعميل",
		"أرسل فاتورة للعميل وذكّره بالدفع",
		"عميل جديد يتواصل من الموقع",
	}
	for _, in := range inputs {
		matches := c.Classify(in)
		for i := 1; i < len(matches); i++ {
			assert.GreaterOrEqual(t, matches[i-1].Confidence, matches[i].Confidence,
				"matches for %q must be sorted by descending confidence", in)
		}
	}
}

func TestClassifyConfidenceBounds(t *testing.T) {
	c := NewClassifier(DefaultScoring())

	// Stack many keywords and boosters; confidence still clamps at 1.
	matches := c.Classify("أبي نظام تلقائي يحجز موعد وزيارة وجلسة وكشف وفحص واستشارة بوكينق booking appointment")
	require.NotEmpty(t, matches)
	for _, m := range matches {
		assert.LessOrEqual(t, m.Confidence, 1.0)
		assert.GreaterOrEqual(t, m.Confidence, DefaultScoring().Threshold)
	}
}

func TestClassifyNegativePenalty(t *testing.T) {
	c := NewClassifier(DefaultScoring())

	// Reminder phrasing must not classify as booking: the booking intent
	// carries تذكير as a negative keyword.
	matches := c.Classify("ذكّر المرضى قبل الموعد")
	require.NotEmpty(t, matches)
	assert.Equal(t, AppointmentRemind, matches[0].Intent)
}

func TestClassifyMatchedKeywordsReported(t *testing.T) {
	c := NewClassifier(DefaultScoring())

	matches := c.Classify("أبي أحجز موعد")
	require.NotEmpty(t, matches)
	assert.Equal(t, AppointmentBook, matches[0].Intent)
	assert.Contains(t, matches[0].MatchedKeywords, "موعد")
}

func TestAnalyze(t *testing.T) {
	c := NewClassifier(DefaultScoring())

	t.Run("full analysis", func(t *testing.T) {
		a := c.Analyze("أبي كل ما يجي عميل جديد يرسل واتساب ثم يسجل في شيت")
		require.NotNil(t, a.Primary)
		assert.True(t, a.HasAutomationIntent)
		assert.True(t, a.HasSequence)
		assert.Equal(t, a.Primary.Intent, a.All[0].Intent)
		assert.LessOrEqual(t, len(a.Secondary), 2)
	})

	t.Run("no intent", func(t *testing.T) {
		a := c.Analyze("")
		assert.Nil(t, a.Primary)
		assert.Empty(t, a.All)
		assert.False(t, a.HasAutomationIntent)
	})

	t.Run("secondary excludes primary", func(t *testing.T) {
		a := c.Analyze("أرسل فاتورة وواتساب وإيميل للعميل")
		require.NotNil(t, a.Primary)
		for _, s := range a.Secondary {
			assert.NotEqual(t, a.Primary.Intent, s.Intent)
		}
	})
}

func TestScoringRegression(t *testing.T) {
	// Golden values for the canonical requests. A change here means the
	// scoring constants or the keyword tables moved; update deliberately.
	c := NewClassifier(DefaultScoring())

	tests := []struct {
		text       string
		intent     string
		confidence float64
	}{
		// موعد + حجز + احجز keywords (0.15 each) + request verb booster
		{"أبي أحجز موعد", AppointmentBook, 0.50},
		// فاتورة + ارسل فاتورة (long, 0.30 each)
		{"أرسل فاتورة للعميل", InvoiceSend, 0.60},
	}

	for _, tt := range tests {
		matches := c.Classify(tt.text)
		require.NotEmpty(t, matches, tt.text)
		assert.Equal(t, tt.intent, matches[0].Intent, tt.text)
		assert.InDelta(t, tt.confidence, matches[0].Confidence, 0.001, tt.text)
	}
}

func TestTaxonomyWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range Taxonomy {
		assert.NotEmpty(t, def.ID)
		assert.NotEmpty(t, def.NameAr)
		assert.NotEmpty(t, def.Category)
		assert.NotEmpty(t, def.Keywords, "intent %s has no keywords", def.ID)
		assert.False(t, seen[def.ID], "duplicate intent id %s", def.ID)
		seen[def.ID] = true
	}

	for id := range Negatives {
		assert.NotNil(t, ByID(id), "negative list references unknown intent %s", id)
	}
}

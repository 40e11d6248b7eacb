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

package arabic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain ascii lowercased", "Hello World", "hello world"},
		{"alef variants folded", "أحمد إبراهيم آمن", "احمد ابراهيم امن"},
		{"taa marbuta folded", "فاتورة", "فاتوره"},
		{"alef maqsura folded", "مستشفى", "مستشفي"},
		{"tatweel stripped", "مـــوعـــد", "موعد"},
		{"diacritics stripped", "ذكِّر المرضى", "ذكر المرضي"},
		{"whitespace trimmed", "  موعد  ", "موعد"},
		{"mixed script", "أرسل WhatsApp", "ارسل whatsapp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"أبي أحجز موعد",
		"أرسل فاتورة للعميل",
		"عيادة الدكتور أحمد",
		"Hello مرحبا",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize(normalize(x)) must equal normalize(x) for %q", in)
	}
}

func TestNormalizeConcurrent(t *testing.T) {
	// A fresh transform chain is built per call, so parallel use is safe.
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				Normalize("أرسل فاتورة للعميل رقم ٥")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}

/*
Copyright 2024 The lzssflate Authors
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package decap implements the decapitalization text preprocessor the
// core spec names as an orthogonal, out-of-core collaborator: it predicts
// which letters a piece of English-like text "ought" to capitalize by
// grammar convention, lowercases the ones that conform, and records the
// rest as deviations so the original text can be reconstructed exactly.
// Feeding its output into the core encoder removes redundant case
// information before the entropy coder ever sees it.
package decap

import "unicode"

// Rule predicts whether the rune at index i of text should be uppercase,
// based only on text[:i] and text[i] itself — never on runes ahead of i,
// so a rule's prediction at i is identical whether it is evaluated
// against the original text or a left-to-right reconstruction of it.
type Rule interface {
	Predicts(text []rune, i int) bool
}

// FirstTextLetterRule predicts that the first letter of the text is
// capitalized.
type FirstTextLetterRule struct{}

func (FirstTextLetterRule) Predicts(text []rune, i int) bool {
	return i == 0 && unicode.IsLetter(text[i])
}

// UpperLetterAfterFullStopRule predicts that the first letter following a
// ". " sentence boundary is capitalized.
type UpperLetterAfterFullStopRule struct{}

func (UpperLetterAfterFullStopRule) Predicts(text []rune, i int) bool {
	return i >= 2 && text[i-2] == '.' && text[i-1] == ' ' && unicode.IsLetter(text[i])
}

// UpperLetterAfterTwoUpperLettersRule predicts that a letter immediately
// following two consecutive uppercase letters is itself uppercase,
// covering the common case of runs inside acronyms.
type UpperLetterAfterTwoUpperLettersRule struct{}

func (UpperLetterAfterTwoUpperLettersRule) Predicts(text []rune, i int) bool {
	return i >= 2 && unicode.IsUpper(text[i-1]) && unicode.IsUpper(text[i-2]) && unicode.IsLetter(text[i])
}

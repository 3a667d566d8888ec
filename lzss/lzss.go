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

// Package lzss implements the LZSS factorizer (spec §4.2, component C2)
// and its decoder-side inverse, token replay.
package lzss

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/lzssflate/lzssflate/token"
	"github.com/lzssflate/lzssflate/window"
)

// ErrInvalidOptions is returned by Options.Validate for an unusable
// (min, max) match length pair.
var ErrInvalidOptions = errors.New("lzss: invalid options")

// ErrCorrupt is wrapped by every error Replay returns; callers can test
// for it with errors.Is.
var ErrCorrupt = errors.New("lzss: corrupt token stream")

// Options bounds the match lengths the factorizer and replay consider.
type Options struct {
	MinMatch int
	MaxMatch int
}

// DefaultOptions returns the default match-length bounds: MIN_MATCH = 3,
// MAX_MATCH = 258.
func DefaultOptions() Options {
	return Options{MinMatch: 3, MaxMatch: 258}
}

// Validate checks the invariants spec §7 requires of window/match
// parameters: MinMatch >= 1, MaxMatch > MinMatch.
func (this Options) Validate() error {
	if this.MinMatch < 1 {
		return fmt.Errorf("%w: min match length %d must be at least 1", ErrInvalidOptions, this.MinMatch)
	}

	if this.MaxMatch <= this.MinMatch {
		return fmt.Errorf("%w: max match length %d must exceed min match length %d", ErrInvalidOptions, this.MaxMatch, this.MinMatch)
	}

	return nil
}

// Factorize converts data into a sequence of Literal/Match tokens using a
// bounded sliding window of the given size, following the greedy,
// non-lazy, leftmost-tie-break algorithm in spec §4.2. Replaying the
// returned tokens in order reconstructs data exactly.
func Factorize(data []byte, windowSize int, opts Options) ([]token.Token, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if windowSize < 0 {
		return nil, fmt.Errorf("%w: window size %d must be non-negative", ErrInvalidOptions, windowSize)
	}

	w := window.New(windowSize)
	tokens := make([]token.Token, 0, len(data))
	pos := 0

	for pos < len(data) {
		bestLen, bestIdx, found := 0, -1, false
		length := 0
		view := w.View()

		for pos+length < len(data) {
			candidate := data[pos : pos+length+1]

			// A match must start inside the window but may run on past its
			// end into the bytes it is itself reproducing (distance < length).
			haystack := append(view[:len(view):len(view)], data[pos:pos+length]...)
			idx := bytes.Index(haystack, candidate)

			if idx < 0 || idx >= len(view) {
				break
			}

			bestLen = length + 1
			bestIdx = idx
			found = true
			length++

			if pos+length == len(data) || length == opts.MaxMatch {
				break
			}
		}

		if !found || bestLen < opts.MinMatch {
			b := data[pos]
			tokens = append(tokens, token.NewLiteral(b))
			w.Append(b)
			pos++
			continue
		}

		distance := w.Len() - bestIdx
		tokens = append(tokens, token.NewMatch(bestLen, distance))

		for i := 0; i < bestLen; i++ {
			w.Append(data[pos+i])
		}

		pos += bestLen
	}

	return tokens, nil
}

// Replay reconstructs the original byte sequence from a token stream,
// the decoder-side inverse of Factorize. windowSize and opts must match
// the values Factorize was called with.
//
// Because the decoded output already holds every byte emitted so far, a
// match is satisfied by copying length bytes from distance bytes behind
// the current output position one at a time; when distance < length this
// naturally reproduces self-overlapping runs (spec §8, "self-overlap
// correctness"), since each copied byte becomes available to satisfy a
// later position in the same match.
func Replay(tokens []token.Token, windowSize int, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(tokens))

	for _, tk := range tokens {
		if tk.IsLiteral() {
			out = append(out, tk.Byte)
			continue
		}

		if tk.Length < opts.MinMatch || tk.Length > opts.MaxMatch {
			return nil, fmt.Errorf("%w: match length %d outside [%d, %d]", ErrCorrupt, tk.Length, opts.MinMatch, opts.MaxMatch)
		}

		if tk.Distance < 1 || tk.Distance > windowSize {
			return nil, fmt.Errorf("%w: match distance %d outside [1, %d]", ErrCorrupt, tk.Distance, windowSize)
		}

		start := len(out)

		if tk.Distance > start {
			return nil, fmt.Errorf("%w: match distance %d exceeds %d bytes decoded so far", ErrCorrupt, tk.Distance, start)
		}

		for i := 0; i < tk.Length; i++ {
			out = append(out, out[start-tk.Distance+i])
		}
	}

	return out, nil
}

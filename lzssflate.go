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

// Package lzssflate is the consumer-facing boundary of the compressor
// (spec §6): Encode turns one byte chunk into a self-describing block,
// and Decode is its exact inverse. Everything upstream of this package
// (window, token, tables, huffman, codec, lzss, chunkcodec, block) is an
// internal collaborator; callers only need this package and a window
// size.
package lzssflate

import (
	"errors"
	"fmt"

	"github.com/lzssflate/lzssflate/bitio"
	"github.com/lzssflate/lzssflate/block"
	"github.com/lzssflate/lzssflate/lzss"
)

// DefaultWindowSize is the sliding-window capacity used when a caller
// does not have a more specific requirement: 32 KiB, the classic
// DEFLATE-family default.
const DefaultWindowSize = 32768

// Sentinel errors, per spec §7's error taxonomy. Use errors.Is to test
// for them; the wrapped error carries the specific offending value.
var (
	// ErrInvalidInput covers a negative/zero window size or an
	// unusable match-length configuration.
	ErrInvalidInput = errors.New("lzssflate: invalid input")

	// ErrCorruptBitstream covers every malformed-decode condition: a
	// codebook length field that overruns the remaining bits, a token
	// referencing a distance or length outside its legal range, an
	// unmatched residual after decoding a codebook or token stream, or
	// an unrecognized block marker.
	ErrCorruptBitstream = errors.New("lzssflate: corrupt bitstream")

	// ErrEmptyTokenList names the empty-token-list condition of the
	// error taxonomy. No function in this module returns it: an empty
	// chunk encodes to a valid block and decodes back to an empty
	// result (see DESIGN.md).
	ErrEmptyTokenList = errors.New("lzssflate: empty token list")
)

// Encode compresses chunk into a single self-describing block using a
// sliding window of windowSize bytes, returning the byte-packed
// bitstream. The final byte, if the bit count is not a multiple of 8, is
// zero-padded in its low-order bits.
func Encode(chunk []byte, windowSize int) ([]byte, error) {
	opts := lzss.DefaultOptions()

	if windowSize <= 0 {
		return nil, fmt.Errorf("%w: window size %d must be positive", ErrInvalidInput, windowSize)
	}

	w, err := block.Encode(chunk, windowSize, opts)
	if err != nil {
		if errors.Is(err, lzss.ErrInvalidOptions) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		return nil, err
	}

	return w.Bytes(), nil
}

// Decode reconstructs the chunk bytes encoded into data by Encode, given
// the same windowSize. Any trailing zero-padding bits beyond the block's
// own self-reported length are ignored.
func Decode(data []byte, windowSize int) ([]byte, error) {
	opts := lzss.DefaultOptions()

	if windowSize <= 0 {
		return nil, fmt.Errorf("%w: window size %d must be positive", ErrInvalidInput, windowSize)
	}

	r := bitio.NewReader(data, len(data)*8)

	decoded, err := block.Decode(r, windowSize, opts)
	if err != nil {
		if errors.Is(err, block.ErrCorrupt) {
			return nil, fmt.Errorf("%w: %v", ErrCorruptBitstream, err)
		}

		return nil, err
	}

	return decoded, nil
}

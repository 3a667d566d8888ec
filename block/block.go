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

// Package block wraps a chunk's entropy-coded payload with the outer
// block framing (spec §4.7, component C7): a 2-bit type marker and a
// 16-bit big-endian payload bit-length, followed by either the
// compressed payload from chunkcodec or a raw fallback. The framer
// always emits the shorter of the two candidates, favoring the
// compressed form on a tie.
package block

import (
	"errors"
	"fmt"

	"github.com/lzssflate/lzssflate/bitio"
	"github.com/lzssflate/lzssflate/chunkcodec"
	"github.com/lzssflate/lzssflate/lzss"
)

// Marker values for the 2-bit block-type prefix. '01' and '11' are
// reserved and never emitted by this encoder.
const (
	markerRaw        = 0b00
	markerCompressed = 0b10
	markerBits       = 2
	lengthHeaderBits = 16
	rawBitsPerByte   = 16
)

// ErrCorrupt is wrapped by every error Decode returns.
var ErrCorrupt = errors.New("block: corrupt block")

// Encode produces the framed block for chunk: it builds both the
// compressed candidate (via chunkcodec) and the raw fallback candidate,
// then returns whichever is no longer than the other, preferring the
// compressed candidate on a tie.
func Encode(chunk []byte, windowSize int, opts lzss.Options) (*bitio.Writer, error) {
	payload, err := chunkcodec.Encode(chunk, windowSize, opts)
	if err != nil {
		return nil, err
	}

	compressed := bitio.NewWriter(payload.Len()/8 + 4)
	compressed.WriteBits(markerCompressed, markerBits)
	compressed.WriteBits(uint64(payload.Len()), lengthHeaderBits)
	compressed.WriteBuffer(payload)

	raw := bitio.NewWriter(len(chunk)*2 + 4)
	raw.WriteBits(markerRaw, markerBits)
	raw.WriteBits(uint64(len(chunk)*rawBitsPerByte), lengthHeaderBits)

	for _, b := range chunk {
		raw.WriteBits(uint64(b), rawBitsPerByte)
	}

	if raw.Len() < compressed.Len() {
		return raw, nil
	}

	return compressed, nil
}

// Decode reads one framed block from r and returns the decoded chunk
// bytes.
func Decode(r *bitio.Reader, windowSize int, opts lzss.Options) ([]byte, error) {
	marker, err := r.ReadBits(markerBits)
	if err != nil {
		return nil, fmt.Errorf("%w: reading block marker: %v", ErrCorrupt, err)
	}

	length, err := r.ReadBits(lengthHeaderBits)
	if err != nil {
		return nil, fmt.Errorf("%w: reading payload bit length: %v", ErrCorrupt, err)
	}

	if int(length) > r.Remaining() {
		return nil, fmt.Errorf("%w: payload bit length %d exceeds %d remaining bits", ErrCorrupt, length, r.Remaining())
	}

	payload, err := extractBits(r, int(length))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	switch marker {
	case markerCompressed:
		decoded, err := chunkcodec.Decode(bitio.NewReader(payload.Bytes(), payload.Len()), windowSize, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}

		return decoded, nil
	case markerRaw:
		return decodeRaw(payload)
	default:
		return nil, fmt.Errorf("%w: unknown block marker %#b", ErrCorrupt, marker)
	}
}

// extractBits consumes exactly n bits from r and returns them as a
// freestanding bit buffer, so a bounded sub-decoder (chunkcodec.Decode)
// never reads past this block's payload into whatever follows it.
func extractBits(r *bitio.Reader, n int) (*bitio.Writer, error) {
	w := bitio.NewWriter(n/8 + 1)

	for i := 0; i < n; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return nil, err
		}

		w.WriteBit(bit)
	}

	return w, nil
}

func decodeRaw(payload *bitio.Writer) ([]byte, error) {
	if payload.Len()%rawBitsPerByte != 0 {
		return nil, fmt.Errorf("%w: raw payload bit length %d is not a multiple of %d", ErrCorrupt, payload.Len(), rawBitsPerByte)
	}

	r := bitio.NewReader(payload.Bytes(), payload.Len())
	n := payload.Len() / rawBitsPerByte
	out := make([]byte, n)

	for i := 0; i < n; i++ {
		v, err := r.ReadBits(rawBitsPerByte)
		if err != nil {
			return nil, err
		}

		if v > 255 {
			return nil, fmt.Errorf("%w: raw byte field %d out of byte range", ErrCorrupt, v)
		}

		out[i] = byte(v)
	}

	return out, nil
}

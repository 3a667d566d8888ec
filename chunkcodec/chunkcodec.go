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

// Package chunkcodec assembles the per-chunk entropy-coded payload (spec
// §4.6, component C6): it factorizes a chunk with lzss, builds the
// literal/length and distance codecs with mandatory alphabet padding
// (spec §4.3's "every symbol the receiver could need appears at least
// once"), and serializes the two inline codebooks followed by the token
// stream. Decode is its exact inverse.
package chunkcodec

import (
	"errors"
	"fmt"

	"github.com/lzssflate/lzssflate/bitio"
	"github.com/lzssflate/lzssflate/codec"
	"github.com/lzssflate/lzssflate/huffman"
	"github.com/lzssflate/lzssflate/lzss"
	"github.com/lzssflate/lzssflate/tables"
	"github.com/lzssflate/lzssflate/token"
)

// literalAlphabetSize is the size of the literal/length alphabet: the 256
// literal byte values, the length codes 257..285, and the reserved
// symbols 256, 286 and 287, which this format never actually emits but
// which the codec must still be able to assign a codeword to (spec §4.3).
const literalAlphabetSize = 288

// ErrCorrupt is wrapped by every error Decode returns for a malformed or
// truncated payload.
var ErrCorrupt = errors.New("chunkcodec: corrupt payload")

// codebookLengthBits is the width of the 16-bit big-endian header that
// precedes each inline codebook, giving its length in bits.
const codebookLengthBits = 16

// Encode factorizes chunk over a window of windowSize bytes and returns
// the compressed payload bitstream: the literal/length codebook and the
// distance codebook, each preceded by its 16-bit bit length, then the
// token stream, which has no length prefix (spec §4.6).
func Encode(chunk []byte, windowSize int, opts lzss.Options) (*bitio.Writer, error) {
	tokens, err := lzss.Factorize(chunk, windowSize, opts)
	if err != nil {
		return nil, err
	}

	dt := tables.BuildDistanceTable(windowSize)

	litFreq := paddedLiteralFrequencies(tokens)
	distFreq := paddedDistanceFrequencies(tokens, dt)

	litCodec := codec.New(huffman.Build(litFreq))
	distCodec := codec.New(huffman.Build(distFreq))

	out := bitio.NewWriter(len(chunk))

	litBook := litCodec.Bitwise()
	out.WriteBits(uint64(litBook.Len()), codebookLengthBits)
	out.WriteBuffer(litBook)

	distBook := distCodec.Bitwise()
	out.WriteBits(uint64(distBook.Len()), codebookLengthBits)
	out.WriteBuffer(distBook)

	for _, tk := range tokens {
		if err := encodeToken(out, tk, litCodec, distCodec, dt); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Decode is the inverse of Encode: it reads the two inline codebooks from
// r, then decodes tokens until r is exhausted and replays them back into
// the original chunk bytes.
func Decode(r *bitio.Reader, windowSize int, opts lzss.Options) ([]byte, error) {
	dt := tables.BuildDistanceTable(windowSize)

	litCodec, err := readCodebook(r, literalAlphabet())
	if err != nil {
		return nil, fmt.Errorf("%w: literal/length codebook: %v", ErrCorrupt, err)
	}

	distCodec, err := readCodebook(r, distanceAlphabet(dt))
	if err != nil {
		return nil, fmt.Errorf("%w: distance codebook: %v", ErrCorrupt, err)
	}

	var tokens []token.Token

	for r.Remaining() > 0 {
		tk, err := decodeToken(r, litCodec, distCodec, dt)
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tk)
	}

	decoded, err := lzss.Replay(tokens, windowSize, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	return decoded, nil
}

func encodeToken(w *bitio.Writer, tk token.Token, litCodec, distCodec *codec.Codec, dt *tables.DistanceTable) error {
	if tk.IsLiteral() {
		w.WriteBit(0)
		return litCodec.EncodeSymbol(w, int(tk.Byte))
	}

	w.WriteBit(1)

	lengthCode, err := tables.LengthCodeFor(tk.Length)
	if err != nil {
		return err
	}

	if err := litCodec.EncodeSymbol(w, lengthCode); err != nil {
		return err
	}

	lo, _, err := tables.LengthRangeFor(lengthCode)
	if err != nil {
		return err
	}

	if extra := tables.LengthExtraBits(lengthCode); extra > 0 {
		w.WriteBits(uint64(tk.Length-lo), extra)
	}

	distCode, err := dt.CodeFor(tk.Distance)
	if err != nil {
		return err
	}

	if err := distCodec.EncodeSymbol(w, distCode); err != nil {
		return err
	}

	dlo, _, err := dt.RangeFor(distCode)
	if err != nil {
		return err
	}

	if extra := dt.ExtraBits(distCode); extra > 0 {
		w.WriteBits(uint64(tk.Distance-dlo), extra)
	}

	return nil
}

func decodeToken(r *bitio.Reader, litCodec, distCodec *codec.Codec, dt *tables.DistanceTable) (token.Token, error) {
	tag, err := r.ReadBit()
	if err != nil {
		return token.Token{}, fmt.Errorf("%w: reading token tag: %v", ErrCorrupt, err)
	}

	if tag == 0 {
		symbol, err := litCodec.DecodeSymbol(r)
		if err != nil {
			return token.Token{}, fmt.Errorf("%w: decoding literal: %v", ErrCorrupt, err)
		}

		if symbol < 0 || symbol > 255 {
			return token.Token{}, fmt.Errorf("%w: literal symbol %d out of byte range", ErrCorrupt, symbol)
		}

		return token.NewLiteral(byte(symbol)), nil
	}

	lengthCode, err := litCodec.DecodeSymbol(r)
	if err != nil {
		return token.Token{}, fmt.Errorf("%w: decoding length code: %v", ErrCorrupt, err)
	}

	lo, _, err := tables.LengthRangeFor(lengthCode)
	if err != nil {
		return token.Token{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	length := lo

	if extra := tables.LengthExtraBits(lengthCode); extra > 0 {
		v, err := r.ReadBits(extra)
		if err != nil {
			return token.Token{}, fmt.Errorf("%w: reading length extra bits: %v", ErrCorrupt, err)
		}

		length += int(v)
	}

	distCode, err := distCodec.DecodeSymbol(r)
	if err != nil {
		return token.Token{}, fmt.Errorf("%w: decoding distance code: %v", ErrCorrupt, err)
	}

	dlo, _, err := dt.RangeFor(distCode)
	if err != nil {
		return token.Token{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	distance := dlo

	if extra := dt.ExtraBits(distCode); extra > 0 {
		v, err := r.ReadBits(extra)
		if err != nil {
			return token.Token{}, fmt.Errorf("%w: reading distance extra bits: %v", ErrCorrupt, err)
		}

		distance += int(v)
	}

	return token.NewMatch(length, distance), nil
}

// readCodebook reads the 16-bit bit-length header Encode writes ahead of
// each inline codebook, then decodes the per-symbol length+codeword
// entries for the given (statically known) alphabet. The header is
// redundant with the alphabet's fixed size — this format never needs to
// skip a codebook without parsing it — so it is validated rather than
// used to seek.
func readCodebook(r *bitio.Reader, alphabet []int) (*codec.Codec, error) {
	length, err := r.ReadBits(codebookLengthBits)
	if err != nil {
		return nil, err
	}

	start := r.Position()

	c, err := codec.FromBitwise(r, alphabet)
	if err != nil {
		return nil, err
	}

	if consumed := r.Position() - start; consumed != int(length) {
		return nil, fmt.Errorf("codebook length header said %d bits, consumed %d", length, consumed)
	}

	return c, nil
}

func literalAlphabet() []int {
	a := make([]int, literalAlphabetSize)
	for i := range a {
		a[i] = i
	}
	return a
}

func distanceAlphabet(dt *tables.DistanceTable) []int {
	a := make([]int, dt.MaxCode()+1)
	for i := range a {
		a[i] = i
	}
	return a
}

// paddedLiteralFrequencies tallies the literal/length alphabet usage in
// tokens and then forces every one of the 288 symbols (including the
// never-emitted 256, 286 and 287) to appear at least once, so the codec
// this builds can always assign every symbol a codeword (spec §4.3).
func paddedLiteralFrequencies(tokens []token.Token) huffman.Frequencies {
	freq := make(huffman.Frequencies, literalAlphabetSize)

	for _, tk := range tokens {
		if tk.IsLiteral() {
			freq.Add(int(tk.Byte))
			continue
		}

		code, err := tables.LengthCodeFor(tk.Length)
		if err == nil {
			freq.Add(code)
		}
	}

	for s := 0; s < literalAlphabetSize; s++ {
		if _, ok := freq[s]; !ok {
			freq[s] = 1
		}
	}

	return freq
}

// paddedDistanceFrequencies is paddedLiteralFrequencies's counterpart for
// the distance alphabet: every base code the window defines is forced to
// appear at least once.
func paddedDistanceFrequencies(tokens []token.Token, dt *tables.DistanceTable) huffman.Frequencies {
	freq := make(huffman.Frequencies, dt.MaxCode()+1)

	for _, tk := range tokens {
		if !tk.IsMatch() {
			continue
		}

		code, err := dt.CodeFor(tk.Distance)
		if err == nil {
			freq.Add(code)
		}
	}

	for s := 0; s <= dt.MaxCode(); s++ {
		if _, ok := freq[s]; !ok {
			freq[s] = 1
		}
	}

	return freq
}

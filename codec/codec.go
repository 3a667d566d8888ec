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

// Package codec implements the bidirectional symbol<->bitstring map and
// its inline self-describing serialization (spec §4.4, component C4).
package codec

import (
	"fmt"
	"sort"

	"github.com/lzssflate/lzssflate/bitio"
)

// Codec is a prefix code over an integer alphabet: a symbol -> codeword
// map together with its inverse. Construct one from a Huffman assignment
// (huffman.Build's output) with New.
type Codec struct {
	codes   map[int]string
	symbols map[string]int
}

// New builds a Codec from a symbol->codeword assignment. The caller is
// responsible for the assignment being a genuine prefix code; New does
// not re-derive one.
func New(codes map[int]string) *Codec {
	symbols := make(map[string]int, len(codes))

	for s, c := range codes {
		symbols[c] = s
	}

	return &Codec{codes: codes, symbols: symbols}
}

// Len returns the number of symbols this codec assigns a codeword to.
func (this *Codec) Len() int {
	return len(this.codes)
}

// CodeFor returns the codeword for symbol, and whether one is assigned.
func (this *Codec) CodeFor(symbol int) (string, bool) {
	c, ok := this.codes[symbol]
	return c, ok
}

// EncodeSymbol appends the codeword for symbol to w.
func (this *Codec) EncodeSymbol(w *bitio.Writer, symbol int) error {
	code, ok := this.codes[symbol]

	if !ok {
		return fmt.Errorf("codec: no codeword assigned to symbol %d", symbol)
	}

	for _, ch := range code {
		if ch == '1' {
			w.WriteBit(1)
		} else {
			w.WriteBit(0)
		}
	}

	return nil
}

// EncodeAll appends the concatenation of the codewords for symbols to a
// fresh Writer and returns it.
func (this *Codec) EncodeAll(symbols []int) (*bitio.Writer, error) {
	w := bitio.NewWriter(len(symbols))

	for _, s := range symbols {
		if err := this.EncodeSymbol(w, s); err != nil {
			return nil, err
		}
	}

	return w, nil
}

// DecodeSymbol consumes the longest prefix of r matching a codeword and
// returns the symbol it denotes.
func (this *Codec) DecodeSymbol(r *bitio.Reader) (int, error) {
	acc := make([]byte, 0, 16)

	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, fmt.Errorf("codec: %w decoding symbol (partial codeword %q)", err, acc)
		}

		if bit == 1 {
			acc = append(acc, '1')
		} else {
			acc = append(acc, '0')
		}

		if symbol, ok := this.symbols[string(acc)]; ok {
			return symbol, nil
		}

		if len(acc) > 8*1024 {
			return 0, fmt.Errorf("codec: no codeword matches prefix %q", acc)
		}
	}
}

// DecodeAll decodes symbols from r until it is exhausted. It fails if the
// final partial codeword does not match any assigned codeword (a
// corrupt/truncated bitstream), satisfying decode(encode(xs)) == xs for
// every xs over the codec's domain.
func (this *Codec) DecodeAll(r *bitio.Reader) ([]int, error) {
	var out []int

	for r.Remaining() > 0 {
		symbol, err := this.DecodeSymbol(r)
		if err != nil {
			return nil, err
		}

		out = append(out, symbol)
	}

	return out, nil
}

// Bitwise serializes the codec: for each symbol it assigns a codeword to,
// in ascending symbol order, an 8-bit big-endian code length followed by
// the codeword itself (spec §4.4/§6).
func (this *Codec) Bitwise() *bitio.Writer {
	symbols := make([]int, 0, len(this.codes))

	for s := range this.codes {
		symbols = append(symbols, s)
	}

	sort.Ints(symbols)

	w := bitio.NewWriter(len(symbols) * 2)

	for _, s := range symbols {
		code := this.codes[s]
		w.WriteBits(uint64(len(code)), 8)

		for _, ch := range code {
			if ch == '1' {
				w.WriteBit(1)
			} else {
				w.WriteBit(0)
			}
		}
	}

	return w
}

// FromBitwise is the inverse of Bitwise: given the serialized bits and
// the (ordered) alphabet enumeration the caller expects, it reconstructs
// symbol->codeword assignments and returns a ready-to-use Codec.
func FromBitwise(r *bitio.Reader, alphabet []int) (*Codec, error) {
	codes := make(map[int]string, len(alphabet))

	for _, symbol := range alphabet {
		length, err := r.ReadBits(8)
		if err != nil {
			return nil, fmt.Errorf("codec: reading code length: %w", err)
		}

		buf := make([]byte, 0, length)

		for i := uint64(0); i < length; i++ {
			bit, err := r.ReadBit()
			if err != nil {
				return nil, fmt.Errorf("codec: reading codeword bits: %w", err)
			}

			if bit == 1 {
				buf = append(buf, '1')
			} else {
				buf = append(buf, '0')
			}
		}

		codes[symbol] = string(buf)
	}

	return New(codes), nil
}

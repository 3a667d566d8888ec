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

package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lzssflate/lzssflate/bitio"
	"github.com/lzssflate/lzssflate/huffman"
)

func TestEncodeDecodeAllRoundTrip(t *testing.T) {
	freq := huffman.Frequencies{65: 5, 66: 3, 67: 1, 68: 1}
	c := New(huffman.Build(freq))

	symbols := []int{65, 65, 66, 65, 67, 68, 66, 65}
	w, err := c.EncodeAll(symbols)
	require.NoError(t, err)

	r := bitio.NewReader(w.Bytes(), w.Len())
	decoded, err := c.DecodeAll(r)
	require.NoError(t, err)
	require.Equal(t, symbols, decoded)
}

func TestBitwiseFromBitwiseRoundTrip(t *testing.T) {
	freq := huffman.Frequencies{0: 10, 1: 5, 2: 5, 3: 1}
	c := New(huffman.Build(freq))

	serialized := c.Bitwise()
	r := bitio.NewReader(serialized.Bytes(), serialized.Len())

	restored, err := FromBitwise(r, []int{0, 1, 2, 3})
	require.NoError(t, err)

	for _, s := range []int{0, 1, 2, 3} {
		want, _ := c.CodeFor(s)
		got, ok := restored.CodeFor(s)
		require.True(t, ok)
		require.Equal(t, want, got)
	}
}

func TestDecodeAllRejectsUnmatchedResidual(t *testing.T) {
	// Four equal-weight symbols always yield four 2-bit codewords (two
	// pairwise merges, then one final merge), so a single dangling bit
	// can never itself be a valid codeword.
	freq := huffman.Frequencies{0: 1, 1: 1, 2: 1, 3: 1}
	c := New(huffman.Build(freq))

	for _, code := range c.codes {
		require.Len(t, code, 2)
	}

	w := bitio.NewWriter(1)
	w.WriteBit(1)

	r := bitio.NewReader(w.Bytes(), w.Len())
	_, err := c.DecodeAll(r)
	require.Error(t, err)
}

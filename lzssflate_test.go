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

package lzssflate

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func assertRoundTrip(t *testing.T, data []byte, windowSize int) []byte {
	t.Helper()

	encoded, err := Encode(data, windowSize)
	require.NoError(t, err)

	decoded, err := Decode(encoded, windowSize)
	require.NoError(t, err)
	require.Equal(t, data, decoded)

	return encoded
}

func TestEmptyChunkRoundTrips(t *testing.T) {
	assertRoundTrip(t, []byte{}, 6)
}

func TestSingleLiteralRoundTrips(t *testing.T) {
	assertRoundTrip(t, []byte("A"), 6)
}

func TestBanBanBanWithMatchesRoundTrips(t *testing.T) {
	assertRoundTrip(t, []byte("BanBanBan"), 6)
}

func TestBanBanBanAllLiteralsRoundTrips(t *testing.T) {
	assertRoundTrip(t, []byte("BanBanBan"), 3)
}

func TestLongRunClampedToMaxMatchRoundTrips(t *testing.T) {
	data := bytes.Repeat([]byte("A"), 300)
	assertRoundTrip(t, data, 32768)
}

func TestDeterministicAcrossRuns(t *testing.T) {
	data := []byte("BanBanananananananananananananananvdsvsDvsFVzx")

	first := assertRoundTrip(t, data, 6)
	second, err := Encode(data, 6)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestRandomUniformBytesRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	data := make([]byte, 1024)
	rnd.Read(data)

	assertRoundTrip(t, data, 32768)
}

func TestSelfOverlapFamilyRoundTrips(t *testing.T) {
	for n := 1; n <= 30; n++ {
		data := append([]byte("X"), bytes.Repeat([]byte("ab"), n)...)
		assertRoundTrip(t, data, 32768)
	}
}

func TestChunkIndependence(t *testing.T) {
	b1 := []byte("the quick brown fox")
	b2 := []byte("jumps over the lazy dog")

	e1, err := Encode(b1, 32768)
	require.NoError(t, err)
	e2, err := Encode(b2, 32768)
	require.NoError(t, err)

	d1, err := Decode(e1, 32768)
	require.NoError(t, err)
	d2, err := Decode(e2, 32768)
	require.NoError(t, err)

	require.Equal(t, append(append([]byte{}, b1...), b2...), append(d1, d2...))
}

func TestEncodeRejectsNonPositiveWindow(t *testing.T) {
	_, err := Encode([]byte("x"), 0)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = Encode([]byte("x"), -1)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDecodeRejectsNonPositiveWindow(t *testing.T) {
	_, err := Decode([]byte{0}, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDecodeRejectsTruncatedBitstream(t *testing.T) {
	encoded, err := Encode([]byte("BanBanBan"), 6)
	require.NoError(t, err)

	_, err = Decode(encoded[:len(encoded)-1], 6)
	require.ErrorIs(t, err, ErrCorruptBitstream)
}

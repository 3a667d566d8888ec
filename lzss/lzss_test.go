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

package lzss

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lzssflate/lzssflate/token"
)

func roundTrip(t *testing.T, data []byte, windowSize int) []token.Token {
	t.Helper()

	opts := DefaultOptions()
	tokens, err := Factorize(data, windowSize, opts)
	require.NoError(t, err)

	decoded, err := Replay(tokens, windowSize, opts)
	require.NoError(t, err)
	require.Equal(t, data, decoded)

	return tokens
}

func TestEmptyInput(t *testing.T) {
	tokens := roundTrip(t, []byte{}, 32768)
	require.Empty(t, tokens)
}

func TestSingleByte(t *testing.T) {
	tokens := roundTrip(t, []byte("A"), 32768)
	require.Len(t, tokens, 1)
	require.True(t, tokens[0].IsLiteral())
}

func TestFirstTokenNeverMatchesOnEmptyWindow(t *testing.T) {
	tokens, err := Factorize([]byte("aaaa"), 6, DefaultOptions())
	require.NoError(t, err)
	require.True(t, tokens[0].IsLiteral())
}

func TestBanBanBanProducesAMatchWithWindowSix(t *testing.T) {
	data := []byte("BanBanBan")
	tokens := roundTrip(t, data, 6)

	var sawMatch bool
	for _, tk := range tokens {
		if tk.IsMatch() {
			sawMatch = true
			require.GreaterOrEqual(t, tk.Length, 3)
			require.LessOrEqual(t, tk.Distance, 6)
		}
	}

	require.True(t, sawMatch)
}

func TestBanBanBanIsAllLiteralsWithWindowThree(t *testing.T) {
	data := []byte("BanBanBan")
	tokens := roundTrip(t, data, 3)

	for _, tk := range tokens {
		require.True(t, tk.IsLiteral())
	}
}

func TestLongRunClampsToMaxMatchLength(t *testing.T) {
	data := bytesRepeat('A', 300)
	tokens := roundTrip(t, data, 32768)

	var sawMax bool
	for _, tk := range tokens {
		require.LessOrEqual(t, tk.Length, 258)
		if tk.IsMatch() && tk.Length == 258 {
			sawMax = true
		}
	}

	require.True(t, sawMax)
}

func TestDeterministicAcrossRuns(t *testing.T) {
	data := []byte("BanBanananananananananananananananvdsvsDvsFVzx")

	first, err := Factorize(data, 6, DefaultOptions())
	require.NoError(t, err)
	second, err := Factorize(data, 6, DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, first, second)

	decoded, err := Replay(first, 6, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, data, decoded)
}

func TestSelfOverlapRunLengthBehavior(t *testing.T) {
	for n := 1; n <= 40; n++ {
		data := []byte("X" + strings.Repeat("ab", n))
		tokens, err := Factorize(data, 32768, DefaultOptions())
		require.NoError(t, err)

		decoded, err := Replay(tokens, 32768, DefaultOptions())
		require.NoError(t, err)
		require.Equal(t, data, decoded)
	}
}

func TestReplayRejectsDistanceExceedingBytesDecoded(t *testing.T) {
	tokens := []token.Token{token.NewMatch(3, 5)}
	_, err := Replay(tokens, 32768, DefaultOptions())
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestReplayRejectsDistanceOutsideWindow(t *testing.T) {
	tokens := []token.Token{token.NewLiteral('a'), token.NewMatch(3, 10)}
	_, err := Replay(tokens, 6, DefaultOptions())
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestReplayRejectsLengthOutsideBounds(t *testing.T) {
	tokens := []token.Token{token.NewLiteral('a'), token.NewMatch(1, 1)}
	_, err := Replay(tokens, 32768, DefaultOptions())
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestValidateRejectsBadOptions(t *testing.T) {
	require.Error(t, Options{MinMatch: 0, MaxMatch: 10}.Validate())
	require.Error(t, Options{MinMatch: 5, MaxMatch: 5}.Validate())
	require.NoError(t, Options{MinMatch: 3, MaxMatch: 258}.Validate())
}

func bytesRepeat(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

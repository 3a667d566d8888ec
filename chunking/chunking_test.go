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

package chunking

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllSplitsEvenly(t *testing.T) {
	chunks, err := All(strings.NewReader("abcdefghij"), 5)
	require.NoError(t, err)
	require.Equal(t, [][]byte{[]byte("abcde"), []byte("fghij")}, chunks)
}

func TestAllLastChunkShorter(t *testing.T) {
	chunks, err := All(strings.NewReader("abcdefg"), 5)
	require.NoError(t, err)
	require.Equal(t, [][]byte{[]byte("abcde"), []byte("fg")}, chunks)
}

func TestAllEmptyInputYieldsNoChunks(t *testing.T) {
	chunks, err := All(strings.NewReader(""), 5)
	require.NoError(t, err)
	require.Empty(t, chunks)
}

func TestNewReaderRejectsNonPositiveChunkSize(t *testing.T) {
	_, err := NewReader(bytes.NewReader(nil), 0)
	require.ErrorIs(t, err, ErrInvalidChunkSize)
}

func TestReaderReconstitutesOriginal(t *testing.T) {
	data := []byte(strings.Repeat("the quick brown fox ", 100))

	r, err := NewReader(bytes.NewReader(data), 37)
	require.NoError(t, err)

	var got []byte
	for {
		chunk, err := r.Next()
		if err != nil {
			break
		}
		got = append(got, chunk...)
	}

	require.Equal(t, data, got)
}

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

// Package tables holds the fixed length/distance "base code + extra bits"
// tables (spec §4.5, component C5). The length table is static (it does
// not depend on the window size); the distance table is a pure function
// of the configured window size W and is rebuilt by each chunkcodec
// Encode and Decode call.
package tables

import "fmt"

// LengthRange describes one literal/length-alphabet length code: the
// inclusive range of raw match lengths it represents and the number of
// extra bits needed to select the exact length within that range.
type LengthRange struct {
	Code      int
	Lo, Hi    int
	ExtraBits int
}

// lengthRanges is the exact table from spec §4.5. Built by hand rather
// than generated from the extra-bits formula because the last entry (code
// 284) deliberately covers one fewer length than its neighbors to make
// room for code 285's single-length range at MAX_MATCH.
var lengthRanges = []LengthRange{
	{257, 3, 3, 0}, {258, 4, 4, 0}, {259, 5, 5, 0}, {260, 6, 6, 0},
	{261, 7, 7, 0}, {262, 8, 8, 0}, {263, 9, 9, 0}, {264, 10, 10, 0},
	{265, 11, 12, 1}, {266, 13, 14, 1}, {267, 15, 16, 1}, {268, 17, 18, 1},
	{269, 19, 22, 2}, {270, 23, 26, 2}, {271, 27, 30, 2}, {272, 31, 34, 2},
	{273, 35, 42, 3}, {274, 43, 50, 3}, {275, 51, 58, 3}, {276, 59, 66, 3},
	{277, 67, 82, 4}, {278, 83, 98, 4}, {279, 99, 114, 4}, {280, 115, 130, 4},
	{281, 131, 162, 5}, {282, 163, 194, 5}, {283, 195, 226, 5}, {284, 227, 257, 5},
	{285, 258, 258, 0},
}

// FirstLengthCode and LastLengthCode are the inclusive bounds of the
// length-code sub-alphabet within the 288-symbol literal/length alphabet.
const (
	FirstLengthCode = 257
	LastLengthCode  = 285
)

// LengthExtraBits returns the number of extra bits for length base code c,
// per the formula in spec §4.5: 0 for 257..264 and for 285, otherwise
// (c-265)/4 + 1.
func LengthExtraBits(c int) int {
	if c >= 257 && c <= 264 {
		return 0
	}

	if c == 285 {
		return 0
	}

	return (c-265)/4 + 1
}

// LengthRangeFor returns the (lo, hi) range for a length base code.
func LengthRangeFor(code int) (lo, hi int, err error) {
	idx := code - FirstLengthCode

	if idx < 0 || idx >= len(lengthRanges) {
		return 0, 0, fmt.Errorf("tables: length code %d out of range", code)
	}

	r := lengthRanges[idx]
	return r.Lo, r.Hi, nil
}

// LengthCodeFor returns the base code covering the given raw match
// length, which must be in [MIN_MATCH, MAX_MATCH].
func LengthCodeFor(length int) (int, error) {
	for _, r := range lengthRanges {
		if length >= r.Lo && length <= r.Hi {
			return r.Code, nil
		}
	}

	return 0, fmt.Errorf("tables: length %d has no base code", length)
}

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

// Package window implements the bounded sliding history the LZSS factorizer
// searches for back-reference matches in (component C1 of the chunk
// encoder pipeline).
package window

import "bytes"

// SlidingWindow is a fixed-capacity ring of the most recently appended
// bytes. Appending past capacity evicts the oldest retained byte. It makes
// no claim about the bytes it holds beyond that they are the last
// min(capacity, bytes appended) bytes seen, in append order.
type SlidingWindow struct {
	capacity int
	ring     []byte
	origin   int // logical index, mod capacity, of the oldest retained byte
	size     int // number of valid bytes currently retained, <= capacity
}

// New creates a SlidingWindow with the given capacity. A non-positive
// capacity is clamped to zero width: every Append is immediately evicted
// and Find never matches.
func New(capacity int) *SlidingWindow {
	if capacity < 0 {
		capacity = 0
	}

	return &SlidingWindow{capacity: capacity, ring: make([]byte, capacity)}
}

// Len returns the current logical length, at most the configured capacity.
func (this *SlidingWindow) Len() int {
	return this.size
}

// Capacity returns the configured window size W.
func (this *SlidingWindow) Capacity() int {
	return this.capacity
}

// Append adds b to the window, evicting the oldest byte if the window is
// already full.
func (this *SlidingWindow) Append(b byte) {
	if this.capacity == 0 {
		return
	}

	writeAt := (this.origin + this.size) % this.capacity

	if this.size < this.capacity {
		this.ring[writeAt] = b
		this.size++
		return
	}

	// Full: overwrite the oldest slot and advance the logical origin.
	this.ring[this.origin] = b
	this.origin = (this.origin + 1) % this.capacity
}

// View returns a contiguous snapshot of the logical content, oldest byte
// first. The design notes (spec §9) call this out explicitly as an
// acceptable basis for substring search.
func (this *SlidingWindow) View() []byte {
	out := make([]byte, this.size)

	for i := 0; i < this.size; i++ {
		out[i] = this.ring[(this.origin+i)%this.capacity]
	}

	return out
}

// Find returns the leftmost index in the logical content at which pattern
// occurs, or -1 if it does not occur. Leftmost is required by spec §4.1:
// it yields the largest possible distance at a given match length, which
// concentrates mass in the high end of the distance histogram and improves
// the resulting Huffman code.
func (this *SlidingWindow) Find(pattern []byte) int {
	if len(pattern) == 0 || this.size == 0 {
		return -1
	}

	return bytes.Index(this.View(), pattern)
}

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

// Package huffman builds a static, per-chunk prefix code from a symbol
// frequency table (spec §4.3, component C3). Unlike kanzi-go's own
// entropy package, which builds length-limited canonical codes tuned for
// streaming bitstreams, this builder produces a classical min-heap
// Huffman tree with a deterministic, fully specified tie-break: ties are
// broken by comparing the sorted tuple of symbols each heap node covers,
// not by insertion order. Two builders fed identical frequency tables
// must produce byte-identical codebooks.
package huffman

import (
	"container/heap"
	"sort"

	"golang.org/x/exp/slices"
)

// Frequencies is a multiset over a codebook alphabet: symbol -> count.
type Frequencies map[int]int

// Add increments the count for symbol by one.
func (this Frequencies) Add(symbol int) {
	this[symbol]++
}

// node is one min-heap element: a merged group of symbols and its total
// weight. symbols is kept sorted ascending so that comparing two nodes of
// equal weight is a well-defined, deterministic lexicographic comparison.
type node struct {
	weight  int
	symbols []int
}

type nodeHeap []*node

func (this nodeHeap) Len() int { return len(this) }

func (this nodeHeap) Less(i, j int) bool {
	if this[i].weight != this[j].weight {
		return this[i].weight < this[j].weight
	}

	return slices.Compare(this[i].symbols, this[j].symbols) < 0
}

func (this nodeHeap) Swap(i, j int) { this[i], this[j] = this[j], this[i] }

func (this *nodeHeap) Push(x any) { *this = append(*this, x.(*node)) }

func (this *nodeHeap) Pop() any {
	old := *this
	n := len(old)
	item := old[n-1]
	*this = old[:n-1]
	return item
}

// Build runs the classical min-heap Huffman construction over freq and
// returns a total map from every symbol with nonzero frequency to its
// codeword, expressed as a string of '0'/'1' characters. A
// single-symbol alphabet is a degenerate special case assigned the
// one-bit codeword "0".
//
// The codeword is represented as a string rather than a fixed-width
// integer because no bound is placed on maximum code length: a
// sufficiently skewed frequency table (a Fibonacci-like distribution)
// can produce codes longer than fit in a machine word, and this builder
// must not silently truncate them.
func Build(freq Frequencies) map[int]string {
	codes := make(map[int]string, len(freq))

	if len(freq) == 0 {
		return codes
	}

	if len(freq) == 1 {
		for symbol := range freq {
			codes[symbol] = "0"
		}

		return codes
	}

	h := make(nodeHeap, 0, len(freq))
	symbols := make([]int, 0, len(freq))

	for s := range freq {
		symbols = append(symbols, s)
	}

	sort.Ints(symbols)

	for _, s := range symbols {
		codes[s] = ""
		h = append(h, &node{weight: freq[s], symbols: []int{s}})
	}

	heap.Init(&h)

	for h.Len() > 1 {
		first := heap.Pop(&h).(*node)
		second := heap.Pop(&h).(*node)

		for _, s := range first.symbols {
			codes[s] = "0" + codes[s]
		}

		for _, s := range second.symbols {
			codes[s] = "1" + codes[s]
		}

		merged := make([]int, 0, len(first.symbols)+len(second.symbols))
		merged = append(merged, first.symbols...)
		merged = append(merged, second.symbols...)
		sort.Ints(merged)

		heap.Push(&h, &node{weight: first.weight + second.weight, symbols: merged})
	}

	return codes
}

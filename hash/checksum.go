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

package hash

// checksumSeed is the fixed XXHash64 seed the lzssflate container format
// uses for its per-chunk integrity checksum. It is not a secret; fixing
// it just makes ChunkChecksum a pure function of the chunk bytes.
const checksumSeed = 0

// ChunkChecksum returns the integrity checksum the container format
// stores alongside each chunk record, computed over the chunk's
// original (pre-compression, pre-decapitalization) bytes so a
// decompressor can detect silent corruption in the compressed payload,
// the deviations list, or the container file itself.
func ChunkChecksum(data []byte) uint64 {
	h, _ := NewXXHash64(checksumSeed)
	return h.Hash(data)
}

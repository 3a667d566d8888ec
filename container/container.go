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

// Package container is the CLI-level file format that concatenates
// independently framed blocks (spec §5: "external collaborators may
// dispatch chunks across worker threads/processes and concatenate the
// resulting bit-strings") into one seekable file, with a small header
// recording the parameters a decoder needs to reproduce the chunking.
// This framing is entirely outside the core codec; it plays the role the
// reference CLI's file header and chunk bookkeeping play.
package container

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// magic identifies an lzssflate container file: the ASCII bytes "LZFT".
const magic = 0x4C5A4654

// formatVersion is bumped whenever the header or record layout changes
// incompatibly.
const formatVersion = 1

// ErrBadMagic is returned when a file does not start with the
// lzssflate magic number.
var ErrBadMagic = errors.New("container: not an lzssflate file")

// ErrUnsupportedVersion is returned when a file's format version is
// anything other than formatVersion, the only version this build reads.
var ErrUnsupportedVersion = errors.New("container: unsupported format version")

// Header precedes the chunk records in an lzssflate file.
type Header struct {
	WindowSize    uint32
	ChunkSize     uint32
	Decapitalized bool
	ChunkCount    uint32
}

// WriteHeader writes h's on-disk representation to w.
func WriteHeader(w io.Writer, h Header) error {
	buf := make([]byte, 4+1+4+4+1+4)
	binary.BigEndian.PutUint32(buf[0:4], magic)
	buf[4] = formatVersion
	binary.BigEndian.PutUint32(buf[5:9], h.WindowSize)
	binary.BigEndian.PutUint32(buf[9:13], h.ChunkSize)
	if h.Decapitalized {
		buf[13] = 1
	}
	binary.BigEndian.PutUint32(buf[14:18], h.ChunkCount)

	_, err := w.Write(buf)
	return err
}

// ReadHeader reads and validates the header r starts with.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, 4+1+4+4+1+4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Header{}, fmt.Errorf("container: reading header: %w", err)
	}

	if binary.BigEndian.Uint32(buf[0:4]) != magic {
		return Header{}, ErrBadMagic
	}

	if buf[4] != formatVersion {
		return Header{}, fmt.Errorf("%w: got version %d", ErrUnsupportedVersion, buf[4])
	}

	return Header{
		WindowSize:    binary.BigEndian.Uint32(buf[5:9]),
		ChunkSize:     binary.BigEndian.Uint32(buf[9:13]),
		Decapitalized: buf[13] != 0,
		ChunkCount:    binary.BigEndian.Uint32(buf[14:18]),
	}, nil
}

// Record is one compressed chunk's on-disk payload: the framed block
// bytes, the decapitalization deviations (empty when the container's
// header says Decapitalized is false), and an XXHash64 checksum of the
// original chunk bytes for corruption detection.
type Record struct {
	Block      []byte
	Deviations []byte
	Checksum   uint64
}

// WriteRecord appends one length-prefixed record to w.
func WriteRecord(w io.Writer, rec Record) error {
	if err := writeLengthPrefixed(w, rec.Block); err != nil {
		return err
	}

	if err := writeLengthPrefixed(w, rec.Deviations); err != nil {
		return err
	}

	var checksumBuf [8]byte
	binary.BigEndian.PutUint64(checksumBuf[:], rec.Checksum)
	_, err := w.Write(checksumBuf[:])
	return err
}

// ReadRecord reads one record previously written by WriteRecord.
func ReadRecord(r io.Reader) (Record, error) {
	block, err := readLengthPrefixed(r)
	if err != nil {
		return Record{}, err
	}

	deviations, err := readLengthPrefixed(r)
	if err != nil {
		return Record{}, err
	}

	var checksumBuf [8]byte
	if _, err := io.ReadFull(r, checksumBuf[:]); err != nil {
		return Record{}, err
	}

	return Record{Block: block, Deviations: deviations, Checksum: binary.BigEndian.Uint64(checksumBuf[:])}, nil
}

func writeLengthPrefixed(w io.Writer, b []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))

	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}

	_, err := w.Write(b)
	return err
}

func readLengthPrefixed(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}

	n := binary.BigEndian.Uint32(lenBuf[:])
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}

	return buf, nil
}

// NewBufferedWriter wraps w for the sequence of small writes a container
// encode produces.
func NewBufferedWriter(w io.Writer) *bufio.Writer {
	return bufio.NewWriter(w)
}

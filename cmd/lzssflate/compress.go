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

package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lzssflate/lzssflate"
	"github.com/lzssflate/lzssflate/chunking"
	"github.com/lzssflate/lzssflate/container"
	"github.com/lzssflate/lzssflate/decap"
	"github.com/lzssflate/lzssflate/hash"
)

func newCompressCommand() *cobra.Command {
	var (
		output       string
		windowSize   int
		chunkSize    int
		decapitalize bool
		workers      int
	)

	cmd := &cobra.Command{
		Use:   "compress <input-file>",
		Short: "Compress a file into an lzssflate container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers <= 0 {
				workers = runtime.GOMAXPROCS(0)
			}

			return runCompress(args[0], output, windowSize, chunkSize, decapitalize, workers)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output container path (default: <input>.lzf)")
	cmd.Flags().IntVar(&windowSize, "window-size", lzssflate.DefaultWindowSize, "sliding window size in bytes")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 65536, "chunk size in bytes")
	cmd.Flags().BoolVar(&decapitalize, "decapitalize", false, "apply the decapitalization preprocessor (UTF-8 text input only)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel chunk workers (default: number of CPUs)")

	return cmd
}

func runCompress(input, output string, windowSize, chunkSize int, decapitalize bool, workers int) error {
	if output == "" {
		output = input + ".lzf"
	}

	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	start := time.Now()

	chunks, err := chunking.All(in, chunkSize)
	if err != nil {
		return fmt.Errorf("chunking input: %w", err)
	}

	log.WithFields(log.Fields{"chunks": len(chunks), "chunk_size": chunkSize, "window_size": windowSize}).
		Debug("lzssflate: chunked input file")

	decapitalizer := decap.New(decap.DefaultRules())

	records := make([]container.Record, len(chunks))

	g := new(errgroup.Group)
	g.SetLimit(workers)

	for i, chunk := range chunks {
		i, chunk := i, chunk

		g.Go(func() error {
			payload := chunk
			var deviationBytes []byte

			if decapitalize {
				decapitalized, deviations := decapitalizer.Decapitalize(string(chunk))
				payload = []byte(decapitalized)
				deviationBytes = decap.EncodeDeviations(deviations)
			}

			encoded, err := lzssflate.Encode(payload, windowSize)
			if err != nil {
				return fmt.Errorf("encoding chunk %d: %w", i, err)
			}

			records[i] = container.Record{
				Block:      encoded,
				Deviations: deviationBytes,
				Checksum:   hash.ChunkChecksum(chunk),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	bw := container.NewBufferedWriter(out)

	header := container.Header{
		WindowSize:    uint32(windowSize),
		ChunkSize:     uint32(chunkSize),
		Decapitalized: decapitalize,
		ChunkCount:    uint32(len(records)),
	}

	if err := container.WriteHeader(bw, header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range records {
		if err := container.WriteRecord(bw, rec); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}

	log.WithFields(log.Fields{"output": output, "elapsed": time.Since(start)}).
		Info("lzssflate: compression complete")

	return nil
}

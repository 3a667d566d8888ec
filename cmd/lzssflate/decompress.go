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
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lzssflate/lzssflate"
	"github.com/lzssflate/lzssflate/container"
	"github.com/lzssflate/lzssflate/decap"
	"github.com/lzssflate/lzssflate/hash"
)

func newDecompressCommand() *cobra.Command {
	var (
		output  string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "decompress <container-file>",
		Short: "Decompress an lzssflate container back into its original bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers <= 0 {
				workers = runtime.GOMAXPROCS(0)
			}

			return runDecompress(args[0], output, workers)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: <input> with .lzf stripped)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel chunk workers (default: number of CPUs)")

	return cmd
}

func runDecompress(input, output string, workers int) error {
	if output == "" {
		output = strings.TrimSuffix(input, ".lzf")
		if output == input {
			output = input + ".out"
		}
	}

	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	start := time.Now()

	header, err := container.ReadHeader(in)
	if err != nil {
		return fmt.Errorf("reading container header: %w", err)
	}

	log.WithFields(log.Fields{"chunks": header.ChunkCount, "window_size": header.WindowSize}).
		Debug("lzssflate: read container header")

	records := make([]container.Record, header.ChunkCount)
	for i := range records {
		rec, err := container.ReadRecord(in)
		if err != nil {
			return fmt.Errorf("reading record %d: %w", i, err)
		}

		records[i] = rec
	}

	decapitalizer := decap.New(decap.DefaultRules())
	chunks := make([][]byte, len(records))

	g := new(errgroup.Group)
	g.SetLimit(workers)

	for i, rec := range records {
		i, rec := i, rec

		g.Go(func() error {
			decoded, err := lzssflate.Decode(rec.Block, int(header.WindowSize))
			if err != nil {
				return fmt.Errorf("decoding chunk %d: %w", i, err)
			}

			if header.Decapitalized {
				deviations, err := decap.DecodeDeviations(rec.Deviations)
				if err != nil {
					return fmt.Errorf("decoding deviations for chunk %d: %w", i, err)
				}

				decoded = []byte(decapitalizer.Recapitalize(string(decoded), deviations))
			}

			if got := hash.ChunkChecksum(decoded); got != rec.Checksum {
				return fmt.Errorf("chunk %d failed checksum: container has %x, decoded data hashes to %x", i, rec.Checksum, got)
			}

			chunks[i] = decoded
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

	for i, chunk := range chunks {
		if _, err := out.Write(chunk); err != nil {
			return fmt.Errorf("writing chunk %d: %w", i, err)
		}
	}

	log.WithFields(log.Fields{"output": output, "elapsed": time.Since(start)}).
		Info("lzssflate: decompression complete")

	return nil
}

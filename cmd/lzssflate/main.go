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

// Command lzssflate is the CLI driver for the compressor: it chunks a
// file, dispatches each chunk to the core codec across a worker pool,
// and assembles the results into a container file (spec §1's "out of
// scope (external collaborators)" list: chunking, parallel dispatch,
// decapitalization, logging and CLI all live here, never in the core).
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.WithError(err).Error("lzssflate: command failed")
		os.Exit(1)
	}
}

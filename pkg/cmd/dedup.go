// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/dedup"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/util"
)

var dedupCmd = &cobra.Command{
	Use:   "dedup [flags] circuit_file",
	Short: "deduplicate the gates of a compiled circuit.",
	Long: `Collapse structurally identical gates of an existing circuit onto single
	 occurrences and drop gates unreachable from the declared outputs.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		stats := util.NewPerfStats()
		before := ReadCircuitFile(args[0])
		after := dedup.Run(before)
		stats.Log("deduplication")
		//
		log.Infof("deduplicated %d gates down to %d", before.NbGates(), after.NbGates())
		//
		WriteCircuitFile(after, GetString(cmd, "output"))
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(dedupCmd)
	dedupCmd.Flags().StringP("output", "o", "a.circ", "specify output file.")
}

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
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/compiler"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/dedup"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/memory"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] program_file",
	Short: "compile an instruction sequence into a circuit.",
	Long: `Compile a straight-line RV32IM program (one instruction word per line, in hex)
	 into a combinational AND/XOR circuit over the machine state.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var cfg compiler.Config
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		mem, err := memory.ParseKind(GetString(cmd, "memory"))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		adder, err := compiler.ParseAdder(GetString(cmd, "adder"))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		cfg.Memory = mem
		cfg.MerkleDepth = GetUint(cmd, "depth")
		cfg.Adder = adder
		cfg.Fusion = GetFlag(cmd, "fusion")
		cfg.Parallel = GetFlag(cmd, "parallel")
		cfg.Workers = GetUint(cmd, "workers")
		//
		mode := GetString(cmd, "dedup")
		cfg.OnlineDedup = mode == "online"
		//
		if mode != "off" && mode != "online" && mode != "post" {
			fmt.Printf("unknown dedup mode %q\n", mode)
			os.Exit(2)
		}
		// Parse and decode the program
		insns, err := compiler.DecodeProgram(ReadProgramFile(args[0]))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Compile
		state, err := compiler.New(cfg)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		if err := state.CompileProgram(insns); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		circ, err := state.Finalize()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		if mode == "post" {
			circ = dedup.Run(circ)
		}
		//
		WriteCircuitFile(circ, GetString(cmd, "output"))
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("output", "o", "a.circ", "specify output file.")
	compileCmd.Flags().StringP("memory", "m", "none", "attach memory tier (none|ultra|simple|merkle).")
	compileCmd.Flags().Uint("depth", 0, "Merkle tree depth (merkle tier only).")
	compileCmd.Flags().String("adder", "sparse", "addition generator (sparse|kogge|ripple).")
	compileCmd.Flags().String("dedup", "off", "gate deduplication (off|online|post).")
	compileCmd.Flags().Bool("fusion", false, "fuse adjacent constant-formation idioms.")
	compileCmd.Flags().BoolP("parallel", "p", false, "compile independent instructions concurrently.")
	compileCmd.Flags().Uint("workers", 0, "bound parallel compilation workers (0 = one per CPU).")
}

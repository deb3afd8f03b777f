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
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/compiler"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/riscv"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] program_file",
	Short: "execute an instruction sequence on the reference interpreter.",
	Long: `Execute a straight-line RV32IM program directly on the reference interpreter,
	 reporting the final machine state.  Useful for checking what a compiled
	 circuit ought to produce.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		insns, err := compiler.DecodeProgram(ReadProgramFile(args[0]))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		var (
			trace = GetFlag(cmd, "trace")
			st    = riscv.NewState(nil)
		)
		//
		for i, insn := range insns {
			if trace {
				fmt.Printf("%4d: %s\n", i, insn)
			}
			//
			st.Step(insn)
		}
		// Report final state
		fmt.Printf("pc = 0x%08x\n", st.PC)
		//
		for i, reg := range st.Regs {
			if i%4 == 0 && i > 0 {
				fmt.Println()
			}
			//
			fmt.Printf("x%-2d = 0x%08x  ", i, reg)
		}
		//
		fmt.Println()
		//
		for _, addr := range slices.Sorted(maps.Keys(st.Mem)) {
			fmt.Printf("mem[0x%08x] = 0x%08x\n", addr*4, st.Mem[addr])
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("trace", false, "print each instruction as it executes.")
}

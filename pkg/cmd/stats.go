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
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] circuit_file",
	Short: "report size and depth statistics of a circuit.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		circ := ReadCircuitFile(args[0])
		fmt.Println(circ.Stats())
		//
		if GetFlag(cmd, "layers") {
			printLayers(circ.Layers().Sizes())
		}
	},
}

// printLayers renders one histogram bar per layer, scaled to the terminal
// width (falling back to 80 columns when not attached to one).
func printLayers(sizes []uint) {
	width := 80
	//
	if term.IsTerminal(0) {
		if w, _, err := term.GetSize(0); err == nil {
			width = w
		}
	}
	// Room for the "layer NNN [NNNNNN] " prefix.
	room := max(width-24, 10)
	largest := uint(1)
	//
	for _, size := range sizes {
		largest = max(largest, size)
	}
	//
	for i, size := range sizes {
		bar := int(size * uint(room) / largest)
		fmt.Printf("layer %3d [%6d] %s\n", i+1, size, strings.Repeat("#", bar))
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Bool("layers", false, "include the per-layer gate histogram.")
}

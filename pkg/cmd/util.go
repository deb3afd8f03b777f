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
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit"
)

// GetFlag gets an expected boolean flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer flag, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// ReadProgramFile parses a program file holding one 32-bit instruction word
// per line in hexadecimal (an optional "0x" prefix is accepted).  Blank
// lines and lines starting with '#' are skipped.
func ReadProgramFile(filename string) []uint32 {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	var words []uint32
	//
	for num, line := range strings.Split(string(bytes), "\n") {
		text := strings.TrimSpace(line)
		//
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		//
		word, err := strconv.ParseUint(strings.TrimPrefix(text, "0x"), 16, 32)
		if err != nil {
			fmt.Printf("%s:%d: malformed instruction word %q\n", filename, num+1, text)
			os.Exit(2)
		}
		//
		words = append(words, uint32(word))
	}
	//
	return words
}

// ReadCircuitFile parses a serialized circuit, or exits on failure.
func ReadCircuitFile(filename string) *circuit.Circuit {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	defer f.Close()
	//
	c, err := circuit.ReadFrom(f)
	if err != nil {
		fmt.Printf("%s: %s\n", filename, err)
		os.Exit(2)
	}
	//
	return c
}

// WriteCircuitFile serializes a circuit to the given file, or exits on
// failure.
func WriteCircuitFile(c *circuit.Circuit, filename string) {
	f, err := os.Create(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	defer f.Close()
	//
	if err := c.WriteTo(f); err != nil {
		fmt.Printf("%s: %s\n", filename, err)
		os.Exit(2)
	}
}

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
package keccak

import (
	"math/rand/v2"
	"testing"

	"golang.org/x/crypto/sha3"

	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit"
)

func Test_Sum256_01(t *testing.T) {
	check_Sum256(t, []byte{})
}

func Test_Sum256_02(t *testing.T) {
	check_Sum256(t, []byte("abc"))
}

func Test_Sum256_03(t *testing.T) {
	// One byte below the rate boundary: padding collapses into 0x86.
	check_Sum256(t, randomBytes(135))
}

func Test_Sum256_04(t *testing.T) {
	// Exactly one rate block of message forces a second, all-padding block.
	check_Sum256(t, randomBytes(136))
}

func Test_Sum256_05(t *testing.T) {
	check_Sum256(t, randomBytes(137))
}

func TestSlow_Sum256_06(t *testing.T) {
	// Multi-block absorption.
	check_Sum256(t, randomBytes(300))
}

func Test_Sum256_07(t *testing.T) {
	check_Sum256(t, randomBytes(64))
}

// ===================================================================
// Test Helpers
// ===================================================================

// check_Sum256 compares the circuit digest of a message against the host
// SHA3-256 implementation, bit for bit.
func check_Sum256(t *testing.T, msg []byte) {
	var (
		c, _ = circuit.New(uint(2 + 8*len(msg)))
		in   = c.Inputs()
	)
	//
	digest := Sum256(c, in[2:])
	//
	if err := c.SetOutputs(digest); err != nil {
		t.Fatal(err)
	}
	//
	inputs := make([]bool, 2+8*len(msg))
	inputs[1] = true
	//
	for i, by := range msg {
		for j := 0; j < 8; j++ {
			inputs[2+8*i+j] = by>>j&1 == 1
		}
	}
	//
	outputs, err := c.Evaluate(inputs)
	if err != nil {
		t.Fatal(err)
	}
	//
	want := sha3.Sum256(msg)
	//
	for i := range 256 {
		expected := want[i/8]>>(i%8)&1 == 1
		//
		if outputs[i] != expected {
			t.Fatalf("digest bit %d: expected %t (message %d bytes)", i, expected, len(msg))
		}
	}
}

func randomBytes(n int) []byte {
	out := make([]byte, n)
	//
	for i := range out {
		out[i] = byte(rand.UintN(256))
	}
	//
	return out
}

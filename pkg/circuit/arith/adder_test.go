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
package arith

import (
	"testing"

	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/util"
)

func Test_RippleAdd_01(t *testing.T) {
	check_Adder_Exhaustive(t, RippleAdd, 4)
}

func Test_RippleAdd_02(t *testing.T) {
	check_Adder_Random(t, RippleAdd)
}

func Test_KoggeStoneAdd_01(t *testing.T) {
	check_Adder_Exhaustive(t, KoggeStoneAdd, 4)
}

func Test_KoggeStoneAdd_02(t *testing.T) {
	check_Adder_Exhaustive(t, KoggeStoneAdd, 5)
}

func Test_KoggeStoneAdd_03(t *testing.T) {
	check_Adder_Random(t, KoggeStoneAdd)
}

func Test_SparseKoggeStoneAdd_01(t *testing.T) {
	check_Adder_Exhaustive(t, SparseKoggeStoneAdd, 4)
}

func Test_SparseKoggeStoneAdd_02(t *testing.T) {
	// Width not a multiple of the block size.
	check_Adder_Exhaustive(t, SparseKoggeStoneAdd, 6)
}

func Test_SparseKoggeStoneAdd_03(t *testing.T) {
	check_Adder_Random(t, SparseKoggeStoneAdd)
}

func Test_Adder_Depth_01(t *testing.T) {
	// The parallel-prefix adder must be materially shallower than ripple at
	// word width.
	var (
		ripple = adderCircuit(RippleAdd, 32, false)
		kogge  = adderCircuit(KoggeStoneAdd, 32, false)
	)
	//
	rippleDepth := ripple.Layers().Depth()
	koggeDepth := kogge.Layers().Depth()
	//
	if koggeDepth >= rippleDepth {
		t.Errorf("prefix adder depth %d not below ripple depth %d", koggeDepth, rippleDepth)
	}
	//
	if koggeDepth > 20 {
		t.Errorf("prefix adder depth %d not logarithmic", koggeDepth)
	}
}

func Test_Sub_01(t *testing.T) {
	c := binaryCircuit(8, func(b circuit.Builder, x, y []circuit.Wire) []circuit.Wire {
		diff, noBorrow := Sub(b, SparseKoggeStoneAdd, x, y)
		return append(diff, noBorrow)
	})
	//
	for x := uint64(0); x < 256; x++ {
		for y := uint64(0); y < 256; y++ {
			var (
				got  = evalBinary(t, c, 8, x, y)
				diff = got & 0xff
				noBw = got >> 8
			)
			//
			if diff != (x-y)&0xff {
				t.Fatalf("%d - %d: expected %d, got %d", x, y, (x-y)&0xff, diff)
			}
			//
			if want := x >= y; (noBw == 1) != want {
				t.Fatalf("%d - %d: no-borrow expected %t", x, y, want)
			}
		}
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func adderCircuit(add Adder, w uint, cin bool) *circuit.Circuit {
	carry := circuit.ConstFalse
	//
	if cin {
		carry = circuit.ConstTrue
	}
	//
	return binaryCircuit(w, func(b circuit.Builder, x, y []circuit.Wire) []circuit.Wire {
		sum, cout := add(b, x, y, carry)
		return append(sum, cout)
	})
}

func check_Adder_Exhaustive(t *testing.T, add Adder, w uint) {
	for _, cin := range []bool{false, true} {
		var (
			c     = adderCircuit(add, w, cin)
			limit = uint64(1) << w
			carry = uint64(0)
		)
		//
		if cin {
			carry = 1
		}
		//
		for x := uint64(0); x < limit; x++ {
			for y := uint64(0); y < limit; y++ {
				var (
					got  = evalBinary(t, c, w, x, y)
					want = x + y + carry
				)
				//
				if got != want {
					t.Fatalf("%d + %d + %d: expected %d, got %d", x, y, carry, want, got)
				}
			}
		}
	}
}

func check_Adder_Random(t *testing.T, add Adder) {
	var (
		c  = adderCircuit(add, 32, false)
		xs = util.GenerateRandomWords(64)
		ys = util.GenerateRandomWords(64)
	)
	//
	for i := range xs {
		var (
			got  = evalBinary(t, c, 32, uint64(xs[i]), uint64(ys[i]))
			want = uint64(xs[i]) + uint64(ys[i])
		)
		//
		if got != want {
			t.Fatalf("%d + %d: expected %d, got %d", xs[i], ys[i], want, got)
		}
	}
}

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

	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/util"
)

func Test_BoothMul_01(t *testing.T) {
	check_BoothMul_Exhaustive(t, 4)
}

func Test_BoothMul_02(t *testing.T) {
	// Odd width exercises the final half window.
	check_BoothMul_Exhaustive(t, 5)
}

func Test_BoothMul_03(t *testing.T) {
	var (
		c  = binaryCircuit(32, BoothMul)
		xs = util.GenerateRandomWords(64)
		ys = util.GenerateRandomWords(64)
	)
	//
	for i := range xs {
		var (
			got  = evalBinary(t, c, 32, uint64(xs[i]), uint64(ys[i]))
			want = uint64(int64(int32(xs[i])) * int64(int32(ys[i])))
		)
		//
		if got != want {
			t.Fatalf("%d * %d: expected %d, got %d", int32(xs[i]), int32(ys[i]), want, got)
		}
	}
}

func Test_BoothMul_04(t *testing.T) {
	// Booth recoding must land well under half the gate count of the
	// shift-and-add baseline.
	var (
		booth = binaryCircuit(32, BoothMul)
		naive = binaryCircuit(32, NaiveMul)
	)
	//
	if 2*booth.NbGates() >= naive.NbGates() {
		t.Errorf("booth multiplier (%d gates) not below half the baseline (%d gates)",
			booth.NbGates(), naive.NbGates())
	}
}

func Test_NaiveMul_01(t *testing.T) {
	c := binaryCircuit(6, NaiveMul)
	//
	for x := uint64(0); x < 64; x++ {
		for y := uint64(0); y < 64; y++ {
			if got := evalBinary(t, c, 6, x, y); got != x*y {
				t.Fatalf("%d * %d: expected %d, got %d", x, y, x*y, got)
			}
		}
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_BoothMul_Exhaustive(t *testing.T, w uint) {
	var (
		c     = binaryCircuit(w, BoothMul)
		limit = uint64(1) << w
		mask  = uint64(1)<<(2*w) - 1
	)
	//
	for x := uint64(0); x < limit; x++ {
		for y := uint64(0); y < limit; y++ {
			var (
				got  = evalBinary(t, c, w, x, y)
				want = uint64(signExtendTo(x, w)*signExtendTo(y, w)) & mask
			)
			//
			if got != want {
				t.Fatalf("%d * %d (width %d): expected %d, got %d",
					signExtendTo(x, w), signExtendTo(y, w), w, want, got)
			}
		}
	}
}
